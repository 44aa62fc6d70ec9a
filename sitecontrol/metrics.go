package sitecontrol

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const prometheusNamespace = "lyrasite"

var (
	fragmentRenders = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: prometheusNamespace,
		Name:      "fragment_renders_total",
		Help:      "The number of fragment and page renders, by outcome",
	}, []string{"fragment", "status"})

	fragmentRenderDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: prometheusNamespace,
		Name:      "fragment_render_duration_seconds",
		Help:      "Time spent rendering a fragment or page, cache hits excluded",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
	}, []string{"fragment"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: prometheusNamespace,
		Name:      "http_requests_total",
		Help:      "The number of HTTP requests served, by route",
	}, []string{"route", "method", "code"})

	configReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: prometheusNamespace,
		Name:      "config_reloads_total",
		Help:      "The number of site configuration reloads, by outcome",
	}, []string{"status"})

	renderCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: prometheusNamespace,
		Name:      "render_cache_hits_total",
		Help:      "The number of renders answered from the render cache",
	}, []string{"fragment"})
)
