package sitecontrol

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/arl/statsviz"
	"github.com/lyralogics/lyrasite/sitecontrol/routes"
	"github.com/lyralogics/lyrasite/sitecontrol/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// DebugRoutesInfo represents all HTTP routes in a structured format.
type DebugRoutesInfo struct {
	Routes     []routes.Info `json:"routes"`
	TotalCount int           `json:"total_count"`
}

func (s *Site) debugHTTPServer() *http.Server {
	debugMux := http.NewServeMux()

	// HTTP routes endpoint
	debugMux.HandleFunc("/debug/routes", func(w http.ResponseWriter, r *http.Request) {
		// Check Accept header to determine response format
		if strings.Contains(r.Header.Get("Accept"), "application/json") {
			writeJSON(w, s.debugRoutesJSON())

			return
		}

		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(s.debugRoutes()))
	})

	// Configuration endpoint
	debugMux.HandleFunc("/debug/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.SiteConfig())
	})

	if err := statsviz.Register(debugMux); err != nil {
		log.Warn().Err(err).Msg("Failed to register statsviz")
	}

	debugMux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:         s.cfg.MetricsAddr,
		Handler:      debugMux,
		ReadTimeout:  types.HTTPReadTimeout,
		WriteTimeout: 0,
	}
}

// debugRoutes returns a text representation of all registered HTTP routes.
func (s *Site) debugRoutes() string {
	var sb strings.Builder
	sb.WriteString("=== Registered HTTP Routes ===\n\n")

	collected := routes.Collect(s.router)

	for _, route := range collected {
		methods := strings.Join(route.Methods, ", ")
		if methods == "" {
			methods = "ALL"
		}

		if route.Name != "" {
			sb.WriteString(fmt.Sprintf("%-30s [%-10s] %s\n", route.Path, methods, route.Name))
		} else {
			sb.WriteString(fmt.Sprintf("%-30s [%-10s]\n", route.Path, methods))
		}
	}

	sb.WriteString(fmt.Sprintf("\nTotal routes: %d\n", len(collected)))

	return sb.String()
}

func (s *Site) debugRoutesJSON() DebugRoutesInfo {
	collected := routes.Collect(s.router)

	return DebugRoutesInfo{
		Routes:     collected,
		TotalCount: len(collected),
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		httpError(w, err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}
