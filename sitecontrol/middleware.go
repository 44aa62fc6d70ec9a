package sitecontrol

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/gorilla/mux"
	"github.com/lyralogics/lyrasite/sitecontrol/util/zlog"
	"github.com/lyralogics/lyrasite/sitecontrol/util/zlog/zf"
	"github.com/rs/zerolog/log"
)

const requestIDHeader = "X-Request-ID"

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n

	return n, err
}

// requestLogger tags every request with an ID, counts it and logs it.
// A valid incoming X-Request-ID is kept.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, req *http.Request) {
		start := time.Now()

		requestID := requestIDFrom(req)
		writer.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: writer}
		next.ServeHTTP(rec, req)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		route := routeLabel(req, rec.status)
		httpRequests.WithLabelValues(route, req.Method, strconv.Itoa(rec.status)).Inc()

		log.Debug().
			Str(zf.RequestID, requestID).
			EmbedObject(zlog.Request(req)).
			Str(zf.RouteName, route).
			Int(zf.Status, rec.status).
			Int(zf.Bytes, rec.bytes).
			Dur(zf.Duration, time.Since(start)).
			Msg("Served request")
	})
}

func requestIDFrom(req *http.Request) string {
	if id, err := uuid.FromString(req.Header.Get(requestIDHeader)); err == nil {
		return id.String()
	}

	id, err := uuid.NewV4()
	if err != nil {
		return ""
	}

	return id.String()
}

// routeLabel names the route that served req, keeping the metric label
// bounded.
func routeLabel(req *http.Request, status int) string {
	switch status {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	}

	route := mux.CurrentRoute(req)
	if route == nil {
		return "unmatched"
	}

	if name := route.GetName(); name != "" {
		return name
	}

	if tmpl, err := route.GetPathTemplate(); err == nil {
		return tmpl
	}

	return "unnamed"
}
