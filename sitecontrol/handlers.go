package sitecontrol

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/lyralogics/lyrasite/sitecontrol/util/zlog"
	"github.com/rs/zerolog/log"
)

func (s *Site) pageHandler(name string) http.HandlerFunc {
	return func(writer http.ResponseWriter, req *http.Request) {
		html, err := s.RenderPage(name)
		if err != nil {
			httpError(writer, err)

			return
		}

		writeHTML(writer, html)
	}
}

// HeaderFragmentHandler serves the header alone, for pages composed
// elsewhere. The optional current query parameter names the active page.
func (s *Site) HeaderFragmentHandler(
	writer http.ResponseWriter,
	req *http.Request,
) {
	html, err := s.RenderHeader(currentRoute(req))
	if err != nil {
		httpError(writer, err)

		return
	}

	writeHTML(writer, html)
}

// MenuFragmentHandler serves the main menu list alone.
func (s *Site) MenuFragmentHandler(
	writer http.ResponseWriter,
	req *http.Request,
) {
	html, err := s.RenderMenu(currentRoute(req))
	if err != nil {
		httpError(writer, err)

		return
	}

	writeHTML(writer, html)
}

// HealthHandler reports whether the site can render its header.
func (s *Site) HealthHandler(
	writer http.ResponseWriter,
	req *http.Request,
) {
	respond := func(err error) {
		writer.Header().Set("Content-Type", "application/health+json; charset=utf-8")

		res := struct {
			Status string `json:"status"`
		}{
			Status: "pass",
		}

		if err != nil {
			writer.WriteHeader(http.StatusInternalServerError)
			log.Error().Caller().Err(err).Msg("health check failed")
			res.Status = "fail"
		}

		buf, err := json.Marshal(res)
		if err != nil {
			log.Error().Caller().Err(err).Msg("marshal failed")
		}
		_, err = writer.Write(buf)
		if err != nil {
			log.Error().Caller().Err(err).Msg("write failed")
		}
	}

	if _, err := s.RenderHeader(""); err != nil {
		respond(err)

		return
	}

	respond(nil)
}

// currentRoute returns the current query parameter when it names a page.
func currentRoute(req *http.Request) string {
	current := req.URL.Query().Get("current")
	if _, ok := findPage(current); !ok {
		return ""
	}

	return current
}

func writeHTML(writer http.ResponseWriter, html string) {
	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(http.StatusOK)

	if _, err := io.WriteString(writer, html); err != nil {
		log.Error().Caller().Err(err).Msg("write failed")
	}
}

func httpError(writer http.ResponseWriter, err error) {
	log.Error().Caller().Err(err).Msg("request failed")
	http.Error(writer, "internal server error", http.StatusInternalServerError)
}

func notFoundHandler(
	writer http.ResponseWriter,
	req *http.Request,
) {
	log.Trace().
		EmbedObject(zlog.Request(req)).
		Str("proto", req.Proto).
		Msg("Request did not match")
	writer.WriteHeader(http.StatusNotFound)
}

func methodNotAllowedHandler(
	writer http.ResponseWriter,
	req *http.Request,
) {
	log.Trace().
		EmbedObject(zlog.Request(req)).
		Msg("Method not allowed")
	writer.Header().Set("Allow", "GET, HEAD")
	http.Error(writer, "method not allowed", http.StatusMethodNotAllowed)
}
