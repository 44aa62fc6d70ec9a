package sitecontrol

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lyralogics/lyrasite/sitecontrol/assets"
)

// Route names of the non-page endpoints.
const (
	RouteHeaderFragment = "fragment-header"
	RouteMenuFragment   = "fragment-menu"
	RouteHealth         = "health"
	RouteFavicon        = "favicon"
	RouteAssets         = "assets"
)

func (s *Site) createRouter() *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogger)

	for _, p := range pages {
		router.HandleFunc(p.path, s.pageHandler(p.name)).
			Methods(http.MethodGet, http.MethodHead).
			Name(p.name)
	}

	router.HandleFunc("/fragments/header", s.HeaderFragmentHandler).
		Methods(http.MethodGet, http.MethodHead).
		Name(RouteHeaderFragment)
	router.HandleFunc("/fragments/menu", s.MenuFragmentHandler).
		Methods(http.MethodGet, http.MethodHead).
		Name(RouteMenuFragment)

	router.HandleFunc("/health", s.HealthHandler).
		Methods(http.MethodGet, http.MethodHead).
		Name(RouteHealth)
	router.HandleFunc("/favicon.ico", assets.FaviconHandler).
		Methods(http.MethodGet, http.MethodHead).
		Name(RouteFavicon)
	router.PathPrefix("/assets/").
		Handler(assets.Handler(s.files, s.cfg.Assets.MaxAge)).
		Methods(http.MethodGet, http.MethodHead).
		Name(RouteAssets)

	// mux skips middleware for these two
	router.NotFoundHandler = requestLogger(http.HandlerFunc(notFoundHandler))
	router.MethodNotAllowedHandler = requestLogger(http.HandlerFunc(methodNotAllowedHandler))

	return router
}
