// Package routes resolves symbolic page names to URLs using the named routes
// registered on the site router.
package routes

import (
	"errors"
	"fmt"
	"net/url"
	"sort"

	"github.com/gorilla/mux"
	"github.com/samber/lo"
)

// ErrRouteNotFound is returned for a name no route is registered under.
var ErrRouteNotFound = errors.New("route not found")

// Resolver maps route names to URLs. It holds no state of its own besides the
// router, so every lookup reflects the routes registered at that moment.
type Resolver struct {
	router *mux.Router
	base   *url.URL
}

// NewResolver returns a Resolver producing bare paths ("/contact").
func NewResolver(router *mux.Router) *Resolver {
	return &Resolver{router: router}
}

// NewAbsoluteResolver returns a Resolver producing absolute URLs rooted at
// serverURL ("https://example.com/contact").
func NewAbsoluteResolver(router *mux.Router, serverURL string) (*Resolver, error) {
	base, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("parsing server url %q: %w", serverURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("server url %q must have a scheme and a host", serverURL)
	}

	return &Resolver{router: router, base: base}, nil
}

// Route returns the URL of the route registered under name. pairs are
// key/value route variables, as accepted by mux.Route.URL.
func (r *Resolver) Route(name string, pairs ...string) (string, error) {
	route := r.router.Get(name)
	if route == nil {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}

	u, err := route.URL(pairs...)
	if err != nil {
		return "", fmt.Errorf("building url for route %q: %w", name, err)
	}

	if r.base != nil {
		u.Scheme = r.base.Scheme
		u.Host = r.base.Host
		u.Path = r.base.Path + u.Path
	}

	return u.String(), nil
}

// Info describes a registered route.
type Info struct {
	Name    string   `json:"name,omitempty" yaml:"name,omitempty"`
	Path    string   `json:"path" yaml:"path"`
	Methods []string `json:"methods" yaml:"methods"`
}

// Collect walks the router and returns every route with a path, sorted by
// path.
func Collect(router *mux.Router) []Info {
	var routes []Info

	_ = router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			// If we can't get a path template, try GetPathRegexp
			var pathRegexp string

			pathRegexp, err = route.GetPathRegexp()
			if err != nil {
				// Skip routes without a path
				return nil //nolint:nilerr
			}

			pathTemplate = pathRegexp
		}

		methods, err := route.GetMethods()
		if err != nil {
			// No methods means it accepts all methods
			methods = []string{}
		}

		routes = append(routes, Info{
			Name:    route.GetName(),
			Path:    pathTemplate,
			Methods: methods,
		})

		return nil
	})

	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})

	return routes
}

// Named returns only the routes that carry a name.
func Named(router *mux.Router) []Info {
	return lo.Filter(Collect(router), func(info Info, _ int) bool {
		return info.Name != ""
	})
}
