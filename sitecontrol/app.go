// Package sitecontrol serves the LyraLogics site: full pages, standalone
// header and menu fragments, and static assets.
package sitecontrol

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/mux"
	"github.com/lyralogics/lyrasite/sitecontrol/assets"
	"github.com/lyralogics/lyrasite/sitecontrol/routes"
	"github.com/lyralogics/lyrasite/sitecontrol/types"
	"github.com/lyralogics/lyrasite/sitecontrol/util"
	"github.com/lyralogics/lyrasite/sitecontrol/util/zlog/zf"
	"github.com/puzpuzpuz/xsync/v4"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/sasha-s/go-deadlock"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrPageNotFound is returned when rendering a page no route serves.
	ErrPageNotFound = errors.New("page not found")

	errUnknownMenuRoute = errors.New("menu refers to unknown routes")
)

// Site holds the router, the resolvers and the reloadable site
// configuration. Listener addresses and asset settings are fixed for the
// lifetime of a Site.
type Site struct {
	cfg *types.Config

	mu   deadlock.RWMutex
	site types.SiteConfig

	router *mux.Router
	routes *routes.Resolver
	assets *assets.Resolver
	files  fs.FS

	// rendered fragments and pages keyed by kind and route, cleared on
	// reload
	cache *xsync.Map[string, string]

	loadSite func() (types.SiteConfig, error)
}

// NewSite builds a Site from cfg.
func NewSite(cfg *types.Config) (*Site, error) {
	s := &Site{
		cfg:      cfg,
		site:     withDefaults(cfg.Site),
		files:    assets.FS(cfg.Assets.Root),
		cache:    xsync.NewMap[string, string](),
		loadSite: reloadSiteConfig,
	}

	s.router = s.createRouter()

	if cfg.Routes.Absolute {
		resolver, err := routes.NewAbsoluteResolver(s.router, cfg.ServerURL)
		if err != nil {
			return nil, err
		}
		s.routes = resolver
	} else {
		s.routes = routes.NewResolver(s.router)
	}

	s.assets = assets.NewResolver(cfg.Assets.URL, s.files, cfg.Assets.Strict)

	if err := s.checkMenu(s.site.Menu); err != nil {
		return nil, err
	}

	return s, nil
}

// Router returns the router serving the site.
func (s *Site) Router() *mux.Router {
	return s.router
}

// SiteConfig returns the active site configuration.
func (s *Site) SiteConfig() types.SiteConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.site
}

// Reload re-reads the site configuration and swaps it in. On failure the
// current configuration stays active.
func (s *Site) Reload() error {
	site, err := s.loadSite()
	if err == nil {
		site = withDefaults(site)
		err = s.checkMenu(site.Menu)
	}
	if err != nil {
		configReloads.WithLabelValues("error").Inc()

		return fmt.Errorf("reloading site configuration: %w", err)
	}

	s.mu.Lock()
	s.site = site
	s.cache.Clear()
	s.mu.Unlock()

	configReloads.WithLabelValues("ok").Inc()
	log.Info().
		Str(zf.MenuPath, site.MenuPath).
		Int("menu_items", len(site.Menu)).
		Msg("Site configuration reloaded")

	return nil
}

func reloadSiteConfig() (types.SiteConfig, error) {
	if viper.ConfigFileUsed() != "" {
		if err := viper.ReadInConfig(); err != nil {
			return types.SiteConfig{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return types.GetSiteConfig()
}

func withDefaults(site types.SiteConfig) types.SiteConfig {
	if len(site.Menu) == 0 {
		site.Menu = types.DefaultMenu
	}

	return site
}

// checkMenu makes sure every route a menu links to is registered.
func (s *Site) checkMenu(items []types.MenuItem) error {
	all := lo.FlatMap(items, func(item types.MenuItem, _ int) []string {
		return item.Routes()
	})

	unknown := lo.Uniq(lo.Filter(all, func(name string, _ int) bool {
		return s.router.Get(name) == nil
	}))
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s", errUnknownMenuRoute, strings.Join(unknown, ", "))
	}

	return nil
}

// watchConfig reloads the site whenever the config file changes on disk.
func (s *Site) watchConfig() {
	if viper.ConfigFileUsed() == "" {
		return
	}

	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Info().
			Str(zf.ConfigFile, e.Name).
			Str("op", e.Op.String()).
			Msg("Config file changed, reloading site configuration")

		if err := s.Reload(); err != nil {
			util.LogErr(err, "Failed to reload site configuration, keeping the current one")
		}
	})
	viper.WatchConfig()
}

// Serve runs the site and the debug server until a stop signal arrives.
func (s *Site) Serve() error {
	errorGroup, ctx := errgroup.WithContext(context.Background())

	httpServer := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  types.HTTPReadTimeout,
		WriteTimeout: types.HTTPWriteTimeout,
	}

	httpListener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind to TCP address: %w", err)
	}

	errorGroup.Go(func() error { return serveHTTP(httpServer, httpListener) })

	log.Info().
		Str(zf.ListenAddr, s.cfg.Addr).
		Msgf("listening and serving HTTP on: %s", s.cfg.Addr)

	debugHTTPServer := s.debugHTTPServer()

	debugHTTPListener, err := net.Listen("tcp", s.cfg.MetricsAddr)
	if err != nil {
		httpListener.Close()

		return fmt.Errorf("failed to bind to TCP address: %w", err)
	}

	errorGroup.Go(func() error { return serveHTTP(debugHTTPServer, debugHTTPListener) })

	log.Info().
		Str(zf.ListenAddr, s.cfg.MetricsAddr).
		Msgf("listening and serving debug and metrics on: %s", s.cfg.MetricsAddr)

	s.watchConfig()

	// Handle common process-killing signals so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer signal.Stop(sigc)

	shutdown := func() {
		ctx, cancel := context.WithTimeout(
			context.Background(),
			types.HTTPShutdownTimeout,
		)
		defer cancel()

		if err := debugHTTPServer.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to shutdown debug http")
		}
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to shutdown http")
		}
	}

	errorGroup.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				// one of the servers failed
				shutdown()

				return nil
			case sig := <-sigc:
				if sig == syscall.SIGHUP {
					log.Info().
						Str(zf.Signal, sig.String()).
						Msg("Received SIGHUP, reloading site configuration")

					if err := s.Reload(); err != nil {
						util.LogErr(err, "Failed to reload site configuration, keeping the current one")
					}

					continue
				}

				log.Info().
					Str(zf.Signal, sig.String()).
					Msg("Received signal to stop, shutting down gracefully")

				shutdown()

				log.Info().Msg("lyrasite stopped")

				return nil
			}
		}
	})

	return errorGroup.Wait()
}

func serveHTTP(server *http.Server, listener net.Listener) error {
	err := server.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}
