package sitecontrol

import (
	"fmt"
	"time"

	"github.com/chasefleming/elem-go"
	"github.com/lyralogics/lyrasite/sitecontrol/templates"
	"github.com/lyralogics/lyrasite/sitecontrol/types"
	"github.com/lyralogics/lyrasite/sitecontrol/util/zlog/zf"
	"github.com/rs/zerolog/log"
)

// Kinds of rendered output, used as cache key prefix and metric label.
const (
	FragmentHeader = "header"
	FragmentMenu   = "menu"
	FragmentPage   = "page"
)

// RenderMenu renders the main menu list with the item leading to current
// marked active.
func (s *Site) RenderMenu(current string) (string, error) {
	return s.render(FragmentMenu, current, func(site types.SiteConfig) (*elem.Element, error) {
		return templates.MenuList(s.routes, site.Menu, current)
	})
}

// RenderHeader renders the site header with its menu.
func (s *Site) RenderHeader(current string) (string, error) {
	return s.render(FragmentHeader, current, func(site types.SiteConfig) (*elem.Element, error) {
		return s.header(site, current)
	})
}

// RenderPage renders the full page served under the route name.
func (s *Site) RenderPage(name string) (string, error) {
	p, ok := findPage(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrPageNotFound, name)
	}

	return s.render(FragmentPage, name, func(site types.SiteConfig) (*elem.Element, error) {
		header, err := s.header(site, p.name)
		if err != nil {
			return nil, err
		}

		return templates.Page(templates.PageProps{
			Title:       p.title,
			SiteName:    site.Name,
			Assets:      s.assets,
			Stylesheets: site.Stylesheets,
			Scripts:     site.Scripts,
			Header:      header,
			Content:     templates.PageContent(p.name, p.lead),
		})
	})
}

func (s *Site) header(site types.SiteConfig, current string) (*elem.Element, error) {
	menu, err := templates.MenuList(s.routes, site.Menu, current)
	if err != nil {
		return nil, err
	}

	return templates.HeaderStyleOne(templates.HeaderProps{
		Routes:  s.routes,
		Assets:  s.assets,
		Contact: site.Contact,
		Menu:    menu,
	})
}

// render builds an element from the active site configuration, going
// through the cache when it is enabled. The read lock is held for the whole
// render so a reload cannot interleave with storing a stale result.
func (s *Site) render(
	fragment string,
	route string,
	build func(types.SiteConfig) (*elem.Element, error),
) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := fragment + ":" + route

	if s.cfg.Cache.Enabled {
		if html, ok := s.cache.Load(key); ok {
			renderCacheHits.WithLabelValues(fragment).Inc()
			log.Trace().
				Str(zf.Fragment, fragment).
				Str(zf.CurrentRoute, route).
				Bool(zf.CacheHit, true).
				Msg("Rendered from cache")

			return html, nil
		}
	}

	start := time.Now()
	el, err := build(s.site)
	fragmentRenderDuration.WithLabelValues(fragment).Observe(time.Since(start).Seconds())

	if err != nil {
		fragmentRenders.WithLabelValues(fragment, "error").Inc()

		return "", fmt.Errorf("rendering %s: %w", fragment, err)
	}

	html := el.Render()
	fragmentRenders.WithLabelValues(fragment, "ok").Inc()

	if s.cfg.Cache.Enabled {
		s.cache.Store(key, html)
	}

	log.Trace().
		Str(zf.Fragment, fragment).
		Str(zf.CurrentRoute, route).
		Bool(zf.CacheHit, false).
		Dur(zf.Duration, time.Since(start)).
		Msg("Rendered")

	return html, nil
}
