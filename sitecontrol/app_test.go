package sitecontrol

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gofrs/uuid/v5"
	"github.com/lyralogics/lyrasite/sitecontrol/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *types.Config {
	return &types.Config{
		ServerURL:   "http://127.0.0.1:8080",
		Addr:        "127.0.0.1:8080",
		MetricsAddr: "127.0.0.1:9090",
		Assets: types.AssetsConfig{
			MaxAge: time.Hour,
		},
		Cache: types.CacheConfig{Enabled: true},
		Site: types.SiteConfig{
			Name:        "LyraLogics",
			Contact:     types.DefaultContact,
			Stylesheets: types.DefaultStylesheets,
			Scripts:     types.DefaultScripts,
			Menu:        types.DefaultMenu,
		},
	}
}

func newTestSite(t *testing.T, mutate ...func(*types.Config)) *Site {
	t.Helper()

	cfg := testConfig()
	for _, m := range mutate {
		m(cfg)
	}

	site, err := NewSite(cfg)
	require.NoError(t, err)

	return site
}

func get(t *testing.T, site *Site, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	site.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestNewSiteResolvesNamedRoutes(t *testing.T) {
	site := newTestSite(t)

	for _, p := range pages {
		got, err := site.routes.Route(p.name)
		require.NoError(t, err)
		assert.Equal(t, p.path, got)
	}
}

func TestNewSiteRejectsUnknownMenuRoute(t *testing.T) {
	cfg := testConfig()
	cfg.Site.Menu = []types.MenuItem{
		{Label: "Home", Route: types.RouteIndex},
		{Label: "Careers", Route: "careers"},
	}

	_, err := NewSite(cfg)
	require.ErrorIs(t, err, errUnknownMenuRoute)
	assert.Contains(t, err.Error(), "careers")
}

func TestNewSiteUsesDefaultMenu(t *testing.T) {
	site := newTestSite(t, func(c *types.Config) { c.Site.Menu = nil })

	assert.Equal(t, types.DefaultMenu, site.SiteConfig().Menu)
}

func TestPageHandlers(t *testing.T) {
	site := newTestSite(t)

	for _, p := range pages {
		t.Run(p.name, func(t *testing.T) {
			rec := get(t, site, p.path)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))

			body := rec.Body.String()
			assert.True(t, strings.HasPrefix(body, "<!DOCTYPE html>"))
			assert.Contains(t, body, `<a href="/"><img alt="" src="/assets/images/resources/logo-1.png"></a>`)
			assert.Contains(t, body, `<title>`+p.title+` | LyraLogics</title>`)

			doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
			require.NoError(t, err)

			current := doc.Find("ul.main-menu__list > li.current > a")
			require.Equal(t, 1, current.Length())
			href, _ := current.Attr("href")
			if p.name == types.RouteTeam || p.name == types.RoutePricing || p.name == types.RouteFAQ {
				assert.Equal(t, "/team", href)
			} else {
				assert.Equal(t, p.path, href)
			}
		})
	}
}

func TestHeaderFragmentHandler(t *testing.T) {
	site := newTestSite(t)

	tests := []struct {
		name        string
		target      string
		wantCurrent bool
	}{
		{
			name:   "no current",
			target: "/fragments/header",
		},
		{
			name:        "current contact",
			target:      "/fragments/header?current=contact",
			wantCurrent: true,
		},
		{
			name:   "unknown current is ignored",
			target: "/fragments/header?current=careers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, site, tt.target)

			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.True(t, strings.HasPrefix(body, `<header class="main-header-two">`))
			assert.True(t, strings.HasSuffix(body, `</header>`))
			assert.Equal(t, 1, strings.Count(body, `href="mailto:info@lyralogics.com"`))
			assert.Equal(t, 1, strings.Count(body, `href="tel:6785236569"`))

			if tt.wantCurrent {
				assert.Contains(t, body, `<li class="current"><a href="/contact">Contact</a></li>`)
			} else {
				assert.NotContains(t, body, `current"`)
			}
		})
	}

	assert.Equal(t, 2, site.cache.Size())
}

func TestMenuFragmentHandler(t *testing.T) {
	site := newTestSite(t)

	rec := get(t, site, "/fragments/menu?current=faq")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.HasPrefix(body, `<ul class="main-menu__list">`))
	assert.Contains(t, body, `<li class="dropdown current"><a href="/team">Pages</a>`)
	assert.Contains(t, body, `<li class="current"><a href="/faq">FAQs</a></li>`)
}

func TestHealthHandler(t *testing.T) {
	site := newTestSite(t)

	rec := get(t, site, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/health+json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"pass"}`, rec.Body.String())
}

func TestHealthHandlerFailsWhenHeaderCannotRender(t *testing.T) {
	site := newTestSite(t, func(c *types.Config) {
		c.Assets.Strict = true
		c.Assets.Root = t.TempDir()
	})

	rec := get(t, site, "/health")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":"fail"}`, rec.Body.String())
}

func TestStaticHandlers(t *testing.T) {
	site := newTestSite(t)

	rec := get(t, site, "/favicon.ico")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec = get(t, site, "/assets/images/resources/logo-1.png")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Get("ETag"))
}

func TestNotFound(t *testing.T) {
	site := newTestSite(t)

	before := testutil.ToFloat64(httpRequests.WithLabelValues("not_found", http.MethodGet, "404"))

	rec := get(t, site, "/careers")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("not_found", http.MethodGet, "404"))
	assert.InDelta(t, 1, after-before, 0)
}

func TestMethods(t *testing.T) {
	site := newTestSite(t)

	tests := []struct {
		method string
		target string
		want   int
	}{
		{method: http.MethodHead, target: "/favicon.ico", want: http.StatusOK},
		{method: http.MethodHead, target: "/about", want: http.StatusOK},
		{method: http.MethodHead, target: "/fragments/header", want: http.StatusOK},
		{method: http.MethodHead, target: "/assets/images/resources/logo-1.png", want: http.StatusOK},
		{method: http.MethodPost, target: "/about", want: http.StatusMethodNotAllowed},
		{method: http.MethodDelete, target: "/favicon.ico", want: http.StatusMethodNotAllowed},
		{method: http.MethodPost, target: "/careers", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			site.Router().ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusMethodNotAllowed {
				assert.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
			}
		})
	}

	before := testutil.ToFloat64(httpRequests.WithLabelValues("method_not_allowed", http.MethodPut, "405"))

	rec := httptest.NewRecorder()
	site.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/contact", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	after := testutil.ToFloat64(httpRequests.WithLabelValues("method_not_allowed", http.MethodPut, "405"))
	assert.InDelta(t, 1, after-before, 0)
}

func TestRequestID(t *testing.T) {
	site := newTestSite(t)

	rec := get(t, site, "/health")
	id, err := uuid.FromString(rec.Header().Get(requestIDHeader))
	require.NoError(t, err)
	assert.Equal(t, uuid.V4, id.Version())

	incoming := uuid.Must(uuid.NewV4()).String()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, incoming)
	rec = httptest.NewRecorder()
	site.Router().ServeHTTP(rec, req)
	assert.Equal(t, incoming, rec.Header().Get(requestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	site.Router().ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(requestIDHeader))
}

func TestRenderIsDeterministic(t *testing.T) {
	first, err := newTestSite(t).RenderHeader("")
	require.NoError(t, err)

	for range 3 {
		site := newTestSite(t, func(c *types.Config) { c.Cache.Enabled = false })
		again, err := site.RenderHeader("")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRenderCache(t *testing.T) {
	site := newTestSite(t)

	hits := renderCacheHits.WithLabelValues(FragmentHeader)
	before := testutil.ToFloat64(hits)

	first, err := site.RenderHeader(types.RouteAbout)
	require.NoError(t, err)
	second, err := site.RenderHeader(types.RouteAbout)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.InDelta(t, 1, testutil.ToFloat64(hits)-before, 0)
	assert.Equal(t, 1, site.cache.Size())
}

func TestRenderCacheDisabled(t *testing.T) {
	site := newTestSite(t, func(c *types.Config) { c.Cache.Enabled = false })

	_, err := site.RenderMenu("")
	require.NoError(t, err)
	assert.Equal(t, 0, site.cache.Size())
}

func TestRenderPageUnknown(t *testing.T) {
	site := newTestSite(t)

	_, err := site.RenderPage("careers")
	require.ErrorIs(t, err, ErrPageNotFound)
}

func TestAbsoluteRoutesAndAssetOrigin(t *testing.T) {
	site := newTestSite(t, func(c *types.Config) {
		c.ServerURL = "https://lyralogics.com"
		c.Routes.Absolute = true
		c.Assets.URL = "https://cdn.lyralogics.com"
	})

	html, err := site.RenderHeader("")
	require.NoError(t, err)

	assert.Contains(t, html, `<a href="https://lyralogics.com/"><img alt="" src="https://cdn.lyralogics.com/assets/images/resources/logo-1.png"></a>`)
	assert.Contains(t, html, `<a class="thm-btn" href="https://lyralogics.com/contact">Get in Touch<span class="icon-right-arrow"></span></a>`)
}

func TestStrictAssetsFailPage(t *testing.T) {
	site := newTestSite(t, func(c *types.Config) { c.Assets.Strict = true })

	_, err := site.RenderHeader("")
	require.NoError(t, err)

	before := testutil.ToFloat64(fragmentRenders.WithLabelValues(FragmentPage, "error"))

	rec := get(t, site, "/about")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.InDelta(t, 1, testutil.ToFloat64(fragmentRenders.WithLabelValues(FragmentPage, "error"))-before, 0)
}

func TestReload(t *testing.T) {
	site := newTestSite(t)

	html, err := site.RenderHeader("")
	require.NoError(t, err)
	assert.Contains(t, html, "info@lyralogics.com")

	reloaded := testConfig().Site
	reloaded.Contact.Email = "hello@lyralogics.com"
	site.loadSite = func() (types.SiteConfig, error) {
		return reloaded, nil
	}

	before := testutil.ToFloat64(configReloads.WithLabelValues("ok"))
	require.NoError(t, site.Reload())
	assert.InDelta(t, 1, testutil.ToFloat64(configReloads.WithLabelValues("ok"))-before, 0)
	assert.Equal(t, 0, site.cache.Size())

	html, err = site.RenderHeader("")
	require.NoError(t, err)
	assert.Contains(t, html, `href="mailto:hello@lyralogics.com"`)
	assert.NotContains(t, html, "info@lyralogics.com")
}

func TestReloadFailureKeepsConfig(t *testing.T) {
	errBroken := errors.New("broken config")

	tests := []struct {
		name     string
		loadSite func() (types.SiteConfig, error)
		wantErr  error
	}{
		{
			name: "loader error",
			loadSite: func() (types.SiteConfig, error) {
				return types.SiteConfig{}, errBroken
			},
			wantErr: errBroken,
		},
		{
			name: "menu with unknown route",
			loadSite: func() (types.SiteConfig, error) {
				site := testConfig().Site
				site.Menu = []types.MenuItem{{Label: "Careers", Route: "careers"}}

				return site, nil
			},
			wantErr: errUnknownMenuRoute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			site := newTestSite(t)
			_, err := site.RenderMenu("")
			require.NoError(t, err)

			site.loadSite = tt.loadSite

			err = site.Reload()
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, types.DefaultMenu, site.SiteConfig().Menu)
			assert.Equal(t, 1, site.cache.Size())
		})
	}
}

func TestConcurrentRenderAndReload(t *testing.T) {
	site := newTestSite(t)
	site.loadSite = func() (types.SiteConfig, error) {
		return testConfig().Site, nil
	}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				if i%4 == 0 {
					assert.NoError(t, site.Reload())

					continue
				}
				_, err := site.RenderPage(pages[i%len(pages)].name)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}

func TestDebugHTTPServer(t *testing.T) {
	site := newTestSite(t)
	_, err := site.RenderHeader("")
	require.NoError(t, err)

	handler := site.debugHTTPServer().Handler

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/routes", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "=== Registered HTTP Routes ===")
	assert.Contains(t, rec.Body.String(), "/fragments/header")
	assert.Contains(t, rec.Body.String(), "Total routes: 14")

	req := httptest.NewRequest(http.MethodGet, "/debug/routes", nil)
	req.Header.Set("Accept", "application/json")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var info DebugRoutesInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, 14, info.TotalCount)
	assert.Len(t, info.Routes, info.TotalCount)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/config", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var cfg types.SiteConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	assert.Equal(t, types.DefaultContact, cfg.Contact)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "lyrasite_fragment_renders_total")
}
