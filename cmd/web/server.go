package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"laswell.com/web/internal/catalog"
	"laswell.com/web/internal/config"
	"laswell.com/web/internal/contact"
	"laswell.com/web/internal/content"
	mw "laswell.com/web/internal/middleware"
	"laswell.com/web/internal/observability"
	"laswell.com/web/internal/pages"
	"laswell.com/web/internal/theme"
	"laswell.com/web/public"
)

const stylesheetPath = "/assets/css/site.css"

// sink receives both kinds of submission.
type sink interface {
	contact.Submitter
	contact.Subscriber
}

type app struct {
	cfg        config.Config
	logger     *zap.Logger
	site       *pages.Site
	stylesheet theme.Asset
	sessions   *mw.Sessions
	submitter  contact.Submitter
	subscriber contact.Subscriber
}

func newApp(cfg config.Config, logger *zap.Logger) (*app, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cat, err := catalog.Default()
	if err != nil {
		return nil, err
	}
	store, err := content.Default()
	if err != nil {
		return nil, err
	}
	asset, err := theme.Build(theme.Default())
	if err != nil {
		return nil, err
	}
	if cfg.Session.HashKey == "" {
		logger.Warn("session: using ephemeral signing key; set LASWELL_SESSION_HASH_KEY outside development")
	}
	sessions, err := mw.NewSessions(mw.SessionOptions{
		HashKey:  []byte(cfg.Session.HashKey),
		BlockKey: []byte(cfg.Session.BlockKey),
		Secure:   cfg.Production() && !cfg.Site.Dev,
	})
	if err != nil {
		return nil, err
	}

	var s sink = contact.NewLogSink(logger)
	if cfg.Contact.Sink == config.SinkNone {
		s = contact.Unbound{}
	}
	throttled := contact.Throttled{
		Submitter:  s,
		Subscriber: s,
		Limiter:    contact.NewWindowLimiter(cfg.Contact.RatePerMinute, time.Minute, nil),
	}

	perPage := cfg.Catalog.PerPage
	if perPage <= 0 {
		perPage = catalog.DefaultPerPage
	}
	site := &pages.Site{
		Catalog:       cat,
		Content:       store,
		BaseURL:       cfg.Site.BaseURL,
		StylesheetURL: stylesheetPath + "?v=" + assetVersion(asset.ETag),
		PerPage:       perPage,
	}
	return &app{
		cfg:        cfg,
		logger:     logger,
		site:       site,
		stylesheet: asset,
		sessions:   sessions,
		submitter:  throttled,
		subscriber: throttled,
	}, nil
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(observability.InjectLoggerMiddleware(a.logger))
	r.Use(observability.TraceMiddleware())
	r.Use(observability.RequestLoggerMiddleware())
	r.Use(observability.RecoveryMiddleware(a.logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get(stylesheetPath, a.serveStylesheet)
	r.Handle("/assets/*", mw.AssetsWithCache(public.Assets(), "/assets", a.cfg.Site.Dev))

	browser := chi.Chain(chimw.RequestSize(maxBodyBytes), mw.HTMX, a.sessions.Middleware, mw.CSRF)
	r.Group(func(r chi.Router) {
		r.Use(browser...)

		for _, route := range pages.Routes {
			r.Get(route.Path, a.page)
		}
		r.Get("/products/{slug}", a.product)
		r.Post("/contact", a.submitContact)
		r.Post("/newsletter", a.subscribe)
		r.Get("/fragments/header", a.headerFragment)
		r.Get("/fragments/products", a.productsFragment)
	})
	r.NotFound(browser.HandlerFunc(a.notFound).ServeHTTP)
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})
	return r
}

func (a *app) serveStylesheet(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Vary", "Accept-Encoding")
	if a.cfg.Site.Dev {
		w.Header().Set("Cache-Control", "no-cache")
	} else {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	}
	w.Header().Set("ETag", a.stylesheet.ETag)
	if mw.MatchesETag(r, a.stylesheet.ETag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	_, _ = w.Write(a.stylesheet.Body)
}

// assetVersion shortens a weak ETag to a cache busting query value.
func assetVersion(etag string) string {
	v := strings.TrimSuffix(strings.TrimPrefix(etag, `W/"`), `"`)
	if len(v) > 12 {
		v = v[:12]
	}
	if v == "" {
		return fmt.Sprint(time.Now().Unix())
	}
	return v
}
