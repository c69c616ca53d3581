// Package inkpress builds and serves a personal blog and CV site.
//
// Articles are markdown files with a flat front-matter block; the CV is a
// single YAML document. Build-time commands generate the article manifest
// and pre-render one static HTML shell per post for link previews; the
// preview server serves the built site together with an RSS feed and
// sitemap derived from the same content pipeline.
package inkpress

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// App is the preview server. It wires together the content-directory post
// cache, shell renderer, middleware, and routes.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Cache  *PostCache

	prerenderer  *Prerenderer
	customRoutes []func(*App)
}

// New creates a new inkpress App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the cache, renderer, middleware, and routes, and runs
// the server until it is shut down.
func (a *App) Start() error {
	a.Cache = NewPostCache(a.Config.ContentDir, a.Config.PostCacheTTL)

	pr, err := NewPrerenderer(a.Config)
	if err != nil {
		return fmt.Errorf("inkpress: init prerenderer: %w", err)
	}
	a.prerenderer = pr

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/post/:slug", a.handlePost)
	e.GET("/preview/:slug", a.handlePreview)

	// Everything else (index.html, articles, the manifest, cv-data.yaml,
	// bundled assets) is served straight from the site directory.
	e.Static("/", a.Config.SiteDir)
}
