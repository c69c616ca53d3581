package inkpress

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/eringen/inkpress/markdown"
)

// handlePost serves the pre-rendered shell for a post when one exists in the
// output directory, and falls back to rendering it from the content
// directory so the preview works before a build has run.
func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")

	shellPath := filepath.Join(a.Config.OutputDir, slug+".html")
	if _, err := os.Stat(shellPath); err == nil {
		return c.File(shellPath)
	}

	post, err := a.Cache.GetPost(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no such post: "+slug)
		}
		return err
	}
	shell, err := a.prerenderer.RenderShell(post)
	if err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, shell)
}

// handlePreview renders just the article body as HTML, handy for checking
// markdown output without the client bundle.
func (a *App) handlePreview(c echo.Context) error {
	post, err := a.Cache.GetPost(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "no such post")
		}
		return err
	}
	return Render(c, markdown.Component(post.Content))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts()
	if err != nil {
		return err
	}
	return a.renderRSS(c, posts)
}
