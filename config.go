package inkpress

import "time"

// SiteConfig holds all configuration for an inkpress site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for meta tags and RSS
	Author      string // Author name for JSON-LD
	Image       string // Default social-preview image URL

	Addr       string // Listen address for the preview server (default ":3000")
	SiteDir    string // Directory with the published site (default "public")
	ContentDir string // Markdown articles (default "public/articles")
	OutputDir  string // Pre-rendered post shells (default "public/post")
	CVPath     string // CV data document (default "public/cv-data.yaml")

	PostCacheTTL time.Duration // Preview-server post cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.SiteDir == "" {
		c.SiteDir = "public"
	}
	if c.ContentDir == "" {
		c.ContentDir = "public/articles"
	}
	if c.OutputDir == "" {
		c.OutputDir = "public/post"
	}
	if c.CVPath == "" {
		c.CVPath = "public/cv-data.yaml"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
