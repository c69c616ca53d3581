package inkpress

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/eringen/inkpress/markdown"
)

// Bundler placeholders referenced by every shell. The deploy step rewrites
// the bundle src to the hashed asset name.
const (
	shellStylesheet = "/index.css"
	shellBundle     = "/assets/index-xxxxxxxx.js"
)

// preloadedState is the bootstrap payload embedded in each shell for
// client-side hydration.
type preloadedState struct {
	Post shellPost `json:"post"`
}

type shellPost struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"` // ISO-8601 or ""
	Content     string `json:"content"`
}

// shellData is the template context for one pre-rendered post shell.
type shellData struct {
	Meta       PageMeta
	JsonLD     template.JS
	Stylesheet string
	Bundle     string
	State      preloadedState
}

// Prerenderer generates standalone HTML shells for every article, carrying
// the social-preview metadata crawlers need before the client bundle runs.
type Prerenderer struct {
	cfg  SiteConfig
	tmpl *template.Template
}

// NewPrerenderer parses the embedded shell template once and captures the
// site-wide metadata defaults from cfg.
func NewPrerenderer(cfg SiteConfig) (*Prerenderer, error) {
	cfg.setDefaults()
	tmpl, err := template.ParseFS(Templates, "templates/shell.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse shell template: %w", err)
	}
	return &Prerenderer{cfg: cfg, tmpl: tmpl}, nil
}

// RenderShell composes the standalone HTML document for one post.
func (p *Prerenderer) RenderShell(post Post) ([]byte, error) {
	html, err := markdown.Render(post.Content)
	if err != nil {
		return nil, fmt.Errorf("render markdown for %s: %w", post.Slug, err)
	}
	meta := p.cfg.MetaFor(post)
	data := shellData{
		Meta:       meta,
		JsonLD:     template.JS(BlogPostingJsonLD(post, p.cfg)),
		Stylesheet: shellStylesheet,
		Bundle:     shellBundle,
		State: preloadedState{
			Post: shellPost{
				Slug:        post.Slug,
				Title:       meta.Title,
				Description: meta.Description,
				Date:        ISODate(post.Date),
				Content:     html,
			},
		},
	}
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute shell template for %s: %w", post.Slug, err)
	}
	return buf.Bytes(), nil
}

// Run pre-renders every eligible article in the content directory into
// {OutputDir}/{slug}.html and returns the paths written.
//
// The first failure aborts the whole run: the shell set is regenerated
// complete or not at all, so a broken build never leaves a stale mix of old
// and new shells behind.
func (p *Prerenderer) Run() ([]string, error) {
	posts, err := LoadPosts(p.cfg.ContentDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", p.cfg.OutputDir, err)
	}

	written := make([]string, 0, len(posts))
	for _, post := range posts {
		shell, err := p.RenderShell(post)
		if err != nil {
			return nil, err
		}
		out := filepath.Join(p.cfg.OutputDir, post.Slug+".html")
		if err := os.WriteFile(out, shell, 0o644); err != nil {
			return nil, fmt.Errorf("write shell %s: %w", out, err)
		}
		written = append(written, out)
	}
	return written, nil
}
