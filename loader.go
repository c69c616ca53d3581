package inkpress

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// LoaderConfig configures a runtime content Loader.
type LoaderConfig struct {
	BaseURL    string       // site origin, e.g. "https://example.dev"
	Prod       bool         // published deployment (adds the base path prefix)
	BasePath   string       // deployment subpath used when Prod (default "ink-blog-scribe")
	HTTPClient *http.Client // defaults to http.DefaultClient
	Logger     *log.Logger  // defaults to log.Default()
}

// Loader fetches the article manifest, articles, and parsed posts over HTTP
// and caches them for the session. The caches are owned by the Loader
// instance; concurrent calls for the same resource are coalesced into a
// single fetch.
type Loader struct {
	base   string
	client *http.Client
	logger *log.Logger

	group singleflight.Group

	mu          sync.Mutex
	cachedPosts []Post
	cachedFiles []string
}

// NewLoader creates a Loader for the given configuration.
func NewLoader(cfg LoaderConfig) *Loader {
	base := cfg.BaseURL
	if cfg.Prod {
		basePath := cfg.BasePath
		if basePath == "" {
			basePath = "ink-blog-scribe"
		}
		base = BuildURL(base, basePath)
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{base: base, client: client, logger: logger}
}

func (l *Loader) get(ctx context.Context, path, what string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.base+path, nil)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", what, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", what, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("load %s: unexpected status %s", what, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", what, err)
	}
	return body, nil
}

// LoadManifest fetches the article manifest and caches it. Concurrent calls
// share one in-flight request.
func (l *Loader) LoadManifest(ctx context.Context) ([]string, error) {
	l.mu.Lock()
	if l.cachedFiles != nil {
		files := l.cachedFiles
		l.mu.Unlock()
		return files, nil
	}
	l.mu.Unlock()

	v, err, _ := l.group.Do("manifest", func() (interface{}, error) {
		body, err := l.get(ctx, "/articles/"+ManifestName, "articles index")
		if err != nil {
			return nil, err
		}
		files, err := decodeManifest(body)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.cachedFiles = files
		l.mu.Unlock()
		return files, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// LoadArticle fetches the raw text of one article. A non-success response
// produces an error naming the missing file.
func (l *Loader) LoadArticle(ctx context.Context, filename string) (string, error) {
	body, err := l.get(ctx, "/articles/"+filename, "article "+filename)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// LoadAll loads the manifest, fetches and parses every listed article
// concurrently, and caches the result sorted newest first.
//
// Failure of any single fetch collapses the whole batch to an empty slice
// with the cause logged, never a partial list: the application degrades to
// "no posts" rather than a silently incomplete one. Build-time rendering
// makes the opposite trade and aborts (see Prerenderer.Run).
func (l *Loader) LoadAll(ctx context.Context) []Post {
	l.mu.Lock()
	if l.cachedPosts != nil {
		posts := l.cachedPosts
		l.mu.Unlock()
		return posts
	}
	l.mu.Unlock()

	v, err, _ := l.group.Do("posts", func() (interface{}, error) {
		files, err := l.LoadManifest(ctx)
		if err != nil {
			return nil, err
		}

		posts := make([]Post, len(files))
		g, gctx := errgroup.WithContext(ctx)
		for i, filename := range files {
			g.Go(func() error {
				raw, err := l.LoadArticle(gctx, filename)
				if err != nil {
					return err
				}
				posts[i] = ParsePost(raw, filename)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		SortPostsByDate(posts)
		l.mu.Lock()
		l.cachedPosts = posts
		l.mu.Unlock()
		return posts, nil
	})
	if err != nil {
		l.logger.Printf("inkpress: failed to load posts: %v", err)
		return []Post{}
	}
	return v.([]Post)
}

// GetBySlug returns the post with the given slug, or ok=false when no such
// post exists. An absent slug is a normal result, not an error.
func (l *Loader) GetBySlug(ctx context.Context, slug string) (Post, bool) {
	for _, p := range l.LoadAll(ctx) {
		if p.Slug == slug {
			return p, true
		}
	}
	return Post{}, false
}

// ClearCache drops the cached manifest and posts so the next load fetches
// fresh content.
func (l *Loader) ClearCache() {
	l.mu.Lock()
	l.cachedPosts = nil
	l.cachedFiles = nil
	l.mu.Unlock()
}
