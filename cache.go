package inkpress

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested post does not exist.
var ErrNotFound = errors.New("inkpress: post not found")

// PostCache is an in-memory cache of posts read from the content directory,
// refreshed on a TTL so edits show up without restarting the preview server.
type PostCache struct {
	mu      sync.RWMutex
	posts   []Post
	fetched time.Time
	ttl     time.Duration
	dir     string
}

// NewPostCache creates a PostCache over the given content directory.
func NewPostCache(contentDir string, ttl time.Duration) *PostCache {
	return &PostCache{dir: contentDir, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.mu.Unlock()
}

// ensureLoaded returns cached posts after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded() ([]Post, error) {
	c.mu.RLock()
	if c.valid() {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.posts, nil
	}
	posts, err := LoadPosts(c.dir)
	if err != nil {
		return nil, err
	}
	c.posts = posts
	c.fetched = time.Now()
	return c.posts, nil
}

// ListPosts returns all posts, newest first.
func (c *PostCache) ListPosts() ([]Post, error) {
	return c.ensureLoaded()
}

// GetPost returns a single post by slug from the cache.
func (c *PostCache) GetPost(slug string) (Post, error) {
	posts, err := c.ensureLoaded()
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}
