package inkpress

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/eringen/inkpress/frontmatter"
)

// ContentExt is the file extension an article must carry to be eligible.
const ContentExt = ".md"

// SlugFromFilename derives the canonical slug (and ID) of an article from
// its filename. The pre-renderer and the runtime loader both go through
// this function so build-time and runtime identifiers can never diverge.
func SlugFromFilename(filename string) string {
	return strings.TrimSuffix(filepath.Base(filename), ContentExt)
}

// dateFormats are tried in order when parsing a front-matter date.
var dateFormats = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04",
}

// ParseDate parses a front-matter date string. An empty or unparseable value
// yields the zero time; it is never defaulted to "now", so callers sorting or
// displaying dates must handle t.IsZero().
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParsePost builds a Post from raw article text and its filename.
func ParsePost(raw, filename string) Post {
	meta, body := frontmatter.Parse(raw)
	slug := SlugFromFilename(filename)
	return Post{
		ID:       slug,
		Slug:     slug,
		Title:    meta["title"],
		Excerpt:  meta["description"],
		Content:  body,
		Date:     ParseDate(meta["date"]),
		ReadTime: meta["readTime"],
		Image:    meta["image"],
	}
}

// ListArticles returns the names of all eligible articles in dir, sorted
// byte-wise for reproducible output. Subdirectories and files with other
// extensions are skipped.
func ListArticles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read content directory %s: %w", dir, err)
	}
	files := []string{}
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ContentExt) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

// LoadPosts reads and parses every eligible article in contentDir and
// returns the posts sorted by date descending (newest first). Any read
// failure aborts the whole load.
func LoadPosts(contentDir string) ([]Post, error) {
	files, err := ListArticles(contentDir)
	if err != nil {
		return nil, err
	}
	posts := make([]Post, 0, len(files))
	for _, name := range files {
		raw, err := os.ReadFile(filepath.Join(contentDir, name))
		if err != nil {
			return nil, fmt.Errorf("read article %s: %w", name, err)
		}
		posts = append(posts, ParsePost(string(raw), name))
	}
	SortPostsByDate(posts)
	return posts, nil
}

// SortPostsByDate sorts posts newest first. Posts with a zero (unparseable)
// date sink to the end.
func SortPostsByDate(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
}

// MetaFor resolves the effective page metadata for a post: front-matter
// values when present, site-wide defaults otherwise. The same fallbacks are
// used by the pre-rendered shells and the preview server.
func (c SiteConfig) MetaFor(p Post) PageMeta {
	m := PageMeta{
		Title:       c.Name,
		Description: c.Description,
		URL:         BuildURL(c.URL, "post", p.Slug),
		Image:       c.Image,
	}
	if p.Title != "" {
		m.Title = p.Title
	}
	if p.Excerpt != "" {
		m.Description = p.Excerpt
	}
	if p.Image != "" {
		m.Image = p.Image
	}
	return m
}
