package inkpress

import "time"

// Post is the core content type: one article loaded from the content
// directory or fetched by the runtime loader.
type Post struct {
	ID       string    // filename minus extension
	Slug     string    // always equal to ID
	Title    string
	Excerpt  string    // "description" in front matter
	Content  string    // raw markdown body, front matter stripped
	Date     time.Time // zero when the front-matter date is missing or unparseable
	ReadTime string
	Image    string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the shell template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	Image       string // og:image / twitter:image
}
