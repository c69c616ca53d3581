package inkpress

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testSiteConfig(dir string) SiteConfig {
	return SiteConfig{
		Name:        "My Blog",
		URL:         "https://example.dev",
		Description: "Thoughts on software",
		Image:       "https://example.dev/preview.png",
		ContentDir:  filepath.Join(dir, "articles"),
		OutputDir:   filepath.Join(dir, "post"),
	}
}

// extractState pulls the bootstrap payload back out of a rendered shell.
func extractState(t *testing.T, shell []byte) shellPost {
	t.Helper()
	s := string(shell)
	const marker = "window.__PRELOADED_STATE__ ="
	idx := strings.Index(s, marker)
	if idx < 0 {
		t.Fatalf("shell has no bootstrap payload:\n%s", s)
	}
	s = s[idx+len(marker):]
	end := strings.Index(s, ";")
	if end < 0 {
		t.Fatal("bootstrap payload is unterminated")
	}
	var state struct {
		Post shellPost `json:"post"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(s[:end])), &state); err != nil {
		t.Fatalf("bootstrap payload is not valid JSON: %v\npayload: %s", err, s[:end])
	}
	return state.Post
}

func TestRenderShell(t *testing.T) {
	pr, err := NewPrerenderer(testSiteConfig(t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}

	raw := "---\ntitle: Hello\ndescription: World\ndate: 2024-01-01\n---\n# Hi\n"
	shell, err := pr.RenderShell(ParsePost(raw, "hello.md"))
	if err != nil {
		t.Fatalf("RenderShell failed: %v", err)
	}

	html := string(shell)
	for _, want := range []string{
		"<title>Hello</title>",
		`<meta name="description" content="World" />`,
		`<meta property="og:url" content="https://example.dev/post/hello" />`,
		`<meta property="og:title" content="Hello" />`,
		`<meta property="og:image" content="https://example.dev/preview.png" />`,
		`<meta property="twitter:card" content="summary_large_image" />`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("shell missing %q", want)
		}
	}

	state := extractState(t, shell)
	if state.Slug != "hello" {
		t.Errorf("slug = %q", state.Slug)
	}
	if state.Title != "Hello" || state.Description != "World" {
		t.Errorf("title/description = %q/%q", state.Title, state.Description)
	}
	if state.Date != "2024-01-01T00:00:00.000Z" {
		t.Errorf("date = %q, want 2024-01-01T00:00:00.000Z", state.Date)
	}
	if !strings.Contains(state.Content, "Hi</h1>") {
		t.Errorf("content = %q, want rendered h1", state.Content)
	}
}

func TestRenderShellDefaults(t *testing.T) {
	cfg := testSiteConfig(t.TempDir())
	pr, err := NewPrerenderer(cfg)
	if err != nil {
		t.Fatal(err)
	}

	shell, err := pr.RenderShell(ParsePost("Just a body, no front matter.\n", "bare.md"))
	if err != nil {
		t.Fatal(err)
	}

	html := string(shell)
	if !strings.Contains(html, "<title>My Blog</title>") {
		t.Error("missing site default title")
	}
	if !strings.Contains(html, `content="Thoughts on software"`) {
		t.Error("missing site default description")
	}
	if !strings.Contains(html, `content="https://example.dev/preview.png"`) {
		t.Error("missing site default image")
	}

	state := extractState(t, shell)
	if state.Date != "" {
		t.Errorf("date = %q, want empty for missing date", state.Date)
	}
	if state.Title != "My Blog" {
		t.Errorf("title = %q, want site default", state.Title)
	}
}

func TestRenderShellEscapesScriptBreakout(t *testing.T) {
	pr, err := NewPrerenderer(testSiteConfig(t.TempDir()))
	if err != nil {
		t.Fatal(err)
	}

	raw := "---\ntitle: Sneaky\n---\nText with `</script><script>alert(1)</script>` inline.\n"
	shell, err := pr.RenderShell(ParsePost(raw, "sneaky.md"))
	if err != nil {
		t.Fatal(err)
	}

	// The payload serializer must not let markup terminate the script tag
	// early. The only literal </script> tags allowed are the template's own
	// (bundle, JSON-LD, bootstrap).
	if got := strings.Count(string(shell), "</script>"); got != 3 {
		t.Errorf("found %d literal </script> occurrences, want exactly the 3 from the template", got)
	}
	state := extractState(t, shell)
	if !strings.Contains(state.Content, "alert(1)") {
		t.Error("decoded content should round-trip the embedded markup")
	}
}

func TestPrerenderRun(t *testing.T) {
	dir := t.TempDir()
	cfg := testSiteConfig(dir)
	if err := os.MkdirAll(cfg.ContentDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, cfg.ContentDir, "first.md", "---\ntitle: First\ndate: 2024-01-01\n---\nbody\n")
	writeFile(t, cfg.ContentDir, "second.md", "---\ntitle: Second\ndate: 2024-06-01\n---\nbody\n")
	writeFile(t, cfg.ContentDir, "skip.txt", "not an article")

	pr, err := NewPrerenderer(cfg)
	if err != nil {
		t.Fatal(err)
	}
	written, err := pr.Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("wrote %d shells, want 2", len(written))
	}

	for _, slug := range []string{"first", "second"} {
		if _, err := os.Stat(filepath.Join(cfg.OutputDir, slug+".html")); err != nil {
			t.Errorf("missing shell for %s: %v", slug, err)
		}
	}
	if _, err := os.Stat(filepath.Join(cfg.OutputDir, "skip.html")); err == nil {
		t.Error("non-article file should not produce a shell")
	}
}

func TestPrerenderRunMissingContentDir(t *testing.T) {
	cfg := testSiteConfig(t.TempDir())
	pr, err := NewPrerenderer(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := pr.Run(); err == nil {
		t.Error("expected an error for a missing content directory")
	}
}

// The spec's divergence risk: build-time shells and the runtime loader must
// derive the same slug and the same fallback metadata for the same file.
func TestShellMatchesRuntimeRecord(t *testing.T) {
	cfg := testSiteConfig(t.TempDir())
	pr, err := NewPrerenderer(cfg)
	if err != nil {
		t.Fatal(err)
	}

	raw := "---\ndescription: Only a description\n---\nbody\n"
	post := ParsePost(raw, "partial-meta.md")
	shell, err := pr.RenderShell(post)
	if err != nil {
		t.Fatal(err)
	}

	state := extractState(t, shell)
	if state.Slug != post.Slug {
		t.Errorf("shell slug %q != runtime slug %q", state.Slug, post.Slug)
	}
	meta := cfg.MetaFor(post)
	if state.Title != meta.Title || state.Description != meta.Description {
		t.Errorf("shell meta %q/%q != runtime meta %q/%q",
			state.Title, state.Description, meta.Title, meta.Description)
	}
}
