package inkpress

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestWriteManifestFiltersAndSorts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "second")
	writeFile(t, dir, "a.md", "first")
	writeFile(t, dir, "notes.txt", "not an article")
	if err := os.Mkdir(filepath.Join(dir, "drafts"), 0o755); err != nil {
		t.Fatal(err)
	}

	files, err := WriteManifest(dir)
	if err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}
	if !reflect.DeepEqual(files, []string{"a.md", "b.md"}) {
		t.Errorf("files = %v, want [a.md b.md]", files)
	}

	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	decoded, err := decodeManifest(data)
	if err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	if !reflect.DeepEqual(decoded, []string{"a.md", "b.md"}) {
		t.Errorf("manifest contents = %v", decoded)
	}
}

func TestWriteManifestIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "alpha")
	writeFile(t, dir, "b.md", "beta")

	if _, err := WriteManifest(dir); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := WriteManifest(dir); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Error("manifest should be byte-identical across runs on an unchanged directory")
	}
}

func TestWriteManifestExcludesItself(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "alpha")

	// The manifest lives inside the content directory; a second run must not
	// pick it up.
	if _, err := WriteManifest(dir); err != nil {
		t.Fatal(err)
	}
	files, err := WriteManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(files, []string{"a.md"}) {
		t.Errorf("files = %v, want [a.md]", files)
	}
}

func TestWriteManifestMissingDirectory(t *testing.T) {
	if _, err := WriteManifest(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected an error for a missing content directory")
	}
}

func TestWriteManifestEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	files, err := WriteManifest(dir)
	if err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("files = %v, want empty", files)
	}
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		t.Fatal(err)
	}
	if got := string(bytes.TrimSpace(data)); got != "[]" {
		t.Errorf("empty manifest = %q, want []", got)
	}
}
