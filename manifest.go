package inkpress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestName is the manifest artifact written into the content directory.
const ManifestName = "index.json"

// WriteManifest regenerates the article manifest for contentDir: a JSON
// array of eligible filenames, sorted, fully overwriting any prior manifest.
// It returns the filenames it recorded.
func WriteManifest(contentDir string) ([]string, error) {
	files, err := ListArticles(contentDir)
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(files, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	data = append(data, '\n')

	out := filepath.Join(contentDir, ManifestName)
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return nil, fmt.Errorf("write manifest %s: %w", out, err)
	}
	return files, nil
}

// decodeManifest parses the manifest artifact back into a filename list.
func decodeManifest(data []byte) ([]string, error) {
	var files []string
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return files, nil
}
