// Package export writes rendered paradigm pages to disk. File names derive
// from the source URL's last path segment.
package export

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const fallbackName = "paradigm"

// Filename returns the output file name for a page URL: its last non-empty
// path segment with an .html extension.
func Filename(pageURL string) string {
	name := fallbackName
	if u, err := url.Parse(pageURL); err == nil {
		if seg := path.Base(strings.TrimRight(u.Path, "/")); seg != "" && seg != "." && seg != "/" {
			name = seg
		}
	}
	return name + ".html"
}

// WriteHTML stores content under dir using the name derived from pageURL and
// returns the written path.
func WriteHTML(dir, pageURL, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	out := filepath.Join(dir, Filename(pageURL))
	if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return out, nil
}
