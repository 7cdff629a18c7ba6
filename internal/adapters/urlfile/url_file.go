// Package urlfile stores the crawler's output as a newline-delimited
// text file, the handoff format between the two binaries.
package urlfile

import (
	"fmt"
	"os"
	"strings"
)

type URLFileAdapter struct {
	path string
}

func NewURLFileAdapter(path string) *URLFileAdapter {
	return &URLFileAdapter{path: path}
}

// SaveURLs writes the URLs one per line, replacing any previous file.
func (a *URLFileAdapter) SaveURLs(urls []string) error {
	content := strings.Join(urls, "\n")
	if len(urls) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(a.path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write url file %s: %w", a.path, err)
	}
	return nil
}

// LoadURLs reads the file back, skipping blank lines.
func (a *URLFileAdapter) LoadURLs() ([]string, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read url file %s: %w", a.path, err)
	}

	var urls []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	return urls, nil
}
