// Package render shapes cleaned pipeline output for delivery: download
// bodies and one-shot output files.
package render

import (
	"os"
	"path/filepath"
	"strings"
)

const DefaultFilename = "generated_text.txt"

// EnsureSentenceEnd appends a period when text does not already close with
// terminal sentence punctuation. Cleaned pipeline output is left untouched
// everywhere else; only rendered deliverables get this.
func EnsureSentenceEnd(text string) string {
	if text == "" {
		return text
	}
	switch text[len(text)-1] {
	case '.', '!', '?':
		return text
	}
	return text + "."
}

// DownloadText renders cleaned output as a plain-text download body.
func DownloadText(text string) string {
	return EnsureSentenceEnd(text) + "\n"
}

// WriteTextFile writes rendered text under outputDir and returns the path.
// An empty name falls back to DefaultFilename.
func WriteTextFile(content, outputDir, name string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}
	if name == "" {
		name = DefaultFilename
	}
	path := filepath.Join(outputDir, sanitizeFilename(name))
	return path, os.WriteFile(path, []byte(content), 0644)
}

func sanitizeFilename(s string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	return replacer.Replace(s)
}
