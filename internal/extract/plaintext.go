// ABOUTME: Plain text and markdown extraction with normalized line endings
// ABOUTME: Image extraction stub surfaces missing OCR as a warning, not a failure
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// PlainTextExtractor reads text-like files directly.
type PlainTextExtractor struct {
	maxBytes int64
}

// Extract reads the file, validates it, and normalizes line endings
func (e *PlainTextExtractor) Extract(path string) (*Extraction, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Reason: fmt.Sprintf("stat failed: %v", err)}
	}
	if e.maxBytes > 0 && info.Size() > e.maxBytes {
		return nil, &ExtractionError{Path: path, Reason: fmt.Sprintf("file is %d bytes, limit is %d", info.Size(), e.maxBytes)}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Reason: fmt.Sprintf("read failed: %v", err)}
	}
	if !utf8.Valid(data) {
		return nil, &ExtractionError{Path: path, Reason: "file is not valid UTF-8 text"}
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")

	return &Extraction{
		Text:   text,
		Format: format,
		Boundaries: []Boundary{
			{Label: "page 1", Offset: 0},
		},
	}, nil
}

// ImageExtractor stands in for the OCR collaborator. Without OCR wired in,
// images yield empty text with a warning flag so the rest of a batch is
// never aborted by a single unreadable scan.
type ImageExtractor struct{}

// Extract returns an empty extraction carrying a warning
func (e *ImageExtractor) Extract(path string) (*Extraction, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &ExtractionError{Path: path, Reason: fmt.Sprintf("stat failed: %v", err)}
	}
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return &Extraction{
		Text:    "",
		Format:  format,
		Warning: "no text recognized in image (OCR unavailable)",
	}, nil
}
