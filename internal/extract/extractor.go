// ABOUTME: Text extraction collaborator boundary for document ingestion
// ABOUTME: Maps file formats to extractors and reports per-file failures
package extract

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ExtractionError reports an unreadable or unsupported file. The ingestion
// batch skips the file and continues; the error is reported per-file.
type ExtractionError struct {
	Path   string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("cannot extract %s: %s", e.Path, e.Reason)
}

// Boundary marks where a page or sheet starts in the extracted text.
type Boundary struct {
	Label  string `json:"label"`
	Offset int    `json:"offset"`
}

// Extraction is the plain-text result of processing one file.
// A non-empty Warning with empty Text models soft failures such as an
// image whose OCR produced nothing; it is not a hard document failure.
type Extraction struct {
	Text       string     `json:"text"`
	Format     string     `json:"format"`
	Boundaries []Boundary `json:"boundaries,omitempty"`
	Warning    string     `json:"warning,omitempty"`
}

// Extractor converts one file into plain text tagged with origin locations.
type Extractor interface {
	Extract(path string) (*Extraction, error)
}

// Registry routes files to extractors by extension.
type Registry struct {
	byExtension map[string]Extractor
	maxBytes    int64
}

// NewRegistry creates a registry with the built-in extractors registered.
// maxBytes bounds the size of any single input file.
func NewRegistry(maxBytes int64) *Registry {
	r := &Registry{
		byExtension: make(map[string]Extractor),
		maxBytes:    maxBytes,
	}
	plain := &PlainTextExtractor{maxBytes: maxBytes}
	for _, ext := range []string{".txt", ".text", ".md", ".markdown", ".log", ".csv"} {
		r.Register(ext, plain)
	}
	image := &ImageExtractor{}
	for _, ext := range []string{".png", ".jpg", ".jpeg"} {
		r.Register(ext, image)
	}
	return r
}

// Register associates a file extension (with leading dot) to an extractor
func (r *Registry) Register(ext string, e Extractor) {
	r.byExtension[strings.ToLower(ext)] = e
}

// Extract routes the file to its extractor by extension
func (r *Registry) Extract(path string) (*Extraction, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.byExtension[ext]
	if !ok {
		return nil, &ExtractionError{Path: path, Reason: fmt.Sprintf("unsupported format %q", ext)}
	}
	return e.Extract(path)
}

// Supported reports whether the registry can handle the file's extension
func (r *Registry) Supported(path string) bool {
	_, ok := r.byExtension[strings.ToLower(filepath.Ext(path))]
	return ok
}
