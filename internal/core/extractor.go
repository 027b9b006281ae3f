// ABOUTME: SectionExtractor pulls named sections and structured fields out of the index
// ABOUTME: Pure retrieval, no model calls, so extraction never burns the request budget
package core

import (
	"fmt"
	"sort"
	"strings"

	"medassist/internal/index"
	"medassist/internal/llm"
)

// SectionResult is the content recovered for one named section.
type SectionResult struct {
	Section string   `json:"section"`
	Content string   `json:"content"`
	Found   bool     `json:"found"`
	Sources []string `json:"sources,omitempty"`
}

// StructuredResult maps requested schema fields to extracted content for
// one document.
type StructuredResult struct {
	DocumentID string                   `json:"document_id"`
	Fields     map[string]SectionResult `json:"fields"`
}

// SectionExtractor locates sections by semantic similarity against the
// index. It issues embedding calls only, never generation calls.
type SectionExtractor struct {
	embedder llm.Embedder
	idx      *index.VectorIndex
	topK     int
}

// NewSectionExtractor creates a section extractor
func NewSectionExtractor(embedder llm.Embedder, idx *index.VectorIndex, topK int) *SectionExtractor {
	return &SectionExtractor{embedder: embedder, idx: idx, topK: topK}
}

// ExtractSection finds content for a named section across all documents.
// A section with no matches reports Found=false rather than an error.
func (e *SectionExtractor) ExtractSection(section string) (*SectionResult, error) {
	return e.extract(section, nil)
}

// ExtractStructured extracts each schema field from a single document,
// assembling matched segments in document position order.
func (e *SectionExtractor) ExtractStructured(documentID string, schema []string) (*StructuredResult, error) {
	if len(schema) == 0 {
		return nil, fmt.Errorf("schema must name at least one field")
	}

	doc, err := e.idx.Document(documentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("unknown document: %s", documentID)
	}

	filter := map[string]bool{documentID: true}
	result := &StructuredResult{
		DocumentID: documentID,
		Fields:     make(map[string]SectionResult),
	}
	for _, field := range schema {
		section, err := e.extract(field, filter)
		if err != nil {
			return nil, fmt.Errorf("extracting field %q: %w", field, err)
		}
		result.Fields[field] = *section
	}
	return result, nil
}

func (e *SectionExtractor) extract(section string, filter map[string]bool) (*SectionResult, error) {
	if strings.TrimSpace(section) == "" {
		return nil, fmt.Errorf("section name cannot be empty")
	}

	queryVector, err := e.embedder.Embed(fmt.Sprintf("Extract %s section", section))
	if err != nil {
		return nil, fmt.Errorf("embedding section query: %w", err)
	}

	results, err := e.idx.Search(queryVector, e.topK, filter)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &SectionResult{Section: section, Found: false}, nil
	}

	// Restore document order so the assembled content reads naturally
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].SourceDocumentID != results[j].SourceDocumentID {
			return results[i].SourceDocumentID < results[j].SourceDocumentID
		}
		return results[i].Segment.PositionIndex < results[j].Segment.PositionIndex
	})

	var parts []string
	var sources []string
	seen := make(map[string]bool)
	for _, res := range results {
		parts = append(parts, res.Segment.Text)
		if !seen[res.SourceFilename] {
			seen[res.SourceFilename] = true
			sources = append(sources, res.SourceFilename)
		}
	}

	return &SectionResult{
		Section: section,
		Content: strings.Join(parts, "\n\n"),
		Found:   true,
		Sources: sources,
	}, nil
}
