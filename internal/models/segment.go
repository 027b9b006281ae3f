// ABOUTME: Segment represents a bounded span of document text
// ABOUTME: The unit of embedding and retrieval, immutable once created
package models

import "fmt"

// CharRange marks the [Start, End) rune offsets of a segment in its document.
type CharRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Segment is a chunk of document text produced by the chunker.
// Once inserted it is owned by the vector index.
type Segment struct {
	SegmentID        string    `json:"segment_id"`
	SourceDocumentID string    `json:"source_document_id"`
	Text             string    `json:"text"`
	PositionIndex    int       `json:"position_index"`
	CharRange        CharRange `json:"char_range"`
}

// SegmentID builds a deterministic segment identifier from a document ID
// and the segment's position. Zero-padding keeps lexicographic order equal
// to position order, which the index relies on for tie-breaking.
func SegmentID(documentID string, position int) string {
	return fmt.Sprintf("%s:%04d", documentID, position)
}
