// ABOUTME: Embedding models for vector storage and semantic search
// ABOUTME: Defines Embedding and RetrievalResult structures
package models

import "time"

// Embedding represents a stored embedding vector for a segment.
// The vector dimension is fixed per index instance.
type Embedding struct {
	SegmentID  string    `json:"segment_id"`
	DocumentID string    `json:"document_id"`
	Vector     []float64 `json:"vector"`
	CreatedAt  time.Time `json:"created_at"`
}

// RetrievalResult is one search hit, ephemeral and produced per query.
type RetrievalResult struct {
	Segment          Segment `json:"segment"`
	SimilarityScore  float64 `json:"similarity_score"`
	SourceDocumentID string  `json:"source_document_id"`
	SourceFilename   string  `json:"source_filename"`
}
