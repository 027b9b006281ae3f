// ABOUTME: SourceDocument represents an ingested document in the knowledge base
// ABOUTME: Created on successful ingestion, removed only by delete or index reset
package models

import (
	"time"

	"github.com/google/uuid"
)

// SourceDocument is the record of one ingested file.
type SourceDocument struct {
	DocumentID string    `json:"document_id"`
	Filename   string    `json:"filename"`
	Format     string    `json:"format"`
	IngestedAt time.Time `json:"ingested_at"`
	SegmentIDs []string  `json:"segment_ids"`
}

// NewDocumentID generates a unique document identifier.
func NewDocumentID() string {
	return "doc_" + uuid.New().String()[:8]
}
