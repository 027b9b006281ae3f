// ABOUTME: Chunker splits extracted document text into overlapping fixed-size segments
// ABOUTME: Segments cover the full input with stable position-derived identifiers
package core

import (
	"fmt"

	"medassist/internal/models"
)

// Chunker produces overlapping segments of a fixed size. Offsets and sizes
// are in runes so multi-byte text never splits mid-character.
type Chunker struct {
	chunkSize int
	overlap   int
}

// NewChunker creates a chunker after validating 0 < overlap < chunkSize
func NewChunker(chunkSize, overlap int) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	if overlap <= 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("overlap must be in (0, %d), got %d", chunkSize, overlap)
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}, nil
}

// Chunk splits text into segments for the given document. Consecutive
// segments share exactly the configured overlap, the segments cover the
// whole input with no gaps, and empty input yields an empty sequence.
func (c *Chunker) Chunk(documentID, text string) []models.Segment {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := c.chunkSize - c.overlap
	var segments []models.Segment
	for start := 0; start < len(runes); start += step {
		end := start + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}

		position := len(segments)
		segments = append(segments, models.Segment{
			SegmentID:        models.SegmentID(documentID, position),
			SourceDocumentID: documentID,
			Text:             string(runes[start:end]),
			PositionIndex:    position,
			CharRange:        models.CharRange{Start: start, End: end},
		})

		if end == len(runes) {
			break
		}
	}
	return segments
}

// Reassemble reconstructs the original text from segments in position
// order by dropping each segment's leading overlap. Used by extraction to
// restore document order.
func (c *Chunker) Reassemble(segments []models.Segment) string {
	var runes []rune
	for i, seg := range segments {
		segRunes := []rune(seg.Text)
		if i == 0 {
			runes = append(runes, segRunes...)
			continue
		}
		if len(segRunes) > c.overlap {
			runes = append(runes, segRunes[c.overlap:]...)
		}
	}
	return string(runes)
}
