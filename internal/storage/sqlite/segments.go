// ABOUTME: Segment persistence operations for SQLite
// ABOUTME: Point and range reads used by search results and index rebuild
package sqlite

import (
	"database/sql"
	"fmt"

	"medassist/internal/models"
)

// GetSegment retrieves a single segment by ID, or nil if absent
func (s *Store) GetSegment(segmentID string) (*models.Segment, error) {
	var seg models.Segment
	err := s.db.QueryRow(`
		SELECT id, document_id, text, position_index, char_start, char_end
		FROM segments
		WHERE id = ?
	`, segmentID).Scan(&seg.SegmentID, &seg.SourceDocumentID, &seg.Text,
		&seg.PositionIndex, &seg.CharRange.Start, &seg.CharRange.End)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading segment %s: %w", segmentID, err)
	}
	return &seg, nil
}

// SegmentsByDocument returns a document's segments in position order,
// used to reconstruct document order during extraction.
func (s *Store) SegmentsByDocument(documentID string) ([]models.Segment, error) {
	return s.querySegments(`
		SELECT id, document_id, text, position_index, char_start, char_end
		FROM segments
		WHERE document_id = ?
		ORDER BY position_index ASC
	`, documentID)
}

// AllSegments returns every stored segment, used by index rebuild
func (s *Store) AllSegments() ([]models.Segment, error) {
	return s.querySegments(`
		SELECT id, document_id, text, position_index, char_start, char_end
		FROM segments
		ORDER BY document_id ASC, position_index ASC
	`)
}

func (s *Store) querySegments(query string, args ...interface{}) ([]models.Segment, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying segments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var segments []models.Segment
	for rows.Next() {
		var seg models.Segment
		if err := rows.Scan(&seg.SegmentID, &seg.SourceDocumentID, &seg.Text,
			&seg.PositionIndex, &seg.CharRange.Start, &seg.CharRange.End); err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}
	return segments, rows.Err()
}
