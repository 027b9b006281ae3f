// ABOUTME: Document persistence operations for SQLite
// ABOUTME: Implements atomic document+segments+embeddings insertion and cascade deletes
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"medassist/internal/models"
)

// InsertDocument writes a document with all its segments and embeddings in
// one transaction. Either everything becomes visible or nothing does.
func (s *Store) InsertDocument(doc *models.SourceDocument, segments []models.Segment, embeddings []models.Embedding) error {
	if len(segments) != len(embeddings) {
		return fmt.Errorf("segment/embedding count mismatch: %d vs %d", len(segments), len(embeddings))
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning insert transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
		INSERT INTO documents (id, filename, format, ingested_at)
		VALUES (?, ?, ?, ?)
	`, doc.DocumentID, doc.Filename, doc.Format, doc.IngestedAt); err != nil {
		return fmt.Errorf("inserting document %s: %w", doc.DocumentID, err)
	}

	segStmt, err := tx.Prepare(`
		INSERT INTO segments (id, document_id, text, position_index, char_start, char_end)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing segment insert: %w", err)
	}
	defer func() { _ = segStmt.Close() }()

	embStmt, err := tx.Prepare(`
		INSERT INTO embeddings (segment_id, document_id, vector, created_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing embedding insert: %w", err)
	}
	defer func() { _ = embStmt.Close() }()

	for i, seg := range segments {
		if _, err := segStmt.Exec(seg.SegmentID, doc.DocumentID, seg.Text,
			seg.PositionIndex, seg.CharRange.Start, seg.CharRange.End); err != nil {
			return fmt.Errorf("inserting segment %s: %w", seg.SegmentID, err)
		}
		if _, err := embStmt.Exec(seg.SegmentID, doc.DocumentID,
			vectorToBlob(embeddings[i].Vector), time.Now()); err != nil {
			return fmt.Errorf("inserting embedding for %s: %w", seg.SegmentID, err)
		}
	}

	return tx.Commit()
}

// DeleteDocument removes a document and, via cascade, its segments and
// embeddings. Deleting an unknown ID is a no-op.
func (s *Store) DeleteDocument(documentID string) error {
	_, err := s.db.Exec(`DELETE FROM documents WHERE id = ?`, documentID)
	if err != nil {
		return fmt.Errorf("deleting document %s: %w", documentID, err)
	}
	return nil
}

// GetDocument retrieves a document with its segment IDs, or nil if absent
func (s *Store) GetDocument(documentID string) (*models.SourceDocument, error) {
	var doc models.SourceDocument
	err := s.db.QueryRow(`
		SELECT id, filename, format, ingested_at
		FROM documents
		WHERE id = ?
	`, documentID).Scan(&doc.DocumentID, &doc.Filename, &doc.Format, &doc.IngestedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading document %s: %w", documentID, err)
	}

	rows, err := s.db.Query(`
		SELECT id FROM segments WHERE document_id = ? ORDER BY position_index ASC
	`, documentID)
	if err != nil {
		return nil, fmt.Errorf("loading segment ids for %s: %w", documentID, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		doc.SegmentIDs = append(doc.SegmentIDs, id)
	}
	return &doc, rows.Err()
}

// ListDocuments returns all documents ordered by ingestion time
func (s *Store) ListDocuments() ([]models.SourceDocument, error) {
	rows, err := s.db.Query(`
		SELECT id, filename, format, ingested_at
		FROM documents
		ORDER BY ingested_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []models.SourceDocument
	for rows.Next() {
		var doc models.SourceDocument
		if err := rows.Scan(&doc.DocumentID, &doc.Filename, &doc.Format, &doc.IngestedAt); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
