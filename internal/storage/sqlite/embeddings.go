// ABOUTME: Embedding persistence operations for SQLite
// ABOUTME: Stores vectors as little-endian BLOBs and serves search candidates
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"time"

	"medassist/internal/models"
)

// Candidate pairs a stored segment with its vector for similarity scoring.
type Candidate struct {
	Segment        models.Segment
	SourceFilename string
	Vector         []float64
}

// SearchCandidates returns every stored embedding joined with its segment
// and source document, ordered by segment ID for stable iteration.
func (s *Store) SearchCandidates() ([]Candidate, error) {
	rows, err := s.db.Query(`
		SELECT sg.id, sg.document_id, sg.text, sg.position_index, sg.char_start, sg.char_end,
		       d.filename, e.vector
		FROM embeddings e
		JOIN segments sg ON sg.id = e.segment_id
		JOIN documents d ON d.id = e.document_id
		ORDER BY sg.id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("loading search candidates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var candidates []Candidate
	for rows.Next() {
		var (
			c    Candidate
			blob []byte
		)
		if err := rows.Scan(&c.Segment.SegmentID, &c.Segment.SourceDocumentID,
			&c.Segment.Text, &c.Segment.PositionIndex,
			&c.Segment.CharRange.Start, &c.Segment.CharRange.End,
			&c.SourceFilename, &blob); err != nil {
			return nil, err
		}
		c.Vector = blobToVector(blob)
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

// EmbeddingDimension returns the dimension of stored vectors, or 0 when the
// index holds no embeddings yet.
func (s *Store) EmbeddingDimension() (int, error) {
	var blob []byte
	err := s.db.QueryRow(`SELECT vector FROM embeddings LIMIT 1`).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("probing embedding dimension: %w", err)
	}
	return len(blob) / 8, nil
}

// ReplaceAllEmbeddings swaps every stored vector in one transaction,
// used after an embedding-model change during rebuild.
func (s *Store) ReplaceAllEmbeddings(embeddings []models.Embedding) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning rebuild transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM embeddings`); err != nil {
		return fmt.Errorf("clearing embeddings: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO embeddings (segment_id, document_id, vector, created_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing embedding insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, emb := range embeddings {
		if _, err := stmt.Exec(emb.SegmentID, emb.DocumentID,
			vectorToBlob(emb.Vector), time.Now()); err != nil {
			return fmt.Errorf("inserting embedding for %s: %w", emb.SegmentID, err)
		}
	}
	return tx.Commit()
}

// vectorToBlob converts a float64 slice to a binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to a float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}
