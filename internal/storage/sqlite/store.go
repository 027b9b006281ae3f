// ABOUTME: Store is the persistence collaborator for the vector index
// ABOUTME: Provides atomic multi-table writes and point/range reads over SQLite
package sqlite

import "fmt"

// Store exposes document, segment, and embedding persistence over one DB.
// All multi-table writes run in a single transaction so the index can rely
// on all-or-nothing visibility.
type Store struct {
	db *DB
}

// NewStore creates a Store backed by the given database
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Counts returns the number of documents and segments currently stored
func (s *Store) Counts() (documents int, segments int, err error) {
	if err = s.db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&documents); err != nil {
		return 0, 0, fmt.Errorf("counting documents: %w", err)
	}
	if err = s.db.QueryRow(`SELECT COUNT(*) FROM segments`).Scan(&segments); err != nil {
		return 0, 0, fmt.Errorf("counting segments: %w", err)
	}
	return documents, segments, nil
}

// Reset removes all documents, segments, and embeddings
func (s *Store) Reset() error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning reset transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Cascades clear segments and embeddings
	if _, err := tx.Exec(`DELETE FROM documents`); err != nil {
		return fmt.Errorf("clearing documents: %w", err)
	}
	return tx.Commit()
}
