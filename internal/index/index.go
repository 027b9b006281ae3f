// ABOUTME: VectorIndex is the single writer-serialization point for the knowledge base
// ABOUTME: Exact cosine search over SQLite-persisted embeddings with atomic inserts
package index

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"medassist/internal/models"
	"medassist/internal/storage/sqlite"
)

// DimensionMismatchError reports an index/model embedding dimension conflict.
// It is fatal to the operation and requires an explicit rebuild.
type DimensionMismatchError struct {
	Want int
	Got  int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: index has %d, got %d", e.Want, e.Got)
}

// Embedder is the subset of the LLM client the rebuild path needs.
type Embedder interface {
	EmbedBatch(texts []string) ([][]float64, error)
}

// VectorIndex owns all reads and writes against the segment store. Searches
// never observe a partially inserted document: inserts commit a single
// transaction under the write lock, searches hold the read lock.
type VectorIndex struct {
	mu        sync.RWMutex
	store     *sqlite.Store
	dimension int
}

// NewVectorIndex creates an index over the given store with a fixed
// embedding dimension. The dimension is constant for the index lifetime.
func NewVectorIndex(store *sqlite.Store, dimension int) (*VectorIndex, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("invalid embedding dimension: %d", dimension)
	}
	stored, err := store.EmbeddingDimension()
	if err != nil {
		return nil, fmt.Errorf("checking stored dimension: %w", err)
	}
	if stored != 0 && stored != dimension {
		return nil, &DimensionMismatchError{Want: stored, Got: dimension}
	}
	return &VectorIndex{store: store, dimension: dimension}, nil
}

// Dimension returns the fixed embedding dimension of this index
func (idx *VectorIndex) Dimension() int {
	return idx.dimension
}

// Insert stores a document with its segments and embeddings atomically.
// A concurrent Search sees either all of the document's segments or none.
func (idx *VectorIndex) Insert(doc *models.SourceDocument, segments []models.Segment, embeddings []models.Embedding) error {
	for _, emb := range embeddings {
		if len(emb.Vector) != idx.dimension {
			return &DimensionMismatchError{Want: idx.dimension, Got: len(emb.Vector)}
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.store.InsertDocument(doc, segments, embeddings)
}

// Search returns up to k results ranked by descending cosine similarity.
// Ties are broken by ascending segment ID so results are deterministic for
// a fixed index state. An optional filter restricts results to document IDs.
func (idx *VectorIndex) Search(queryVector []float64, k int, filter map[string]bool) ([]models.RetrievalResult, error) {
	if len(queryVector) != idx.dimension {
		return nil, &DimensionMismatchError{Want: idx.dimension, Got: len(queryVector)}
	}
	if k <= 0 {
		return nil, nil
	}

	idx.mu.RLock()
	candidates, err := idx.store.SearchCandidates()
	idx.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	var results []models.RetrievalResult
	for _, c := range candidates {
		if filter != nil && !filter[c.Segment.SourceDocumentID] {
			continue
		}
		results = append(results, models.RetrievalResult{
			Segment:          c.Segment,
			SimilarityScore:  cosineSimilarity(queryVector, c.Vector),
			SourceDocumentID: c.Segment.SourceDocumentID,
			SourceFilename:   c.SourceFilename,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].SimilarityScore != results[j].SimilarityScore {
			return results[i].SimilarityScore > results[j].SimilarityScore
		}
		return results[i].Segment.SegmentID < results[j].Segment.SegmentID
	})

	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// Delete removes a document and all its segments and embeddings.
// Deleting a non-existent document is a no-op.
func (idx *VectorIndex) Delete(documentID string) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.store.DeleteDocument(documentID)
}

// Rebuild re-embeds every persisted segment with the given embedder and
// swaps all vectors in one transaction. It fails fast when the new model's
// dimension differs from the index dimension.
func (idx *VectorIndex) Rebuild(embedder Embedder) error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	segments, err := idx.store.AllSegments()
	if err != nil {
		return fmt.Errorf("loading segments for rebuild: %w", err)
	}
	if len(segments) == 0 {
		return nil
	}

	texts := make([]string, len(segments))
	for i, seg := range segments {
		texts[i] = seg.Text
	}

	vectors, err := embedder.EmbedBatch(texts)
	if err != nil {
		return fmt.Errorf("re-embedding %d segments: %w", len(segments), err)
	}
	if len(vectors) != len(segments) {
		return fmt.Errorf("embedder returned %d vectors for %d segments", len(vectors), len(segments))
	}

	embeddings := make([]models.Embedding, len(segments))
	for i, seg := range segments {
		if len(vectors[i]) != idx.dimension {
			return &DimensionMismatchError{Want: idx.dimension, Got: len(vectors[i])}
		}
		embeddings[i] = models.Embedding{
			SegmentID:  seg.SegmentID,
			DocumentID: seg.SourceDocumentID,
			Vector:     vectors[i],
		}
	}

	return idx.store.ReplaceAllEmbeddings(embeddings)
}

// Documents lists all ingested documents
func (idx *VectorIndex) Documents() ([]models.SourceDocument, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.store.ListDocuments()
}

// Document returns one document with its segment IDs, or nil if absent
func (idx *VectorIndex) Document(documentID string) (*models.SourceDocument, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.store.GetDocument(documentID)
}

// SegmentsByDocument returns a document's segments in position order
func (idx *VectorIndex) SegmentsByDocument(documentID string) ([]models.Segment, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.store.SegmentsByDocument(documentID)
}

// Stats returns the document and segment counts
func (idx *VectorIndex) Stats() (documents int, segments int, err error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.store.Counts()
}

// Reset clears the entire index
func (idx *VectorIndex) Reset() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	return idx.store.Reset()
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
