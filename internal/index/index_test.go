// ABOUTME: Tests for the vector index over an in-memory store
// ABOUTME: Covers ranking, tie-breaking, atomicity, deletion, and dimension checks

package index

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"medassist/internal/models"
	"medassist/internal/storage/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	db, err := sqlite.OpenInMemory()
	if err != nil {
		t.Fatalf("opening in-memory db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return sqlite.NewStore(db)
}

func testDoc(docID string, vectors ...[]float64) (*models.SourceDocument, []models.Segment, []models.Embedding) {
	doc := &models.SourceDocument{
		DocumentID: docID,
		Filename:   docID + ".txt",
		Format:     "text",
	}
	var segments []models.Segment
	var embeddings []models.Embedding
	for i, vec := range vectors {
		seg := models.Segment{
			SegmentID:        models.SegmentID(docID, i),
			SourceDocumentID: docID,
			Text:             fmt.Sprintf("segment %d of %s", i, docID),
			PositionIndex:    i,
		}
		doc.SegmentIDs = append(doc.SegmentIDs, seg.SegmentID)
		segments = append(segments, seg)
		embeddings = append(embeddings, models.Embedding{
			SegmentID:  seg.SegmentID,
			DocumentID: docID,
			Vector:     vec,
		})
	}
	return doc, segments, embeddings
}

func TestNewVectorIndex_InvalidDimension(t *testing.T) {
	store := newTestStore(t)
	if _, err := NewVectorIndex(store, 0); err == nil {
		t.Error("expected error for zero dimension")
	}
}

func TestNewVectorIndex_StoredDimensionMismatch(t *testing.T) {
	store := newTestStore(t)

	idx, err := NewVectorIndex(store, 3)
	if err != nil {
		t.Fatalf("NewVectorIndex: %v", err)
	}
	if err := idx.Insert(testDoc("doc_1", []float64{1, 0, 0})); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	_, err = NewVectorIndex(store, 4)
	var dimErr *DimensionMismatchError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected DimensionMismatchError, got %v", err)
	}
	if dimErr.Want != 3 || dimErr.Got != 4 {
		t.Errorf("mismatch = %+v", dimErr)
	}
}

func TestInsert_RejectsWrongDimension(t *testing.T) {
	idx, _ := NewVectorIndex(newTestStore(t), 3)

	err := idx.Insert(testDoc("doc_1", []float64{1, 0}))
	var dimErr *DimensionMismatchError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected DimensionMismatchError, got %v", err)
	}

	// Nothing was persisted
	docs, segs, _ := idx.Stats()
	if docs != 0 || segs != 0 {
		t.Errorf("rejected insert left %d docs / %d segs", docs, segs)
	}
}

func TestSearch_RanksByDescendingSimilarity(t *testing.T) {
	idx, _ := NewVectorIndex(newTestStore(t), 3)

	err := idx.Insert(testDoc("doc_1",
		[]float64{0, 1, 0},
		[]float64{1, 0, 0},
		[]float64{0.9, 0.1, 0}))
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	results, err := idx.Search([]float64{1, 0, 0}, 10, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	wantOrder := []string{"doc_1:0001", "doc_1:0002", "doc_1:0000"}
	for i, want := range wantOrder {
		if results[i].Segment.SegmentID != want {
			t.Errorf("result %d = %q, want %q", i, results[i].Segment.SegmentID, want)
		}
	}
	for i := 1; i < len(results); i++ {
		if results[i].SimilarityScore > results[i-1].SimilarityScore {
			t.Error("scores not descending")
		}
	}
}

func TestSearch_TieBreaksByAscendingSegmentID(t *testing.T) {
	idx, _ := NewVectorIndex(newTestStore(t), 3)

	// Two documents, identical vectors, inserted out of ID order
	if err := idx.Insert(testDoc("doc_b", []float64{1, 0, 0})); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := idx.Insert(testDoc("doc_a", []float64{1, 0, 0})); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	results, err := idx.Search([]float64{1, 0, 0}, 10, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Segment.SegmentID != "doc_a:0000" || results[1].Segment.SegmentID != "doc_b:0000" {
		t.Errorf("tie-break order wrong: %q then %q",
			results[0].Segment.SegmentID, results[1].Segment.SegmentID)
	}
}

func TestSearch_TruncatesToK(t *testing.T) {
	idx, _ := NewVectorIndex(newTestStore(t), 3)
	if err := idx.Insert(testDoc("doc_1",
		[]float64{1, 0, 0}, []float64{0.9, 0.1, 0}, []float64{0.8, 0.2, 0})); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	results, err := idx.Search([]float64{1, 0, 0}, 2, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("expected 2 results, got %d", len(results))
	}
}

func TestSearch_DocumentFilter(t *testing.T) {
	idx, _ := NewVectorIndex(newTestStore(t), 3)
	if err := idx.Insert(testDoc("doc_1", []float64{1, 0, 0})); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := idx.Insert(testDoc("doc_2", []float64{1, 0, 0})); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	results, err := idx.Search([]float64{1, 0, 0}, 10, map[string]bool{"doc_2": true})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].SourceDocumentID != "doc_2" {
		t.Errorf("filter failed: %+v", results)
	}
}

func TestSearch_WrongQueryDimension(t *testing.T) {
	idx, _ := NewVectorIndex(newTestStore(t), 3)
	_, err := idx.Search([]float64{1, 0}, 5, nil)
	var dimErr *DimensionMismatchError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected DimensionMismatchError, got %v", err)
	}
}

func TestDelete_RemovesDocumentCompletely(t *testing.T) {
	idx, _ := NewVectorIndex(newTestStore(t), 3)
	if err := idx.Insert(testDoc("doc_1", []float64{1, 0, 0}, []float64{0, 1, 0})); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := idx.Delete("doc_1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	docs, segs, _ := idx.Stats()
	if docs != 0 || segs != 0 {
		t.Errorf("delete left %d docs / %d segs", docs, segs)
	}
	results, _ := idx.Search([]float64{1, 0, 0}, 10, nil)
	if len(results) != 0 {
		t.Errorf("deleted segments still searchable: %d results", len(results))
	}
}

func TestDelete_UnknownDocumentIsNoOp(t *testing.T) {
	idx, _ := NewVectorIndex(newTestStore(t), 3)
	if err := idx.Delete("doc_missing"); err != nil {
		t.Errorf("deleting unknown document should succeed, got %v", err)
	}
}

type rebuildEmbedder struct {
	dim int
}

func (r *rebuildEmbedder) EmbedBatch(texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i := range texts {
		v := make([]float64, r.dim)
		v[0] = 1
		out[i] = v
	}
	return out, nil
}

func TestRebuild_ReplacesAllVectors(t *testing.T) {
	idx, _ := NewVectorIndex(newTestStore(t), 3)
	if err := idx.Insert(testDoc("doc_1", []float64{0, 1, 0})); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := idx.Rebuild(&rebuildEmbedder{dim: 3}); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	results, err := idx.Search([]float64{1, 0, 0}, 1, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].SimilarityScore < 0.99 {
		t.Errorf("rebuild did not replace vectors: %+v", results)
	}
}

func TestRebuild_DimensionMismatch(t *testing.T) {
	idx, _ := NewVectorIndex(newTestStore(t), 3)
	if err := idx.Insert(testDoc("doc_1", []float64{0, 1, 0})); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	err := idx.Rebuild(&rebuildEmbedder{dim: 4})
	var dimErr *DimensionMismatchError
	if !errors.As(err, &dimErr) {
		t.Fatalf("expected DimensionMismatchError, got %v", err)
	}
}

func TestConcurrentSearchAndInsert(t *testing.T) {
	idx, _ := NewVectorIndex(newTestStore(t), 3)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			docID := fmt.Sprintf("doc_%03d", n)
			if err := idx.Insert(testDoc(docID, []float64{1, 0, 0}, []float64{0, 1, 0})); err != nil {
				t.Errorf("Insert: %v", err)
			}
		}(i)
		go func() {
			defer wg.Done()
			results, err := idx.Search([]float64{1, 0, 0}, 100, nil)
			if err != nil {
				t.Errorf("Search: %v", err)
				return
			}
			// Inserts are atomic: every visible document contributes both
			// of its segments or neither
			perDoc := make(map[string]int)
			for _, res := range results {
				perDoc[res.SourceDocumentID]++
			}
			for doc, n := range perDoc {
				if n != 2 {
					t.Errorf("document %s visible with %d of 2 segments", doc, n)
				}
			}
		}()
	}
	wg.Wait()

	docs, segs, err := idx.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if docs != 10 || segs != 20 {
		t.Errorf("final stats = %d docs / %d segs, want 10/20", docs, segs)
	}
}
