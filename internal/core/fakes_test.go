// ABOUTME: Shared test doubles for the pipeline packages
// ABOUTME: Deterministic embedder and recording generator, no network
package core

import (
	"context"
	"hash/fnv"
	"math"
	"testing"

	"medassist/internal/index"
	"medassist/internal/models"
	"medassist/internal/storage/sqlite"
)

// fakeEmbedder returns registered vectors for known texts and a
// deterministic hash-derived unit vector otherwise.
type fakeEmbedder struct {
	dim     int
	vectors map[string][]float64
	calls   int
	err     error
}

func newFakeEmbedder(dim int) *fakeEmbedder {
	return &fakeEmbedder{dim: dim, vectors: make(map[string][]float64)}
}

func (f *fakeEmbedder) register(text string, vector []float64) {
	f.vectors[text] = vector
}

func (f *fakeEmbedder) Embed(text string) ([]float64, error) {
	vectors, err := f.EmbedBatch([]string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (f *fakeEmbedder) EmbedBatch(texts []string) ([][]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(texts))
	for i, text := range texts {
		if v, ok := f.vectors[text]; ok {
			out[i] = v
			continue
		}
		out[i] = hashVector(text, f.dim)
	}
	return out, nil
}

// hashVector maps text to a stable unit vector
func hashVector(text string, dim int) []float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	seed := h.Sum64()

	v := make([]float64, dim)
	var norm float64
	for i := range v {
		seed = seed*6364136223846793005 + 1442695040888963407
		v[i] = float64(int64(seed>>32)) / float64(math.MaxInt32)
		norm += v[i] * v[i]
	}
	norm = math.Sqrt(norm)
	for i := range v {
		v[i] /= norm
	}
	return v
}

// fakeGenerator records every prompt and returns a canned reply.
type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// newTestIndex builds a vector index over an in-memory database
func newTestIndex(t *testing.T, dim int) *index.VectorIndex {
	t.Helper()
	db, err := sqlite.OpenInMemory()
	if err != nil {
		t.Fatalf("opening in-memory db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	idx, err := index.NewVectorIndex(sqlite.NewStore(db), dim)
	if err != nil {
		t.Fatalf("creating index: %v", err)
	}
	return idx
}

// insertDoc inserts a document whose segments carry the given texts, with
// vectors taken from the embedder.
func insertDoc(t *testing.T, idx *index.VectorIndex, emb *fakeEmbedder, docID, filename string, texts []string) {
	t.Helper()

	doc := &models.SourceDocument{
		DocumentID: docID,
		Filename:   filename,
		Format:     "text",
	}
	var segments []models.Segment
	var embeddings []models.Embedding
	for i, text := range texts {
		seg := models.Segment{
			SegmentID:        models.SegmentID(docID, i),
			SourceDocumentID: docID,
			Text:             text,
			PositionIndex:    i,
			CharRange:        models.CharRange{Start: i * 100, End: i*100 + len(text)},
		}
		vec, err := emb.Embed(text)
		if err != nil {
			t.Fatalf("embedding segment: %v", err)
		}
		doc.SegmentIDs = append(doc.SegmentIDs, seg.SegmentID)
		segments = append(segments, seg)
		embeddings = append(embeddings, models.Embedding{
			SegmentID:  seg.SegmentID,
			DocumentID: docID,
			Vector:     vec,
		})
	}

	if err := idx.Insert(doc, segments, embeddings); err != nil {
		t.Fatalf("inserting document: %v", err)
	}
}
