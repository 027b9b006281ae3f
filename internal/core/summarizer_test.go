// ABOUTME: Tests for collection summarization
// ABOUTME: Verifies empty-index handling, prompt content, and budget shrinking

package core

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestSummarize_EmptyIndex(t *testing.T) {
	emb := newFakeEmbedder(3)
	idx := newTestIndex(t, 3)
	gen := &fakeGenerator{reply: "should never be used"}

	r := NewRetriever(emb, idx, 5, 0.7)
	s := NewSummarizer(r, gen, testLimiter(30000), time.Second)

	result, err := s.Summarize(context.Background(), 500)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if result.Grounded {
		t.Error("empty-index summary should not be grounded")
	}
	if !strings.Contains(result.Content, "No document content") {
		t.Errorf("content = %q", result.Content)
	}
	if len(gen.prompts) != 0 {
		t.Error("no model call should be made for an empty index")
	}
}

func TestSummarize_BuildsPromptFromSamples(t *testing.T) {
	emb := newFakeEmbedder(3)
	// Make the sample probe match the stored segment
	emb.register(summarySampleQuery, []float64{1, 0, 0})
	emb.register("Patient admitted with chest pain.", []float64{1, 0, 0})

	idx := newTestIndex(t, 3)
	insertDoc(t, idx, emb, "doc_1", "admission.txt", []string{"Patient admitted with chest pain."})

	gen := &fakeGenerator{reply: "A short clinical summary."}
	r := NewRetriever(emb, idx, 5, 0.7)
	s := NewSummarizer(r, gen, testLimiter(30000), time.Second)

	result, err := s.Summarize(context.Background(), 200)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if !result.Grounded {
		t.Error("summary should be grounded")
	}
	if result.WordCount != 4 {
		t.Errorf("word count = %d, want 4", result.WordCount)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("expected 1 model call, got %d", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "Patient admitted with chest pain.") {
		t.Error("prompt should contain the sampled segment")
	}
	if !strings.Contains(prompt, "approximately 200 words") {
		t.Error("prompt should carry the requested length")
	}
}

func TestSummarize_DefaultLength(t *testing.T) {
	emb := newFakeEmbedder(3)
	emb.register(summarySampleQuery, []float64{1, 0, 0})
	emb.register("Key findings here.", []float64{1, 0, 0})

	idx := newTestIndex(t, 3)
	insertDoc(t, idx, emb, "doc_1", "notes.txt", []string{"Key findings here."})

	gen := &fakeGenerator{reply: "summary"}
	r := NewRetriever(emb, idx, 5, 0.7)
	s := NewSummarizer(r, gen, testLimiter(30000), time.Second)

	if _, err := s.Summarize(context.Background(), 0); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !strings.Contains(gen.prompts[0], "approximately 500 words") {
		t.Error("zero maxWords should fall back to 500")
	}
}
