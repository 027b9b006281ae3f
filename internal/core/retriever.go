// ABOUTME: Retriever embeds a query and returns the most relevant segments
// ABOUTME: Rewrites follow-up questions against the last turn without a model call
package core

import (
	"fmt"
	"regexp"
	"strings"

	"medassist/internal/index"
	"medassist/internal/llm"
	"medassist/internal/models"
)

// pronounPattern matches follow-up pronouns that need the previous question
// for context ("what about its dosage?").
var pronounPattern = regexp.MustCompile(`(?i)\b(it|its|this|that|these|those|they|them|their|he|she|him|her)\b`)

// Retriever is the read path of the pipeline: embed the query, search the
// index, keep hits above the similarity threshold.
type Retriever struct {
	embedder  llm.Embedder
	idx       *index.VectorIndex
	topK      int
	threshold float64
}

// NewRetriever creates a retriever over the given index
func NewRetriever(embedder llm.Embedder, idx *index.VectorIndex, topK int, threshold float64) *Retriever {
	return &Retriever{
		embedder:  embedder,
		idx:       idx,
		topK:      topK,
		threshold: threshold,
	}
}

// Retrieve returns up to k relevant segments for the query. A session may
// be passed to resolve pronouns against its last question. An empty index
// yields an empty result, not an error; the caller surfaces the
// no-documents state to the user.
func (r *Retriever) Retrieve(query string, k int, session *models.Session) ([]models.RetrievalResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if k <= 0 {
		k = r.topK
	}

	docs, _, err := r.idx.Stats()
	if err != nil {
		return nil, fmt.Errorf("checking index state: %w", err)
	}
	if docs == 0 {
		return nil, nil
	}

	rewritten := query
	if session != nil {
		rewritten = RewriteQuery(query, session.LastQuestion())
	}

	queryVector, err := r.embedder.Embed(rewritten)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := r.idx.Search(queryVector, k, nil)
	if err != nil {
		return nil, err
	}

	// Keep only hits above the relevance threshold
	filtered := results[:0]
	for _, res := range results {
		if res.SimilarityScore >= r.threshold {
			filtered = append(filtered, res)
		}
	}
	return filtered, nil
}

// RewriteQuery expands a follow-up question with the previous question when
// the new one leans on pronouns. This is a pure text transform; resolving
// references with the model would cost an extra rate-limited request.
func RewriteQuery(query, lastQuestion string) string {
	if lastQuestion == "" || !pronounPattern.MatchString(query) {
		return query
	}
	return fmt.Sprintf("%s (in the context of: %s)", query, lastQuestion)
}
