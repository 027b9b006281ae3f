// ABOUTME: Summarizer generates a document-collection summary through the rate limiter
// ABOUTME: Samples broadly from the index and keeps the prompt inside the token budget
package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"medassist/internal/llm"
	"medassist/internal/models"
	"medassist/internal/ratelimit"
)

// summarySampleQuery is the broad retrieval probe used to sample content
// across the whole collection.
const summarySampleQuery = "main findings clinical data patient information key results"

// summarySampleK is how many segments the summary samples from the index.
const summarySampleK = 10

// Summarizer produces a professional summary of the indexed documents.
type Summarizer struct {
	retriever *Retriever
	generator llm.Generator
	limiter   *ratelimit.Limiter
	timeout   time.Duration
}

// NewSummarizer creates a summarizer over the given retriever and generator
func NewSummarizer(retriever *Retriever, generator llm.Generator, limiter *ratelimit.Limiter, timeout time.Duration) *Summarizer {
	return &Summarizer{
		retriever: retriever,
		generator: generator,
		limiter:   limiter,
		timeout:   timeout,
	}
}

// SummaryResult is the output of one summarization run.
type SummaryResult struct {
	Content   string `json:"content"`
	WordCount int    `json:"word_count"`
	Grounded  bool   `json:"grounded"`
}

// Summarize generates a summary of all indexed documents, approximately
// maxWords long. With an empty index it reports the no-content state
// instead of calling the model.
func (s *Summarizer) Summarize(ctx context.Context, maxWords int) (*SummaryResult, error) {
	if maxWords <= 0 {
		maxWords = 500
	}

	results, err := s.retriever.Retrieve(summarySampleQuery, summarySampleK, nil)
	if err != nil {
		return nil, fmt.Errorf("sampling documents: %w", err)
	}
	if len(results) == 0 {
		return &SummaryResult{
			Content:  "No document content available for summarization.",
			Grounded: false,
		}, nil
	}

	prompt, err := s.fitPrompt(results, maxWords)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Lower temperature keeps summaries focused
	content, err := s.generator.Generate(callCtx, prompt, s.limiter.MaxOutputTokens(), 0.3)
	if err != nil {
		return nil, err
	}

	return &SummaryResult{
		Content:   content,
		WordCount: len(strings.Fields(content)),
		Grounded:  true,
	}, nil
}

// fitPrompt drops the lowest-similarity samples until the budget passes
func (s *Summarizer) fitPrompt(results []models.RetrievalResult, maxWords int) (string, error) {
	for len(results) > 0 {
		prompt := buildSummaryPrompt(results, maxWords)
		err := s.limiter.CheckTokenBudget(ratelimit.EstimateTokens(prompt))
		if err == nil {
			return prompt, nil
		}
		if len(results) == 1 {
			return "", fmt.Errorf("cannot shrink summary prompt below budget: %w", err)
		}
		results = results[:len(results)-1]
	}
	return "", fmt.Errorf("no content to summarize")
}

func buildSummaryPrompt(results []models.RetrievalResult, maxWords int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `You are a medical documentation specialist. Create a concise professional summary of the following medical document content.

Instructions:
- Focus on key findings, clinical data, and important information
- Keep the summary to approximately %d words
- Use professional medical terminology
- Organize information clearly
- Highlight the most important points

Content to summarize:
`, maxWords)
	for _, res := range results {
		sb.WriteString(res.Segment.Text)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Summary:")
	return sb.String()
}
