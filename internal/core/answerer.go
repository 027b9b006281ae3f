// ABOUTME: AnswerGenerator composes bounded RAG prompts and calls the model
// ABOUTME: Shrinks context to fit the token budget and refuses ungrounded answers
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

// systemInstructions anchors every answer to the retrieved context.
const systemInstructions = `You are a helpful medical document assistant. Answer the user's question based on the provided context from uploaded medical documents.

Instructions:
- Use ONLY information from the provided context to answer the question
- If the context doesn't contain enough information, say so clearly
- Be precise and cite specific details from the documents
- Maintain a professional medical tone
- If previous conversation history is provided, maintain context continuity`

// InsufficientGroundingAnswer is returned verbatim when retrieval produced
// nothing to ground an answer in. No model call is made in that case.
const InsufficientGroundingAnswer = "I couldn't find relevant information in the uploaded documents to answer your question. Please make sure you've uploaded the necessary documents."

// SourceRef identifies a source document cited by an answer.
type SourceRef struct {
	Filename string  `json:"filename"`
	Score    float64 `json:"score"`
}

// Answer is the result of one generation call plus its citations.
type Answer struct {
	Text            string      `json:"text"`
	CitedSegmentIDs []string    `json:"cited_segment_ids"`
	Sources         []SourceRef `json:"sources"`
	Grounded        bool        `json:"grounded"`
}

// AnswerGenerator turns a question, retrieved segments, and history into a
// grounded answer. All external calls go through the rate limiter and the
// token budget check; budget overruns are resolved locally by shrinking
// context, oldest history first, then lowest-similarity segments.
type AnswerGenerator struct {
	generator    llm.Generator
	limiter      *ratelimit.Limiter
	historyTurns int
	timeout      time.Duration
	temperature  float32
}

// NewAnswerGenerator creates an answer generator
func NewAnswerGenerator(generator llm.Generator, limiter *ratelimit.Limiter, historyTurns int, timeout time.Duration) *AnswerGenerator {
	return &AnswerGenerator{
		generator:    generator,
		limiter:      limiter,
		historyTurns: historyTurns,
		timeout:      timeout,
		temperature:  0.7,
	}
}

// Answer generates a grounded answer. With zero retrieval results it
// states the limitation explicitly instead of fabricating an answer.
func (g *AnswerGenerator) Answer(ctx context.Context, question string, retrieved []models.RetrievalResult, history []models.ConversationTurn) (*Answer, error) {
	if len(retrieved) == 0 {
		return &Answer{
			Text:     InsufficientGroundingAnswer,
			Grounded: false,
		}, nil
	}

	prompt, included, err := g.fitPrompt(question, retrieved, history)
	if err != nil {
		return nil, err
	}

	if err := g.limiter.Acquire(ctx); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	text, err := g.generator.Generate(callCtx, prompt, g.limiter.MaxOutputTokens(), g.temperature)
	if err != nil {
		return nil, err
	}

	return &Answer{
		Text:            text,
		CitedSegmentIDs: segmentIDs(included),
		Sources:         sourceRefs(included),
		Grounded:        true,
	}, nil
}

// fitPrompt assembles the prompt and shrinks context until it passes the
// token budget check. It returns the final prompt and the segments that
// made it in, which become the answer's citations.
func (g *AnswerGenerator) fitPrompt(question string, retrieved []models.RetrievalResult, history []models.ConversationTurn) (string, []models.RetrievalResult, error) {
	hist := history
	if len(hist) > g.historyTurns {
		hist = hist[len(hist)-g.historyTurns:]
	}
	segs := retrieved

	for {
		prompt := buildPrompt(question, segs, hist)
		err := g.limiter.CheckTokenBudget(ratelimit.EstimateTokens(prompt))
		if err == nil {
			return prompt, segs, nil
		}
		// Shrink: oldest history turns first, then lowest-similarity segments
		if len(hist) > 0 {
			hist = hist[1:]
			continue
		}
		if len(segs) > 1 {
			segs = segs[:len(segs)-1]
			continue
		}
		return "", nil, fmt.Errorf("cannot shrink prompt below budget: %w", err)
	}
}

// buildPrompt assembles sections in fixed order: system instructions,
// conversation history, retrieved context tagged with sources, question.
func buildPrompt(question string, retrieved []models.RetrievalResult, history []models.ConversationTurn) string {
	var sb strings.Builder
	sb.WriteString(systemInstructions)
	sb.WriteString("\n\nPrevious Conversation:\n")
	if len(history) == 0 {
		sb.WriteString("No previous conversation\n")
	} else {
		for _, turn := range history {
			sb.WriteString("User: " + turn.Question + "\n")
			sb.WriteString("Assistant: " + turn.Answer + "\n")
		}
	}

	sb.WriteString("\nContext from Documents:\n")
	for i, res := range retrieved {
		fmt.Fprintf(&sb, "[Source %d: %s]\n%s\n\n", i+1, res.SourceFilename, res.Segment.Text)
	}

	sb.WriteString("User Question: " + question + "\n\nAnswer:")
	return sb.String()
}

// segmentIDs collects the IDs of all segments included in the prompt
func segmentIDs(results []models.RetrievalResult) []string {
	ids := make([]string, len(results))
	for i, res := range results {
		ids[i] = res.Segment.SegmentID
	}
	return ids
}

// sourceRefs deduplicates source documents, keeping each one's best score
func sourceRefs(results []models.RetrievalResult) []SourceRef {
	var refs []SourceRef
	seen := make(map[string]bool)
	for _, res := range results {
		if seen[res.SourceFilename] {
			continue
		}
		seen[res.SourceFilename] = true
		refs = append(refs, SourceRef{
			Filename: res.SourceFilename,
			Score:    res.SimilarityScore,
		})
	}
	return refs
}
