// ABOUTME: Typed errors for the language model boundary
// ABOUTME: Distinguishes embedding failures, quota hits, timeouts, and malformed responses
package llm

import (
	"fmt"
	"time"
)

// EmbeddingError reports a rejected embedding input (empty or oversized).
// The affected segment is skipped; truncation is the caller's choice.
type EmbeddingError struct {
	Reason string
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding rejected: %s", e.Reason)
}

// RateLimitError reports an external quota hit with a suggested wait time.
type RateLimitError struct {
	SuggestedWait time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("model provider rate limit hit, retry after %s", e.SuggestedWait)
}

// GenerationError wraps a failed generation call with a machine-readable kind.
type GenerationError struct {
	Kind string // "timeout", "malformed", "unavailable"
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
