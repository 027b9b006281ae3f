// ABOUTME: Process-wide gate for the single external generation endpoint
// ABOUTME: Serializes requests at one permit per interval and enforces token budgets
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// BudgetExceededError reports a prompt that would exceed the input token
// ceiling. It is recoverable: the caller shrinks context and re-checks
// before any external call is made.
type BudgetExceededError struct {
	Estimated int
	Limit     int
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("prompt of ~%d tokens exceeds the %d token budget", e.Estimated, e.Limit)
}

// Limiter gates access to the external generation endpoint. At most one
// permit is granted per interval, process-wide. A permit is consumed even
// when the guarded call later times out, so a degraded endpoint is never
// hammered by tight retry loops.
type Limiter struct {
	bucket          *rate.Limiter
	maxInputTokens  int
	maxOutputTokens int
}

// New creates a limiter granting one permit per interval with burst 1.
// The interval and ceilings are tied to the external provider's tier and
// are configuration, not invariants.
func New(interval time.Duration, maxInputTokens, maxOutputTokens int) *Limiter {
	return &Limiter{
		bucket:          rate.NewLimiter(rate.Every(interval), 1),
		maxInputTokens:  maxInputTokens,
		maxOutputTokens: maxOutputTokens,
	}
}

// Acquire blocks until the minimum interval has elapsed since the previous
// permit. It only delays, never denies; cancellation comes from ctx.
func (l *Limiter) Acquire(ctx context.Context) error {
	if err := l.bucket.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for request permit: %w", err)
	}
	return nil
}

// CheckTokenBudget fails with BudgetExceededError when the estimated prompt
// size exceeds the input ceiling. Called before any external request.
func (l *Limiter) CheckTokenBudget(estimatedTokens int) error {
	if estimatedTokens > l.maxInputTokens {
		return &BudgetExceededError{Estimated: estimatedTokens, Limit: l.maxInputTokens}
	}
	return nil
}

// MaxOutputTokens returns the per-request output ceiling
func (l *Limiter) MaxOutputTokens() int {
	return l.maxOutputTokens
}

// EstimateTokens approximates token count at 4 characters per token,
// matching the budget heuristic used for prompt assembly.
func EstimateTokens(text string) int {
	return (len(text) + 3) / 4
}
