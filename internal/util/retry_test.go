// ABOUTME: Tests for retry utilities including exponential backoff
// ABOUTME: Validates backoff bounds, the 30 second cap, and jitter spread
package util

import (
	"testing"
	"time"
)

func TestCalculateBackoff_Bounds(t *testing.T) {
	tests := []struct {
		name      string
		baseDelay time.Duration
		attempt   int
		min       time.Duration
		max       time.Duration
	}{
		// Each attempt doubles the base, then jitter adds up to ±25%
		{"attempt 1", 100 * time.Millisecond, 1, 150 * time.Millisecond, 250 * time.Millisecond},
		{"attempt 2", 100 * time.Millisecond, 2, 300 * time.Millisecond, 500 * time.Millisecond},
		{"attempt 3", 100 * time.Millisecond, 3, 600 * time.Millisecond, 1000 * time.Millisecond},
		{"attempt 5", 100 * time.Millisecond, 5, 2400 * time.Millisecond, 4000 * time.Millisecond},
		// 2^10 * 1s would be 1024s; the cap holds it at 30s before jitter
		{"capped at 30s", time.Second, 10, 22500 * time.Millisecond, 37500 * time.Millisecond},
		// Attempt values beyond the shift guard must not overflow
		{"huge attempt", time.Millisecond, 100, 0, 37500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBackoff(tt.baseDelay, tt.attempt)
			if got < tt.min || got > tt.max {
				t.Errorf("CalculateBackoff(%v, %d) = %v, want within [%v, %v]",
					tt.baseDelay, tt.attempt, got, tt.min, tt.max)
			}
		})
	}
}

func TestCalculateBackoff_NonPositiveAttempts(t *testing.T) {
	for _, attempt := range []int{0, -1, -100} {
		if got := CalculateBackoff(time.Second, attempt); got != 0 {
			t.Errorf("CalculateBackoff(1s, %d) = %v, want 0", attempt, got)
		}
	}
}

func TestCalculateBackoff_JitterVaries(t *testing.T) {
	baseDelay := time.Second
	attempt := 2 // 4s before jitter

	first := CalculateBackoff(baseDelay, attempt)
	varied := false
	for i := 0; i < 100; i++ {
		sample := CalculateBackoff(baseDelay, attempt)
		if sample != first {
			varied = true
		}
		if sample < 3*time.Second || sample > 5*time.Second {
			t.Fatalf("sample %d = %v, want within [3s, 5s]", i, sample)
		}
	}
	if !varied {
		t.Error("100 samples were identical; jitter appears inert")
	}
}
