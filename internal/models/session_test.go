// ABOUTME: Tests for conversation turns and bounded session history
// ABOUTME: Verifies validation, eviction order, and recent-turn selection

package models

import (
	"fmt"
	"testing"
)

func TestNewConversationTurn_Validation(t *testing.T) {
	tests := []struct {
		name     string
		question string
		wantErr  bool
	}{
		{"valid question", "What is the diagnosis?", false},
		{"empty question", "", true},
		{"whitespace question", "   \t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			turn, err := NewConversationTurn(tt.question, "some answer", nil)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if turn.Timestamp.IsZero() {
				t.Error("timestamp should be set")
			}
		})
	}
}

func TestSession_AppendTurn_EvictsOldest(t *testing.T) {
	s := &Session{SessionID: "test", MaxTurns: 5}

	for i := 1; i <= 6; i++ {
		s.AppendTurn(ConversationTurn{Question: fmt.Sprintf("q%d", i), Answer: fmt.Sprintf("a%d", i)})
	}

	if len(s.Turns) != 5 {
		t.Fatalf("expected 5 turns after appending 6, got %d", len(s.Turns))
	}
	if s.Turns[0].Question != "q2" {
		t.Errorf("oldest turn should be q2, got %q", s.Turns[0].Question)
	}
	if s.Turns[4].Question != "q6" {
		t.Errorf("newest turn should be q6, got %q", s.Turns[4].Question)
	}
}

func TestSession_RecentTurns(t *testing.T) {
	s := &Session{SessionID: "test", MaxTurns: 20}
	for i := 1; i <= 8; i++ {
		s.AppendTurn(ConversationTurn{Question: fmt.Sprintf("q%d", i)})
	}

	tests := []struct {
		name      string
		n         int
		wantLen   int
		wantFirst string
	}{
		{"fewer than available", 3, 3, "q6"},
		{"exactly available", 8, 8, "q1"},
		{"more than available", 20, 8, "q1"},
		{"zero", 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recent := s.RecentTurns(tt.n)
			if len(recent) != tt.wantLen {
				t.Fatalf("RecentTurns(%d) returned %d turns, want %d", tt.n, len(recent), tt.wantLen)
			}
			if tt.wantLen > 0 && recent[0].Question != tt.wantFirst {
				t.Errorf("first recent turn = %q, want %q", recent[0].Question, tt.wantFirst)
			}
		})
	}
}

func TestSession_LastQuestion(t *testing.T) {
	s := &Session{SessionID: "test", MaxTurns: 5}
	if s.LastQuestion() != "" {
		t.Error("fresh session should have no last question")
	}

	s.AppendTurn(ConversationTurn{Question: "first"})
	s.AppendTurn(ConversationTurn{Question: "second"})
	if got := s.LastQuestion(); got != "second" {
		t.Errorf("LastQuestion() = %q, want %q", got, "second")
	}
}
