// ABOUTME: Session holds the bounded conversation history for one chat session
// ABOUTME: Turns are append-only in insertion order, oldest evicted first
package models

import (
	"errors"
	"strings"
	"time"
)

// ConversationTurn is a single question/answer exchange.
type ConversationTurn struct {
	Question        string    `json:"question"`
	Answer          string    `json:"answer"`
	CitedSegmentIDs []string  `json:"cited_segment_ids,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// NewConversationTurn creates a turn with validation.
func NewConversationTurn(question, answer string, citedSegmentIDs []string) (*ConversationTurn, error) {
	if strings.TrimSpace(question) == "" {
		return nil, errors.New("question cannot be empty")
	}
	return &ConversationTurn{
		Question:        question,
		Answer:          answer,
		CitedSegmentIDs: citedSegmentIDs,
		Timestamp:       time.Now().UTC(),
	}, nil
}

// Session is a bounded, ordered conversation history keyed by an opaque ID.
// It lives in memory only and is cleared on reset or process restart.
type Session struct {
	SessionID         string             `json:"session_id"`
	Turns             []ConversationTurn `json:"turns"`
	ActiveDocumentIDs []string           `json:"active_document_ids,omitempty"`
	MaxTurns          int                `json:"-"`
}

// AppendTurn adds a turn, evicting from the oldest end beyond MaxTurns.
func (s *Session) AppendTurn(turn ConversationTurn) {
	s.Turns = append(s.Turns, turn)
	if s.MaxTurns > 0 && len(s.Turns) > s.MaxTurns {
		s.Turns = s.Turns[len(s.Turns)-s.MaxTurns:]
	}
}

// RecentTurns returns up to n of the most recent turns, oldest first.
func (s *Session) RecentTurns(n int) []ConversationTurn {
	if n <= 0 || len(s.Turns) == 0 {
		return nil
	}
	if len(s.Turns) <= n {
		return s.Turns
	}
	return s.Turns[len(s.Turns)-n:]
}

// LastQuestion returns the most recent question, or "" for a fresh session.
func (s *Session) LastQuestion() string {
	if len(s.Turns) == 0 {
		return ""
	}
	return s.Turns[len(s.Turns)-1].Question
}
