// Package transcript keeps the conversational context of one voice session:
// an append-only, capacity-bounded log of turns plus the derived scalars the
// intent pipeline works from.
package transcript

import (
	"strings"
	"sync"
	"time"
)

// MaxTurns bounds the log to the most recent turns; older entries are
// silently dropped.
const MaxTurns = 20

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one conversational turn. Immutable once created.
type Turn struct {
	Role      Role
	Text      string
	CreatedAt time.Time
}

// JobQuery is the most recent user utterance that the detector classified as
// a job search, kept for downstream consumers.
type JobQuery struct {
	Text       string
	DetectedAt time.Time
}

// Store is the ordered turn log. It is written from the voice session's
// receiver goroutine and read from the UI loop, so a mutex guards it.
type Store struct {
	mu            sync.Mutex
	turns         []Turn
	lastUserQuery string
	jobQuery      *JobQuery
	evaluated     map[string]struct{}
	now           func() time.Time
}

func NewStore() *Store {
	return &Store{
		evaluated: make(map[string]struct{}),
		now:       time.Now,
	}
}

// Append records a turn. Empty or whitespace-only content is rejected as a
// no-op. A user turn also updates the last-user-query scalar.
func (s *Store) Append(role Role, text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = append(s.turns, Turn{Role: role, Text: trimmed, CreatedAt: s.now()})
	if len(s.turns) > MaxTurns {
		s.turns = append(s.turns[:0:0], s.turns[len(s.turns)-MaxTurns:]...)
	}
	if role == RoleUser {
		s.lastUserQuery = trimmed
	}
	return true
}

// Turns returns a copy of the log in insertion order.
func (s *Store) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

// LastUserQuery returns the text of the most recent user turn.
func (s *Store) LastUserQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUserQuery
}

// SetJobQuery records a detected job query with the current timestamp.
func (s *Store) SetJobQuery(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobQuery = &JobQuery{Text: text, DetectedAt: s.now()}
}

func (s *Store) JobQuery() *JobQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.jobQuery == nil {
		return nil
	}
	q := *s.jobQuery
	return &q
}

// ClearDerived drops the derived scalars as a unit, leaving the turn log
// untouched.
func (s *Store) ClearDerived() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUserQuery = ""
	s.jobQuery = nil
}

// AlreadyEvaluated reports whether this exact query text was evaluated during
// the current connection.
func (s *Store) AlreadyEvaluated(query string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.evaluated[query]
	return ok
}

func (s *Store) MarkEvaluated(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluated[query] = struct{}{}
}

// ResetSession clears the evaluated-query set on disconnect so a new session
// can re-detect repeated phrases.
func (s *Store) ResetSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluated = make(map[string]struct{})
}

// Context renders the log as readable context for the remote agent.
func (s *Store) Context() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var b strings.Builder
	for i, t := range s.turns {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(t.Role))
		b.WriteString(": ")
		b.WriteString(t.Text)
	}
	return b.String()
}
