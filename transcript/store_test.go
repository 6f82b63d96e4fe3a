package transcript

import (
	"fmt"
	"testing"
	"time"
)

func TestAppendRejectsEmpty(t *testing.T) {
	s := NewStore()
	for _, text := range []string{"", "   ", "\n\t"} {
		if s.Append(RoleUser, text) {
			t.Errorf("Append(%q) accepted blank content", text)
		}
	}
	if s.Len() != 0 {
		t.Errorf("store has %d turns, want 0", s.Len())
	}
}

func TestAppendTrims(t *testing.T) {
	s := NewStore()
	s.Append(RoleUser, "  show me CFO roles  ")
	turns := s.Turns()
	if len(turns) != 1 {
		t.Fatalf("got %d turns", len(turns))
	}
	if turns[0].Text != "show me CFO roles" {
		t.Errorf("text = %q, want trimmed", turns[0].Text)
	}
	if s.LastUserQuery() != "show me CFO roles" {
		t.Errorf("last user query = %q", s.LastUserQuery())
	}
}

func TestCapacityEviction(t *testing.T) {
	s := NewStore()
	for i := 0; i < 25; i++ {
		s.Append(RoleUser, fmt.Sprintf("turn %d", i))
	}
	turns := s.Turns()
	if len(turns) != MaxTurns {
		t.Fatalf("got %d turns, want %d", len(turns), MaxTurns)
	}
	// Oldest five evicted; relative order preserved.
	if turns[0].Text != "turn 5" {
		t.Errorf("first = %q, want turn 5", turns[0].Text)
	}
	if turns[len(turns)-1].Text != "turn 24" {
		t.Errorf("last = %q, want turn 24", turns[len(turns)-1].Text)
	}
	for i := 1; i < len(turns); i++ {
		if turns[i].CreatedAt.Before(turns[i-1].CreatedAt) {
			t.Fatalf("turn %d out of order", i)
		}
	}
}

func TestAssistantTurnDoesNotTouchUserQuery(t *testing.T) {
	s := NewStore()
	s.Append(RoleUser, "find CMO jobs")
	s.Append(RoleAssistant, "Here are 3 matches.")
	if s.LastUserQuery() != "find CMO jobs" {
		t.Errorf("last user query = %q", s.LastUserQuery())
	}
}

func TestJobQuery(t *testing.T) {
	s := NewStore()
	if s.JobQuery() != nil {
		t.Fatal("job query should start nil")
	}
	s.SetJobQuery("remote CFO roles")
	q := s.JobQuery()
	if q == nil || q.Text != "remote CFO roles" {
		t.Fatalf("job query = %+v", q)
	}
	if q.DetectedAt.IsZero() {
		t.Error("DetectedAt not set")
	}

	s.Append(RoleUser, "remote CFO roles")
	s.ClearDerived()
	if s.JobQuery() != nil || s.LastUserQuery() != "" {
		t.Error("ClearDerived must drop both scalars")
	}
	if s.Len() != 1 {
		t.Error("ClearDerived must leave the turn log untouched")
	}
}

func TestEvaluatedSetPerSession(t *testing.T) {
	s := NewStore()
	q := "show me CFO roles in London"
	if s.AlreadyEvaluated(q) {
		t.Fatal("fresh store should not have evaluated anything")
	}
	s.MarkEvaluated(q)
	if !s.AlreadyEvaluated(q) {
		t.Fatal("query not recorded as evaluated")
	}
	s.ResetSession()
	if s.AlreadyEvaluated(q) {
		t.Error("ResetSession must clear the evaluated set")
	}
}

func TestContextFormat(t *testing.T) {
	s := NewStore()
	s.now = func() time.Time { return time.Unix(0, 0) }
	s.Append(RoleUser, "hi")
	s.Append(RoleAssistant, "hello")
	want := "user: hi\nassistant: hello"
	if got := s.Context(); got != want {
		t.Errorf("Context() = %q, want %q", got, want)
	}
}

func TestTurnsReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Append(RoleUser, "original")
	turns := s.Turns()
	turns[0].Text = "mutated"
	if s.Turns()[0].Text != "original" {
		t.Error("Turns() must return a copy")
	}
}
