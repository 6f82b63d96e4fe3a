package render

import (
	"encoding/json"
	"strings"
	"testing"

	"quest/a2ui"
)

func card(id, title string, actions ...a2ui.Action) a2ui.Component {
	props, _ := json.Marshal(map[string]any{"title": title})
	return a2ui.Component{SurfaceUpdate: &a2ui.SurfaceUpdate{
		ID:        id,
		Component: a2ui.KindCard,
		Props:     props,
		Actions:   actions,
	}}
}

func text(id, content string) a2ui.Component {
	props, _ := json.Marshal(map[string]any{"content": content})
	return a2ui.Component{SurfaceUpdate: &a2ui.SurfaceUpdate{
		ID:        id,
		Component: a2ui.KindText,
		Props:     props,
	}}
}

func TestRenderPreservesOrder(t *testing.T) {
	r := New(nil)
	r.Apply(&a2ui.UIDescription{Components: []a2ui.Component{
		text("t1", "first"),
		card("c1", "Fractional CFO"),
		text("t2", "last"),
	}})

	out := r.Render(60)
	i1 := strings.Index(out, "first")
	i2 := strings.Index(out, "Fractional CFO")
	i3 := strings.Index(out, "last")
	if i1 < 0 || i2 < 0 || i3 < 0 {
		t.Fatalf("missing content in output:\n%s", out)
	}
	if !(i1 < i2 && i2 < i3) {
		t.Errorf("output order wrong: %d %d %d", i1, i2, i3)
	}
}

func TestUnknownKindSkippedNotFatal(t *testing.T) {
	r := New(nil)
	r.Apply(&a2ui.UIDescription{Components: []a2ui.Component{
		text("t1", "before"),
		{SurfaceUpdate: &a2ui.SurfaceUpdate{ID: "x", Component: "Hologram", Props: json.RawMessage(`{}`)}},
		text("t2", "after"),
	}})
	out := r.Render(60)
	if !strings.Contains(out, "before") || !strings.Contains(out, "after") {
		t.Errorf("unknown kind aborted rendering:\n%s", out)
	}
	if strings.Contains(out, "Hologram") {
		t.Error("unknown kind should render nothing")
	}
}

func TestDuplicateIDLastWriteWins(t *testing.T) {
	r := New(nil)
	r.Apply(&a2ui.UIDescription{Components: []a2ui.Component{
		text("t1", "old content"),
		text("t1", "new content"),
	}})
	if r.Len() != 1 {
		t.Fatalf("got %d surfaces, want 1", r.Len())
	}
	out := r.Render(60)
	if strings.Contains(out, "old content") {
		t.Error("stale content survived replacement")
	}
	if !strings.Contains(out, "new content") {
		t.Error("replacement content missing")
	}
}

func TestIdempotentReplacementAcrossApplies(t *testing.T) {
	r := New(nil)
	r.Apply(&a2ui.UIDescription{Components: []a2ui.Component{
		text("a", "one"), text("b", "two"),
	}})
	r.Apply(&a2ui.UIDescription{Components: []a2ui.Component{
		text("a", "one updated"),
	}})
	if r.Len() != 2 {
		t.Fatalf("got %d surfaces, want 2", r.Len())
	}
	out := r.Render(60)
	// "a" keeps its original position, ahead of "b".
	if strings.Index(out, "one updated") > strings.Index(out, "two") {
		t.Errorf("replaced surface lost its position:\n%s", out)
	}
}

func TestDeleteSurface(t *testing.T) {
	r := New(nil)
	r.Apply(&a2ui.UIDescription{Components: []a2ui.Component{
		text("a", "keep"), text("b", "drop"),
	}})
	r.Apply(&a2ui.UIDescription{Components: []a2ui.Component{
		{DeleteSurface: "b"},
	}})
	out := r.Render(60)
	if strings.Contains(out, "drop") {
		t.Error("deleted surface still rendered")
	}
	if !strings.Contains(out, "keep") {
		t.Error("unrelated surface lost")
	}
}

func TestTriggerInvokesCallback(t *testing.T) {
	var gotID string
	var gotAction a2ui.Action
	r := New(func(id string, a a2ui.Action) {
		gotID = id
		gotAction = a
	})
	r.Apply(&a2ui.UIDescription{Components: []a2ui.Component{
		card("job-card-0", "Fractional CFO",
			a2ui.Action{Name: "save_job", Label: "Save", Data: map[string]any{"job_id": "42"}}),
	}})

	if !r.Trigger("job-card-0", "save_job") {
		t.Fatal("trigger failed")
	}
	if gotID != "job-card-0" {
		t.Errorf("callback surface = %q", gotID)
	}
	if gotAction.Name != "save_job" || gotAction.Data["job_id"] != "42" {
		t.Errorf("callback action = %+v", gotAction)
	}
}

func TestTriggerUnknownTargets(t *testing.T) {
	r := New(nil)
	r.Apply(&a2ui.UIDescription{Components: []a2ui.Component{
		card("c1", "Role", a2ui.Action{Name: "save_job", Label: "Save"}),
	}})
	if r.Trigger("missing", "save_job") {
		t.Error("trigger on unknown surface should be a no-op")
	}
	if r.Trigger("c1", "unknown_action") {
		t.Error("trigger on unknown action should be a no-op")
	}
}

func TestCardActionTerminalState(t *testing.T) {
	calls := 0
	r := New(func(string, a2ui.Action) { calls++ })
	r.Apply(&a2ui.UIDescription{Components: []a2ui.Component{
		card("job-card-0", "Fractional CFO",
			a2ui.Action{Name: "apply_to_job", Label: "Apply Now"},
			a2ui.Action{Name: "save_job", Label: "Save"},
			a2ui.Action{Name: "not_interested", Label: "Skip"}),
	}})

	if !r.Trigger("job-card-0", "save_job") {
		t.Fatal("first trigger must fire")
	}
	if calls != 1 {
		t.Fatalf("callback ran %d times, want 1", calls)
	}

	out := r.Render(60)
	if !strings.Contains(out, "Saved") {
		t.Errorf("committed action should show terminal label:\n%s", out)
	}

	// Every further trigger on this card is a no-op.
	for _, name := range []string{"save_job", "apply_to_job", "not_interested"} {
		if r.Trigger("job-card-0", name) {
			t.Errorf("trigger %q fired after commit", name)
		}
	}
	if calls != 1 {
		t.Errorf("callback ran %d times after commit, want still 1", calls)
	}
}

func TestActionTargetsExcludeCommittedCards(t *testing.T) {
	r := New(nil)
	r.Apply(&a2ui.UIDescription{Components: []a2ui.Component{
		card("c1", "One", a2ui.Action{Name: "save_job", Label: "Save"}),
		card("c2", "Two", a2ui.Action{Name: "save_job", Label: "Save"}),
	}})
	if got := len(r.ActionTargets()); got != 2 {
		t.Fatalf("got %d targets, want 2", got)
	}
	r.Trigger("c1", "save_job")
	targets := r.ActionTargets()
	if len(targets) != 1 || targets[0].SurfaceID != "c2" {
		t.Errorf("targets after commit = %+v", targets)
	}
}

func TestReplacementResetsCardState(t *testing.T) {
	r := New(nil)
	r.Apply(&a2ui.UIDescription{Components: []a2ui.Component{
		card("c1", "Role", a2ui.Action{Name: "save_job", Label: "Save"}),
	}})
	r.Trigger("c1", "save_job")

	// A fresh surface update for the same id is a new card instance.
	r.Apply(&a2ui.UIDescription{Components: []a2ui.Component{
		card("c1", "Role (reposted)", a2ui.Action{Name: "save_job", Label: "Save"}),
	}})
	if !r.Trigger("c1", "save_job") {
		t.Error("replaced card should start idle again")
	}
}

func TestTextRendersLiterally(t *testing.T) {
	r := New(nil)
	r.Apply(&a2ui.UIDescription{Components: []a2ui.Component{
		text("t", "exactly **this**, no markdown"),
	}})
	if !strings.Contains(r.Render(60), "exactly **this**, no markdown") {
		t.Error("text content must pass through as-is")
	}
}

func TestCardURL(t *testing.T) {
	r := New(nil)
	props := json.RawMessage(`{"title":"Fractional CFO","url":"https://jobs.example/1"}`)
	r.Apply(&a2ui.UIDescription{Components: []a2ui.Component{
		{SurfaceUpdate: &a2ui.SurfaceUpdate{ID: "c", Component: a2ui.KindCard, Props: props}},
		text("t", "plain"),
	}})
	if got := r.CardURL("c"); got != "https://jobs.example/1" {
		t.Errorf("CardURL = %q", got)
	}
	if got := r.CardURL("t"); got != "" {
		t.Errorf("CardURL on non-card = %q", got)
	}
	if got := r.CardURL("missing"); got != "" {
		t.Errorf("CardURL on missing surface = %q", got)
	}
}

func TestCardBadgesTolerateNulls(t *testing.T) {
	r := New(nil)
	props := json.RawMessage(`{"title":"Interim CTO","badges":[{"label":"Remote","variant":"success"},null]}`)
	r.Apply(&a2ui.UIDescription{Components: []a2ui.Component{
		{SurfaceUpdate: &a2ui.SurfaceUpdate{ID: "c", Component: a2ui.KindCard, Props: props}},
	}})
	out := r.Render(60)
	if !strings.Contains(out, "Remote") {
		t.Errorf("badge missing:\n%s", out)
	}
}
