package a2ui

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSplitPlainText(t *testing.T) {
	for _, raw := range []string{
		"Found 3 CFO opportunities in London.",
		"",
		"multi\nline\nreply",
	} {
		resp := Split(raw)
		if resp.UI != nil {
			t.Errorf("Split(%q): unexpected UI payload", raw)
		}
		if resp.Text != strings.TrimSpace(raw) {
			t.Errorf("Split(%q): text = %q", raw, resp.Text)
		}
	}
}

func TestSplitWithPayload(t *testing.T) {
	raw := "Here are your matches.\n\n" + Delimiter + "\n" + `{
		"components": [
			{"surfaceUpdate": {"id": "job-card-0", "component": "Card",
				"props": {"title": "Fractional CFO"},
				"actions": [{"name": "save_job", "label": "Save", "variant": "secondary"}]}},
			{"surfaceUpdate": {"id": "stats-chart", "component": "Chart",
				"props": {"type": "bar", "title": "Jobs by Role", "data": []}}}
		]
	}`

	resp := Split(raw)
	if resp.Text != "Here are your matches." {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.UI == nil {
		t.Fatal("expected UI payload")
	}
	surfaces := resp.UI.Surfaces()
	if len(surfaces) != 2 {
		t.Fatalf("got %d surfaces, want 2", len(surfaces))
	}
	if surfaces[0].ID != "job-card-0" || surfaces[0].Component != KindCard {
		t.Errorf("surface 0 = %+v", surfaces[0])
	}
	if len(surfaces[0].Actions) != 1 || surfaces[0].Actions[0].Name != "save_job" {
		t.Errorf("actions = %+v", surfaces[0].Actions)
	}
	if surfaces[1].ID != "stats-chart" || surfaces[1].Component != KindChart {
		t.Errorf("surface 1 = %+v", surfaces[1])
	}
}

func TestSplitOnFirstDelimiter(t *testing.T) {
	raw := "left\n" + Delimiter + "\n{\"components\":[]}\n" + Delimiter + "\ntrailing"
	resp := Split(raw)
	// Second delimiter lands inside the payload, making it invalid JSON;
	// the fallback must return the full original string.
	if resp.UI != nil {
		t.Error("expected fallback to plain text")
	}
	if resp.Text != strings.TrimSpace(raw) {
		t.Errorf("text = %q, want full original", resp.Text)
	}
}

func TestSplitMalformedPayloadFallsBack(t *testing.T) {
	for _, tt := range []struct {
		name    string
		payload string
	}{
		{"invalid json", "{not json"},
		{"empty segment", ""},
		{"truncated", `{"components": [`},
	} {
		t.Run(tt.name, func(t *testing.T) {
			raw := "Some text.\n" + Delimiter + "\n" + tt.payload
			resp := Split(raw)
			if resp.UI != nil {
				t.Error("expected no UI payload")
			}
			if resp.Text != strings.TrimSpace(raw) {
				t.Errorf("text = %q, want original string back", resp.Text)
			}
		})
	}
}

func TestSplitNonSurfaceComponents(t *testing.T) {
	raw := "ok\n" + Delimiter + "\n" + `{
		"components": [
			{"dataModelUpdate": {"jobs": 3}},
			{"beginRendering": true},
			{"deleteSurface": "job-card-0"},
			{"surfaceUpdate": {"id": "t1", "component": "Text", "props": {"content": "hi"}}}
		]
	}`
	resp := Split(raw)
	if resp.UI == nil {
		t.Fatal("expected UI payload")
	}
	if len(resp.UI.Components) != 4 {
		t.Fatalf("got %d components, want 4", len(resp.UI.Components))
	}
	surfaces := resp.UI.Surfaces()
	if len(surfaces) != 1 || surfaces[0].ID != "t1" {
		t.Errorf("surfaces = %+v", surfaces)
	}
	if resp.UI.Components[2].DeleteSurface != "job-card-0" {
		t.Errorf("deleteSurface = %q", resp.UI.Components[2].DeleteSurface)
	}
}

func TestComposeRoundTrip(t *testing.T) {
	ui := &UIDescription{Components: []Component{
		{SurfaceUpdate: &SurfaceUpdate{
			ID:        "job-card-0",
			Component: KindCard,
			Props:     json.RawMessage(`{"title":"Interim COO"}`),
		}},
	}}
	raw, err := Compose("One match.", ui)
	if err != nil {
		t.Fatal(err)
	}
	resp := Split(raw)
	if resp.Text != "One match." {
		t.Errorf("text = %q", resp.Text)
	}
	if resp.UI == nil || len(resp.UI.Surfaces()) != 1 {
		t.Fatalf("round trip lost surfaces: %+v", resp.UI)
	}
}

func TestComposeWithoutUI(t *testing.T) {
	raw, err := Compose("just words", nil)
	if err != nil {
		t.Fatal(err)
	}
	if raw != "just words" {
		t.Errorf("got %q", raw)
	}
	if strings.Contains(raw, Delimiter) {
		t.Error("delimiter must be absent without a payload")
	}
}
