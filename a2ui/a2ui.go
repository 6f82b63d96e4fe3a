// Package a2ui implements the hybrid text+JSON response convention used by
// the career agent: free text, an optional delimiter, and a JSON payload
// describing rich UI surfaces.
package a2ui

import (
	"encoding/json"
	"strings"

	"quest/log"
)

// Delimiter separates the prose half of an agent response from the
// structured UI payload. Everything before the first occurrence is text,
// everything after is JSON.
const Delimiter = "---a2ui_JSON---"

// Component kinds the renderer knows how to dispatch on.
const (
	KindCard     = "Card"
	KindChart    = "Chart"
	KindText     = "Text"
	KindButton   = "Button"
	KindTimeline = "Timeline"
)

// Action describes a user-triggerable action attached to a surface.
type Action struct {
	Name    string         `json:"name"`
	Label   string         `json:"label"`
	Variant string         `json:"variant,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

// SurfaceUpdate is one structured UI element descriptor. Props is kept as a
// raw bag; its shape depends on Component and is interpreted by the renderer.
type SurfaceUpdate struct {
	ID        string          `json:"id"`
	Component string          `json:"component"`
	Props     json.RawMessage `json:"props"`
	Actions   []Action        `json:"actions,omitempty"`
}

type Component struct {
	SurfaceUpdate   *SurfaceUpdate `json:"surfaceUpdate,omitempty"`
	DataModelUpdate map[string]any `json:"dataModelUpdate,omitempty"`
	BeginRendering  *bool          `json:"beginRendering,omitempty"`
	DeleteSurface   string         `json:"deleteSurface,omitempty"`
}

// UIDescription is the decoded structured half of a response. Identifier
// uniqueness across components is expected but not enforced; consumers
// render duplicates last-write-wins.
type UIDescription struct {
	Components []Component `json:"components"`
}

// Response is the result of splitting a raw agent reply.
type Response struct {
	Text string
	UI   *UIDescription // nil when the reply carried no structured payload
}

// Split parses a raw agent response. Without the delimiter the whole string
// is plain text. With it, the right segment is decoded as a UIDescription;
// a malformed payload falls back to the entire original string as text and
// reports through the log side channel, so no content is ever dropped.
func Split(raw string) Response {
	idx := strings.Index(raw, Delimiter)
	if idx < 0 {
		return Response{Text: strings.TrimSpace(raw)}
	}

	text := strings.TrimSpace(raw[:idx])
	payload := strings.TrimSpace(raw[idx+len(Delimiter):])

	var ui UIDescription
	if err := json.Unmarshal([]byte(payload), &ui); err != nil {
		log.SplitFailure(err, len(payload))
		return Response{Text: strings.TrimSpace(raw)}
	}

	return Response{Text: text, UI: &ui}
}

// Surfaces returns the surface updates in order, skipping components that
// carry none.
func (d *UIDescription) Surfaces() []SurfaceUpdate {
	if d == nil {
		return nil
	}
	out := make([]SurfaceUpdate, 0, len(d.Components))
	for _, c := range d.Components {
		if c.SurfaceUpdate != nil {
			out = append(out, *c.SurfaceUpdate)
		}
	}
	return out
}

// Compose assembles a hybrid response string from prose and a UI description.
// The server half uses it; the client only splits.
func Compose(text string, ui *UIDescription) (string, error) {
	if ui == nil || len(ui.Components) == 0 {
		return text, nil
	}
	data, err := json.MarshalIndent(ui, "", "  ")
	if err != nil {
		return "", err
	}
	return text + "\n\n" + Delimiter + "\n" + string(data), nil
}
