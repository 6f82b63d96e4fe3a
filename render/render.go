// Package render turns A2UI surface descriptions into terminal output.
// Dispatch is by component kind over a closed set; unknown kinds are skipped
// with a warning and never abort the rest of the description.
package render

import (
	"encoding/json"
	"strings"

	"quest/a2ui"
	"quest/log"
)

// ActionCallback receives the action descriptor when the user triggers an
// action on a surface. The renderer itself performs no network calls.
type ActionCallback func(surfaceID string, action a2ui.Action)

// ActionRef identifies one currently enabled action for input routing.
type ActionRef struct {
	SurfaceID string
	Action    a2ui.Action
}

type surface struct {
	update a2ui.SurfaceUpdate
	card   *cardState // non-nil for Card surfaces
}

// Renderer holds the live set of surfaces for one conversation, keyed by
// identifier for idempotent replacement while preserving first-seen order.
// Duplicate identifiers within one description resolve last-write-wins.
type Renderer struct {
	order    []string
	surfaces map[string]*surface
	onAction ActionCallback
}

func New(onAction ActionCallback) *Renderer {
	return &Renderer{
		surfaces: make(map[string]*surface),
		onAction: onAction,
	}
}

// Apply merges a decoded UI description into the live surface set.
func (r *Renderer) Apply(ui *a2ui.UIDescription) {
	if ui == nil {
		return
	}
	for _, c := range ui.Components {
		if c.DeleteSurface != "" {
			r.remove(c.DeleteSurface)
		}
		if c.SurfaceUpdate == nil {
			continue
		}
		u := *c.SurfaceUpdate
		existing, ok := r.surfaces[u.ID]
		if !ok {
			r.order = append(r.order, u.ID)
			existing = &surface{}
			r.surfaces[u.ID] = existing
		}
		existing.update = u
		if u.Component == a2ui.KindCard {
			// Replacement resets the per-instance action state machine.
			existing.card = newCardState()
		} else {
			existing.card = nil
		}
	}
}

func (r *Renderer) remove(id string) {
	if _, ok := r.surfaces[id]; !ok {
		return
	}
	delete(r.surfaces, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Reset drops all surfaces.
func (r *Renderer) Reset() {
	r.order = nil
	r.surfaces = make(map[string]*surface)
}

// Len returns the number of live surfaces.
func (r *Renderer) Len() int { return len(r.order) }

// Render produces the terminal output for all live surfaces in order.
func (r *Renderer) Render(width int) string {
	if width <= 0 {
		width = 72
	}
	var parts []string
	for _, id := range r.order {
		s := r.surfaces[id]
		if out := r.renderSurface(s, width); out != "" {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (r *Renderer) renderSurface(s *surface, width int) string {
	u := s.update
	switch u.Component {
	case a2ui.KindCard:
		return renderCard(u, s.card, width)
	case a2ui.KindChart:
		return renderChart(u.Props, width)
	case a2ui.KindText:
		return renderText(u.Props)
	case a2ui.KindButton:
		return renderButton(u)
	case a2ui.KindTimeline:
		return renderTimeline(u.Props)
	default:
		log.UnknownComponent(u.Component, u.ID)
		return ""
	}
}

// Trigger fires a named action on a surface. For cards this drives the
// per-instance state machine: the first trigger commits and disables every
// other action; later triggers are no-ops. Returns whether the action fired.
func (r *Renderer) Trigger(surfaceID, actionName string) bool {
	s, ok := r.surfaces[surfaceID]
	if !ok {
		return false
	}
	var act *a2ui.Action
	for i := range s.update.Actions {
		if s.update.Actions[i].Name == actionName {
			act = &s.update.Actions[i]
			break
		}
	}
	if act == nil {
		return false
	}
	if s.card != nil && !s.card.commit(actionName) {
		return false
	}
	if r.onAction != nil {
		r.onAction(surfaceID, *act)
	}
	return true
}

// CardURL returns the URL of a card surface, or "" when the surface is not a
// card or carries none. Used for copy-link side effects on commit.
func (r *Renderer) CardURL(surfaceID string) string {
	s, ok := r.surfaces[surfaceID]
	if !ok || s.update.Component != a2ui.KindCard {
		return ""
	}
	var p cardProps
	if err := json.Unmarshal(s.update.Props, &p); err != nil {
		return ""
	}
	return p.URL
}

// ActionTargets lists the currently enabled actions across all surfaces, in
// rendering order, for keyboard routing.
func (r *Renderer) ActionTargets() []ActionRef {
	var out []ActionRef
	for _, id := range r.order {
		s := r.surfaces[id]
		if s.card != nil && s.card.committed() {
			continue
		}
		for _, a := range s.update.Actions {
			out = append(out, ActionRef{SurfaceID: id, Action: a})
		}
	}
	return out
}

func renderText(props json.RawMessage) string {
	var p struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(props, &p); err != nil {
		return ""
	}
	return p.Content
}

func renderButton(u a2ui.SurfaceUpdate) string {
	var p struct {
		Label string `json:"label"`
	}
	_ = json.Unmarshal(u.Props, &p)
	label := p.Label
	if label == "" && len(u.Actions) > 0 {
		label = u.Actions[0].Label
	}
	if label == "" {
		return ""
	}
	return buttonStyle.Render("[ " + label + " ]")
}

func renderTimeline(props json.RawMessage) string {
	var p struct {
		Title   string `json:"title"`
		Entries []struct {
			Label string `json:"label"`
			Date  string `json:"date"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(props, &p); err != nil {
		return ""
	}
	var b strings.Builder
	if p.Title != "" {
		b.WriteString(titleStyle.Render(p.Title))
		b.WriteByte('\n')
	}
	for i, e := range p.Entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("  ")
		if e.Date != "" {
			b.WriteString(dimStyle.Render(e.Date))
			b.WriteString("  ")
		}
		b.WriteString(e.Label)
	}
	return b.String()
}
