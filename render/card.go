package render

import (
	"encoding/json"
	"strings"

	"quest/a2ui"
)

// cardState is the per-card action state machine: idle until the user
// triggers a named action, then committed to that action forever. No
// transitions out of committed.
type cardState struct {
	committedAction string
}

func newCardState() *cardState { return &cardState{} }

func (c *cardState) committed() bool { return c.committedAction != "" }

// commit moves idle → committed(name). Returns false when already committed
// (the trigger is a no-op).
func (c *cardState) commit(name string) bool {
	if c.committedAction != "" {
		return false
	}
	c.committedAction = name
	return true
}

// terminalLabel is what a committed action's button shows.
func terminalLabel(action string) string {
	switch action {
	case "save_job":
		return "Saved"
	case "not_interested":
		return "Skipped"
	case "apply_to_job":
		return "Applied"
	default:
		return "Done"
	}
}

type cardBadge struct {
	Label   string `json:"label"`
	Variant string `json:"variant"`
}

type cardProps struct {
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle"`
	Description string      `json:"description"`
	Badges      []*cardBadge `json:"badges"`
	URL         string      `json:"url"`
}

func renderCard(u a2ui.SurfaceUpdate, state *cardState, width int) string {
	var p cardProps
	if err := json.Unmarshal(u.Props, &p); err != nil || p.Title == "" {
		// A card without a title has nothing to anchor on; render nothing
		// rather than an empty frame.
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Title))
	if p.Subtitle != "" {
		b.WriteByte('\n')
		b.WriteString(subtitleStyle.Render(p.Subtitle))
	}

	var badges []string
	for _, badge := range p.Badges {
		// The agent emits null placeholders for absent badges.
		if badge == nil || badge.Label == "" {
			continue
		}
		badges = append(badges, badgeStyle(badge.Variant).Render("["+badge.Label+"]"))
	}
	if len(badges) > 0 {
		b.WriteByte('\n')
		b.WriteString(strings.Join(badges, " "))
	}

	if p.Description != "" {
		b.WriteByte('\n')
		b.WriteString(p.Description)
	}
	if p.URL != "" {
		b.WriteByte('\n')
		b.WriteString(urlStyle.Render(p.URL))
	}

	if len(u.Actions) > 0 {
		b.WriteByte('\n')
		b.WriteString(renderCardActions(u.Actions, state))
	}

	inner := width - 4 // border + padding
	if inner < 20 {
		inner = 20
	}
	return cardBorder.Width(inner).Render(b.String())
}

func renderCardActions(actions []a2ui.Action, state *cardState) string {
	var parts []string
	for _, a := range actions {
		switch {
		case state != nil && state.committedAction == a.Name:
			parts = append(parts, committedStyle.Render("[ "+terminalLabel(a.Name)+" ]"))
		case state != nil && state.committed():
			parts = append(parts, disabledStyle.Render("[ "+a.Label+" ]"))
		default:
			parts = append(parts, buttonStyle.Render("[ "+a.Label+" ]"))
		}
	}
	return strings.Join(parts, " ")
}
