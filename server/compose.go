package server

import (
	"encoding/json"
	"fmt"
	"strings"

	"quest/a2ui"
	"quest/jobs"
)

type cardBadge struct {
	Label   string `json:"label"`
	Variant string `json:"variant"`
}

type cardProps struct {
	Title       string      `json:"title"`
	Subtitle    string      `json:"subtitle"`
	Description string      `json:"description,omitempty"`
	Badges      []cardBadge `json:"badges,omitempty"`
	URL         string      `json:"url,omitempty"`
}

type chartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type chartProps struct {
	Type   string       `json:"type"`
	Title  string       `json:"title"`
	Data   []chartPoint `json:"data"`
	XLabel string       `json:"xLabel,omitempty"`
	YLabel string       `json:"yLabel,omitempty"`
}

func jobCard(j jobs.Job, index int) a2ui.Component {
	var badges []cardBadge
	if j.Remote {
		badges = append(badges, cardBadge{Label: "Remote", Variant: "success"})
	}
	if j.ExecutiveTitle != "" {
		badges = append(badges, cardBadge{Label: j.ExecutiveTitle, Variant: "info"})
	}

	salary := j.Salary
	if salary == "" {
		salary = "Day rate negotiable"
	}

	props, _ := json.Marshal(cardProps{
		Title:       j.Title,
		Subtitle:    fmt.Sprintf("%s - %s", j.Company, orDefault(j.Location, "Location TBD")),
		Description: salary,
		Badges:      badges,
		URL:         j.URL,
	})

	return a2ui.Component{SurfaceUpdate: &a2ui.SurfaceUpdate{
		ID:        fmt.Sprintf("job-card-%d", index),
		Component: a2ui.KindCard,
		Props:     props,
		Actions: []a2ui.Action{
			{Name: "apply_to_job", Label: "Apply Now", Variant: "primary", Data: map[string]any{"job_id": j.ID}},
			{Name: "save_job", Label: "Save", Variant: "secondary", Data: map[string]any{"job_id": j.ID}},
			{Name: "not_interested", Label: "Skip", Variant: "ghost", Data: map[string]any{"job_id": j.ID}},
		},
	}}
}

// composeSearchResult renders the hybrid reply for a job search: a prose
// listing plus one card surface per job.
func composeSearchResult(found []jobs.Job, q jobs.Query) (string, error) {
	if len(found) == 0 {
		role := orDefault(q.Role, "executive")
		return fmt.Sprintf("No %s jobs found. Try searching for CFO, CTO, or just ask 'show me all jobs'.", role), nil
	}

	roleText := "executive"
	if q.Role != "" {
		roleText = strings.ToUpper(q.Role)
	}
	locationText := ""
	if q.Location != "" {
		locationText = " in " + q.Location
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d %s opportunities%s:\n\n", len(found), roleText, locationText)

	ui := &a2ui.UIDescription{}
	for i, j := range found {
		loc := j.Location
		if loc == "" {
			if j.Remote {
				loc = "Remote"
			} else {
				loc = "Location TBD"
			}
		}
		fmt.Fprintf(&b, "%d. **%s** at %s\n", i+1, j.Title, j.Company)
		fmt.Fprintf(&b, "   Location: %s\n", loc)
		if j.URL != "" {
			fmt.Fprintf(&b, "   Apply: %s\n", j.URL)
		}
		b.WriteString("\n")

		ui.Components = append(ui.Components, jobCard(j, i))
	}

	return a2ui.Compose(strings.TrimRight(b.String(), "\n"), ui)
}

// composeStats renders the market-overview reply: a short prose summary plus
// a bar chart of jobs by role.
func composeStats(st jobs.Stats) (string, error) {
	var b strings.Builder
	b.WriteString("Here's the current job market overview:\n")
	fmt.Fprintf(&b, "- Total Jobs: %d\n", st.TotalJobs)
	fmt.Fprintf(&b, "- Remote Opportunities: %d", st.RemoteJobs)

	data := make([]chartPoint, 0, len(st.ByRole))
	for _, rc := range st.ByRole {
		data = append(data, chartPoint{Label: rc.Role, Value: float64(rc.Count)})
	}
	props, _ := json.Marshal(chartProps{
		Type:   "bar",
		Title:  "Jobs by Role",
		Data:   data,
		XLabel: "Role",
		YLabel: "Count",
	})

	ui := &a2ui.UIDescription{Components: []a2ui.Component{{
		SurfaceUpdate: &a2ui.SurfaceUpdate{
			ID:        "stats-chart",
			Component: a2ui.KindChart,
			Props:     props,
		},
	}}}

	return a2ui.Compose(b.String(), ui)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
