package render

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

type chartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type chartProps struct {
	Type   string       `json:"type"`
	Title  string       `json:"title"`
	Data   []chartPoint `json:"data"`
	XLabel string       `json:"xLabel"`
	YLabel string       `json:"yLabel"`
}

const (
	maxBarWidth  = 30
	noDataNotice = "(no data)"
)

func renderChart(props json.RawMessage, width int) string {
	var p chartProps
	if err := json.Unmarshal(props, &p); err != nil {
		return ""
	}

	var b strings.Builder
	if p.Title != "" {
		b.WriteString(titleStyle.Render(p.Title))
		b.WriteByte('\n')
	}

	switch p.Type {
	case "bar":
		b.WriteString(renderBars(p.Data))
	case "pie":
		b.WriteString(renderPie(p.Data))
	case "line":
		b.WriteString(renderLine(p.Data))
	default:
		b.WriteString(dimStyle.Render(fmt.Sprintf("(unsupported chart type %q)", p.Type)))
	}
	return b.String()
}

func labelWidth(data []chartPoint) int {
	w := 0
	for _, d := range data {
		if len(d.Label) > w {
			w = len(d.Label)
		}
	}
	return w
}

// renderBars scales each bar against the series maximum. An all-zero series
// renders zero-width bars, never a division.
func renderBars(data []chartPoint) string {
	if len(data) == 0 {
		return dimStyle.Render(noDataNotice)
	}
	var max float64
	for _, d := range data {
		if d.Value > max {
			max = d.Value
		}
	}
	lw := labelWidth(data)
	var lines []string
	for _, d := range data {
		barLen := 0
		if max > 0 {
			barLen = int(math.Round(d.Value / max * maxBarWidth))
		}
		bar := barStyle.Render(strings.Repeat("█", barLen))
		lines = append(lines, fmt.Sprintf("%-*s %s %g", lw, d.Label, bar, d.Value))
	}
	return strings.Join(lines, "\n")
}

// renderPie shows integer-rounded percentage shares. A zero-sum series
// renders 0%% slices, never a division.
func renderPie(data []chartPoint) string {
	if len(data) == 0 {
		return dimStyle.Render(noDataNotice)
	}
	var sum float64
	for _, d := range data {
		sum += d.Value
	}
	lw := labelWidth(data)
	var lines []string
	for _, d := range data {
		pct := 0
		if sum > 0 {
			pct = int(math.Round(d.Value / sum * 100))
		}
		lines = append(lines, fmt.Sprintf("%-*s %3d%% %s", lw, d.Label, pct, dimStyle.Render(fmt.Sprintf("(%g)", d.Value))))
	}
	return strings.Join(lines, "\n")
}

// renderLine positions a marker per point scaled against the series maximum.
func renderLine(data []chartPoint) string {
	if len(data) == 0 {
		return dimStyle.Render(noDataNotice)
	}
	var max float64
	for _, d := range data {
		if d.Value > max {
			max = d.Value
		}
	}
	lw := labelWidth(data)
	var lines []string
	for _, d := range data {
		pos := 0
		if max > 0 {
			pos = int(math.Round(d.Value / max * maxBarWidth))
		}
		lines = append(lines, fmt.Sprintf("%-*s %s%s %g", lw, d.Label, strings.Repeat(" ", pos), barStyle.Render("●"), d.Value))
	}
	return strings.Join(lines, "\n")
}
