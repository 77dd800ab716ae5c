package reporting

import (
	"fmt"
	"strings"
	"time"

	"allocation-dashboard/internal/decision"
	"allocation-dashboard/internal/idhash"
)

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString(fmt.Sprintf("# Allocation Report: period %s\n\n", r.Period))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Supply limit: %s MW\n\n", r.SupplyLimit))

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString("| Strategy | Records | Used (MW) | Facilities served | Total score | Dataset |\n")
	sb.WriteString("|----------|---------|-----------|-------------------|-------------|---------|\n")
	for _, s := range r.Summary {
		sb.WriteString(fmt.Sprintf("| %s | %d | %s | %d | %s | `%s` %s |\n",
			s.Label, s.Records, s.Used, s.Served, s.TotalScore,
			s.Path, idhash.Short(s.Fingerprint, 8)))
	}
	sb.WriteString("\n")

	// Decision
	if r.Verdict != nil && r.dashboard != nil && len(r.dashboard.Strategies) == 2 {
		sb.WriteString(decision.RenderMarkdown(r.dashboard.Strategies[0], r.dashboard.Strategies[1], *r.Verdict))
		sb.WriteString("\n")
	}

	// Tables
	for _, t := range r.Tables {
		sb.WriteString(fmt.Sprintf("## %s results\n\n", t.Label))
		if len(t.Rows) == 0 || len(t.Columns) == 0 {
			sb.WriteString("No records.\n\n")
			continue
		}
		sb.WriteString("| " + strings.Join(t.Columns, " | ") + " |\n")
		sb.WriteString("|" + strings.Repeat("---|", len(t.Columns)) + "\n")
		for _, row := range t.Rows {
			sb.WriteString("| " + strings.Join(row, " | ") + " |\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
