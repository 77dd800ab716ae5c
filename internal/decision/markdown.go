package decision

import (
	"fmt"
	"strings"

	"allocation-dashboard/internal/domain"
)

// RenderMarkdown renders the comparison of two strategy views and its verdict.
func RenderMarkdown(a, b domain.StrategyView, v domain.Verdict) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## Winner: %s\n\n", v.Label))
	sb.WriteString(fmt.Sprintf("Reason: %s\n\n", v.Reason))

	sb.WriteString("| Strategy | Used (MW) | Facilities served | Total score |\n")
	sb.WriteString("|----------|-----------|-------------------|-------------|\n")
	for _, sv := range []domain.StrategyView{a, b} {
		sb.WriteString(fmt.Sprintf("| %s | %.2f | %d | %.2f |\n",
			sv.Strategy.DisplayLabel(),
			sv.Metrics.Used,
			sv.Metrics.Served,
			sv.Metrics.TotalScore,
		))
	}
	sb.WriteString("\n")

	// Which rule decided
	switch BranchOf(v.Reason) {
	case BranchScore:
		sb.WriteString(fmt.Sprintf("Decided by total score (difference > %g).\n", ScoreEpsilon))
	case BranchServed:
		sb.WriteString("Scores tied; decided by facilities served.\n")
	case BranchFullTie:
		sb.WriteString("Scores and facilities served are equal.\n")
	}

	return sb.String()
}
