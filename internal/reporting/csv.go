package reporting

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// RenderCSV renders every strategy's records as one CSV document with a
// leading strategy column. Columns are the union of all display columns.
func RenderCSV(r *Report) (string, error) {
	var columns []string
	seen := make(map[string]int)
	for _, t := range r.Tables {
		for _, c := range t.Columns {
			if _, ok := seen[c]; !ok {
				seen[c] = len(columns)
				columns = append(columns, c)
			}
		}
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)

	if err := w.Write(append([]string{"strategy"}, columns...)); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range r.Tables {
		for _, row := range t.Rows {
			out := make([]string, len(columns)+1)
			out[0] = t.Tag
			for j, c := range t.Columns {
				out[seen[c]+1] = row[j]
			}
			if err := w.Write(out); err != nil {
				return "", fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return sb.String(), nil
}

// RenderSummaryCSV renders one line of metrics per strategy.
func RenderSummaryCSV(r *Report) string {
	var sb strings.Builder

	sb.WriteString("strategy,label,records,used_mw,served,total_score,winner\n")
	for _, s := range r.Summary {
		winner := ""
		if r.Verdict != nil && r.Verdict.Label == s.Label {
			winner = "yes"
		}
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%s,%d,%s,%s\n",
			s.Tag, s.Label, s.Records, s.Used, s.Served, s.TotalScore, winner))
	}

	return sb.String()
}
