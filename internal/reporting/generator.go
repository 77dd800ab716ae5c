package reporting

import (
	"context"
	"time"

	"allocation-dashboard/internal/domain"
	"allocation-dashboard/internal/loader"
)

// Generator produces reports by loading a period.
type Generator struct {
	loader loader.Loader
	now    func() time.Time // injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(l loader.Loader) *Generator {
	return &Generator{
		loader: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate loads period and builds its report.
func (g *Generator) Generate(ctx context.Context, period string) (*Report, error) {
	d, err := g.loader.Load(ctx, period)
	if err != nil {
		return nil, err
	}
	return FromDashboard(d, g.now()), nil
}

// FromDashboard builds a report from an already loaded dashboard.
func FromDashboard(d *domain.Dashboard, generatedAt time.Time) *Report {
	r := &Report{
		GeneratedAt: generatedAt,
		Period:      d.Period,
		Mode:        len(d.Strategies),
		SupplyLimit: SupplyText(d.SupplyLimit),
		Verdict:     d.Verdict,
		dashboard:   d,
	}

	for _, sv := range d.Strategies {
		r.Summary = append(r.Summary, SummaryRow{
			Label:       sv.Strategy.DisplayLabel(),
			Tag:         sv.Strategy.Tag,
			Path:        sv.Path,
			Fingerprint: sv.Fingerprint,
			Records:     len(sv.Records),
			Used:        Fixed2(sv.Metrics.Used),
			Served:      sv.Metrics.Served,
			TotalScore:  Fixed2(sv.Metrics.TotalScore),
		})
		r.Tables = append(r.Tables, tableSection(sv))
	}
	return r
}

func tableSection(sv domain.StrategyView) TableSection {
	rows := make([][]string, len(sv.Records))
	for i, rec := range sv.Records {
		row := make([]string, len(sv.Columns))
		for j, col := range sv.Columns {
			row[j] = rec.Get(col)
		}
		rows[i] = row
	}
	return TableSection{
		Label:   sv.Strategy.DisplayLabel(),
		Tag:     sv.Strategy.Tag,
		Columns: sv.Columns,
		Rows:    rows,
	}
}
