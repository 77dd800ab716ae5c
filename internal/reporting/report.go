package reporting

import (
	"time"

	"allocation-dashboard/internal/domain"
)

// Report is the printable form of one dashboard.
type Report struct {
	GeneratedAt time.Time       `json:"generated_at"`
	Period      string          `json:"period"`
	Mode        int             `json:"mode"`         // number of strategies
	SupplyLimit string          `json:"supply_limit"` // Fixed2 or NotAvailable
	Summary     []SummaryRow    `json:"summary"`
	Verdict     *domain.Verdict `json:"verdict,omitempty"`
	Tables      []TableSection  `json:"tables"`

	dashboard *domain.Dashboard
}

// SummaryRow holds one strategy's metrics, formatted for display.
type SummaryRow struct {
	Label       string `json:"label"`
	Tag         string `json:"tag"`
	Path        string `json:"path"`
	Fingerprint string `json:"fingerprint"`
	Records     int    `json:"records"`
	Used        string `json:"used_mw"`
	Served      int    `json:"served"`
	TotalScore  string `json:"total_score"`
}

// TableSection is one strategy's records in display order, limited to the
// display columns.
type TableSection struct {
	Label   string     `json:"label"`
	Tag     string     `json:"tag"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}
