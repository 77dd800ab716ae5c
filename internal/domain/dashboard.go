package domain

import "time"

// StrategyView is everything a renderer needs for one strategy.
type StrategyView struct {
	Strategy    Strategy `json:"strategy"`
	Path        string   `json:"path"`
	Fingerprint string   `json:"fingerprint"` // content hash of the fetched dataset
	Fields      []string `json:"fields"`
	Columns     []string `json:"columns"` // DisplayFields present in Fields
	Records     []Record `json:"records"` // sorted for display
	Metrics     Metrics  `json:"metrics"`
}

// Dashboard is the result of one load for one period.
// All values are freshly built per load and never mutated afterwards.
type Dashboard struct {
	Period      string         `json:"period"`
	Generation  uint64         `json:"generation,omitempty"`
	LoadedAt    time.Time      `json:"loaded_at"`
	Strategies  []StrategyView `json:"strategies"`
	SupplyLimit float64        `json:"supply_limit"`
	Verdict     *Verdict       `json:"verdict,omitempty"` // nil with a single strategy
}
