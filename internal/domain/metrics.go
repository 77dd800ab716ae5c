package domain

// Metrics is the summary of one strategy's result set for a period.
type Metrics struct {
	SupplyLimit float64 `json:"supply_limit"` // declared capacity ceiling (MW)
	Used        float64 `json:"used"`         // sum of allocated_mw
	Served      int     `json:"served"`       // records with allocation_level > 0
	TotalScore  float64 `json:"total_score"`  // sum of score * allocation_level
}
