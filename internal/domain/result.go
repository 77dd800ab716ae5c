package domain

// ResultFile is one stored dataset: the raw delimited text published
// for a resource path. Corresponds to the result_files table.
type ResultFile struct {
	Path      string
	Content   string
	CreatedAt int64 // Unix ms, set by the store
}

// AllocationRow is one typed allocation result row.
// Corresponds to the allocation_rows table.
type AllocationRow struct {
	Period      string
	StrategyTag string
	RowIndex    int // input row order within (period, strategy)

	Region       string
	Zone         string
	FacilityType string

	PredictedDemandMW float64
	PriorityLevel     float64
	OutageRisk        float64
	DecisionX         float64
	AllocationLevel   float64
	AllocatedMW       float64
	UnmetMW           float64
	Score             float64
	SupplyMWLimit     float64
}

// AllocationRowFromRecord converts a parsed record into a typed row.
// Numeric fields follow the coerce-or-zero rule; the supply limit is
// taken from the first nonzero alias.
func AllocationRowFromRecord(period, strategyTag string, rowIndex int, r Record) *AllocationRow {
	row := &AllocationRow{
		Period:            period,
		StrategyTag:       strategyTag,
		RowIndex:          rowIndex,
		Region:            r.Get(FieldRegion),
		Zone:              r.Get(FieldZone),
		FacilityType:      r.Get(FieldFacilityType),
		PredictedDemandMW: r.Num(FieldPredictedDemandMW),
		PriorityLevel:     r.Num(FieldPriorityLevel),
		OutageRisk:        r.Num(FieldOutageRisk),
		DecisionX:         r.Num(FieldDecisionX),
		AllocationLevel:   r.Num(FieldAllocationLevel),
		AllocatedMW:       r.Num(FieldAllocatedMW),
		UnmetMW:           r.Num(FieldUnmetMW),
		Score:             r.Num(FieldScore),
	}
	for _, alias := range SupplyLimitAliases {
		if v := r.Num(alias); v != 0 {
			row.SupplyMWLimit = v
			break
		}
	}
	return row
}
