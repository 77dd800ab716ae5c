package domain

// Field names read by the aggregator, the display sort and the ask answerer.
const (
	FieldRegion            = "region"
	FieldZone              = "zone"
	FieldFacilityType      = "facility_type"
	FieldPredictedDemandMW = "predicted_demand_mw"
	FieldPriorityLevel     = "priority_level"
	FieldOutageRisk        = "outage_risk"
	FieldDecisionX         = "decision_x"
	FieldAllocationLevel   = "allocation_level"
	FieldAllocatedMW       = "allocated_mw"
	FieldUnmetMW           = "unmet_mw"
	FieldScore             = "score"
)

// SupplyLimitAliases lists the field names that may carry the declared
// supply ceiling, in priority order. The first nonzero one wins.
var SupplyLimitAliases = []string{
	"supply_mw_limit",
	"supply_limit_mw",
	"supply_mw",
	"total_supply_mw",
	"supply_limit",
}

// DisplayFields is the preferred column order for rendered tables.
// Only fields present in a dataset's header are shown.
var DisplayFields = []string{
	FieldRegion,
	FieldZone,
	FieldFacilityType,
	FieldPredictedDemandMW,
	FieldPriorityLevel,
	FieldOutageRisk,
	FieldDecisionX,
	FieldAllocationLevel,
	FieldAllocatedMW,
	FieldUnmetMW,
	FieldScore,
}
