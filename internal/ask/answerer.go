package ask

import (
	"fmt"
	"strings"

	"allocation-dashboard/internal/domain"
	"allocation-dashboard/internal/reporting"
)

// Intent is the kind of question the answerer recognised.
type Intent string

const (
	IntentRemaining Intent = "remaining"
	IntentWho       Intent = "who"
	IntentWhy       Intent = "why"
	IntentHelp      Intent = "help"
)

// Fixed answers.
const (
	WhyAnswer       = "Allocation is based on priority level, outage risk, predicted demand, and limited supply. Critical facilities are served first, then partial allocation is applied fairly."
	NoRecordsAnswer = "No facilities have allocation records for this period."
	HelpAnswer      = "Ask me about remaining electricity, allocated regions, or why some areas received partial supply."
)

// Keyword lists are checked in this order; the first match wins.
var (
	remainingKeywords = []string{"remaining", "left", "ضل"}
	whoKeywords       = []string{"who", "regions", "areas"}
	whyKeywords       = []string{"why"}
)

// Answerer answers questions about one strategy's records with keyword rules.
type Answerer struct{}

// NewAnswerer creates an Answerer.
func NewAnswerer() *Answerer {
	return &Answerer{}
}

// Classify returns the intent of question. Matching is case-insensitive.
func Classify(question string) Intent {
	q := strings.ToLower(question)
	switch {
	case containsAny(q, remainingKeywords):
		return IntentRemaining
	case containsAny(q, whoKeywords):
		return IntentWho
	case containsAny(q, whyKeywords):
		return IntentWhy
	default:
		return IntentHelp
	}
}

// Answer returns the answer text and the recognised intent.
func (a *Answerer) Answer(records []domain.Record, question string) (string, Intent) {
	intent := Classify(question)
	switch intent {
	case IntentRemaining:
		return remainingAnswer(records), intent
	case IntentWho:
		return whoAnswer(records), intent
	case IntentWhy:
		return WhyAnswer, intent
	default:
		return HelpAnswer, intent
	}
}

func remainingAnswer(records []domain.Record) string {
	var demand, allocated float64
	for _, r := range records {
		demand += r.Num(domain.FieldPredictedDemandMW)
		allocated += r.Num(domain.FieldAllocatedMW)
	}
	return fmt.Sprintf("Allocated electricity is %s MW. Remaining unmet demand is %s MW.",
		reporting.Fixed2(allocated), reporting.Fixed2(demand-allocated))
}

func whoAnswer(records []domain.Record) string {
	if len(records) == 0 {
		return NoRecordsAnswer
	}
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = fmt.Sprintf("%s – %s: %d%% (%s MW)",
			r.Get(domain.FieldRegion),
			r.Get(domain.FieldFacilityType),
			reporting.Percent(r.Num(domain.FieldAllocationLevel)),
			r.Get(domain.FieldAllocatedMW),
		)
	}
	return strings.Join(lines, "\n")
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
