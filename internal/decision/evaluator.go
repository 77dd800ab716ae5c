package decision

import (
	"math"

	"allocation-dashboard/internal/domain"
)

// Evaluator compares strategy A against strategy B.
// A is the default orientation: it wins unless B is clearly better
// or the served tie-break favors B.
type Evaluator struct {
	a domain.Strategy
	b domain.Strategy
}

// NewEvaluator creates an evaluator for the (A, B) pair.
func NewEvaluator(a, b domain.Strategy) *Evaluator {
	return &Evaluator{a: a, b: b}
}

// Decide applies, in order: clear score win, served tie-break, full tie.
func (e *Evaluator) Decide(ma, mb domain.Metrics) domain.Verdict {
	winner, reason := decide(ma, mb)
	return domain.Verdict{
		Winner: winner,
		Label:  e.label(winner),
		Reason: reason,
	}
}

func (e *Evaluator) label(w domain.Winner) string {
	switch w {
	case domain.WinnerA:
		return e.a.DisplayLabel()
	case domain.WinnerB:
		return e.b.DisplayLabel()
	default:
		return domain.TieLabel
	}
}

// decide is the stateless rule set behind Decide.
func decide(ma, mb domain.Metrics) (domain.Winner, domain.Reason) {
	if mb.TotalScore > ma.TotalScore+ScoreEpsilon {
		return domain.WinnerB, domain.ReasonScoreWin
	}
	if math.Abs(mb.TotalScore-ma.TotalScore) > ScoreEpsilon {
		return domain.WinnerA, domain.ReasonScoreWin
	}

	// Scores tied within epsilon.
	switch {
	case mb.Served > ma.Served:
		return domain.WinnerB, domain.ReasonServedTieBreak
	case ma.Served > mb.Served:
		return domain.WinnerA, domain.ReasonServedTieBreak
	default:
		return domain.WinnerTie, domain.ReasonFullTie
	}
}

// BranchOf maps a reason back to the rule that produced it.
func BranchOf(r domain.Reason) Branch {
	switch r {
	case domain.ReasonServedTieBreak:
		return BranchServed
	case domain.ReasonFullTie:
		return BranchFullTie
	default:
		return BranchScore
	}
}
