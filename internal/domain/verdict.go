package domain

// Winner identifies which side of a comparison won.
type Winner string

const (
	WinnerA   Winner = "A"
	WinnerB   Winner = "B"
	WinnerTie Winner = "TIE"
)

// Reason is the justification attached to a verdict.
// Exactly one reason exists per decision branch.
type Reason string

const (
	ReasonScoreWin       Reason = "Higher total score"
	ReasonServedTieBreak Reason = "Tie score, more facilities served"
	ReasonFullTie        Reason = "Same score & served count"
)

// TieLabel is the display label of a full tie.
const TieLabel = "Tie"

// Verdict is the outcome of comparing two strategies' metrics.
type Verdict struct {
	Winner Winner `json:"winner"`
	Label  string `json:"label"` // display name of the winning strategy, or TieLabel
	Reason Reason `json:"reason"`
}
