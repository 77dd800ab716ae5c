package decision

// ScoreEpsilon is the absolute difference under which two total scores
// are treated as equal. It absorbs float summation noise only.
const ScoreEpsilon = 1e-9

// Branch names which rule of the decision order fired.
type Branch string

const (
	BranchScore   Branch = "score"
	BranchServed  Branch = "served"
	BranchFullTie Branch = "full_tie"
)
