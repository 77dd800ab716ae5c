package domain

// Strategy is one competing allocation approach.
// Tag selects its datasets; Label is what the dashboard shows.
type Strategy struct {
	Tag   string `yaml:"tag" json:"tag"`
	Label string `yaml:"label" json:"label"`
}

// Default strategies of a comparison dashboard.
var (
	StrategyQuantum = Strategy{Tag: "quantum_allocation", Label: "Quantum"}
	StrategyClassic = Strategy{Tag: "classical_greedy", Label: "Classic"}
)

// DisplayLabel returns Label, falling back to Tag.
func (s Strategy) DisplayLabel() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Tag
}
