package equity

import "btc-powerlaw/internal/scenario"

// Comparison is one scenario's outcome with every other parameter held fixed.
type Comparison struct {
	Scenario scenario.Mode `json:"scenario"`
	Label    string        `json:"label"`
	Summary  Summary       `json:"summary"`
	Months   []MonthRecord `json:"months"`
}

// CompareScenarios runs the simulation once per scenario mode, in scenario.Modes() order.
func CompareScenarios(params LoanParams, livePrice *float64) []Comparison {
	modes := scenario.Modes()
	out := make([]Comparison, 0, len(modes))
	for _, mode := range modes {
		p := params
		p.Scenario = mode
		res := Simulate(p, livePrice)
		out = append(out, Comparison{
			Scenario: mode,
			Label:    scenario.Label(mode),
			Summary:  Summarize(res),
			Months:   res.Months,
		})
	}
	return out
}
