// Package optimization provides shared data structures for break-even search results.
package optimization

// Summary captures the result of a single break-even search.
type Summary struct {
	Scenario        string   `json:"scenario"`
	Field           string   `json:"field"`
	Original        float64  `json:"original"`
	Value           float64  `json:"value"`
	Lower           float64  `json:"lower"`
	Upper           float64  `json:"upper"`
	Threshold       float64  `json:"threshold"`
	Mean            float64  `json:"mean"`
	Headroom        float64  `json:"headroom"`
	Iterations      int      `json:"iterations"`
	Converged       bool     `json:"converged"`
	Notes           []string `json:"notes,omitempty"`
	OriginalDisplay string   `json:"originalDisplay,omitempty"`
	ValueDisplay    string   `json:"valueDisplay,omitempty"`
}
