package statistics

import "github.com/iwvelando/defi-nest/pkg/constants"

// RiskLevel is the two-valued verdict derived from the mean token value.
type RiskLevel string

// Risk levels.
const (
	Elevated RiskLevel = "ELEVATED"
	Normal   RiskLevel = "NORMAL"
)

const (
	elevatedAdvisory = "High macro stress detected: Token values show significant downside risk. Consider diversifying portfolio."
	normalAdvisory   = "Simulation complete. Risk appears within tolerable range."
)

// ClassifyMean applies the fixed threshold rule to a mean token value.
func ClassifyMean(mean float64) RiskLevel {
	if mean < constants.RiskThreshold {
		return Elevated
	}
	return Normal
}

// Classify returns Elevated when the mean of values is below the risk
// threshold and Normal otherwise.
func Classify(values []float64) (RiskLevel, error) {
	mean, err := Mean(values)
	if err != nil {
		return "", err
	}
	return ClassifyMean(mean), nil
}

// Advisory returns the fixed message shown to users for the level.
func (r RiskLevel) Advisory() string {
	if r == Elevated {
		return elevatedAdvisory
	}
	return normalAdvisory
}
