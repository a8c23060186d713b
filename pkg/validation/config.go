// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"

	"github.com/iwvelando/defi-nest/internal/scenario"
	"github.com/iwvelando/defi-nest/pkg/constants"
)

// ValidateTrials checks that a run has a positive trial count.
func ValidateTrials(trials int) error {
	if trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", trials)
	}
	return nil
}

// ValidateTrialCount returns warnings for trial counts that are valid but
// outside the interactive range or that a quarterly split would truncate.
func ValidateTrialCount(trials int, quarterly bool) []string {
	var warnings []string

	if trials < constants.MinRecommendedTrials || trials > constants.MaxRecommendedTrials {
		warnings = append(warnings, fmt.Sprintf("Trial count %d is outside the recommended range %d-%d",
			trials, constants.MinRecommendedTrials, constants.MaxRecommendedTrials))
	}

	if quarterly {
		if dropped := trials % constants.QuartersPerYear; dropped != 0 {
			warnings = append(warnings, fmt.Sprintf("Quarterly view uses %d trials per quarter; %d trials are dropped",
				trials/constants.QuartersPerYear, dropped))
		}
	}

	return warnings
}

// ValidateSliderLimits returns a warning for every parameter outside the
// slider limits in effect.
func ValidateSliderLimits(name string, params scenario.Parameters, limits scenario.Limits) []string {
	var warnings []string
	for _, field := range limits.Check(params) {
		warnings = append(warnings, fmt.Sprintf("Scenario '%s' %s = %g is outside slider range %s",
			name, field, params.Get(field), limits.Range(field)))
	}
	return warnings
}

// SimulationValidator validates a fully resolved simulation request.
type SimulationValidator struct {
	Name       string
	Parameters scenario.Parameters
	Limits     scenario.Limits
	Trials     int
	Quarterly  bool
}

// ValidateAll validates the request and returns warnings.
func (sv *SimulationValidator) ValidateAll() []string {
	var warnings []string
	warnings = append(warnings, ValidateTrialCount(sv.Trials, sv.Quarterly)...)
	warnings = append(warnings, ValidateSliderLimits(sv.Name, sv.Parameters, sv.Limits)...)
	return warnings
}
