package scenario

import (
	"fmt"
	"strings"
)

// Preset names.
const (
	Crisis2008 = "2008 Crisis"
	CovidShock = "COVID Shock"
	Optimistic = "Optimistic"
	Custom     = "Custom"

	// DefaultPreset is selected when no preset is requested.
	DefaultPreset = Custom
)

// Preset is a named, literal set of default stress inputs.
type Preset struct {
	Name        string
	Description string
	Parameters  Parameters
}

var presets = []Preset{
	{
		Name:        Crisis2008,
		Description: "Global financial crisis: elevated rates, high unemployment, severe housing correction",
		Parameters:  MustNew(6.5, 9.5, 25.0, 620),
	},
	{
		Name:        CovidShock,
		Description: "Pandemic shock: low rates, unemployment spike, sharp housing downturn",
		Parameters:  MustNew(3.5, 14.0, 20.0, 650),
	},
	{
		Name:        Optimistic,
		Description: "Benign conditions: low rates, low unemployment, mild downturn",
		Parameters:  MustNew(2.5, 4.0, 5.0, 750),
	},
	{
		Name:        Custom,
		Description: "Baseline starting point for user-defined scenarios",
		Parameters:  MustNew(5.0, 6.0, 15.0, 700),
	},
}

// Presets returns the preset table in display order.
func Presets() []Preset {
	out := make([]Preset, len(presets))
	copy(out, presets)
	return out
}

// PresetNames returns the names of all presets in display order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for _, p := range presets {
		names = append(names, p.Name)
	}
	return names
}

// LookupPreset finds a preset by name, ignoring case and surrounding
// whitespace. An empty name selects DefaultPreset.
func LookupPreset(name string) (Preset, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		trimmed = DefaultPreset
	}
	for _, p := range presets {
		if strings.EqualFold(p.Name, trimmed) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownPreset, name, strings.Join(PresetNames(), ", "))
}
