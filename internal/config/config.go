// Package config defines the data structures related to configuration and
// includes functions for loading the config and resolving it into a
// validated simulation scenario.
package config

import (
	"fmt"
	"strings"

	"github.com/iwvelando/defi-nest/internal/scenario"
	"github.com/iwvelando/defi-nest/pkg/constants"
	"github.com/iwvelando/defi-nest/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for defi-nest.
type Configuration struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Logging    LoggingConfig    `yaml:"logging,omitempty"`
	Output     OutputConfig     `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" json:"level,omitempty"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" json:"format,omitempty"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" json:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format    string `yaml:"format,omitempty"`    // pretty, csv, json
	Histogram bool   `yaml:"histogram,omitempty"` // include a text histogram in pretty output
	Bins      int    `yaml:"bins,omitempty"`
}

// SimulationConfig selects the scenario and run size.
type SimulationConfig struct {
	Preset     string                    `yaml:"preset"`
	Trials     int                       `yaml:"trials"`
	Quarterly  bool                      `yaml:"quarterly"`
	Seed       *int64                    `yaml:"seed,omitempty"`
	Breakeven  bool                      `yaml:"breakeven,omitempty"`
	Parameters ParameterOverrides        `yaml:"parameters,omitempty"`
	Limits     map[string]scenario.Range `yaml:"limits,omitempty"`
}

// ParameterOverrides replaces individual preset values. Nil fields keep the
// preset default.
type ParameterOverrides struct {
	InterestRate     *float64 `yaml:"interestRate,omitempty" json:"interestRate,omitempty" mapstructure:"interestRate"`
	UnemploymentRate *float64 `yaml:"unemploymentRate,omitempty" json:"unemploymentRate,omitempty" mapstructure:"unemploymentRate"`
	HousingDownturn  *float64 `yaml:"housingDownturn,omitempty" json:"housingDownturn,omitempty" mapstructure:"housingDownturn"`
	BorrowerCredit   *float64 `yaml:"borrowerCredit,omitempty" json:"borrowerCredit,omitempty" mapstructure:"borrowerCredit"`
}

// Scenario is a configuration resolved into validated inputs.
type Scenario struct {
	Name       string
	Parameters scenario.Parameters
	Limits     scenario.Limits
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("simulation.preset", scenario.DefaultPreset)
	v.SetDefault("simulation.trials", constants.DefaultTrials)
	v.SetDefault("simulation.quarterly", false)
	v.SetDefault("simulation.breakeven", false)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
	v.SetDefault("output.histogram", false)
	v.SetDefault("output.bins", constants.DefaultHistogramBins)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. An empty path loads the defaults. Environment
// variables such as DEFINEST_SIMULATION_TRIALS override file values.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file, %s", err)
		}
	}

	var configuration Configuration
	err := v.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// Default returns the configuration used when no file is supplied.
func Default() *Configuration {
	conf, err := LoadConfiguration("")
	if err != nil {
		return &Configuration{Simulation: SimulationConfig{
			Preset: scenario.DefaultPreset,
			Trials: constants.DefaultTrials,
		}}
	}
	return conf
}

// Scenario resolves the preset, parameter overrides, and custom limits into
// validated scenario inputs.
func (conf *Configuration) Scenario() (Scenario, error) {
	preset, err := scenario.LookupPreset(conf.Simulation.Preset)
	if err != nil {
		return Scenario{}, err
	}

	params, err := conf.Simulation.Parameters.Apply(preset.Parameters)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", preset.Name, err)
	}

	limits, err := ApplyLimits(scenario.DefaultLimits(), conf.Simulation.Limits)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario %s: %w", preset.Name, err)
	}

	return Scenario{Name: preset.Name, Parameters: params, Limits: limits}, nil
}

// Apply returns base with every non-nil override applied.
func (o ParameterOverrides) Apply(base scenario.Parameters) (scenario.Parameters, error) {
	overrides := []struct {
		field scenario.Field
		value *float64
	}{
		{scenario.InterestRate, o.InterestRate},
		{scenario.UnemploymentRate, o.UnemploymentRate},
		{scenario.HousingDownturn, o.HousingDownturn},
		{scenario.BorrowerCredit, o.BorrowerCredit},
	}

	params := base
	for _, override := range overrides {
		if override.value == nil {
			continue
		}
		var err error
		params, err = params.With(override.field, *override.value)
		if err != nil {
			return scenario.Parameters{}, err
		}
	}
	return params, nil
}

// ApplyLimits applies custom slider ranges keyed by field name. Keys are
// matched case-insensitively since viper lowercases map keys.
func ApplyLimits(base scenario.Limits, ranges map[string]scenario.Range) (scenario.Limits, error) {
	limits := base
	for key, r := range ranges {
		field, ok := lookupField(key)
		if !ok {
			return scenario.Limits{}, fmt.Errorf("%w: unknown field %q in limits", scenario.ErrInvalidParameter, key)
		}
		var err error
		limits, err = limits.WithOverride(field, r.Min, r.Max)
		if err != nil {
			return scenario.Limits{}, err
		}
	}
	return limits, nil
}

func lookupField(key string) (scenario.Field, bool) {
	for _, f := range scenario.Fields() {
		if strings.EqualFold(string(f), strings.TrimSpace(key)) {
			return f, true
		}
	}
	return "", false
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	resolved, err := conf.Scenario()
	if err != nil {
		return []string{fmt.Sprintf("Scenario could not be resolved: %v", err)}
	}

	validator := validation.SimulationValidator{
		Name:       resolved.Name,
		Parameters: resolved.Parameters,
		Limits:     resolved.Limits,
		Trials:     conf.Simulation.Trials,
		Quarterly:  conf.Simulation.Quarterly,
	}
	return validator.ValidateAll()
}
