// Package forecast defines the data structures related to a given forecast and
// includes functions for computing the forecasts.
package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/defi-nest/internal/config"
	"github.com/iwvelando/defi-nest/internal/optimizer"
	"github.com/iwvelando/defi-nest/internal/scenario"
	"github.com/iwvelando/defi-nest/internal/simulation"
	"github.com/iwvelando/defi-nest/internal/statistics"
	"github.com/iwvelando/defi-nest/pkg/optimization"
	"github.com/iwvelando/defi-nest/pkg/validation"
	"go.uber.org/zap"
)

// Request describes one forecast.
type Request struct {
	Name       string
	Parameters scenario.Parameters
	Limits     scenario.Limits
	Trials     int
	Quarterly  bool
	// Seed makes the run reproducible. Nil draws a random seed.
	Seed *int64
	// Bins is the histogram bin count. Zero skips the histogram.
	Bins int
	// Breakeven searches each input for the value that crosses the risk threshold.
	Breakeven bool
}

// Forecast holds all information related to a specific forecast.
type Forecast struct {
	RunID         string
	Name          string
	Parameters    scenario.Parameters
	Seed          int64
	Results       simulation.ResultSet
	Report        statistics.Report
	ExpectedValue float64
	Quarterly     *simulation.QuarterlySeries
	Histogram     []statistics.Bin
	Breakeven     []optimization.Summary
	Warnings      []string
	Duration      time.Duration
}

// FromConfiguration converts a loaded configuration into a Request.
func FromConfiguration(conf *config.Configuration) (Request, error) {
	resolved, err := conf.Scenario()
	if err != nil {
		return Request{}, err
	}

	req := Request{
		Name:       resolved.Name,
		Parameters: resolved.Parameters,
		Limits:     resolved.Limits,
		Trials:     conf.Simulation.Trials,
		Quarterly:  conf.Simulation.Quarterly,
		Seed:       conf.Simulation.Seed,
		Breakeven:  conf.Simulation.Breakeven,
	}
	if conf.Output.Histogram {
		req.Bins = conf.Output.Bins
	}
	return req, nil
}

func resolveSeed(seed *int64) (int64, error) {
	if seed != nil {
		return *seed, nil
	}
	return simulation.NewSeed()
}

// Run computes the forecast for one request. The main run draws from the
// request seed while the quarterly run and the break-even search draw from
// streams derived from it, so neither toggle changes the main distribution.
func Run(logger *zap.Logger, engine *simulation.Engine, req Request) (*Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = simulation.NewEngine(logger)
	}

	if err := validation.ValidateTrials(req.Trials); err != nil {
		return nil, fmt.Errorf("%w: %v", simulation.ErrInvalidTrials, err)
	}

	start := time.Now()
	seed, err := resolveSeed(req.Seed)
	if err != nil {
		return nil, err
	}

	result := Forecast{
		RunID:         uuid.NewString(),
		Name:          req.Name,
		Parameters:    req.Parameters,
		Seed:          seed,
		ExpectedValue: simulation.ExpectedValue(req.Parameters),
	}

	validator := validation.SimulationValidator{
		Name:       req.Name,
		Parameters: req.Parameters,
		Limits:     req.Limits,
		Trials:     req.Trials,
		Quarterly:  req.Quarterly,
	}
	result.Warnings = validator.ValidateAll()

	result.Results, err = engine.Run(req.Parameters, req.Trials, simulation.NewSeededSource(seed))
	if err != nil {
		return nil, fmt.Errorf("failed to simulate scenario %s: %w", req.Name, err)
	}

	result.Report, err = statistics.NewReport(result.Results.Values())
	if err != nil {
		return nil, err
	}

	if req.Quarterly {
		series, err := engine.RunQuarterly(req.Parameters, req.Trials, simulation.NewSeededSource(simulation.DeriveSeed(seed, 1)))
		if err != nil {
			return nil, fmt.Errorf("failed to simulate quarters for scenario %s: %w", req.Name, err)
		}
		result.Quarterly = &series
	}

	if req.Bins > 0 {
		result.Histogram, err = statistics.Histogram(result.Results.Values(), req.Bins)
		if err != nil {
			return nil, err
		}
	}

	if req.Breakeven {
		runner, err := optimizer.NewRunner(logger, engine, req.Trials, simulation.DeriveSeed(seed, 2))
		if err != nil {
			return nil, err
		}
		result.Breakeven, err = runner.Run(req.Name, req.Parameters, req.Limits)
		if err != nil {
			return nil, fmt.Errorf("failed to search break-even values for scenario %s: %w", req.Name, err)
		}
	}

	result.Duration = time.Since(start)

	logger.Info("forecast computed",
		zap.String("op", "forecast.Run"),
		zap.String("run_id", result.RunID),
		zap.String("scenario", result.Name),
		zap.Int64("seed", seed),
		zap.Int("trials", req.Trials),
		zap.Float64("mean", result.Report.Mean),
		zap.String("risk", string(result.Report.Risk)),
		zap.Duration("duration", result.Duration),
	)
	for _, warning := range result.Warnings {
		logger.Debug("forecast warning: "+warning,
			zap.String("op", "forecast.Run"),
			zap.String("run_id", result.RunID),
		)
	}

	return &result, nil
}

// CompareAll runs every preset concurrently with the same trial count.
// Preset i draws from DeriveSeed(seed, i); a nil seed draws a random one.
func CompareAll(ctx context.Context, logger *zap.Logger, engine *simulation.Engine, trials int, seed *int64) ([]Forecast, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = simulation.NewEngine(logger)
	}

	base, err := resolveSeed(seed)
	if err != nil {
		return nil, err
	}

	presets := scenario.Presets()
	named := make([]simulation.NamedParameters, 0, len(presets))
	for _, p := range presets {
		named = append(named, simulation.NamedParameters{Name: p.Name, Parameters: p.Parameters})
	}

	start := time.Now()
	comparisons, err := engine.Compare(ctx, named, trials, base)
	if err != nil {
		return nil, err
	}

	results := make([]Forecast, 0, len(comparisons))
	for _, c := range comparisons {
		report, err := statistics.NewReport(c.Results.Values())
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", c.Name, err)
		}
		results = append(results, Forecast{
			RunID:         uuid.NewString(),
			Name:          c.Name,
			Parameters:    c.Parameters,
			Seed:          c.Seed,
			Results:       c.Results,
			Report:        report,
			ExpectedValue: simulation.ExpectedValue(c.Parameters),
			Duration:      time.Since(start),
		})
	}

	logger.Info("preset comparison computed",
		zap.String("op", "forecast.CompareAll"),
		zap.Int("scenarios", len(results)),
		zap.Int("trials", trials),
		zap.Int64("seed", base),
		zap.Duration("duration", time.Since(start)),
	)

	return results, nil
}
