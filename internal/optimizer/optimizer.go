// Package optimizer searches for break-even stress levels: the value of a
// single input at which the mean simulated token value crosses the risk
// threshold, all other inputs held at their scenario values.
package optimizer

import (
	"fmt"
	"math"

	"github.com/iwvelando/defi-nest/internal/scenario"
	"github.com/iwvelando/defi-nest/internal/simulation"
	"github.com/iwvelando/defi-nest/internal/statistics"
	"github.com/iwvelando/defi-nest/pkg/constants"
	"github.com/iwvelando/defi-nest/pkg/optimization"
	"go.uber.org/zap"
)

const (
	defaultMaxIterations = 60
	// relativeTolerance is the stopping width as a fraction of the search range.
	relativeTolerance = 1e-6
)

// Runner evaluates every candidate against the same seed, so the simulated
// mean is a deterministic and monotone function of the searched input.
type Runner struct {
	logger        *zap.Logger
	engine        *simulation.Engine
	trials        int
	seed          int64
	threshold     float64
	maxIterations int
	newSource     func(seed int64) simulation.RandomSource
}

type evaluation struct {
	value float64
	mean  float64
}

func (e evaluation) headroom(threshold float64) float64 {
	return e.mean - threshold
}

// NewRunner constructs a Runner that simulates trials per candidate value.
func NewRunner(logger *zap.Logger, engine *simulation.Engine, trials int, seed int64) (*Runner, error) {
	if trials <= 0 {
		return nil, fmt.Errorf("%w: %d, must be positive", simulation.ErrInvalidTrials, trials)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = simulation.NewEngine(logger)
	}

	return &Runner{
		logger:        logger,
		engine:        engine,
		trials:        trials,
		seed:          seed,
		threshold:     constants.RiskThreshold,
		maxIterations: defaultMaxIterations,
		newSource:     simulation.NewSeededSource,
	}, nil
}

// Run searches every input field of the scenario within its slider range.
func (r *Runner) Run(name string, params scenario.Parameters, limits scenario.Limits) ([]optimization.Summary, error) {
	summaries := make([]optimization.Summary, 0, len(scenario.Fields()))
	for _, field := range scenario.Fields() {
		summary, err := r.Breakeven(name, params, limits, field)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Breakeven bisects the slider range of field for the value at which the
// simulated mean equals the risk threshold.
func (r *Runner) Breakeven(name string, params scenario.Parameters, limits scenario.Limits, field scenario.Field) (optimization.Summary, error) {
	rng := limits.Range(field)
	original := params.Get(field)

	baseline, err := r.evaluate(params, field, original)
	if err != nil {
		return optimization.Summary{}, err
	}
	lower, err := r.evaluate(params, field, rng.Min)
	if err != nil {
		return optimization.Summary{}, err
	}
	upper, err := r.evaluate(params, field, rng.Max)
	if err != nil {
		return optimization.Summary{}, err
	}

	summary := optimization.Summary{
		Scenario:        name,
		Field:           string(field),
		Original:        original,
		Lower:           rng.Min,
		Upper:           rng.Max,
		Threshold:       r.threshold,
		Headroom:        baseline.headroom(r.threshold),
		OriginalDisplay: formatFieldDisplay(field, original),
	}

	lowerSign := math.Signbit(lower.headroom(r.threshold))
	upperSign := math.Signbit(upper.headroom(r.threshold))
	if lowerSign == upperSign {
		level := statistics.ClassifyMean(lower.mean)
		summary.Value = original
		summary.Mean = baseline.mean
		summary.ValueDisplay = formatFieldDisplay(field, original)
		summary.Notes = []string{fmt.Sprintf("risk stays %s for %s from %s to %s",
			level, field, formatFieldDisplay(field, rng.Min), formatFieldDisplay(field, rng.Max))}
		r.logger.Debug("no break-even within range",
			zap.String("op", "optimizer.Breakeven"),
			zap.String("scenario", name),
			zap.String("field", string(field)),
			zap.String("risk", string(level)),
		)
		return summary, nil
	}

	lo, hi := lower, upper
	tolerance := (rng.Max - rng.Min) * relativeTolerance
	iterations := 0
	for iterations < r.maxIterations && hi.value-lo.value > tolerance {
		iterations++
		mid, err := r.evaluate(params, field, lo.value+(hi.value-lo.value)/2)
		if err != nil {
			return optimization.Summary{}, err
		}
		if math.Signbit(mid.headroom(r.threshold)) == lowerSign {
			lo = mid
		} else {
			hi = mid
		}
	}

	best := lo
	if math.Abs(hi.headroom(r.threshold)) < math.Abs(lo.headroom(r.threshold)) {
		best = hi
	}

	summary.Value = best.value
	summary.Mean = best.mean
	summary.ValueDisplay = formatFieldDisplay(field, best.value)
	summary.Iterations = iterations
	summary.Converged = hi.value-lo.value <= tolerance

	r.logger.Info("break-even found",
		zap.String("op", "optimizer.Breakeven"),
		zap.String("scenario", name),
		zap.String("field", string(field)),
		zap.Float64("original", original),
		zap.Float64("value", best.value),
		zap.Float64("mean", best.mean),
		zap.Float64("headroom", summary.Headroom),
		zap.Int("iterations", iterations),
		zap.Bool("converged", summary.Converged),
	)

	return summary, nil
}

func (r *Runner) evaluate(params scenario.Parameters, field scenario.Field, value float64) (evaluation, error) {
	candidate, err := params.With(field, value)
	if err != nil {
		return evaluation{}, err
	}
	results, err := r.engine.Run(candidate, r.trials, r.newSource(r.seed))
	if err != nil {
		return evaluation{}, err
	}
	mean, err := statistics.Mean(results.Values())
	if err != nil {
		return evaluation{}, err
	}
	return evaluation{value: value, mean: mean}, nil
}

func formatFieldDisplay(field scenario.Field, value float64) string {
	if field == scenario.BorrowerCredit {
		return fmt.Sprintf("%.0f", value)
	}
	return fmt.Sprintf("%.2f%%", value)
}
