// Package simulation implements the Monte Carlo engine that turns stress
// parameters into a distribution of simulated token values.
package simulation

import (
	"errors"
	"fmt"

	"github.com/iwvelando/defi-nest/internal/scenario"
	"github.com/iwvelando/defi-nest/internal/statistics"
	"github.com/iwvelando/defi-nest/pkg/constants"
	"go.uber.org/zap"
)

var (
	// ErrInvalidTrials is returned when a run is requested with too few trials.
	ErrInvalidTrials = errors.New("invalid trial count")

	// ErrNilSource is returned when no random source is supplied.
	ErrNilSource = errors.New("random source is nil")
)

// Engine runs simulations. It holds no per-run state and may be shared
// between goroutines as long as each goroutine uses its own RandomSource.
type Engine struct {
	logger *zap.Logger
}

// NewEngine constructs an Engine.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// TokenValue computes the value of one token for a single trial's draws.
func TokenValue(rate, unemployment, downturn, credit float64) float64 {
	return constants.BaseTokenValue *
		(1 - (rate+unemployment+downturn)/constants.PercentageMultiplier) *
		(credit / constants.CreditNormalizer)
}

// ExpectedValue is the token value at the mean of every stress factor. Since
// the factors are independent, it is also the expectation of a trial.
func ExpectedValue(p scenario.Parameters) float64 {
	return TokenValue(p.InterestRate(), p.UnemploymentRate(), p.HousingDownturn(), p.BorrowerCredit())
}

// Run draws trials independent token values from src.
func (e *Engine) Run(p scenario.Parameters, trials int, src RandomSource) (ResultSet, error) {
	if trials <= 0 {
		return ResultSet{}, fmt.Errorf("%w: %d, must be positive", ErrInvalidTrials, trials)
	}
	if src == nil {
		return ResultSet{}, ErrNilSource
	}

	values := make([]float64, trials)
	for i := range values {
		rate := src.Normal(p.InterestRate(), constants.InterestRateStdDev)
		unemployment := src.Normal(p.UnemploymentRate(), constants.UnemploymentRateStdDev)
		downturn := src.Normal(p.HousingDownturn(), constants.HousingDownturnStdDev)
		credit := src.Normal(p.BorrowerCredit(), constants.BorrowerCreditStdDev)
		values[i] = TokenValue(rate, unemployment, downturn, credit)
	}

	e.logger.Debug("simulation complete",
		zap.String("op", "simulation.Run"),
		zap.Int("trials", trials),
		zap.Stringer("parameters", p),
	)

	return ResultSet{values: values}, nil
}

// Quarter is one bucket of a quarterly run.
type Quarter struct {
	Label   string
	Results ResultSet
	Mean    float64
	P5      float64
}

// QuarterlySeries holds exactly one Quarter per quarter, in order.
type QuarterlySeries [constants.QuartersPerYear]Quarter

// RunQuarterly splits totalTrials into four independent runs of
// totalTrials/4 trials. Remainder trials are dropped. No state carries over
// between quarters.
func (e *Engine) RunQuarterly(p scenario.Parameters, totalTrials int, src RandomSource) (QuarterlySeries, error) {
	var series QuarterlySeries

	perQuarter := totalTrials / constants.QuartersPerYear
	if perQuarter <= 0 {
		return series, fmt.Errorf("%w: %d, need at least %d for a quarterly run",
			ErrInvalidTrials, totalTrials, constants.QuartersPerYear)
	}
	if dropped := totalTrials % constants.QuartersPerYear; dropped != 0 {
		e.logger.Debug("dropping trials that do not divide evenly into quarters",
			zap.String("op", "simulation.RunQuarterly"),
			zap.Int("dropped", dropped),
			zap.Int("perQuarter", perQuarter),
		)
	}

	for i := range series {
		results, err := e.Run(p, perQuarter, src)
		if err != nil {
			return series, err
		}
		mean, err := statistics.Mean(results.values)
		if err != nil {
			return series, err
		}
		p5, err := statistics.Percentile(results.values, constants.LowerPercentile)
		if err != nil {
			return series, err
		}
		series[i] = Quarter{
			Label:   fmt.Sprintf("Q%d", i+1),
			Results: results,
			Mean:    mean,
			P5:      p5,
		}
	}

	return series, nil
}
