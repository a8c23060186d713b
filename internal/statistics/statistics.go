// Package statistics derives summary metrics and the risk classification
// from a set of simulated token values.
package statistics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/iwvelando/defi-nest/pkg/constants"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmptyResultSet is returned when statistics are requested on zero values.
	ErrEmptyResultSet = errors.New("empty result set")

	// ErrInvalidPercentile is returned for percentiles outside [0, 100].
	ErrInvalidPercentile = errors.New("invalid percentile")
)

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyResultSet
	}
	return stat.Mean(values, nil), nil
}

// StdDev returns the population standard deviation (divisor n) of values.
func StdDev(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyResultSet
	}
	_, std := stat.PopMeanStdDev(values, nil)
	return std, nil
}

// Percentile returns the p-th percentile of values using linear
// interpolation between the closest order statistics.
func Percentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyResultSet
	}
	sorted := sortedCopy(values)
	return percentileSorted(sorted, p)
}

func percentileSorted(sorted []float64, p float64) (float64, error) {
	if math.IsNaN(p) || p < 0 || p > 100 {
		return 0, fmt.Errorf("%w: %g not in [0, 100]", ErrInvalidPercentile, p)
	}

	pos := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(pos))
	upper := int(math.Ceil(pos))
	if lower == upper {
		return sorted[lower], nil
	}
	weight := pos - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight, nil
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}

// Report summarizes one result set.
type Report struct {
	Trials int       `json:"trials"`
	Mean   float64   `json:"mean"`
	StdDev float64   `json:"stdDev"`
	P5     float64   `json:"p5"`
	P95    float64   `json:"p95"`
	Min    float64   `json:"min"`
	Max    float64   `json:"max"`
	Risk   RiskLevel `json:"risk"`
}

// NewReport computes every summary metric of values.
func NewReport(values []float64) (Report, error) {
	if len(values) == 0 {
		return Report{}, ErrEmptyResultSet
	}

	mean, err := Mean(values)
	if err != nil {
		return Report{}, err
	}
	stdDev, err := StdDev(values)
	if err != nil {
		return Report{}, err
	}

	sorted := sortedCopy(values)
	p5, err := percentileSorted(sorted, constants.LowerPercentile)
	if err != nil {
		return Report{}, err
	}
	p95, err := percentileSorted(sorted, constants.UpperPercentile)
	if err != nil {
		return Report{}, err
	}

	return Report{
		Trials: len(values),
		Mean:   mean,
		StdDev: stdDev,
		P5:     p5,
		P95:    p95,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		Risk:   ClassifyMean(mean),
	}, nil
}
