package statistics

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Bin is one equal-width histogram bucket. Every bin is half-open [Lower,
// Upper) except the last, which also includes Upper.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// ErrInvalidBins is returned when a histogram is requested with fewer than
// one bin.
var ErrInvalidBins = errors.New("invalid bin count")

// Histogram counts values into bins equal-width buckets spanning the range
// of values. When every value is equal the range is widened by 0.5 on each
// side.
func Histogram(values []float64, bins int) ([]Bin, error) {
	if len(values) == 0 {
		return nil, ErrEmptyResultSet
	}
	if bins < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBins, bins)
	}

	lo, hi := floats.Min(values), floats.Max(values)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi

	for _, v := range values {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		out[idx].Count++
	}
	return out, nil
}
