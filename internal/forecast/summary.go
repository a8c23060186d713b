package forecast

import (
	"github.com/iwvelando/defi-nest/internal/statistics"
	"github.com/iwvelando/defi-nest/pkg/format"
	"github.com/iwvelando/defi-nest/pkg/mathutil"
	"github.com/iwvelando/defi-nest/pkg/optimization"
)

// Summary is the serializable view of a Forecast, without the raw trials.
type Summary struct {
	RunID         string                 `json:"runId"`
	Scenario      string                 `json:"scenario"`
	Parameters    map[string]float64     `json:"parameters"`
	Seed          int64                  `json:"seed"`
	Report        statistics.Report      `json:"report"`
	Formatted     FormattedReport        `json:"formatted"`
	ExpectedValue float64                `json:"expectedValue"`
	Risk          statistics.RiskLevel   `json:"risk"`
	Advisory      string                 `json:"advisory"`
	Quarterly     []QuarterSummary       `json:"quarterly,omitempty"`
	Histogram     []statistics.Bin       `json:"histogram,omitempty"`
	Breakeven     []optimization.Summary `json:"breakeven,omitempty"`
	Warnings      []string               `json:"warnings,omitempty"`
	Duration      string                 `json:"duration"`
}

// FormattedReport holds the display strings of the headline metrics.
type FormattedReport struct {
	Mean   string `json:"mean"`
	StdDev string `json:"stdDev"`
	P5     string `json:"p5"`
	P95    string `json:"p95"`
}

// QuarterSummary is one point of the quarterly series, rounded to cents.
type QuarterSummary struct {
	Label  string  `json:"label"`
	Trials int     `json:"trials"`
	Mean   float64 `json:"mean"`
	P5     float64 `json:"p5"`
}

// Summary builds the serializable view of the forecast.
func (f *Forecast) Summary() Summary {
	s := Summary{
		RunID:      f.RunID,
		Scenario:   f.Name,
		Parameters: f.Parameters.Values(),
		Seed:       f.Seed,
		Report:     f.Report,
		Formatted: FormattedReport{
			Mean:   format.Currency(f.Report.Mean),
			StdDev: format.Currency(f.Report.StdDev),
			P5:     format.Currency(f.Report.P5),
			P95:    format.Currency(f.Report.P95),
		},
		ExpectedValue: f.ExpectedValue,
		Risk:          f.Report.Risk,
		Advisory:      f.Report.Risk.Advisory(),
		Histogram:     f.Histogram,
		Breakeven:     f.Breakeven,
		Warnings:      f.Warnings,
		Duration:      f.Duration.String(),
	}

	if f.Quarterly != nil {
		for _, q := range *f.Quarterly {
			s.Quarterly = append(s.Quarterly, QuarterSummary{
				Label:  q.Label,
				Trials: q.Results.Len(),
				Mean:   mathutil.Round(q.Mean),
				P5:     mathutil.Round(q.P5),
			})
		}
	}

	return s
}
