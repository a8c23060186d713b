// Package output provides utilities for formatting and displaying forecast results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/defi-nest/internal/forecast"
	"github.com/iwvelando/defi-nest/internal/scenario"
	"github.com/iwvelando/defi-nest/internal/simulation"
	"github.com/iwvelando/defi-nest/internal/statistics"
	"github.com/iwvelando/defi-nest/pkg/constants"
	"github.com/iwvelando/defi-nest/pkg/format"
	"github.com/iwvelando/defi-nest/pkg/mathutil"
	"github.com/iwvelando/defi-nest/pkg/optimization"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const histogramWidth = 40

// PrettyFormat writes a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, result *forecast.Forecast) {
	p := message.NewPrinter(language.English)

	_, _ = fmt.Fprintf(w, "--- Results for scenario %s ---\n", result.Name)
	_, _ = fmt.Fprintf(w, "Run ID: %s\n", result.RunID)
	_, _ = fmt.Fprintf(w, "Seed:   %d\n\n", result.Seed)

	_, _ = fmt.Fprintf(w, "Input                         | Value\n")
	_, _ = fmt.Fprintf(w, "_____                         | _____\n")
	for _, field := range scenario.Fields() {
		_, _ = p.Fprintf(w, "%-29s | %.2f\n", field.Label(), result.Parameters.Get(field))
	}
	_, _ = fmt.Fprintf(w, "\n")

	report := result.Report
	_, _ = fmt.Fprintf(w, "Statistic            | Value\n")
	_, _ = fmt.Fprintf(w, "_________            | _____\n")
	_, _ = p.Fprintf(w, "%-20s | %d\n", "Trials", report.Trials)
	_, _ = fmt.Fprintf(w, "%-20s | %s\n", "Mean Token Value", format.Currency(report.Mean))
	_, _ = fmt.Fprintf(w, "%-20s | %s\n", "Standard Deviation", format.Currency(report.StdDev))
	_, _ = fmt.Fprintf(w, "%-20s | %s\n", "5th Percentile", format.Currency(report.P5))
	_, _ = fmt.Fprintf(w, "%-20s | %s\n", "95th Percentile", format.Currency(report.P95))
	_, _ = fmt.Fprintf(w, "%-20s | %s\n", "Expected Value", format.Currency(result.ExpectedValue))
	_, _ = fmt.Fprintf(w, "%-20s | %.1f%%\n", "Mean vs Base Value",
		mathutil.CalculatePercentage(report.Mean, constants.BaseTokenValue))
	_, _ = fmt.Fprintf(w, "%-20s | %s\n", "Risk", report.Risk)
	_, _ = fmt.Fprintf(w, "\n%s\n", report.Risk.Advisory())

	if result.Quarterly != nil {
		_, _ = fmt.Fprintf(w, "\n")
		QuarterlyFormat(w, result.Quarterly)
	}

	if len(result.Histogram) > 0 {
		_, _ = fmt.Fprintf(w, "\n")
		HistogramFormat(w, result.Histogram)
	}

	if len(result.Breakeven) > 0 {
		_, _ = fmt.Fprintf(w, "\n")
		BreakevenFormat(w, result.Breakeven)
	}

	for _, warning := range result.Warnings {
		_, _ = fmt.Fprintf(w, "\nWarning: %s", warning)
	}
	if len(result.Warnings) > 0 {
		_, _ = fmt.Fprintf(w, "\n")
	}
}

// QuarterlyFormat writes the quarterly mean and 5th percentile table.
func QuarterlyFormat(w io.Writer, series *simulation.QuarterlySeries) {
	_, _ = fmt.Fprintf(w, "--- Token value trends over 4 quarters ---\n")
	_, _ = fmt.Fprintf(w, "Quarter | Trials | Mean Token Value | 5th Percentile Value\n")
	_, _ = fmt.Fprintf(w, "_______ | ______ | ________________ | ____________________\n")
	for _, q := range series {
		_, _ = fmt.Fprintf(w, "%-7s | %6d | %16s | %20s\n", q.Label, q.Results.Len(), format.Currency(q.Mean), format.Currency(q.P5))
	}
}

// HistogramFormat writes a horizontal bar chart of the distribution.
func HistogramFormat(w io.Writer, bins []statistics.Bin) {
	p := message.NewPrinter(language.English)

	maxCount := 0
	for _, bin := range bins {
		if bin.Count > maxCount {
			maxCount = bin.Count
		}
	}

	_, _ = fmt.Fprintf(w, "--- Token value distribution ---\n")
	for _, bin := range bins {
		width := 0
		if maxCount > 0 {
			width = bin.Count * histogramWidth / maxCount
		}
		bar := fmt.Sprintf("%-*s", histogramWidth, strings.Repeat("#", width))
		_, _ = p.Fprintf(w, "%12.0f - %-12.0f | %s %d\n", bin.Lower, bin.Upper, bar, bin.Count)
	}
}

// BreakevenFormat writes the input values at which risk changes level.
func BreakevenFormat(w io.Writer, summaries []optimization.Summary) {
	_, _ = fmt.Fprintf(w, "--- Break-even stress levels (mean token value %s) ---\n", format.Currency(constants.RiskThreshold))
	_, _ = fmt.Fprintf(w, "Input            | Current | Break-even | Headroom\n")
	_, _ = fmt.Fprintf(w, "_____            | _______ | __________ | ________\n")
	for _, s := range summaries {
		breakeven := s.ValueDisplay
		if !s.Converged {
			breakeven = "none"
		}
		_, _ = fmt.Fprintf(w, "%-16s | %7s | %10s | %s\n", s.Field, s.OriginalDisplay, breakeven, format.Currency(s.Headroom))
		for _, note := range s.Notes {
			_, _ = fmt.Fprintf(w, "    %s\n", note)
		}
	}
}

// ComparisonFormat writes one summary row per scenario.
func ComparisonFormat(w io.Writer, results []forecast.Forecast) {
	_, _ = fmt.Fprintf(w, "Scenario     | Mean Token Value | Standard Deviation | 5th Percentile | Risk\n")
	_, _ = fmt.Fprintf(w, "________     | ________________ | __________________ | ______________ | ____\n")
	for _, result := range results {
		_, _ = fmt.Fprintf(w, "%-12s | %16s | %18s | %14s | %s\n",
			result.Name,
			format.Currency(result.Report.Mean),
			format.Currency(result.Report.StdDev),
			format.Currency(result.Report.P5),
			result.Report.Risk,
		)
	}
}

// CsvFormat writes the trial values in the export format: a single header
// column and one unrounded value per row.
func CsvFormat(w io.Writer, results simulation.ResultSet) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{constants.CSVHeader}); err != nil {
		return err
	}
	for i := 0; i < results.Len(); i++ {
		if err := writer.Write([]string{strconv.FormatFloat(results.At(i), 'f', -1, 64)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV export as a string.
func CsvString(results simulation.ResultSet) string {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, results); err != nil {
		return ""
	}
	return buf.String()
}

// JSONFormat writes the forecast summaries as indented JSON.
func JSONFormat(w io.Writer, results ...*forecast.Forecast) error {
	summaries := make([]forecast.Summary, 0, len(results))
	for _, result := range results {
		summaries = append(summaries, result.Summary())
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if len(summaries) == 1 {
		return encoder.Encode(summaries[0])
	}
	return encoder.Encode(summaries)
}
