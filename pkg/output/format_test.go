package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/iwvelando/defi-nest/internal/forecast"
	"github.com/iwvelando/defi-nest/internal/scenario"
	"github.com/iwvelando/defi-nest/internal/simulation"
	"github.com/iwvelando/defi-nest/internal/statistics"
	"github.com/iwvelando/defi-nest/pkg/constants"
	"github.com/iwvelando/defi-nest/pkg/optimization"
	"go.uber.org/zap"
)

func sampleForecast(t *testing.T, quarterly bool, bins int) *forecast.Forecast {
	t.Helper()
	preset, err := scenario.LookupPreset(scenario.Crisis2008)
	if err != nil {
		t.Fatalf("LookupPreset() error = %v", err)
	}
	seed := int64(11)
	result, err := forecast.Run(zap.NewNop(), nil, forecast.Request{
		Name:       preset.Name,
		Parameters: preset.Parameters,
		Limits:     scenario.DefaultLimits(),
		Trials:     200,
		Quarterly:  quarterly,
		Seed:       &seed,
		Bins:       bins,
	})
	if err != nil {
		t.Fatalf("forecast.Run() error = %v", err)
	}
	return result
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, sampleForecast(t, true, 10))
	output := buf.String()

	expected := []string{
		"--- Results for scenario 2008 Crisis ---",
		"Seed:   11",
		"Interest Rate (%)",
		"Borrower Credit Score",
		"Mean Token Value",
		"5th Percentile",
		"95th Percentile",
		"$45,725.00",
		"ELEVATED",
		statistics.Elevated.Advisory(),
		"--- Token value trends over 4 quarters ---",
		"Q1      |     50 |",
		"Q4      |     50 |",
		"--- Token value distribution ---",
	}
	for _, s := range expected {
		if !strings.Contains(output, s) {
			t.Errorf("PrettyFormat output missing %q", s)
		}
	}
}

func TestPrettyFormatOptionalSections(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, sampleForecast(t, false, 0))
	output := buf.String()

	if strings.Contains(output, "over 4 quarters") {
		t.Errorf("PrettyFormat printed a quarterly table without a quarterly run")
	}
	if strings.Contains(output, "distribution") {
		t.Errorf("PrettyFormat printed a histogram without bins")
	}
	if strings.Contains(output, "Warning:") {
		t.Errorf("PrettyFormat printed warnings for a clean run")
	}
}

func TestPrettyFormatWarnings(t *testing.T) {
	result := sampleForecast(t, false, 0)
	result.Warnings = []string{"trial count 50 is outside the recommended range"}

	var buf bytes.Buffer
	PrettyFormat(&buf, result)
	if !strings.Contains(buf.String(), "Warning: trial count 50") {
		t.Errorf("PrettyFormat missing warning, got:\n%s", buf.String())
	}
}

func TestHistogramFormat(t *testing.T) {
	bins := []statistics.Bin{
		{Lower: 40000, Upper: 45000, Count: 2},
		{Lower: 45000, Upper: 50000, Count: 4},
		{Lower: 50000, Upper: 55000, Count: 0},
	}

	var buf bytes.Buffer
	HistogramFormat(&buf, bins)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], "40,000") {
		t.Errorf("expected grouped lower bound, got %q", lines[1])
	}
	if got := strings.Count(lines[2], "#"); got != histogramWidth {
		t.Errorf("expected the fullest bin to span %d columns, got %d", histogramWidth, got)
	}
	if got := strings.Count(lines[1], "#"); got != histogramWidth/2 {
		t.Errorf("expected half-width bar, got %d", got)
	}
	if strings.Contains(lines[3], "#") {
		t.Errorf("expected empty bar for empty bin, got %q", lines[3])
	}
}

func TestComparisonFormat(t *testing.T) {
	seed := int64(3)
	results, err := forecast.CompareAll(t.Context(), zap.NewNop(), nil, 100, &seed)
	if err != nil {
		t.Fatalf("CompareAll() error = %v", err)
	}

	var buf bytes.Buffer
	ComparisonFormat(&buf, results)
	output := buf.String()

	for _, name := range scenario.PresetNames() {
		if !strings.Contains(output, name) {
			t.Errorf("ComparisonFormat missing scenario %s", name)
		}
	}
	if lines := strings.Count(output, "\n"); lines != 2+len(results) {
		t.Errorf("expected %d lines, got %d", 2+len(results), lines)
	}
}

func TestCsvFormat(t *testing.T) {
	results := simulation.NewResultSet([]float64{45725, 51234.56789, 39000.1})

	var buf bytes.Buffer
	if err := CsvFormat(&buf, results); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV output: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d", len(records))
	}
	if records[0][0] != constants.CSVHeader {
		t.Errorf("expected header %q, got %q", constants.CSVHeader, records[0][0])
	}
	for i, record := range records[1:] {
		v, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			t.Fatalf("row %d is not numeric: %v", i, err)
		}
		if v != results.At(i) {
			t.Errorf("row %d = %v, expected full precision %v", i, v, results.At(i))
		}
	}
}

func TestCsvString(t *testing.T) {
	got := CsvString(simulation.NewResultSet([]float64{100000, 0.5}))
	expected := "Simulated Token Value\n100000\n0.5\n"
	if got != expected {
		t.Errorf("CsvString() = %q, expected %q", got, expected)
	}

	// plain decimal notation, never an exponent
	got = CsvString(simulation.NewResultSet([]float64{1e21, 0.0000001}))
	expected = "Simulated Token Value\n1000000000000000000000\n0.0000001\n"
	if got != expected {
		t.Errorf("CsvString() = %q, expected %q", got, expected)
	}

	if got := CsvString(simulation.NewResultSet(nil)); got != "Simulated Token Value\n" {
		t.Errorf("CsvString() of empty results = %q", got)
	}
}

func TestJSONFormat(t *testing.T) {
	result := sampleForecast(t, true, 0)

	var buf bytes.Buffer
	if err := JSONFormat(&buf, result); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}

	var summary forecast.Summary
	if err := json.Unmarshal(buf.Bytes(), &summary); err != nil {
		t.Fatalf("failed to decode single summary: %v", err)
	}
	if summary.Scenario != scenario.Crisis2008 || summary.Report.Trials != 200 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if len(summary.Quarterly) != 4 {
		t.Errorf("expected 4 quarters, got %d", len(summary.Quarterly))
	}

	buf.Reset()
	if err := JSONFormat(&buf, result, result); err != nil {
		t.Fatalf("JSONFormat() error = %v", err)
	}
	var summaries []forecast.Summary
	if err := json.Unmarshal(buf.Bytes(), &summaries); err != nil {
		t.Fatalf("failed to decode summary list: %v", err)
	}
	if len(summaries) != 2 {
		t.Errorf("expected 2 summaries, got %d", len(summaries))
	}
}

func TestBreakevenFormat(t *testing.T) {
	summaries := []optimization.Summary{
		{
			Field:           "housingDownturn",
			OriginalDisplay: "5.00%",
			ValueDisplay:    "18.83%",
			Headroom:        12968.75,
			Converged:       true,
		},
		{
			Field:           "interestRate",
			OriginalDisplay: "2.50%",
			ValueDisplay:    "2.50%",
			Headroom:        12968.75,
			Notes:           []string{"risk stays NORMAL for interestRate from 2.00% to 10.00%"},
		},
	}

	var buf bytes.Buffer
	BreakevenFormat(&buf, summaries)
	out := buf.String()

	for _, expected := range []string{
		"$70,000.00",
		"housingDownturn  |   5.00% |     18.83% | $12,968.75",
		"interestRate     |   2.50% |       none |",
		"risk stays NORMAL",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("BreakevenFormat output missing %q, got:\n%s", expected, out)
		}
	}
}
