package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/iwvelando/defi-nest/internal/forecast"
	"github.com/iwvelando/defi-nest/internal/scenario"
	"github.com/iwvelando/defi-nest/internal/simulation"
	"github.com/iwvelando/defi-nest/pkg/constants"
	"go.uber.org/zap"
)

// TestMain is a simple test runner for debugging
func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}

// TestPerformance checks that a server-sized run stays interactive.
func TestPerformance(t *testing.T) {
	logger := zap.NewNop()
	preset, err := scenario.LookupPreset(scenario.Crisis2008)
	if err != nil {
		t.Fatalf("LookupPreset() error = %v", err)
	}
	seed := int64(77)

	start := time.Now()
	result, err := forecast.Run(logger, nil, forecast.Request{
		Name:       preset.Name,
		Parameters: preset.Parameters,
		Limits:     scenario.DefaultLimits(),
		Trials:     constants.DefaultServerMaxTrials,
		Quarterly:  true,
		Seed:       &seed,
		Bins:       constants.DefaultHistogramBins,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	elapsed := time.Since(start)

	t.Logf("Performance metrics:")
	t.Logf("  Trials: %d", result.Results.Len())
	t.Logf("  Forecast: %v", elapsed)

	if elapsed > 5*time.Second {
		t.Errorf("Forecast time %v exceeds 5 second threshold", elapsed)
	}
}

// TestMemoryUsage runs repeated comparisons to surface leaks or races.
func TestMemoryUsage(t *testing.T) {
	seed := int64(9)
	for i := 0; i < 10; i++ {
		if _, err := forecast.CompareAll(context.Background(), zap.NewNop(), nil, constants.DefaultTrials, &seed); err != nil {
			t.Fatalf("CompareAll failed on iteration %d: %v", i, err)
		}
	}

	t.Log("Successfully completed 10 iterations without memory issues")
}

func BenchmarkRun(b *testing.B) {
	engine := simulation.NewEngine(zap.NewNop())
	preset, _ := scenario.LookupPreset(scenario.Custom)
	src := simulation.NewSeededSource(1)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := engine.Run(preset.Parameters, constants.DefaultTrials, src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCompareAll(b *testing.B) {
	seed := int64(1)
	for i := 0; i < b.N; i++ {
		if _, err := forecast.CompareAll(context.Background(), zap.NewNop(), nil, constants.MaxRecommendedTrials, &seed); err != nil {
			b.Fatal(err)
		}
	}
}
