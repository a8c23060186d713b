package testutil

import (
	"testing"
)

type namedValue struct {
	Name  string
	Value float64
}

func TestFindScenario(t *testing.T) {
	results := []namedValue{
		{Name: "2008 Crisis", Value: 45725.00},
		{Name: "COVID Shock", Value: 50375.00},
		{Name: "Optimistic", Value: 83437.50},
	}
	nameOf := func(v namedValue) string { return v.Name }

	tests := []struct {
		name          string
		searchName    string
		expectFound   bool
		expectedValue float64
	}{
		{
			name:          "Find first scenario",
			searchName:    "2008 Crisis",
			expectFound:   true,
			expectedValue: 45725.00,
		},
		{
			name:          "Find last scenario",
			searchName:    "Optimistic",
			expectFound:   true,
			expectedValue: 83437.50,
		},
		{
			name:        "Search for non-existent scenario",
			searchName:  "Custom",
			expectFound: false,
		},
		{
			name:        "Empty search name",
			searchName:  "",
			expectFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindScenario(results, tt.searchName, nameOf)
			if !tt.expectFound {
				if result != nil {
					t.Errorf("Expected nil result, got %+v", *result)
				}
				return
			}
			if result == nil {
				t.Fatalf("Expected to find scenario %q", tt.searchName)
			}
			if result.Value != tt.expectedValue {
				t.Errorf("Expected value %.2f, got %.2f", tt.expectedValue, result.Value)
			}
		})
	}
}

func TestFindScenarioReturnsPointerIntoSlice(t *testing.T) {
	results := []namedValue{{Name: "Custom", Value: 1}}
	found := FindScenario(results, "Custom", func(v namedValue) string { return v.Name })
	found.Value = 2
	if results[0].Value != 2 {
		t.Errorf("Expected FindScenario to return a pointer into the slice")
	}
}

func TestMeanSource(t *testing.T) {
	var src MeanSource
	for _, mean := range []float64{0, 6.5, 620} {
		if got := src.Normal(mean, 50); got != mean {
			t.Errorf("Normal(%v, 50) = %v, expected %v", mean, got, mean)
		}
	}
}

func TestRecordingSource(t *testing.T) {
	src := &RecordingSource{}
	src.Normal(1, 2)
	src.Normal(3, 4)
	if len(src.Draws) != 2 {
		t.Fatalf("expected 2 draws, got %d", len(src.Draws))
	}
	if src.Draws[1] != (Draw{Mean: 3, StdDev: 4}) {
		t.Errorf("unexpected second draw %+v", src.Draws[1])
	}
}

func TestSequenceSource(t *testing.T) {
	src := &SequenceSource{Z: []float64{1, -1}}
	expected := []float64{12, 8, 12}
	for i, want := range expected {
		if got := src.Normal(10, 2); got != want {
			t.Errorf("draw %d = %v, expected %v", i, got, want)
		}
	}

	empty := &SequenceSource{}
	if got := empty.Normal(5, 1); got != 5 {
		t.Errorf("empty SequenceSource draw = %v, expected 5", got)
	}
}
