package scenario

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		ir, ur, hd  float64
		bc          float64
		expectError bool
		field       string
	}{
		{"Typical values", 5.0, 6.0, 15.0, 700, false, ""},
		{"All lower bounds", 0, 0, 0, 300, false, ""},
		{"All upper bounds", 20, 20, 50, 850, false, ""},
		{"Negative interest rate", -0.1, 6.0, 15.0, 700, true, "interestRate"},
		{"Unemployment too high", 5.0, 20.5, 15.0, 700, true, "unemploymentRate"},
		{"Downturn too high", 5.0, 6.0, 51, 700, true, "housingDownturn"},
		{"Credit too low", 5.0, 6.0, 15.0, 299, true, "borrowerCredit"},
		{"NaN interest rate", math.NaN(), 6.0, 15.0, 700, true, "interestRate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.ir, tt.ur, tt.hd, tt.bc)
			if tt.expectError {
				if err == nil {
					t.Fatalf("New() expected error but got none")
				}
				if !errors.Is(err, ErrInvalidParameter) {
					t.Fatalf("New() error = %v, expected ErrInvalidParameter", err)
				}
				var pe *ParameterError
				if !errors.As(err, &pe) {
					t.Fatalf("New() error = %T, expected *ParameterError", err)
				}
				if pe.Field != tt.field {
					t.Errorf("ParameterError.Field = %s, expected %s", pe.Field, tt.field)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() unexpected error = %v", err)
			}
			if p.InterestRate() != tt.ir || p.UnemploymentRate() != tt.ur ||
				p.HousingDownturn() != tt.hd || p.BorrowerCredit() != tt.bc {
				t.Errorf("New() = %v, fields not preserved", p)
			}
		})
	}
}

func TestNewBorrowerCreditTooHigh(t *testing.T) {
	_, err := New(6.5, 9.5, 25.0, 900)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}

	var pe *ParameterError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParameterError, got %T", err)
	}
	if pe.Field != "borrowerCredit" {
		t.Errorf("expected field borrowerCredit, got %s", pe.Field)
	}
	if pe.Value != 900 {
		t.Errorf("expected value 900, got %v", pe.Value)
	}
	if pe.Range != (Range{Min: 300, Max: 850}) {
		t.Errorf("expected range [300, 850], got %s", pe.Range)
	}
	msg := err.Error()
	for _, want := range []string{"borrowerCredit", "900", "[300, 850]"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}
}

func TestWith(t *testing.T) {
	base := MustNew(5.0, 6.0, 15.0, 700)

	updated, err := base.With(HousingDownturn, 40)
	if err != nil {
		t.Fatalf("With() unexpected error = %v", err)
	}
	if updated.HousingDownturn() != 40 {
		t.Errorf("expected housing downturn 40, got %v", updated.HousingDownturn())
	}
	if base.HousingDownturn() != 15 {
		t.Errorf("With() mutated receiver: housing downturn %v", base.HousingDownturn())
	}

	if _, err := base.With(InterestRate, 25); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("With() out of range expected ErrInvalidParameter, got %v", err)
	}
	if _, err := base.With(Field("bogus"), 1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("With() unknown field expected ErrInvalidParameter, got %v", err)
	}
}

func TestPresetTable(t *testing.T) {
	expected := map[string][4]float64{
		Crisis2008: {6.5, 9.5, 25.0, 620},
		CovidShock: {3.5, 14.0, 20.0, 650},
		Optimistic: {2.5, 4.0, 5.0, 750},
		Custom:     {5.0, 6.0, 15.0, 700},
	}

	all := Presets()
	if len(all) != len(expected) {
		t.Fatalf("expected %d presets, got %d", len(expected), len(all))
	}

	limits := DefaultLimits()
	for _, preset := range all {
		want, ok := expected[preset.Name]
		if !ok {
			t.Errorf("unexpected preset %q", preset.Name)
			continue
		}
		p := preset.Parameters
		got := [4]float64{p.InterestRate(), p.UnemploymentRate(), p.HousingDownturn(), p.BorrowerCredit()}
		if got != want {
			t.Errorf("preset %s = %v, expected %v", preset.Name, got, want)
		}
		if outside := limits.Check(p); len(outside) != 0 {
			t.Errorf("preset %s outside slider limits for %v", preset.Name, outside)
		}
	}
}

func TestLookupPreset(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		expectError bool
	}{
		{"Exact name", "2008 Crisis", Crisis2008, false},
		{"Case insensitive", "covid shock", CovidShock, false},
		{"Surrounding whitespace", "  Optimistic ", Optimistic, false},
		{"Empty selects default", "", Custom, false},
		{"Unknown preset", "Dot-com Bust", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preset, err := LookupPreset(tt.input)
			if tt.expectError {
				if !errors.Is(err, ErrUnknownPreset) {
					t.Errorf("LookupPreset(%q) error = %v, expected ErrUnknownPreset", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LookupPreset(%q) unexpected error = %v", tt.input, err)
			}
			if preset.Name != tt.expected {
				t.Errorf("LookupPreset(%q) = %s, expected %s", tt.input, preset.Name, tt.expected)
			}
		})
	}
}

func TestPresetsReturnsCopy(t *testing.T) {
	all := Presets()
	all[0].Name = "mutated"
	if Presets()[0].Name != Crisis2008 {
		t.Errorf("Presets() exposed internal table")
	}
}
