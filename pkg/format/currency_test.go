package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected string
	}{
		{"Zero", 0, "$0.00"},
		{"Under a thousand", 999.994, "$999.99"},
		{"Fixture token value", 45725.0, "$45,725.00"},
		{"Rounds half away from zero", 1234.565, "$1,234.57"},
		{"Million", 1234567.891, "$1,234,567.89"},
		{"Negative", -1234.5, "-$1,234.50"},
		{"Negative rounds to zero", -0.001, "$0.00"},
		{"Carry into thousands", 999.999, "$1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.input); got != tt.expected {
				t.Errorf("Currency(%v) = %s, expected %s", tt.input, got, tt.expected)
			}
		})
	}
}
