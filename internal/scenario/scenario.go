// Package scenario defines the macroeconomic stress inputs of a simulation,
// the ranges they are validated against, and the named preset table.
package scenario

import (
	"fmt"
	"math"
)

// Field names a single stress input.
type Field string

// Stress input fields.
const (
	InterestRate     Field = "interestRate"
	UnemploymentRate Field = "unemploymentRate"
	HousingDownturn  Field = "housingDownturn"
	BorrowerCredit   Field = "borrowerCredit"
)

// Fields lists every stress input in display order.
func Fields() []Field {
	return []Field{InterestRate, UnemploymentRate, HousingDownturn, BorrowerCredit}
}

// Label returns the human-readable name of the field.
func (f Field) Label() string {
	switch f {
	case InterestRate:
		return "Interest Rate (%)"
	case UnemploymentRate:
		return "Unemployment Rate (%)"
	case HousingDownturn:
		return "Housing Downturn Impact (%)"
	case BorrowerCredit:
		return "Average Borrower Credit Score"
	default:
		return string(f)
	}
}

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64 `json:"min" yaml:"min" mapstructure:"min"`
	Max float64 `json:"max" yaml:"max" mapstructure:"max"`
}

// Contains reports whether v lies within the range. NaN is never contained.
func (r Range) Contains(v float64) bool {
	return !math.IsNaN(v) && v >= r.Min && v <= r.Max
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

// DomainRange returns the range every value of the field must satisfy,
// regardless of any slider limits.
func DomainRange(f Field) (Range, bool) {
	switch f {
	case InterestRate, UnemploymentRate:
		return Range{Min: 0, Max: 20}, true
	case HousingDownturn:
		return Range{Min: 0, Max: 50}, true
	case BorrowerCredit:
		return Range{Min: 300, Max: 850}, true
	default:
		return Range{}, false
	}
}

// Parameters holds one validated set of stress inputs. The zero value is not
// valid; use New or a Preset.
type Parameters struct {
	interestRate     float64
	unemploymentRate float64
	housingDownturn  float64
	borrowerCredit   float64
}

// New validates the four inputs against their domain ranges.
func New(interestRate, unemploymentRate, housingDownturn, borrowerCredit float64) (Parameters, error) {
	p := Parameters{
		interestRate:     interestRate,
		unemploymentRate: unemploymentRate,
		housingDownturn:  housingDownturn,
		borrowerCredit:   borrowerCredit,
	}
	for _, f := range Fields() {
		if err := checkDomain(f, p.Get(f)); err != nil {
			return Parameters{}, err
		}
	}
	return p, nil
}

// MustNew is like New but panics on invalid input. Intended for literals.
func MustNew(interestRate, unemploymentRate, housingDownturn, borrowerCredit float64) Parameters {
	p, err := New(interestRate, unemploymentRate, housingDownturn, borrowerCredit)
	if err != nil {
		panic(err)
	}
	return p
}

func checkDomain(f Field, v float64) error {
	r, ok := DomainRange(f)
	if !ok {
		return fmt.Errorf("%w: unknown field %q", ErrInvalidParameter, f)
	}
	if !r.Contains(v) {
		return &ParameterError{Field: string(f), Value: v, Range: r}
	}
	return nil
}

// InterestRate returns the mean interest rate in percent.
func (p Parameters) InterestRate() float64 { return p.interestRate }

// UnemploymentRate returns the mean unemployment rate in percent.
func (p Parameters) UnemploymentRate() float64 { return p.unemploymentRate }

// HousingDownturn returns the mean housing downturn impact in percent.
func (p Parameters) HousingDownturn() float64 { return p.housingDownturn }

// BorrowerCredit returns the mean borrower credit score.
func (p Parameters) BorrowerCredit() float64 { return p.borrowerCredit }

// Get returns the value of a field. Unknown fields return NaN.
func (p Parameters) Get(f Field) float64 {
	switch f {
	case InterestRate:
		return p.interestRate
	case UnemploymentRate:
		return p.unemploymentRate
	case HousingDownturn:
		return p.housingDownturn
	case BorrowerCredit:
		return p.borrowerCredit
	default:
		return math.NaN()
	}
}

// With returns a copy of p with one field replaced, validated like New.
func (p Parameters) With(f Field, v float64) (Parameters, error) {
	if err := checkDomain(f, v); err != nil {
		return Parameters{}, err
	}
	switch f {
	case InterestRate:
		p.interestRate = v
	case UnemploymentRate:
		p.unemploymentRate = v
	case HousingDownturn:
		p.housingDownturn = v
	case BorrowerCredit:
		p.borrowerCredit = v
	}
	return p, nil
}

// Values returns the parameters keyed by field name.
func (p Parameters) Values() map[string]float64 {
	values := make(map[string]float64, 4)
	for _, f := range Fields() {
		values[string(f)] = p.Get(f)
	}
	return values
}

func (p Parameters) String() string {
	return fmt.Sprintf("interestRate=%g unemploymentRate=%g housingDownturn=%g borrowerCredit=%g",
		p.interestRate, p.unemploymentRate, p.housingDownturn, p.borrowerCredit)
}
