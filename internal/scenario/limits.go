package scenario

import "fmt"

// Limits holds the slider-facing range of every field. Limits never reject a
// parameter set; they only flag values an interactive user could not select.
type Limits struct {
	ranges map[Field]Range
}

// DefaultLimits returns the typical slider ranges.
func DefaultLimits() Limits {
	return Limits{ranges: map[Field]Range{
		InterestRate:     {Min: 2, Max: 10},
		UnemploymentRate: {Min: 3, Max: 15},
		HousingDownturn:  {Min: 5, Max: 30},
		BorrowerCredit:   {Min: 600, Max: 850},
	}}
}

// Range returns the slider range for a field.
func (l Limits) Range(f Field) Range {
	if r, ok := l.ranges[f]; ok {
		return r
	}
	r, _ := DomainRange(f)
	return r
}

// WithOverride returns a copy of l with a custom range for one field. The
// range must satisfy minValue <= maxValue and lie within the field's domain range.
func (l Limits) WithOverride(f Field, minValue, maxValue float64) (Limits, error) {
	domain, ok := DomainRange(f)
	if !ok {
		return Limits{}, fmt.Errorf("%w: unknown field %q", ErrInvalidParameter, f)
	}
	if minValue > maxValue {
		return Limits{}, &RangeError{Field: string(f), Min: minValue, Max: maxValue}
	}
	if !domain.Contains(minValue) {
		return Limits{}, &ParameterError{Field: string(f), Value: minValue, Range: domain}
	}
	if !domain.Contains(maxValue) {
		return Limits{}, &ParameterError{Field: string(f), Value: maxValue, Range: domain}
	}

	ranges := make(map[Field]Range, len(l.ranges)+1)
	for k, v := range l.ranges {
		ranges[k] = v
	}
	ranges[f] = Range{Min: minValue, Max: maxValue}
	return Limits{ranges: ranges}, nil
}

// Check returns the fields of p whose values fall outside the slider limits.
func (l Limits) Check(p Parameters) []Field {
	var outside []Field
	for _, f := range Fields() {
		if !l.Range(f).Contains(p.Get(f)) {
			outside = append(outside, f)
		}
	}
	return outside
}

// Ranges returns the slider ranges keyed by field name.
func (l Limits) Ranges() map[string]Range {
	out := make(map[string]Range, 4)
	for _, f := range Fields() {
		out[string(f)] = l.Range(f)
	}
	return out
}
