package simulation

// ResultSet is the ordered, immutable collection of token values produced by
// one simulation run.
type ResultSet struct {
	values []float64
}

// NewResultSet copies values into a ResultSet.
func NewResultSet(values []float64) ResultSet {
	v := make([]float64, len(values))
	copy(v, values)
	return ResultSet{values: v}
}

// Len returns the number of trials.
func (r ResultSet) Len() int {
	return len(r.values)
}

// At returns the token value of trial i in generation order.
func (r ResultSet) At(i int) float64 {
	return r.values[i]
}

// Values returns a copy of the token values in generation order.
func (r ResultSet) Values() []float64 {
	out := make([]float64, len(r.values))
	copy(out, r.values)
	return out
}
