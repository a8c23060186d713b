// Package testutil provides common utility functions for testing.
package testutil

// MeanSource is a zero-variance random source: every draw returns the
// distribution mean. It satisfies simulation.RandomSource.
type MeanSource struct{}

// Normal returns mean.
func (MeanSource) Normal(mean, sd float64) float64 {
	return mean
}

// Draw records one call made to a RecordingSource.
type Draw struct {
	Mean   float64
	StdDev float64
}

// RecordingSource returns the mean of every draw and records the requested
// distributions in call order.
type RecordingSource struct {
	Draws []Draw
}

// Normal records the call and returns mean.
func (r *RecordingSource) Normal(mean, sd float64) float64 {
	r.Draws = append(r.Draws, Draw{Mean: mean, StdDev: sd})
	return mean
}

// SequenceSource returns mean + sd*z where z cycles through Z.
type SequenceSource struct {
	Z []float64
	n int
}

// Normal returns the next scripted draw.
func (s *SequenceSource) Normal(mean, sd float64) float64 {
	if len(s.Z) == 0 {
		return mean
	}
	z := s.Z[s.n%len(s.Z)]
	s.n++
	return mean + sd*z
}

// FindScenario finds an item by name in the results slice.
// Returns a pointer to the item if found, nil otherwise.
func FindScenario[T any](results []T, name string, nameOf func(T) string) *T {
	for i := range results {
		if nameOf(results[i]) == name {
			return &results[i]
		}
	}
	return nil
}
