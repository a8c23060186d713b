package simulation

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// RandomSource draws normally distributed variates. Implementations are not
// required to be safe for concurrent use.
type RandomSource interface {
	Normal(mean, sd float64) float64
}

// seedMix spreads consecutive seeds and stream numbers across the PCG state.
const seedMix uint64 = 0x9e3779b97f4a7c15

type seededSource struct {
	rng *rand.Rand
}

// NewSeededSource returns a deterministic RandomSource. Two sources built
// from the same seed produce the same sequence of draws.
func NewSeededSource(seed int64) RandomSource {
	s := uint64(seed)
	return &seededSource{rng: rand.New(rand.NewPCG(s, s^seedMix))}
}

func (s *seededSource) Normal(mean, sd float64) float64 {
	return mean + sd*s.rng.NormFloat64()
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// DeriveSeed returns the seed of an independent stream numbered stream that
// belongs to the run seeded with seed. Stream 0 is the seed itself.
func DeriveSeed(seed int64, stream int) int64 {
	return int64(uint64(seed) + uint64(stream)*seedMix)
}
