package game

import (
	"github.com/MichaelTJones/pcg"
)

// Rand is the seeded generator behind effect placement and other race
// randomness, so a seed replays the same race
type Rand struct {
	r *pcg.PCG32
}

// NewRand creates a generator from seed
func NewRand(seed uint64) *Rand {
	r := &Rand{r: pcg.NewPCG32()}
	r.r.Seed(seed, 0xda3e39cb94b95bdb)
	return r
}

// Intn returns a uniform int in [0, n). n must be positive.
func (r *Rand) Intn(n int) int {
	return int(r.r.Bounded(uint32(n)))
}

// Float64 returns a uniform float in [0, 1)
func (r *Rand) Float64() float64 {
	return float64(r.r.Random()) / (1 << 32)
}
