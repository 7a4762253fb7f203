package service

import (
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Perturbation supplies the multiplicative noise factor applied to yield
// estimates.
type Perturbation interface {
	Factor() float64
}

// FixedPerturbation always returns the same factor. A value of 1.0 disables
// noise entirely.
type FixedPerturbation float64

// Factor returns the fixed factor.
func (f FixedPerturbation) Factor() float64 {
	return float64(f)
}

// NormalPerturbation draws factors from a normal distribution. It is safe for
// concurrent use.
type NormalPerturbation struct {
	mu   sync.Mutex
	dist distuv.Normal
}

// NewNormalPerturbation creates a normal noise source with its own seeded PRNG.
func NewNormalPerturbation(seed int64, mean, stdDev float64) *NormalPerturbation {
	return &NormalPerturbation{
		dist: distuv.Normal{Mu: mean, Sigma: stdDev, Src: rand.NewSource(uint64(seed))},
	}
}

// Factor draws one sample.
func (p *NormalPerturbation) Factor() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dist.Rand()
}
