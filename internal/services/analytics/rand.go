package analytics

import "math/rand"

// Rand is the random source behind the stochastic checks. The volume-surge
// ratio and the order-flow admission draws are placeholders for real
// trailing-metric computation; keeping the source injectable lets a
// production implementation swap it out without touching call sites.
type Rand interface {
	Float64() float64
}

type systemRand struct{}

func (systemRand) Float64() float64 { return rand.Float64() }

// SystemRand returns the default math/rand backed source.
func SystemRand() Rand { return systemRand{} }
