package league

import "math/rand"

// Rand is the single random source every stochastic decision draws from:
// archetype assignment, proposal probability gates, pairing shuffles. Injecting
// it keeps evaluation runs reproducible under a fixed seed.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded source backed by math/rand.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// Intn derives a uniform int in [0,n) from a Rand. n <= 0 returns 0.
func Intn(r Rand, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(r.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Shuffle permutes n elements via the supplied swap, Fisher-Yates over the
// injected source.
func Shuffle(r Rand, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := Intn(r, i+1)
		swap(i, j)
	}
}
