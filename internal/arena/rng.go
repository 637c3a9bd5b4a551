package arena

// SimpleRNG is a deterministic pseudo-random number generator (64-bit LCG).
// The simulation owns its own generator so identical seeds replay identically.
type SimpleRNG struct {
	state uint64
}

// NewSimpleRNG creates a new RNG with the given seed.
func NewSimpleRNG(seed int64) *SimpleRNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &SimpleRNG{state: s}
}

// Next generates the next random uint64.
func (r *SimpleRNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *SimpleRNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	// Low LCG bits have short periods; take the high ones.
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *SimpleRNG) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Symmetric returns a uniform value in [-amplitude, +amplitude].
func (r *SimpleRNG) Symmetric(amplitude float64) float64 {
	if amplitude == 0 {
		return 0
	}
	return (r.Float64()*2 - 1) * amplitude
}
