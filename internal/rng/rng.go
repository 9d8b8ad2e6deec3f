// Package rng provides the seeded random source shared by every generation
// stage. Its whole state is a single uint64, so a run can be replayed by
// restoring the state captured before it.
package rng

// RNG is a simple seeded random number generator (LCG)
type RNG struct {
	state uint64
}

// New creates a new RNG with the given seed
func New(seed uint64) *RNG {
	return &RNG{state: seed}
}

// State returns the current internal state.
func (r *RNG) State() uint64 {
	return r.state
}

// SetState restores a state previously returned by State.
func (r *RNG) SetState(state uint64) {
	r.state = state
}

// Uint64 returns a pseudo-random uint64
func (r *RNG) Uint64() uint64 {
	// LCG parameters from Knuth's MMIX
	r.state = r.state*6364136223846793005 + 1442695040888963407
	// the low bits of an LCG are weak; fold the high half in
	return r.state ^ (r.state >> 29)
}

// Float64 returns a pseudo-random float64 in [0, 1)
func (r *RNG) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// Intn returns a pseudo-random int in [0, n)
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Uint64() % uint64(n))
}

// IntRange returns a pseudo-random int in [lo, hi]
func (r *RNG) IntRange(lo, hi int) int {
	if lo >= hi {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Chance returns true with probability p
func (r *RNG) Chance(p float64) bool {
	return r.Float64() < p
}

// Pick returns a random element of items, or the zero value when empty.
func Pick[T any](r *RNG, items []T) T {
	if len(items) == 0 {
		var zero T
		return zero
	}
	return items[r.Intn(len(items))]
}

// Shuffle randomly reorders a slice in place
func Shuffle[T any](r *RNG, items []T) {
	for i := len(items) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
