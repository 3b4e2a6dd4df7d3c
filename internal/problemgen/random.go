package problemgen

import "math/rand/v2"

// Source is the only randomness the generator consumes. Intn returns a
// uniform value in [0, n) and panics if n <= 0.
type Source interface {
	Intn(n int) int
}

type pcgSource struct {
	r *rand.Rand
}

func (s *pcgSource) Intn(n int) int { return s.r.IntN(n) }

// NewSource returns a deterministic Source for the given seed. It is not
// safe for concurrent use.
func NewSource(seed uint64) Source {
	return &pcgSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomSource returns a Source seeded from the runtime's random state.
func NewRandomSource() Source {
	return NewSource(rand.Uint64())
}

// intBetween returns a uniform integer in the inclusive range spanned by
// a and b, in either order.
func intBetween(src Source, a, b int) int {
	lo, hi := RangeSpec{a, b}.Bounds()
	return lo + src.Intn(hi-lo+1)
}

func coinFlip(src Source) bool {
	return src.Intn(2) == 0
}
