package chip8

import "math/rand"

// RandSource supplies the random bytes CXNN masks against NN. It's an
// interface rather than a bare *rand.Rand so tests can swap in a
// deterministic counter instead of depending on a PRNG's internals.
type RandSource interface {
	// Byte returns the next pseudo-random byte.
	Byte() byte
}

// mathRandSource adapts math/rand to RandSource. It's the default used by
// NewVM when no source is supplied.
type mathRandSource struct {
	r *rand.Rand
}

// newMathRandSource returns a RandSource seeded with seed. Two VMs
// constructed with the same seed produce identical CXNN sequences.
func newMathRandSource(seed int64) *mathRandSource {
	return &mathRandSource{r: rand.New(rand.NewSource(seed))}
}

func (s *mathRandSource) Byte() byte {
	return byte(s.r.Intn(256))
}

// counterRandSource is a minimal deterministic RandSource for tests: it
// just counts up and wraps, so assertions on CXNN's output don't need to
// reason about a PRNG's internals.
type counterRandSource struct {
	n byte
}

func (s *counterRandSource) Byte() byte {
	v := s.n
	s.n++
	return v
}
