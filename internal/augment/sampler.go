package augment

import "math/rand"

// Sampler is the explicit random source for the augmentation run. It backs
// both parameter randomization and the classification coin flip, so a run
// is reproducible from its seed alone.
type Sampler struct {
	rng *rand.Rand
}

// DefaultSeed matches the seed the pipeline has always shipped with.
const DefaultSeed = 666

// NewSampler creates a sampler from a seed.
func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Range returns a random value in the closed interval [x, y]. Both bounds
// below 1 sample continuously; otherwise the draw is an integer in the
// inclusive range. The magnitude-1 threshold is a heuristic discriminator
// between fractional gains/mixes and count-like parameters, applied even
// when only one bound is below 1.
func (s *Sampler) Range(x, y float64) float64 {
	if x < 1 && y < 1 {
		return x + s.rng.Float64()*(y-x)
	}
	lo, hi := int(x), int(y)
	return float64(lo + s.rng.Intn(hi-lo+1))
}

// Coin is a fair coin flip, used for per-track effect inclusion under the
// classification exercise.
func (s *Sampler) Coin() bool {
	return s.rng.Intn(2) == 1
}

// Intn returns a draw in [0, n), used for subsampling with replacement.
func (s *Sampler) Intn(n int) int {
	return s.rng.Intn(n)
}
