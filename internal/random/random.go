// Package random provides the injectable randomness used by the scoring
// engine. Production code draws from a seeded generator; tests use Fixed so
// every jitter is exactly 1.0 and sentence selection follows rule order.
package random

import (
	"math/rand/v2"
	"slices"
	"sync"
	"time"
)

// Source supplies jitter multipliers and unordered subsets.
type Source interface {
	// Jitter returns a multiplier drawn uniformly from [1-spread, 1+spread].
	Jitter(spread float64) float64
	// Sample picks k distinct indices from [0, n), returned in ascending order.
	// When k >= n every index is returned.
	Sample(n, k int) []int
}

// Seeded is a Source backed by a PCG generator. It is safe for concurrent use.
type Seeded struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a Seeded source. The same seed always yields the same sequence.
func New(seed uint64) *Seeded {
	return &Seeded{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewFromTime seeds from the wall clock.
func NewFromTime() *Seeded {
	return New(uint64(time.Now().UnixNano()))
}

func (s *Seeded) Jitter(spread float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return 1 - spread + s.r.Float64()*2*spread
}

func (s *Seeded) Sample(n, k int) []int {
	if k >= n {
		return firstN(n)
	}
	if k <= 0 {
		return nil
	}
	s.mu.Lock()
	picked := s.r.Perm(n)[:k]
	s.mu.Unlock()
	slices.Sort(picked)
	return picked
}

type fixed struct{}

// Fixed returns a Source with no randomness: Jitter is always 1 and Sample
// returns the first k indices.
func Fixed() Source { return fixed{} }

func (fixed) Jitter(float64) float64 { return 1 }

func (fixed) Sample(n, k int) []int { return firstN(min(n, max(k, 0))) }

type priority struct {
	Source
}

// WithPriority keeps the jitter of src but replaces sampling with rule order.
func WithPriority(src Source) Source { return priority{src} }

func (priority) Sample(n, k int) []int { return firstN(min(n, max(k, 0))) }

func firstN(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
