package expreplay

import (
	"golang.org/x/exp/rand"
)

// Selector implements functionality for choosing which stored
// transitions should be sampled from an experience replay buffer
type Selector interface {
	// choose selects n distinct indices in [0, size) at which data
	// should be sampled from the buffer
	choose(n, size int) []int
}

// uniformSelector is a Selector which selects data from an experience
// replay buffer uniformly randomly without replacement
type uniformSelector struct {
	rng *rand.Rand
}

// NewUniformSelector returns a new Selector which selects data uniformly
// randomly, without replacement, from an experience replay buffer
func NewUniformSelector(seed uint64) Selector {
	source := rand.NewSource(seed)
	rng := rand.New(source)

	return &uniformSelector{rng: rng}
}

// choose selects a number of indices at which to draw data from the
// buffer
func (u *uniformSelector) choose(n, size int) []int {
	return u.rng.Perm(size)[:n]
}

// fifoSelector is a Selector which selects the oldest data in an
// experience replay buffer
type fifoSelector struct{}

// NewFifoSelector returns a new Selector which draws the oldest data
// from an experience replay buffer, in insertion order
func NewFifoSelector() Selector {
	return fifoSelector{}
}

// choose selects a number of indices at which to draw data from the
// buffer
func (fifoSelector) choose(n, _ int) []int {
	selected := make([]int, n)
	for i := range selected {
		selected[i] = i
	}
	return selected
}
