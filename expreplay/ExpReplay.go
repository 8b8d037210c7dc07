// Package expreplay implements a bounded experience replay buffer
package expreplay

import (
	"fmt"

	"github.com/gammazero/deque"
	"github.com/samuelfneumann/godqn/timestep"
)

// DefaultCapacity is the default maximum number of transitions held
// by a Buffer
const DefaultCapacity = 2000

// Config implements a specific configuration of a Buffer
type Config struct {
	Capacity int
	Seed     uint64
}

// Create creates and returns the Buffer with the specified Config
// which samples uniformly at random
func (c Config) Create(featureSize int) (*Buffer, error) {
	return New(c.Capacity, featureSize, NewUniformSelector(c.Seed))
}

// Buffer implements an experience replay buffer of fixed capacity.
// Transitions are stored in insertion order. Once the buffer is full,
// adding a transition evicts the oldest one.
type Buffer struct {
	data        *deque.Deque[timestep.Transition]
	sampler     Selector
	capacity    int
	featureSize int
}

// New creates and returns a new Buffer. The sampler parameter
// determines how data is sampled from the buffer. The featureSize
// parameter defines the length of the state vectors stored.
func New(capacity, featureSize int, sampler Selector) (*Buffer, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("new: capacity must be >= 1")
	}
	if featureSize < 1 {
		return nil, fmt.Errorf("new: featureSize must be >= 1")
	}
	if sampler == nil {
		return nil, fmt.Errorf("new: sampler cannot be nil")
	}

	return &Buffer{
		data:        deque.New[timestep.Transition](),
		sampler:     sampler,
		capacity:    capacity,
		featureSize: featureSize,
	}, nil
}

// Add adds a transition to the end of the buffer, evicting the oldest
// transition if the buffer is at capacity
func (b *Buffer) Add(t timestep.Transition) error {
	if t.State == nil || t.NextState == nil {
		return fmt.Errorf("add: transition states cannot be nil")
	}
	if t.State.Len() != b.featureSize {
		return fmt.Errorf("add: invalid feature size \n\twant(%v)\n\thave(%v)",
			b.featureSize, t.State.Len())
	}
	if t.NextState.Len() != b.featureSize {
		return fmt.Errorf("add: invalid next state feature size "+
			"\n\twant(%v)\n\thave(%v)", b.featureSize, t.NextState.Len())
	}

	for b.data.Len() >= b.capacity {
		b.data.PopFront()
	}
	b.data.PushBack(t)
	return nil
}

// Sample returns n distinct transitions from the buffer, chosen by
// the buffer's Selector
func (b *Buffer) Sample(n int) ([]timestep.Transition, error) {
	if n < 1 {
		return nil, fmt.Errorf("sample: batch size must be >= 1")
	}
	if b.data.Len() == 0 {
		return nil, &ExpReplayError{Op: "sample", Err: errEmptyBuffer}
	}
	if b.data.Len() < n {
		err := fmt.Errorf("%w: have(%v) want(%v)", errInsufficientSamples,
			b.data.Len(), n)
		return nil, &ExpReplayError{Op: "sample", Err: err}
	}

	indices := b.sampler.choose(n, b.data.Len())
	batch := make([]timestep.Transition, len(indices))
	for i, index := range indices {
		batch[i] = b.data.At(index)
	}
	return batch, nil
}

// At returns the transition at index i, where index 0 is the oldest
// transition in the buffer
func (b *Buffer) At(i int) timestep.Transition {
	return b.data.At(i)
}

// Len returns the current number of transitions in the buffer
func (b *Buffer) Len() int {
	return b.data.Len()
}

// Capacity returns the maximum number of transitions allowed in the
// buffer
func (b *Buffer) Capacity() int {
	return b.capacity
}

// FeatureSize returns the length of the state vectors stored in the
// buffer
func (b *Buffer) FeatureSize() int {
	return b.featureSize
}

func (b *Buffer) String() string {
	return fmt.Sprintf("Buffer | Size: %v  |  Capacity: %v  |  Features: %v",
		b.data.Len(), b.capacity, b.featureSize)
}
