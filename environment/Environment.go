// Package environment outlines the interfaces and sturcts needed to implement
// concrete environments
package environment

import (
	"image"

	ts "github.com/samuelfneumann/godqn/timestep"
	"gonum.org/v1/gonum/mat"
)

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines when episodes end. If an episode should end, End
// marks the TimeStep as the last in the episode and returns true.
type Ender interface {
	End(*ts.TimeStep) bool
}

// Task implements the reward scheme for taking actions in some
// environment, along with its start state distribution and episode
// termination conditions
type Task interface {
	Starter
	Ender

	// GetReward returns the reward for taking action in state and
	// transitioning to nextState
	GetReward(state mat.Vector, action int, nextState mat.Vector) float64

	// Min and Max return the bounds on the rewards of the Task
	Min() float64
	Max() float64
}

// Environment implements a simulated environment with a discrete set
// of actions. Actions are enumerated from 0.
type Environment interface {
	// Reset starts a new episode and returns its first TimeStep
	Reset() (ts.TimeStep, error)

	// Step takes one environmental step given an action and returns
	// the next TimeStep and whether the episode has ended
	Step(action int) (ts.TimeStep, bool, error)

	ObservationSpec() Spec
	ActionSpec() Spec
	DiscountSpec() Spec

	// LastTimeStep returns the most recent TimeStep of the environment
	LastTimeStep() ts.TimeStep
}

// Renderer is implemented by environments which can draw their
// current state
type Renderer interface {
	Render() (image.Image, error)
}

// Wrapper is implemented by environments that wrap other environments
type Wrapper interface {
	Environment
	Unwrap() Environment
}

// Unwrap returns the innermost environment of a chain of Wrappers
func Unwrap(e Environment) Environment {
	for {
		w, ok := e.(Wrapper)
		if !ok {
			return e
		}
		e = w.Unwrap()
	}
}
