// Package agent defines an agent interface
package agent

import (
	"github.com/samuelfneumann/godqn/timestep"
	"gonum.org/v1/gonum/mat"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns weights, and a Policy
// which chooses actions in each state. The Policy chooses which actions
// are taken, and the Learner uses these actions to update the Policy.
type Agent interface {
	Learner
	Policy
	Saver
}

// Learner implements a learning algorithm that defines how weights are
// updated from stored experience.
type Learner interface {
	// Remember stores a transition for later replay
	Remember(t timestep.Transition) error

	// Replay performs a learning update on batchSize stored
	// transitions and returns the mean loss of the update
	Replay(batchSize int) (float64, error)

	// Remembered returns the number of transitions currently stored
	Remembered() int
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. For a given agent, the
// Policy and Learner should share weights so that any changes the
// learner makes to the weights are reflected in the actions the Policy
// chooses.
type Policy interface {
	SelectAction(obs mat.Vector) (int, error)
	Eval()        // Set policy to evaluation mode
	Train()       // Set policy to training mode
	IsEval() bool // Indicates if in evaluation mode
}

// Saver is an agent whose weights can be saved to and restored from a
// file
type Saver interface {
	Save(path string) error
	Load(path string) error
}
