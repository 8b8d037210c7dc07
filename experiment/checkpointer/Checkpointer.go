// Package checkpointer implements functionality for saving the
// weights of agents at regular intervals of an experiment
package checkpointer

import (
	ts "github.com/samuelfneumann/godqn/timestep"
)

// Saver is an object that can be saved to a file
type Saver interface {
	Save(path string) error
}

// Checkpointer checkpoints/saves objects based on timestep.TimeSteps
type Checkpointer interface {
	Checkpoint(ts.TimeStep) error
}
