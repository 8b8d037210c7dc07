package wrappers

import (
	"fmt"

	"github.com/samuelfneumann/godqn/environment"
	ts "github.com/samuelfneumann/godqn/timestep"
)

// StepLimit wraps an environment and cuts episodes off by timeout once
// they reach a number of steps, regardless of the wrapped environment's
// own step limit
type StepLimit struct {
	environment.Environment
	limit    *environment.StepLimit
	lastStep ts.TimeStep
}

// NewStepLimit returns a new StepLimit wrapper which ends episodes
// after steps steps
func NewStepLimit(env environment.Environment, steps int) (*StepLimit,
	error) {
	if steps < 1 {
		return nil, fmt.Errorf("newStepLimit: steps must be >= 1")
	}
	return &StepLimit{
		Environment: env,
		limit:       environment.NewStepLimit(steps),
		lastStep:    env.LastTimeStep(),
	}, nil
}

// Reset resets the wrapped environment
func (s *StepLimit) Reset() (ts.TimeStep, error) {
	step, err := s.Environment.Reset()
	if err != nil {
		return step, err
	}
	s.lastStep = step
	return step, nil
}

// Step takes one environmental step given action
func (s *StepLimit) Step(action int) (ts.TimeStep, bool, error) {
	if s.lastStep.Last() {
		return ts.TimeStep{}, true, fmt.Errorf("step: episode has ended, " +
			"call Reset")
	}
	step, done, err := s.Environment.Step(action)
	if err != nil {
		return step, done, err
	}
	if !done {
		done = s.limit.End(&step)
	}
	s.lastStep = step
	return step, done, nil
}

// LastTimeStep returns the last TimeStep of the environment
func (s *StepLimit) LastTimeStep() ts.TimeStep {
	return s.lastStep
}

// Unwrap returns the wrapped environment
func (s *StepLimit) Unwrap() environment.Environment {
	return s.Environment
}

func (s *StepLimit) String() string {
	return fmt.Sprintf("Step Limit (%v): %v", s.limit.Steps(),
		s.Environment)
}
