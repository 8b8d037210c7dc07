// Package wrappers implements environments which wrap other
// environments and alter their TimeSteps
package wrappers

import (
	"fmt"

	"github.com/samuelfneumann/godqn/environment"
	ts "github.com/samuelfneumann/godqn/timestep"
)

// DefaultTerminalPenalty is the reward given on terminal steps by
// the default Shaper
const DefaultTerminalPenalty float64 = -10.0

// Shaper computes a new reward for a TimeStep
type Shaper func(t ts.TimeStep) float64

// Identity is a Shaper which leaves rewards unchanged
func Identity(t ts.TimeStep) float64 {
	return t.Reward
}

// TerminalPenalty returns a Shaper which replaces the reward of any
// step that ends the episode in a terminal state with penalty. Steps
// which end an episode by timeout keep their reward.
func TerminalPenalty(penalty float64) Shaper {
	return func(t ts.TimeStep) float64 {
		if t.Terminal() {
			return penalty
		}
		return t.Reward
	}
}

// RewardShaping wraps an environment and rewrites the reward of each
// TimeStep it returns using a Shaper.
//
// RewardShaping itself implements the environment.Environment
// interface, and is therefore itself an Environment.
type RewardShaping struct {
	environment.Environment
	shaper   Shaper
	lastStep ts.TimeStep
}

// NewRewardShaping creates and returns a new RewardShaping Environment
// wrapper
func NewRewardShaping(env environment.Environment,
	shaper Shaper) (*RewardShaping, error) {
	if env == nil {
		return nil, fmt.Errorf("newRewardShaping: environment cannot be nil")
	}
	if shaper == nil {
		return nil, fmt.Errorf("newRewardShaping: shaper cannot be nil")
	}

	return &RewardShaping{
		Environment: env,
		shaper:      shaper,
		lastStep:    env.LastTimeStep(),
	}, nil
}

// Reset resets the wrapped environment. The first step of an episode
// has no reward and is not shaped.
func (r *RewardShaping) Reset() (ts.TimeStep, error) {
	step, err := r.Environment.Reset()
	if err != nil {
		return step, err
	}
	r.lastStep = step
	return step, nil
}

// Step takes one environmental step given action and returns the
// next TimeStep with its reward shaped
func (r *RewardShaping) Step(action int) (ts.TimeStep, bool, error) {
	step, done, err := r.Environment.Step(action)
	if err != nil {
		return step, done, err
	}

	step.Reward = r.shaper(step)
	r.lastStep = step
	return step, done, nil
}

// LastTimeStep returns the last shaped TimeStep
func (r *RewardShaping) LastTimeStep() ts.TimeStep {
	return r.lastStep
}

// Unwrap returns the wrapped environment
func (r *RewardShaping) Unwrap() environment.Environment {
	return r.Environment
}

// String returns a string representation of the RewardShaping
// environment
func (r *RewardShaping) String() string {
	return fmt.Sprintf("Reward Shaping: %v", r.Environment)
}
