package cartpole

import (
	"math"

	env "github.com/samuelfneumann/godqn/environment"
	ts "github.com/samuelfneumann/godqn/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	// FailAngle is the pole angle from vertical beyond which the pole
	// has fallen
	FailAngle float64 = 12 * 2 * math.Pi / 360

	// FailPosition is the cart position beyond which the cart has left
	// the track
	FailPosition float64 = 2.4

	// EpisodeSteps is the default episode cutoff
	EpisodeSteps int = 500
)

// Balance implements the classic control Cartpole Balance task. In this
// Task, the goal of the agent is to balance the pole on the cart in
// an upright position for as long as possible.
//
// The reward is +1 for every timestep, including the one on which the
// pole falls.
//
// Episodes end in a terminal state once the pole has fallen below the
// fail angle or the cart has left the track, and by timeout after a
// step limit.
type Balance struct {
	env.Starter
	stepLimiter  *env.StepLimit
	stateLimiter *env.IntervalLimit
}

// NewBalance creates and returns a new Balance task
func NewBalance(s env.Starter, episodeSteps int, failAngle,
	failPosition float64) *Balance {
	stepLimiter := env.NewStepLimit(episodeSteps)

	legal := []r1.Interval{
		{Min: -failPosition, Max: failPosition},
		{Min: -failAngle, Max: failAngle},
	}
	stateLimiter := env.NewIntervalLimit(legal, []int{0, 2},
		ts.TerminalStateReached)

	return &Balance{s, stepLimiter, stateLimiter}
}

// NewDefaultBalance returns the Balance task of CartPole-v1, with start
// states sampled uniformly from [-0.05, 0.05] in each feature
func NewDefaultBalance(seed uint64) *Balance {
	bounds := r1.Interval{Min: -0.05, Max: 0.05}
	s := env.NewUniformStarter([]r1.Interval{bounds, bounds, bounds, bounds},
		seed)

	return NewBalance(s, EpisodeSteps, FailAngle, FailPosition)
}

// End checks if a TimeStep is the last in an episode. If so, it adjusts
// the TimeStep so that it is last and returns true. Otherwise,
// the function does not adjust the TimeStep and returns false.
func (b *Balance) End(t *ts.TimeStep) bool {
	if end := b.stateLimiter.End(t); end {
		return true
	}
	if end := b.stepLimiter.End(t); end {
		return true
	}
	return false
}

// GetReward returns the reward for an action taken in some state,
// resulting in a transition to the next state nextState.
func (b *Balance) GetReward(_ mat.Vector, _ int, _ mat.Vector) float64 {
	return 1.0
}

// Min returns the minimum possible reward that can be received in the
// environment
func (b *Balance) Min() float64 {
	return 1.0
}

// Max returns the maximum possible reward that can be received in the
// environment
func (b *Balance) Max() float64 {
	return 1.0
}
