package sensor

import (
	"math"

	env "github.com/samuelfneumann/godqn/environment"
	ts "github.com/samuelfneumann/godqn/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	// TargetDistance is the default distance from the wall to hold
	TargetDistance float64 = 0.30

	// Tolerance is how close to the target the robot must get
	Tolerance float64 = 0.02

	// EpisodeSteps is the default episode cutoff
	EpisodeSteps int = 200

	GoalReward    float64 = 1.0
	FailureReward float64 = -1.0
)

// Approach implements the task of driving the robot to within some
// tolerance of a target distance from the wall.
//
// Each step is rewarded with the negative distance error normalized by
// the sensor range. Reaching the target gives GoalReward and ends the
// episode. Hitting the wall or leaving the sensor range gives
// FailureReward and also ends the episode. Episodes are otherwise cut
// off after a step limit.
type Approach struct {
	env.Starter
	target    float64
	tolerance float64
	enders    env.Enders
}

// NewApproach returns a new Approach task
func NewApproach(s env.Starter, target, tolerance float64,
	episodeSteps int) *Approach {
	a := &Approach{Starter: s, target: target, tolerance: tolerance}

	a.enders = env.Enders{
		env.NewFunctionEnder(a.atGoal, ts.TerminalStateReached),
		env.NewIntervalLimit(
			[]r1.Interval{{Min: MinRange, Max: MaxRange}},
			[]int{0},
			ts.TerminalStateReached,
		),
		env.NewStepLimit(episodeSteps),
	}
	return a
}

// NewDefaultApproach returns an Approach task with the default target
// whose start distances are uniform in [0.5, 3.0] meters
func NewDefaultApproach(seed uint64) *Approach {
	s := env.NewUniformStarter([]r1.Interval{{Min: 0.5, Max: 3.0}}, seed)
	return NewApproach(s, TargetDistance, Tolerance, EpisodeSteps)
}

func (a *Approach) atGoal(state mat.Vector) bool {
	return math.Abs(state.AtVec(0)-a.target) <= a.tolerance
}

// End implements the environment.Ender interface
func (a *Approach) End(t *ts.TimeStep) bool {
	return a.enders.End(t)
}

// GetReward returns the reward for moving from state to nextState
func (a *Approach) GetReward(_ mat.Vector, _ int,
	nextState mat.Vector) float64 {
	d := nextState.AtVec(0)
	switch {
	case a.atGoal(nextState):
		return GoalReward
	case d < MinRange || d > MaxRange:
		return FailureReward
	default:
		return -math.Abs(d-a.target) / (MaxRange - MinRange)
	}
}

// Target returns the target distance from the wall
func (a *Approach) Target() float64 {
	return a.target
}

// Min returns the minimum possible reward
func (a *Approach) Min() float64 {
	return FailureReward
}

// Max returns the maximum possible reward
func (a *Approach) Max() float64 {
	return GoalReward
}
