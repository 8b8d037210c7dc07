package mountaincar

import (
	env "github.com/samuelfneumann/godqn/environment"
	ts "github.com/samuelfneumann/godqn/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	// GoalPosition is the commonly used goal x position
	GoalPosition float64 = 0.45

	// EpisodeSteps is the default episode cutoff
	EpisodeSteps int = 200
)

// Goal implements the classic control task of reaching a goal on
// Mountain Car. Since the car is underpowered, the agent must rock
// back and forth from hill to hill until it reaches the goal.
//
// Rewards are -1 on each timestep and 0 for the action which
// transitions the car to the goal.
//
// Episodes end in a terminal state at the goal, and by timeout after
// a step limit.
type Goal struct {
	env.Starter
	goalEnder *env.FunctionEnder
	stepEnder *env.StepLimit
	goalX     float64
}

// NewGoal creates and returns a new Goal task given a Starter, the
// maximum number of episode steps, and the goal x position
func NewGoal(s env.Starter, episodeSteps int, goalX float64) *Goal {
	g := &Goal{Starter: s, stepEnder: env.NewStepLimit(episodeSteps),
		goalX: goalX}
	g.goalEnder = env.NewFunctionEnder(g.AtGoal, ts.TerminalStateReached)
	return g
}

// NewDefaultGoal returns the Goal task with start positions sampled
// uniformly from [-0.6, -0.4] at rest
func NewDefaultGoal(seed uint64) *Goal {
	s := env.NewUniformStarter([]r1.Interval{
		{Min: -0.6, Max: -0.4},
		{Min: 0, Max: 0},
	}, seed)
	return NewGoal(s, EpisodeSteps, GoalPosition)
}

// AtGoal returns whether the argument state is at the goal
func (g *Goal) AtGoal(state mat.Vector) bool {
	return state.AtVec(0) >= g.goalX
}

// GetReward returns the reward for a given state and action, resulting
// in a given next state
func (g *Goal) GetReward(_ mat.Vector, _ int, nextState mat.Vector) float64 {
	if g.AtGoal(nextState) {
		return 0.0
	}
	return -1.0
}

// Min returns the minimum attainable reward over all timesteps
func (g *Goal) Min() float64 { return -1.0 }

// Max returns the maximum attainable reward over all timesteps
func (g *Goal) Max() float64 { return 0.0 }

// End determines if a timestep is the last timestep in the episode,
// adjusting the TimeStep if so
func (g *Goal) End(t *ts.TimeStep) bool {
	if end := g.goalEnder.End(t); end {
		return true
	}
	return g.stepEnder.End(t)
}
