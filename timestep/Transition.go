package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Transition is a single (s, a, r, s', terminal) tuple of experience.
// Transitions are not mutated once created.
type Transition struct {
	State     *mat.VecDense
	Action    int
	Reward    float64
	NextState *mat.VecDense
	Terminal  bool
}

// NewTransition constructs a Transition from the TimeStep in which an
// action was taken and the TimeStep that followed it. The observations
// are copied so that later changes to the environment's vectors do not
// leak into stored experience.
func NewTransition(step TimeStep, action int, next TimeStep) Transition {
	return Transition{
		State:     copyVec(step.Observation),
		Action:    action,
		Reward:    next.Reward,
		NextState: copyVec(next.Observation),
		Terminal:  next.Terminal(),
	}
}

func copyVec(v mat.Vector) *mat.VecDense {
	if v == nil {
		return nil
	}
	out := mat.NewVecDense(v.Len(), nil)
	out.CopyVec(v)
	return out
}

func (t Transition) String() string {
	return fmt.Sprintf("Transition | State: %v  |  Action: %v  |  "+
		"Reward: %.2f  |  Next State: %v  |  Terminal: %v",
		mat.Formatted(t.State.T()), t.Action, t.Reward,
		mat.Formatted(t.NextState.T()), t.Terminal)
}
