// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType describes why an episode ended
type EndType int

const (
	// TerminalStateReached denotes that the environment reached a true
	// terminal state, where the value of the next state is zero
	TerminalStateReached EndType = iota

	// Timeout denotes that the episode was cut off by a step limit
	Timeout

	// Unknown is used for TimeSteps that have not ended
	Unknown
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// TimeStep packages together a single timestep in an environment
type TimeStep struct {
	stepType    StepType
	endType     EndType
	Reward      float64
	Discount    float64
	Observation mat.Vector
	Number      int
}

// New returns a new TimeStep. If t is Last, the TimeStep is considered
// to have ended in a terminal state until SetEnd is called.
func New(t StepType, r, d float64, o mat.Vector, n int) TimeStep {
	end := Unknown
	if t == Last {
		end = TerminalStateReached
	}
	return TimeStep{
		stepType:    t,
		endType:     end,
		Reward:      r,
		Discount:    d,
		Observation: o,
		Number:      n,
	}
}

// SetEnd marks the TimeStep as the last in the episode with the given
// cause
func (t *TimeStep) SetEnd(e EndType) {
	t.stepType = Last
	t.endType = e
}

// EndType returns why the episode ended, or Unknown if the TimeStep is
// not the last step
func (t *TimeStep) EndType() EndType {
	return t.endType
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.stepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.stepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.stepType == Last
}

// Terminal returns whether the TimeStep ended the episode by reaching
// a terminal state. Episodes cut off by a step limit are not terminal.
func (t *TimeStep) Terminal() bool {
	return t.stepType == Last && t.endType == TerminalStateReached
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  End: %v  |  Reward:  %.2f  |  " +
		"Discount: %.2f  |  Step Number:  %v"

	return fmt.Sprintf(str, t.stepType, t.endType, t.Reward, t.Discount,
		t.Number)
}
