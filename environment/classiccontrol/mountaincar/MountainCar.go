// Package mountaincar implements the discrete action classic control
// environment Mountain Car
package mountaincar

import (
	"fmt"
	"math"

	env "github.com/samuelfneumann/godqn/environment"
	ts "github.com/samuelfneumann/godqn/timestep"
	"github.com/samuelfneumann/godqn/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	MinPosition float64 = -1.2
	MaxPosition float64 = 0.6
	MaxSpeed    float64 = 0.07
	Power       float64 = 0.0015 // Engine power
	Gravity     float64 = 0.0025

	MinDiscreteAction int = 0
	MaxDiscreteAction int = 2
)

// MountainCar implements the classic control Mountain Car environment.
// In this environment, the agent controls a car in a valley between two
// hills. The car is underpowered and cannot drive up the hill unless
// it rocks back and forth from hill to hill, using its momentum to
// gradually climb higher.
//
// State features consist of the x position of the car and its velocity.
// Upon reaching the minimum position, the velocity of the car is set
// to 0.
//
// Actions determine in which direction to apply full accelerating
// force to the car:
//
//	Action	Meaning
//	  0		Accelerate left
//	  1		Do nothing
//	  2		Accelerate right
type MountainCar struct {
	env.Task
	positionBounds r1.Interval
	speedBounds    r1.Interval
	lastStep       ts.TimeStep
	discount       float64
	power          float64
	gravity        float64
}

// New creates a new Mountain Car environment with the argument task
// and returns it along with its first TimeStep
func New(t env.Task, discount float64) (*MountainCar, ts.TimeStep, error) {
	m := &MountainCar{
		Task:           t,
		positionBounds: r1.Interval{Min: MinPosition, Max: MaxPosition},
		speedBounds:    r1.Interval{Min: -MaxSpeed, Max: MaxSpeed},
		discount:       discount,
		power:          Power,
		gravity:        Gravity,
	}

	firstStep, err := m.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}
	return m, firstStep, nil
}

// Reset resets the environment and returns a starting state drawn from
// the environment Starter
func (m *MountainCar) Reset() (ts.TimeStep, error) {
	state := m.Start()
	if err := m.validateState(state); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %v", err)
	}

	m.lastStep = ts.New(ts.First, 0, m.discount, state, 0)
	return m.lastStep, nil
}

// LastTimeStep returns the last TimeStep in the environment
func (m *MountainCar) LastTimeStep() ts.TimeStep {
	return m.lastStep
}

// ActionSpec returns the action specification of the environment
func (m *MountainCar) ActionSpec() env.Spec {
	return env.NewDiscreteActionSpec(MaxDiscreteAction + 1)
}

// ObservationSpec returns the observation specification of the
// environment
func (m *MountainCar) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(2, nil)
	lowerBound := mat.NewVecDense(2, []float64{m.positionBounds.Min,
		m.speedBounds.Min})
	upperBound := mat.NewVecDense(2, []float64{m.positionBounds.Max,
		m.speedBounds.Max})

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Continuous)
}

// DiscountSpec returns the discounting specification of the environment
func (m *MountainCar) DiscountSpec() env.Spec {
	return env.NewDiscountSpec(m.discount)
}

// Step takes one environmental step given action a and returns the next
// TimeStep and whether or not the episode has ended
func (m *MountainCar) Step(action int) (ts.TimeStep, bool, error) {
	if action < MinDiscreteAction || action > MaxDiscreteAction {
		return ts.TimeStep{}, false, fmt.Errorf("step: illegal action %v "+
			"∉ (0, 1, 2)", action)
	}
	if m.lastStep.Last() {
		return ts.TimeStep{}, true, fmt.Errorf("step: episode has ended, " +
			"call Reset")
	}

	state := m.lastStep.Observation
	position, velocity := state.AtVec(0), state.AtVec(1)
	force := float64(action - 1)

	velocity += force*m.power - m.gravity*math.Cos(3*position)
	velocity = floatutils.ClipInterval(velocity, m.speedBounds)

	position += velocity
	position = floatutils.ClipInterval(position, m.positionBounds)
	if position <= m.positionBounds.Min && velocity < 0 {
		velocity = 0
	}

	newState := mat.NewVecDense(2, []float64{position, velocity})
	reward := m.GetReward(state, action, newState)
	nextStep := ts.New(ts.Mid, reward, m.discount, newState,
		m.lastStep.Number+1)
	m.End(&nextStep)

	m.lastStep = nextStep
	return nextStep, nextStep.Last(), nil
}

// validateState ensures the position and speed are within the
// environmental limits
func (m *MountainCar) validateState(s mat.Vector) error {
	if s.Len() != 2 {
		return fmt.Errorf("invalid state dimension \n\twant(2)\n\thave(%v)",
			s.Len())
	}
	if position := s.AtVec(0); position < m.positionBounds.Min ||
		position > m.positionBounds.Max {
		return fmt.Errorf("illegal position %v ∉ [%v, %v]", position,
			m.positionBounds.Min, m.positionBounds.Max)
	}
	if speed := s.AtVec(1); speed < m.speedBounds.Min ||
		speed > m.speedBounds.Max {
		return fmt.Errorf("illegal speed %v ∉ [%v, %v]", speed,
			m.speedBounds.Min, m.speedBounds.Max)
	}
	return nil
}

func (m *MountainCar) String() string {
	state := m.lastStep.Observation
	return fmt.Sprintf("Mountain Car  |  Position: %v  |  Speed: %v",
		state.AtVec(0), state.AtVec(1))
}
