// Package sensor implements a simulated robot which must position
// itself at a target distance from a wall using only the readings of
// an ultrasonic distance sensor.
package sensor

import (
	"fmt"

	env "github.com/samuelfneumann/godqn/environment"
	ts "github.com/samuelfneumann/godqn/timestep"
	"github.com/samuelfneumann/godqn/utils/floatutils"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// Sensor constants, in meters
	MinRange   float64 = 0.02
	MaxRange   float64 = 4.0
	NoiseStdev float64 = 0.005

	// Displacements of each action, in meters. Negative values move
	// toward the wall.
	FurtherForward  float64 = -0.10
	Forward         float64 = -0.02
	Backward        float64 = 0.02
	FurtherBackward float64 = 0.10

	ObservationDims int = 1
)

// Discrete actions
const (
	GoFurtherForward int = iota
	GoForward
	GoBackward
	GoFurtherBackward
)

var displacements = [...]float64{
	GoFurtherForward:  FurtherForward,
	GoForward:         Forward,
	GoBackward:        Backward,
	GoFurtherBackward: FurtherBackward,
}

// Sensor implements a robot facing a wall with a distance sensor
// mounted on its front. The only state feature is the distance to the
// wall as reported by the sensor, which is corrupted by Gaussian noise
// and clipped to the sensor's range.
//
// Actions are discrete and move the robot:
//
//	Action	Meaning
//	  0		Go further forward
//	  1		Go forward
//	  2		Go backward
//	  3		Go further backward
//
// Rewards and episode termination are determined by the Task, which
// sees the true distance rather than the sensor reading.
type Sensor struct {
	env.Task
	lastStep  ts.TimeStep
	distance  float64
	discount  float64
	noise     distuv.Normal
	sensorRng r1.Interval
}

// New constructs a new Sensor environment and returns it along with
// its first TimeStep
func New(t env.Task, discount float64, seed uint64) (*Sensor, ts.TimeStep,
	error) {
	s := &Sensor{
		Task:     t,
		discount: discount,
		noise: distuv.Normal{
			Mu:    0,
			Sigma: NoiseStdev,
			Src:   rand.NewSource(seed),
		},
		sensorRng: r1.Interval{Min: MinRange, Max: MaxRange},
	}

	firstStep, err := s.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %v", err)
	}
	return s, firstStep, nil
}

// Reset resets the environment and returns a starting state drawn from
// the environment Starter
func (s *Sensor) Reset() (ts.TimeStep, error) {
	state := s.Start()
	if state.Len() != ObservationDims {
		return ts.TimeStep{}, fmt.Errorf("reset: invalid state dimension "+
			"\n\twant(%v)\n\thave(%v)", ObservationDims, state.Len())
	}
	d := state.AtVec(0)
	if d <= s.sensorRng.Min || d >= s.sensorRng.Max {
		return ts.TimeStep{}, fmt.Errorf("reset: start distance %v outside "+
			"sensor range %v", d, s.sensorRng)
	}

	s.distance = d
	s.lastStep = ts.New(ts.First, 0, s.discount, s.measure(), 0)
	return s.lastStep, nil
}

// measure returns a noisy sensor reading of the current distance
func (s *Sensor) measure() *mat.VecDense {
	reading := floatutils.ClipInterval(s.distance+s.noise.Rand(), s.sensorRng)
	return mat.NewVecDense(ObservationDims, []float64{reading})
}

// Distance returns the true distance from the robot to the wall
func (s *Sensor) Distance() float64 {
	return s.distance
}

// LastTimeStep returns the last TimeStep in the environment
func (s *Sensor) LastTimeStep() ts.TimeStep {
	return s.lastStep
}

// ActionSpec returns the action specification of the environment
func (s *Sensor) ActionSpec() env.Spec {
	return env.NewDiscreteActionSpec(len(displacements))
}

// ObservationSpec returns the observation specification of the
// environment
func (s *Sensor) ObservationSpec() env.Spec {
	return env.NewSpec(
		mat.NewVecDense(ObservationDims, nil),
		env.Observation,
		mat.NewVecDense(ObservationDims, []float64{s.sensorRng.Min}),
		mat.NewVecDense(ObservationDims, []float64{s.sensorRng.Max}),
		env.Continuous,
	)
}

// DiscountSpec returns the discounting specification of the environment
func (s *Sensor) DiscountSpec() env.Spec {
	return env.NewDiscountSpec(s.discount)
}

// Step moves the robot according to action and returns the next
// TimeStep and whether the episode has ended
func (s *Sensor) Step(action int) (ts.TimeStep, bool, error) {
	if action < 0 || action >= len(displacements) {
		return ts.TimeStep{}, false, fmt.Errorf("step: illegal action %v "+
			"∉ (0, 1, 2, 3)", action)
	}
	if s.lastStep.Last() {
		return ts.TimeStep{}, true, fmt.Errorf("step: episode has ended, " +
			"call Reset")
	}

	prev := mat.NewVecDense(ObservationDims, []float64{s.distance})
	s.distance += displacements[action]
	next := mat.NewVecDense(ObservationDims, []float64{s.distance})

	// The Task judges the true distance, the agent only sees the
	// sensor reading
	reward := s.GetReward(prev, action, next)
	nextStep := ts.New(ts.Mid, reward, s.discount, next,
		s.lastStep.Number+1)
	s.End(&nextStep)
	nextStep.Observation = s.measure()

	s.lastStep = nextStep
	return nextStep, nextStep.Last(), nil
}

func (s *Sensor) String() string {
	return fmt.Sprintf("Sensor  |  Distance: %.3f  |  Reading: %.3f",
		s.distance, s.lastStep.Observation.AtVec(0))
}
