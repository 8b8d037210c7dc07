// Package envconfig provides configuration structs for configuring
// environments with default physical parameters and tasks. Environment
// configurations in this package are JSON serializable.
package envconfig

import (
	"fmt"

	env "github.com/samuelfneumann/godqn/environment"
	"github.com/samuelfneumann/godqn/environment/classiccontrol/cartpole"
	"github.com/samuelfneumann/godqn/environment/classiccontrol/mountaincar"
	"github.com/samuelfneumann/godqn/environment/sensor"
	ts "github.com/samuelfneumann/godqn/timestep"
	"gonum.org/v1/gonum/spatial/r1"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Cartpole    EnvName = "cartpole"
	Sensor      EnvName = "sensor"
	MountainCar EnvName = "mountaincar"
)

// Names returns the names of all environments that can be configured
func Names() []EnvName {
	return []EnvName{Cartpole, Sensor, MountainCar}
}

// Config implements a specific configuration of a specific environment.
// An EpisodeCutoff of 0 uses the environment's default cutoff.
type Config struct {
	Environment   EnvName
	EpisodeCutoff int
	Discount      float64
	Seed          uint64
}

// NewConfig returns a new environment Config
func NewConfig(envName EnvName, episodeCutoff int, discount float64,
	seed uint64) Config {
	return Config{
		Environment:   envName,
		EpisodeCutoff: episodeCutoff,
		Discount:      discount,
		Seed:          seed,
	}
}

// Validate returns an error if the Config is invalid
func (c Config) Validate() error {
	if c.EpisodeCutoff < 0 {
		return fmt.Errorf("validate: episode cutoff must be >= 0")
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1]")
	}
	return nil
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment.
func (c Config) Create() (env.Environment, ts.TimeStep, error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %v", err)
	}

	switch c.Environment {
	case Cartpole:
		return CreateCartpole(c.EpisodeCutoff, c.Discount, c.Seed)

	case Sensor:
		return CreateSensor(c.EpisodeCutoff, c.Discount, c.Seed)

	case MountainCar:
		return CreateMountainCar(c.EpisodeCutoff, c.Discount, c.Seed)
	}

	return nil, ts.TimeStep{}, fmt.Errorf("create: cannot create "+
		"environment %q, no such environment (have %v)", c.Environment,
		Names())
}

// CreateCartpole is a factory for creating the Cartpole environment
// with default physical parameters and the Balance task.
func CreateCartpole(cutoff int, discount float64,
	seed uint64) (env.Environment, ts.TimeStep, error) {
	if cutoff == 0 {
		cutoff = cartpole.EpisodeSteps
	}
	bounds := r1.Interval{Min: -0.05, Max: 0.05}
	s := env.NewUniformStarter([]r1.Interval{
		bounds,
		bounds,
		bounds,
		bounds,
	}, seed)

	task := cartpole.NewBalance(s, cutoff, cartpole.FailAngle,
		cartpole.FailPosition)
	c, first, err := cartpole.New(task, discount)
	if err != nil {
		return nil, ts.TimeStep{}, err
	}
	return c, first, nil
}

// CreateSensor is a factory for creating the distance Sensor
// environment with the Approach task.
func CreateSensor(cutoff int, discount float64,
	seed uint64) (env.Environment, ts.TimeStep, error) {
	if cutoff == 0 {
		cutoff = sensor.EpisodeSteps
	}
	s := env.NewUniformStarter([]r1.Interval{{Min: 0.5, Max: 3.0}}, seed)

	task := sensor.NewApproach(s, sensor.TargetDistance, sensor.Tolerance,
		cutoff)
	e, first, err := sensor.New(task, discount, seed+1)
	if err != nil {
		return nil, ts.TimeStep{}, err
	}
	return e, first, nil
}

// CreateMountainCar is a factory for creating the Mountain Car
// environment with the Goal task.
func CreateMountainCar(cutoff int, discount float64,
	seed uint64) (env.Environment, ts.TimeStep, error) {
	if cutoff == 0 {
		cutoff = mountaincar.EpisodeSteps
	}
	s := env.NewUniformStarter([]r1.Interval{
		{Min: -0.6, Max: -0.4},
		{Min: 0, Max: 0},
	}, seed)

	task := mountaincar.NewGoal(s, cutoff, mountaincar.GoalPosition)
	m, first, err := mountaincar.New(task, discount)
	if err != nil {
		return nil, ts.TimeStep{}, err
	}
	return m, first, nil
}
