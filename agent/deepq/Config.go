package deepq

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samuelfneumann/godqn/agent"
	env "github.com/samuelfneumann/godqn/environment"
	"github.com/samuelfneumann/godqn/expreplay"
	"github.com/samuelfneumann/godqn/initwfn"
	"github.com/samuelfneumann/godqn/network"
	"github.com/samuelfneumann/godqn/solver"
)

// Config implements a configuration for a DeepQ agent
type Config struct {
	HiddenSizes []int                 // Layer sizes in neural net
	Activations []*network.Activation // Activation of each hidden layer
	Solver      *solver.Solver        // Solver for learning weights

	// Initialization algorithm for weights
	InitWFn *initwfn.InitWFn

	Discount float64

	// Exploration schedule of the epsilon greedy behaviour policy
	Epsilon      float64
	EpsilonMin   float64
	EpsilonDecay float64

	// Maximum number of transitions stored for replay
	ReplayCapacity int
}

// DefaultConfig returns the default DeepQ configuration: two hidden
// layers of 24 ReLU units trained with Adam at a step size of 0.001
func DefaultConfig() Config {
	adam, err := solver.NewDefaultAdam(0.001, 1)
	if err != nil {
		panic(fmt.Sprintf("defaultConfig: %v", err))
	}
	glorot, err := initwfn.NewGlorotU(1.0)
	if err != nil {
		panic(fmt.Sprintf("defaultConfig: %v", err))
	}

	return Config{
		HiddenSizes:    []int{24, 24},
		Activations:    []*network.Activation{network.ReLU(), network.ReLU()},
		Solver:         adam,
		InitWFn:        glorot,
		Discount:       0.95,
		Epsilon:        1.0,
		EpsilonMin:     0.01,
		EpsilonDecay:   0.995,
		ReplayCapacity: expreplay.DefaultCapacity,
	}
}

// Validate checks a Config to ensure it is a valid configuration of a
// DeepQ agent.
func (c Config) Validate() error {
	if len(c.HiddenSizes) != len(c.Activations) {
		return fmt.Errorf("validate: invalid number of activations"+
			"\n\twant(%v)\n\thave(%v)", len(c.HiddenSizes),
			len(c.Activations))
	}
	if c.Solver == nil || c.Solver.Solver == nil {
		return fmt.Errorf("validate: no solver specified")
	}
	if c.InitWFn == nil || c.InitWFn.InitWFn() == nil {
		return fmt.Errorf("validate: no weight initializer specified")
	}
	if c.Discount < 0 || c.Discount > 1 {
		return fmt.Errorf("validate: discount must be in [0, 1]"+
			"\n\thave(%v)", c.Discount)
	}
	if c.ReplayCapacity < 1 {
		return fmt.Errorf("validate: replay capacity must be >= 1"+
			"\n\thave(%v)", c.ReplayCapacity)
	}
	if _, err := NewExploration(c.Epsilon, c.EpsilonMin,
		c.EpsilonDecay); err != nil {
		return fmt.Errorf("validate: %v", err)
	}
	return nil
}

// CreateAgent creates a new DeepQ agent based on the configuration
func (c Config) CreateAgent(e env.Environment, seed uint64) (agent.Agent,
	error) {
	d, err := New(e, c, seed)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// LoadConfig loads a JSON Config from a file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: %v", err)
	}

	c := DefaultConfig()
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("loadConfig: %v", err)
	}
	return c, c.Validate()
}
