// Package experiment implements functionality for running an experiment
package experiment

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samuelfneumann/godqn/experiment/tracker"
)

// Experiment outlines structs that can run experiments. Experiments
// track environment TimeSteps by sending each TimeStep to their
// Trackers, which cache the data in RAM to be later saved to disk with
// Save. The Run method runs all episodes of the experiment, and the
// RunEpisode method runs a single episode.
type Experiment interface {
	Run() error

	// RunEpisode runs episode i and returns its score
	RunEpisode(i int) (int, error)

	// Save all tracked data to disk
	Save() error

	// Adds a new tracker.Tracker to the (possibly already running)
	// experiment. Useful if you want to track data only after a
	// specified event.
	Register(t tracker.Tracker)
}

// Config represents a configuration of an episodic experiment
type Config struct {
	Episodes        int
	MaxEpisodeSteps int
	BatchSize       int

	// Train determines whether the agent learns during the experiment.
	// If false, the agent acts greedily and stores no transitions.
	Train bool
}

// DefaultConfig returns the default experiment configuration
func DefaultConfig() Config {
	return Config{
		Episodes:        50,
		MaxEpisodeSteps: 500,
		BatchSize:       32,
		Train:           true,
	}
}

// Validate returns an error if the Config is invalid
func (c Config) Validate() error {
	if c.Episodes < 1 {
		return fmt.Errorf("validate: episodes must be >= 1 \n\thave(%v)",
			c.Episodes)
	}
	if c.MaxEpisodeSteps < 1 {
		return fmt.Errorf("validate: max episode steps must be >= 1 "+
			"\n\thave(%v)", c.MaxEpisodeSteps)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("validate: batch size must be >= 1 \n\thave(%v)",
			c.BatchSize)
	}
	return nil
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
