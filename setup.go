package main

import (
	"fmt"

	"github.com/samuelfneumann/godqn/agent"
	"github.com/samuelfneumann/godqn/agent/deepq"
	env "github.com/samuelfneumann/godqn/environment"
	"github.com/samuelfneumann/godqn/environment/envconfig"
	"github.com/samuelfneumann/godqn/environment/wrappers"
)

// DefaultWeights is the default checkpoint file of trained weights
const DefaultWeights = "cartpole-dqn.gob"

// agentConfig returns the DeepQ configuration stored at path, or the
// default configuration if path is empty
func agentConfig(path string) (deepq.Config, error) {
	if path == "" {
		return deepq.DefaultConfig(), nil
	}
	return deepq.LoadConfig(path)
}

// setup creates the named environment and a DeepQ agent acting in it.
// The inner environment is returned along with the environment whose
// rewards are shaped so that trackers can record unshaped data.
func setup(name string, maxSteps int, shaper wrappers.Shaper,
	c deepq.Config, seed uint64) (shaped, inner env.Environment,
	a agent.Agent, err error) {
	envConf := envconfig.NewConfig(envconfig.EnvName(name), maxSteps,
		c.Discount, seed)
	inner, _, err = envConf.Create()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setup: %v", err)
	}

	shaped, err = wrappers.NewRewardShaping(inner, shaper)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setup: %v", err)
	}

	a, err = c.CreateAgent(shaped, seed)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setup: %v", err)
	}
	return shaped, inner, a, nil
}
