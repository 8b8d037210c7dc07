package wrappers

import (
	"testing"

	"github.com/samuelfneumann/godqn/environment"
	ts "github.com/samuelfneumann/godqn/timestep"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// chain is an environment whose episodes end in a terminal state
// after length steps, rewarding each step with +1
type chain struct {
	length   int
	lastStep ts.TimeStep
}

func newChain(length int) *chain {
	c := &chain{length: length}
	c.Reset()
	return c
}

func (c *chain) Reset() (ts.TimeStep, error) {
	c.lastStep = ts.New(ts.First, 0, 1, mat.NewVecDense(1, nil), 0)
	return c.lastStep, nil
}

func (c *chain) Step(action int) (ts.TimeStep, bool, error) {
	n := c.lastStep.Number + 1
	obs := mat.NewVecDense(1, []float64{float64(n)})
	step := ts.New(ts.Mid, 1, 1, obs, n)
	if n >= c.length {
		step.SetEnd(ts.TerminalStateReached)
	}
	c.lastStep = step
	return step, step.Last(), nil
}

func (c *chain) ObservationSpec() environment.Spec {
	return environment.NewSpec(mat.NewVecDense(1, nil),
		environment.Observation, mat.NewVecDense(1, nil),
		mat.NewVecDense(1, []float64{float64(c.length)}),
		environment.Continuous)
}

func (c *chain) ActionSpec() environment.Spec {
	return environment.NewDiscreteActionSpec(2)
}

func (c *chain) DiscountSpec() environment.Spec {
	return environment.NewDiscountSpec(1)
}

func (c *chain) LastTimeStep() ts.TimeStep {
	return c.lastStep
}

func TestTerminalPenalty(t *testing.T) {
	shaped, err := NewRewardShaping(newChain(3),
		TerminalPenalty(DefaultTerminalPenalty))
	require.NoError(t, err)

	_, err = shaped.Reset()
	require.NoError(t, err)

	rewards := []float64{}
	done := false
	for !done {
		var step ts.TimeStep
		step, done, err = shaped.Step(0)
		require.NoError(t, err)
		rewards = append(rewards, step.Reward)
	}
	require.Equal(t, []float64{1, 1, -10}, rewards)
	require.Equal(t, -10.0, shaped.LastTimeStep().Reward)
	require.Equal(t, 1.0, environment.Unwrap(shaped).LastTimeStep().Reward)
}

func TestPenaltyIgnoresTimeout(t *testing.T) {
	limited, err := NewStepLimit(newChain(10), 2)
	require.NoError(t, err)
	shaped, err := NewRewardShaping(limited, TerminalPenalty(-10))
	require.NoError(t, err)

	_, err = shaped.Reset()
	require.NoError(t, err)

	step, done, err := shaped.Step(0)
	require.NoError(t, err)
	require.False(t, done)

	step, done, err = shaped.Step(0)
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, ts.Timeout, step.EndType())
	require.Equal(t, 1.0, step.Reward)

	_, _, err = shaped.Step(0)
	require.Error(t, err)

	_, ok := environment.Unwrap(shaped).(*chain)
	require.True(t, ok)
}

func TestIdentity(t *testing.T) {
	shaped, err := NewRewardShaping(newChain(1), Identity)
	require.NoError(t, err)

	step, done, err := shaped.Step(1)
	require.NoError(t, err)
	require.True(t, done)
	require.Equal(t, 1.0, step.Reward)
}

func TestNewInvalid(t *testing.T) {
	_, err := NewRewardShaping(nil, Identity)
	require.Error(t, err)
	_, err = NewRewardShaping(newChain(1), nil)
	require.Error(t, err)
	_, err = NewStepLimit(newChain(1), 0)
	require.Error(t, err)
}
