package environment

import (
	"testing"

	ts "github.com/samuelfneumann/godqn/timestep"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

func step(n int, obs ...float64) ts.TimeStep {
	return ts.New(ts.Mid, 0, 1, mat.NewVecDense(len(obs), obs), n)
}

func TestStepLimit(t *testing.T) {
	limit := NewStepLimit(3)

	s := step(2, 0)
	require.False(t, limit.End(&s))
	require.True(t, s.Mid())

	s = step(3, 0)
	require.True(t, limit.End(&s))
	require.True(t, s.Last())
	require.Equal(t, ts.Timeout, s.EndType())
}

func TestIntervalLimit(t *testing.T) {
	limit := NewIntervalLimit([]r1.Interval{{Min: -1, Max: 1}}, []int{1},
		ts.TerminalStateReached)

	s := step(1, 5, 0.5)
	require.False(t, limit.End(&s))

	s = step(1, 0, -1.5)
	require.True(t, limit.End(&s))
	require.True(t, s.Terminal())
}

func TestEnders(t *testing.T) {
	enders := Enders{
		NewFunctionEnder(func(v mat.Vector) bool { return v.AtVec(0) > 0 },
			ts.TerminalStateReached),
		NewStepLimit(10),
	}

	s := step(10, 1)
	require.True(t, enders.End(&s))
	require.True(t, s.Terminal())

	s = step(10, -1)
	require.True(t, enders.End(&s))
	require.Equal(t, ts.Timeout, s.EndType())

	s = step(1, -1)
	require.False(t, enders.End(&s))
}

func TestUniformStarter(t *testing.T) {
	bounds := []r1.Interval{{Min: -0.05, Max: 0.05}, {Min: 1, Max: 2}}
	starter := NewUniformStarter(bounds, 7)

	for i := 0; i < 100; i++ {
		s := starter.Start()
		require.Equal(t, 2, s.Len())
		require.True(t, s.AtVec(0) >= -0.05 && s.AtVec(0) <= 0.05)
		require.True(t, s.AtVec(1) >= 1 && s.AtVec(1) <= 2)
	}
}

func TestDiscreteActionSpec(t *testing.T) {
	spec := NewDiscreteActionSpec(4)
	require.Equal(t, Discrete, spec.Cardinality)
	require.Equal(t, 3.0, spec.UpperBound.AtVec(0))
	require.Panics(t, func() {
		NewSpec(mat.NewVecDense(2, nil), Observation,
			mat.NewVecDense(1, nil), mat.NewVecDense(2, nil), Continuous)
	})
}
