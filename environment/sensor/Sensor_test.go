package sensor

import (
	"testing"

	env "github.com/samuelfneumann/godqn/environment"
	ts "github.com/samuelfneumann/godqn/timestep"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

type fixedStarter float64

func (f fixedStarter) Start() *mat.VecDense {
	return mat.NewVecDense(1, []float64{float64(f)})
}

func TestSpecs(t *testing.T) {
	s, first, err := New(NewDefaultApproach(3), 0.95, 3)
	require.NoError(t, err)
	require.True(t, first.First())

	n, err := env.NumActions(s)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, 1, env.NumFeatures(s))

	require.GreaterOrEqual(t, s.Distance(), 0.5)
	require.LessOrEqual(t, s.Distance(), 3.0)
	require.InDelta(t, s.Distance(), first.Observation.AtVec(0), 0.05)
}

func TestReachGoal(t *testing.T) {
	s, _, err := New(NewApproach(fixedStarter(0.5), TargetDistance,
		Tolerance, EpisodeSteps), 1.0, 0)
	require.NoError(t, err)

	// 0.5 -> 0.4 -> 0.3
	step, done, err := s.Step(GoFurtherForward)
	require.NoError(t, err)
	require.False(t, done)
	require.Less(t, step.Reward, 0.0)

	step, done, err = s.Step(GoFurtherForward)
	require.NoError(t, err)
	require.True(t, done)
	require.True(t, step.Terminal())
	require.Equal(t, GoalReward, step.Reward)
}

func TestHitWall(t *testing.T) {
	s, _, err := New(NewApproach(fixedStarter(0.1), 2.0, Tolerance,
		EpisodeSteps), 1.0, 0)
	require.NoError(t, err)

	step, done, err := s.Step(GoFurtherForward)
	require.NoError(t, err)
	require.True(t, done)
	require.True(t, step.Terminal())
	require.Equal(t, FailureReward, step.Reward)
	require.GreaterOrEqual(t, step.Observation.AtVec(0), MinRange)
}

func TestTimeout(t *testing.T) {
	s, _, err := New(NewApproach(fixedStarter(2.0), TargetDistance,
		Tolerance, 4), 1.0, 0)
	require.NoError(t, err)

	var step ts.TimeStep
	done := false
	for i := 0; i < 4; i++ {
		action := GoForward
		if i%2 == 1 {
			action = GoBackward
		}
		step, done, err = s.Step(action)
		require.NoError(t, err)
	}
	require.True(t, done)
	require.False(t, step.Terminal())
	require.Equal(t, ts.Timeout, step.EndType())

	_, _, err = s.Step(GoForward)
	require.Error(t, err)
}

func TestIllegalAction(t *testing.T) {
	s, _, err := New(NewDefaultApproach(0), 1.0, 0)
	require.NoError(t, err)
	_, _, err = s.Step(4)
	require.Error(t, err)
}

func TestRender(t *testing.T) {
	s, _, err := New(NewDefaultApproach(0), 1.0, 0)
	require.NoError(t, err)
	img, err := s.Render()
	require.NoError(t, err)
	require.Equal(t, ScreenWidth, img.Bounds().Dx())
}
