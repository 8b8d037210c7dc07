package experiment

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	env "github.com/samuelfneumann/godqn/environment"
	"github.com/samuelfneumann/godqn/environment/wrappers"
	"github.com/samuelfneumann/godqn/experiment/tracker"
	ts "github.com/samuelfneumann/godqn/timestep"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// chain is an environment with a single feature which counts steps.
// It reaches a terminal state after terminalAt steps, or never if
// terminalAt is 0. Every step has a reward of 1.
type chain struct {
	terminalAt int
	last       ts.TimeStep
}

func (c *chain) Reset() (ts.TimeStep, error) {
	c.last = ts.New(ts.First, 0, 1, mat.NewVecDense(1, nil), 0)
	return c.last, nil
}

func (c *chain) Step(action int) (ts.TimeStep, bool, error) {
	n := c.last.Number + 1
	obs := mat.NewVecDense(1, []float64{float64(n)})
	t := ts.Mid
	if n == c.terminalAt {
		t = ts.Last
	}
	c.last = ts.New(t, 1, 1, obs, n)
	return c.last, c.last.Last(), nil
}

func (c *chain) ObservationSpec() env.Spec {
	return env.NewSpec(mat.NewVecDense(1, nil), env.Observation,
		mat.NewVecDense(1, nil), mat.NewVecDense(1, []float64{100}),
		env.Continuous)
}

func (c *chain) ActionSpec() env.Spec      { return env.NewDiscreteActionSpec(2) }
func (c *chain) DiscountSpec() env.Spec    { return env.NewDiscountSpec(1) }
func (c *chain) LastTimeStep() ts.TimeStep { return c.last }

func (c *chain) Render() (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

// recorder is an agent which always takes action 0 and records how it
// is used
type recorder struct {
	transitions []ts.Transition
	replays     int
	eval        bool
}

func (r *recorder) Remember(t ts.Transition) error {
	r.transitions = append(r.transitions, t)
	return nil
}

func (r *recorder) Replay(batchSize int) (float64, error) {
	r.replays++
	return 0, nil
}

func (r *recorder) Remembered() int                          { return len(r.transitions) }
func (r *recorder) SelectAction(obs mat.Vector) (int, error) { return 0, nil }
func (r *recorder) Eval()                                    { r.eval = true }
func (r *recorder) Train()                                   { r.eval = false }
func (r *recorder) IsEval() bool                             { return r.eval }
func (r *recorder) Save(path string) error                   { return nil }
func (r *recorder) Load(path string) error                   { return nil }

func newExperiment(t *testing.T, e env.Environment, a *recorder,
	c Config) *Episodic {
	exp, err := NewEpisodic(e, a, c, nil, nil)
	require.NoError(t, err)
	exp.Quiet()
	return exp
}

func TestTrainingStoresEveryStep(t *testing.T) {
	a := &recorder{}
	c := Config{Episodes: 3, MaxEpisodeSteps: 100, BatchSize: 2, Train: true}
	exp := newExperiment(t, &chain{terminalAt: 5}, a, c)

	lengths := tracker.NewEpisodeLength("")
	exp.Register(lengths)
	require.NoError(t, exp.Run())

	require.Len(t, a.transitions, 15)
	require.Equal(t, []float64{5, 5, 5}, lengths.Data())
	require.False(t, a.IsEval())

	// Replay runs after each step which does not end the episode, once
	// more than BatchSize transitions are stored
	require.Equal(t, 10, a.replays)

	for i, tr := range a.transitions {
		require.Equal(t, (i+1)%5 == 0, tr.Terminal)
		require.Equal(t, tr.State.AtVec(0)+1, tr.NextState.AtVec(0))
	}
}

func TestEvaluationStoresNothing(t *testing.T) {
	a := &recorder{}
	c := Config{Episodes: 2, MaxEpisodeSteps: 100, BatchSize: 1, Train: false}
	exp := newExperiment(t, &chain{terminalAt: 4}, a, c)

	score, err := exp.RunEpisode(0)
	require.NoError(t, err)
	require.Equal(t, 4, score)
	require.Empty(t, a.transitions)
	require.Zero(t, a.replays)
	require.True(t, a.IsEval())
}

func TestStepCap(t *testing.T) {
	a := &recorder{}
	c := Config{Episodes: 1, MaxEpisodeSteps: 7, BatchSize: 32, Train: true}
	inner := &chain{}
	exp := newExperiment(t, inner, a, c)

	returns := tracker.Register(tracker.NewReturn(""), inner)
	exp.Register(returns)

	score, err := exp.RunEpisode(0)
	require.NoError(t, err)
	require.Equal(t, 7, score)
	require.Len(t, a.transitions, 7)
	require.False(t, a.transitions[6].Terminal)
	require.Equal(t, []float64{7}, returns.Data())
}

func TestRegisterTracksUnshapedReturn(t *testing.T) {
	a := &recorder{}
	c := Config{Episodes: 1, MaxEpisodeSteps: 100, BatchSize: 32, Train: true}
	inner := &chain{terminalAt: 5}
	shaped, err := wrappers.NewRewardShaping(inner,
		wrappers.TerminalPenalty(wrappers.DefaultTerminalPenalty))
	require.NoError(t, err)
	exp := newExperiment(t, shaped, a, c)

	shapedReturn := tracker.NewReturn("")
	innerReturn := tracker.Register(tracker.NewReturn(""), inner)
	exp.Register(shapedReturn)
	exp.Register(innerReturn)
	require.NoError(t, exp.Run())

	require.Equal(t, []float64{-6}, shapedReturn.Data())
	require.Equal(t, []float64{5}, innerReturn.Data())
	require.Equal(t, -10.0, a.transitions[4].Reward)
}

func TestRenderTo(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	a := &recorder{}
	c := Config{Episodes: 1, MaxEpisodeSteps: 100, BatchSize: 32, Train: true}
	exp := newExperiment(t, &chain{terminalAt: 3}, a, c)
	require.NoError(t, exp.RenderTo(dir))
	require.NoError(t, exp.Run())

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 4)
}

func TestConfig(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	c := DefaultConfig()
	c.BatchSize = 0
	require.Error(t, c.Validate())

	path := filepath.Join(t.TempDir(), "experiment.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"Episodes": 3}`), 0o644))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 3, loaded.Episodes)
	require.Equal(t, 32, loaded.BatchSize)
	require.True(t, loaded.Train)

	_, err = NewEpisodic(&chain{}, &recorder{}, c, nil, nil)
	require.Error(t, err)
}
