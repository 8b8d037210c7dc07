package deepq

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samuelfneumann/godqn/environment/envconfig"
	"github.com/samuelfneumann/godqn/expreplay"
	ts "github.com/samuelfneumann/godqn/timestep"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// tableQ predicts fixed values keyed by the first state feature and
// records every call to Fit
type tableQ struct {
	values  map[float64][]float64
	outputs int
	fits    [][]float64
}

func (q *tableQ) Predict(state []float64) ([]float64, error) {
	v, ok := q.values[state[0]]
	if !ok {
		return make([]float64, q.outputs), nil
	}
	return append([]float64(nil), v...), nil
}

func (q *tableQ) Fit(state, target []float64) (float64, error) {
	q.fits = append(q.fits, append([]float64(nil), target...))
	return 1, nil
}

func (q *tableQ) Inputs() int            { return 1 }
func (q *tableQ) Outputs() int           { return q.outputs }
func (q *tableQ) Save(path string) error { return nil }
func (q *tableQ) Load(path string) error { return nil }

func newTestAgent(t *testing.T, q *tableQ, epsilon float64) *DeepQ {
	replay, err := expreplay.New(100, 1, expreplay.NewUniformSelector(1))
	require.NoError(t, err)
	explore, err := NewExploration(epsilon, 0.01, 0.995)
	require.NoError(t, err)

	d, err := NewWithApproximator(q, replay, 0.95, explore, q.outputs, 2)
	require.NoError(t, err)
	return d
}

func transition(s float64, a int, r float64, next float64,
	terminal bool) ts.Transition {
	return ts.Transition{
		State:     mat.NewVecDense(1, []float64{s}),
		Action:    a,
		Reward:    r,
		NextState: mat.NewVecDense(1, []float64{next}),
		Terminal:  terminal,
	}
}

func TestTargetTerminal(t *testing.T) {
	q := &tableQ{
		outputs: 2,
		values:  map[float64][]float64{0: {3, 4}, 1: {10, 20}},
	}
	d := newTestAgent(t, q, 1)

	target, err := d.Target(transition(0, 1, -10, 1, true))
	require.NoError(t, err)
	require.Equal(t, []float64{3, -10}, target)
}

func TestTargetBootstrapped(t *testing.T) {
	q := &tableQ{
		outputs: 2,
		values:  map[float64][]float64{0: {3, 4}, 1: {10, 20}},
	}
	d := newTestAgent(t, q, 1)

	target, err := d.Target(transition(0, 0, 1, 1, false))
	require.NoError(t, err)
	require.Equal(t, 4.0, target[1])
	require.InDelta(t, 1+0.95*20, target[0], 1e-12)
}

func TestReplayFitsEachSample(t *testing.T) {
	q := &tableQ{outputs: 3}
	d := newTestAgent(t, q, 1)

	for i := 0; i < 10; i++ {
		require.NoError(t, d.Remember(transition(float64(i), i%3, 1,
			float64(i+1), false)))
	}
	require.Equal(t, 10, d.Remembered())

	loss, err := d.Replay(4)
	require.NoError(t, err)
	require.Equal(t, 1.0, loss)
	require.Len(t, q.fits, 4)
	require.InDelta(t, 0.995, d.Epsilon(), 1e-12)
}

func TestReplayInsufficientSamples(t *testing.T) {
	q := &tableQ{outputs: 2}
	d := newTestAgent(t, q, 1)

	_, err := d.Replay(1)
	require.Error(t, err)
	require.True(t, expreplay.IsEmptyBuffer(err))

	require.NoError(t, d.Remember(transition(0, 0, 1, 1, false)))
	_, err = d.Replay(2)
	require.Error(t, err)
	require.True(t, expreplay.IsInsufficientSamples(err))
	require.Empty(t, q.fits)
	require.Equal(t, 1.0, d.Epsilon())
}

func TestEpsilonDecaysToFloor(t *testing.T) {
	q := &tableQ{outputs: 2}
	d := newTestAgent(t, q, 1)
	require.NoError(t, d.Remember(transition(0, 0, 1, 1, false)))

	prev := d.Epsilon()
	for i := 0; i < 2000; i++ {
		_, err := d.Replay(1)
		require.NoError(t, err)
		require.LessOrEqual(t, d.Epsilon(), prev)
		prev = d.Epsilon()
	}
	require.LessOrEqual(t, d.Epsilon(), 0.01)
	require.Greater(t, d.Epsilon(), 0.01*0.995)
}

func TestSelectActionGreedy(t *testing.T) {
	q := &tableQ{
		outputs: 3,
		values:  map[float64][]float64{0: {0, 5, 1}},
	}
	d := newTestAgent(t, q, 0)
	obs := mat.NewVecDense(1, []float64{0})

	for i := 0; i < 50; i++ {
		a, err := d.SelectAction(obs)
		require.NoError(t, err)
		require.Equal(t, 1, a)
	}
}

func TestSelectActionEval(t *testing.T) {
	q := &tableQ{
		outputs: 3,
		values:  map[float64][]float64{0: {0, 1, 7}},
	}
	d := newTestAgent(t, q, 1)
	d.Eval()
	require.True(t, d.IsEval())
	obs := mat.NewVecDense(1, []float64{0})

	for i := 0; i < 50; i++ {
		a, err := d.SelectAction(obs)
		require.NoError(t, err)
		require.Equal(t, 2, a)
	}

	d.Train()
	require.False(t, d.IsEval())
}

func TestSelectActionExplores(t *testing.T) {
	q := &tableQ{
		outputs: 3,
		values:  map[float64][]float64{0: {0, 5, 1}},
	}
	d := newTestAgent(t, q, 1)
	obs := mat.NewVecDense(1, []float64{0})

	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		a, err := d.SelectAction(obs)
		require.NoError(t, err)
		require.True(t, a >= 0 && a < 3)
		seen[a] = true
	}
	require.Len(t, seen, 3)

	_, err := d.SelectAction(mat.NewVecDense(2, nil))
	require.Error(t, err)
}

func TestRememberIllegalAction(t *testing.T) {
	q := &tableQ{outputs: 2}
	d := newTestAgent(t, q, 1)
	require.Error(t, d.Remember(transition(0, 2, 1, 1, false)))
	require.Equal(t, 0, d.Remembered())
}

func TestExplorationValidation(t *testing.T) {
	_, err := NewExploration(1.5, 0.01, 0.995)
	require.Error(t, err)
	_, err = NewExploration(1, 0.01, 0)
	require.Error(t, err)

	e, err := NewExploration(0.005, 0.01, 0.5)
	require.NoError(t, err)
	e.Decay()
	require.Equal(t, 0.005, e.Epsilon())
}

func TestCreateAgent(t *testing.T) {
	e, _, err := envconfig.CreateCartpole(0, 0.95, 1)
	require.NoError(t, err)

	c := DefaultConfig()
	require.NoError(t, c.Validate())

	a, err := c.CreateAgent(e, 3)
	require.NoError(t, err)

	first, err := e.Reset()
	require.NoError(t, err)
	action, err := a.SelectAction(first.Observation)
	require.NoError(t, err)
	require.True(t, action == 0 || action == 1)

	c.Activations = c.Activations[:1]
	require.Error(t, c.Validate())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "agent.json")
	data := `{
		"HiddenSizes": [16],
		"Activations": ["tanh"],
		"Discount": 0.9,
		"InitWFn": {"Type": "HeU", "Config": {"Gain": 1}}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, []int{16}, c.HiddenSizes)
	require.Equal(t, "tanh", c.Activations[0].String())
	require.Equal(t, 0.9, c.Discount)
	require.Equal(t, 0.995, c.EpsilonDecay)
	require.NotNil(t, c.Solver.Solver)

	require.NoError(t, os.WriteFile(path, []byte(`{"Activations": []}`),
		0o644))
	_, err = LoadConfig(path)
	require.Error(t, err)
}
