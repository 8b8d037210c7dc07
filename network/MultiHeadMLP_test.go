package network

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	G "gorgonia.org/gorgonia"
)

func newTestMLP(t *testing.T, hidden []int, lr float64) *MultiHeadMLP {
	t.Helper()

	acts := make([]*Activation, len(hidden))
	for i := range acts {
		acts[i] = ReLU()
	}
	solver := G.NewVanillaSolver(G.WithLearnRate(lr))
	net, err := NewMultiHeadMLP(4, 2, hidden, acts, G.GlorotU(1.0), solver)
	require.NoError(t, err)
	return net
}

func TestPredictShape(t *testing.T) {
	net := newTestMLP(t, []int{24, 24}, 0.001)

	pred, err := net.Predict([]float64{0.1, -0.2, 0.3, 0.0})
	require.NoError(t, err)
	require.Len(t, pred, 2)

	_, err = net.Predict([]float64{1, 2})
	require.Error(t, err)
}

func TestFitReducesLoss(t *testing.T) {
	net := newTestMLP(t, nil, 0.05)
	state := []float64{1, 0.5, -0.5, 0.25}
	target := []float64{1, -1}

	first, err := net.Fit(state, target)
	require.NoError(t, err)

	var last float64
	for i := 0; i < 100; i++ {
		last, err = net.Fit(state, target)
		require.NoError(t, err)
	}
	require.Less(t, last, first)

	pred, err := net.Predict(state)
	require.NoError(t, err)
	require.InDelta(t, 1.0, pred[0], 0.1)
	require.InDelta(t, -1.0, pred[1], 0.1)
}

func TestFitInvalidTarget(t *testing.T) {
	net := newTestMLP(t, []int{8}, 0.01)
	_, err := net.Fit([]float64{0, 0, 0, 0}, []float64{1, 2, 3})
	require.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.gob")
	state := []float64{0.3, 0.1, -0.4, 0.2}

	src := newTestMLP(t, []int{8, 8}, 0.01)
	for i := 0; i < 5; i++ {
		_, err := src.Fit(state, []float64{2, 3})
		require.NoError(t, err)
	}
	require.NoError(t, src.Save(path))

	dst := newTestMLP(t, []int{8, 8}, 0.01)
	require.NoError(t, dst.Load(path))

	want, err := src.Predict(state)
	require.NoError(t, err)
	got, err := dst.Predict(state)
	require.NoError(t, err)
	require.InDeltaSlice(t, want, got, 1e-12)
}

func TestLoadArchitectureMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.gob")

	src := newTestMLP(t, []int{8, 8}, 0.01)
	require.NoError(t, src.Save(path))

	dst := newTestMLP(t, []int{16}, 0.01)
	require.Error(t, dst.Load(path))

	require.Error(t, dst.Load(filepath.Join(t.TempDir(), "missing.gob")))
}

func TestSet(t *testing.T) {
	state := []float64{0.3, 0.1, -0.4, 0.2}
	src := newTestMLP(t, []int{8}, 0.01)
	dst := newTestMLP(t, []int{8}, 0.01)

	require.NoError(t, dst.Set(src))
	want, err := src.Predict(state)
	require.NoError(t, err)
	got, err := dst.Predict(state)
	require.NoError(t, err)
	require.InDeltaSlice(t, want, got, 1e-12)

	other := newTestMLP(t, []int{4}, 0.01)
	require.Error(t, other.Set(src))
}

func TestActivationJSON(t *testing.T) {
	acts := []*Activation{ReLU(), TanH(), Sigmoid(), Identity()}
	data, err := json.Marshal(acts)
	require.NoError(t, err)
	require.JSONEq(t, `["relu", "tanh", "sigmoid", "identity"]`, string(data))

	var out []*Activation
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 4)
	require.True(t, out[3].IsIdentity())

	require.Error(t, json.Unmarshal([]byte(`["softmax"]`), &out))
}

func TestNewInvalid(t *testing.T) {
	solver := G.NewVanillaSolver()
	_, err := NewMultiHeadMLP(0, 2, nil, nil, G.Zeroes(), solver)
	require.Error(t, err)
	_, err = NewMultiHeadMLP(4, 2, []int{8}, nil, G.Zeroes(), solver)
	require.Error(t, err)
	_, err = NewMultiHeadMLP(4, 2, []int{0}, []*Activation{ReLU()},
		G.Zeroes(), solver)
	require.Error(t, err)
}
