package expreplay

import (
	"testing"

	"github.com/samuelfneumann/godqn/timestep"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func transition(id float64) timestep.Transition {
	return timestep.Transition{
		State:     mat.NewVecDense(2, []float64{id, id}),
		Action:    int(id) % 2,
		Reward:    id,
		NextState: mat.NewVecDense(2, []float64{id + 1, id + 1}),
	}
}

func TestAddEvictsOldest(t *testing.T) {
	b, err := New(2, 2, NewUniformSelector(1))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, b.Add(transition(float64(i))))
	}

	require.Equal(t, 2, b.Len())
	require.Equal(t, 1.0, b.At(0).Reward)
	require.Equal(t, 2.0, b.At(1).Reward)
}

func TestLenNeverExceedsCapacity(t *testing.T) {
	b, err := Config{Capacity: DefaultCapacity, Seed: 3}.Create(2)
	require.NoError(t, err)

	for i := 0; i < DefaultCapacity+250; i++ {
		require.NoError(t, b.Add(transition(float64(i))))
		require.LessOrEqual(t, b.Len(), b.Capacity())
	}
	require.Equal(t, DefaultCapacity, b.Len())
	require.Equal(t, 250.0, b.At(0).Reward)
}

func TestSampleWithoutReplacement(t *testing.T) {
	b, err := New(10, 2, NewUniformSelector(42))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		require.NoError(t, b.Add(transition(float64(i))))
	}

	for trial := 0; trial < 20; trial++ {
		batch, err := b.Sample(10)
		require.NoError(t, err)
		require.Len(t, batch, 10)

		seen := make(map[float64]bool)
		for _, tr := range batch {
			require.False(t, seen[tr.Reward], "transition sampled twice")
			seen[tr.Reward] = true
		}
	}
}

func TestSampleErrors(t *testing.T) {
	b, err := New(5, 2, NewUniformSelector(0))
	require.NoError(t, err)

	_, err = b.Sample(1)
	require.Error(t, err)
	require.True(t, IsEmptyBuffer(err))

	require.NoError(t, b.Add(transition(0)))
	_, err = b.Sample(2)
	require.Error(t, err)
	require.True(t, IsInsufficientSamples(err))
	require.False(t, IsEmptyBuffer(err))
}

func TestFifoSelector(t *testing.T) {
	b, err := New(3, 2, NewFifoSelector())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, b.Add(transition(float64(i))))
	}

	batch, err := b.Sample(2)
	require.NoError(t, err)
	require.Equal(t, 2.0, batch[0].Reward)
	require.Equal(t, 3.0, batch[1].Reward)
}

func TestAddInvalidFeatureSize(t *testing.T) {
	b, err := New(3, 3, NewFifoSelector())
	require.NoError(t, err)
	require.Error(t, b.Add(transition(0)))
	require.Equal(t, 0, b.Len())
}

func TestNewInvalid(t *testing.T) {
	_, err := New(0, 2, NewFifoSelector())
	require.Error(t, err)
	_, err = New(2, 0, NewFifoSelector())
	require.Error(t, err)
	_, err = New(2, 2, nil)
	require.Error(t, err)
}
