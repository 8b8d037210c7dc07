package envconfig

import (
	"encoding/json"
	"testing"

	env "github.com/samuelfneumann/godqn/environment"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	for _, name := range Names() {
		e, first, err := NewConfig(name, 0, 0.95, 1).Create()
		require.NoError(t, err, name)
		require.True(t, first.First())
		require.Equal(t, 0.95, first.Discount)

		_, err = env.NumActions(e)
		require.NoError(t, err)
	}
}

func TestCreateUnknown(t *testing.T) {
	_, _, err := NewConfig("acrobot", 0, 1, 0).Create()
	require.Error(t, err)

	_, _, err = NewConfig(Cartpole, -1, 1, 0).Create()
	require.Error(t, err)
}

func TestUnmarshal(t *testing.T) {
	var c Config
	data := []byte(`{"Environment": "sensor", "EpisodeCutoff": 50, ` +
		`"Discount": 0.9, "Seed": 4}`)
	require.NoError(t, json.Unmarshal(data, &c))
	require.Equal(t, NewConfig(Sensor, 50, 0.9, 4), c)
}
