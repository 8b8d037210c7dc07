package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSavePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.png")
	require.NoError(t, SavePNG([]float64{10, 14, 30, 22}, "Cartpole",
		"Score", path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))

	require.Error(t, SavePNG(nil, "Cartpole", "Score", path))
}

func TestSaveHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.html")
	require.NoError(t, SaveHTML([]float64{10, 14, 30}, "Cartpole Scores",
		"Score", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(data), "Cartpole Scores"))

	require.Error(t, SaveHTML(nil, "Cartpole", "Score", path))
}
