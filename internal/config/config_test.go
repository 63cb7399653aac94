package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/barco/internal/game"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("BARCO_TEST_KEY", "set")
	assert.Equal(t, "set", GetEnv("BARCO_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("BARCO_TEST_MISSING", "fallback"))

	t.Setenv("BARCO_TEST_EMPTY", "")
	assert.Equal(t, "", GetEnv("BARCO_TEST_EMPTY", "fallback"), "set but empty is still set")

	t.Setenv("BARCO_TEST_PADDED", "  2222\n")
	assert.Equal(t, "2222", GetEnv("BARCO_TEST_PADDED", "fallback"))
}

func TestDecodeTuningOverlaysDefaults(t *testing.T) {
	doc := `
starting_lives: 5
level_duration: 10
enemy:
  min_speed: 50
  interval: 1.5
friend:
  amplitude: 0
seed: 99
`
	cfg, err := DecodeTuning(strings.NewReader(doc))
	require.NoError(t, err)

	want := game.DefaultConfig()
	want.StartingLives = 5
	want.LevelDuration = 10
	want.Enemy.MinSpeed = 50
	want.Enemy.Interval = 1.5
	want.Friend.Amplitude = 0
	want.Seed = 99
	assert.Equal(t, want, cfg)
}

func TestDecodeTuningEmptyDocument(t *testing.T) {
	cfg, err := DecodeTuning(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, game.DefaultConfig(), cfg)
}

func TestDecodeTuningRejectsUnknownKeys(t *testing.T) {
	_, err := DecodeTuning(strings.NewReader("lifes: 3\n"))
	assert.Error(t, err)
}

func TestDecodeTuningValidates(t *testing.T) {
	_, err := DecodeTuning(strings.NewReader("enemy:\n  min_speed: 0\n"))
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
}

func TestDecodeTuningRejectsNonFinite(t *testing.T) {
	docs := []string{
		"enemy:\n  max_speed: .inf\n",
		"player:\n  x: .nan\n",
		"friend:\n  amplitude: .nan\n",
		"level_duration: -.inf\n",
	}
	for _, doc := range docs {
		_, err := DecodeTuning(strings.NewReader(doc))
		assert.ErrorIs(t, err, game.ErrInvalidConfig, doc)
	}
}

func TestLoadTuning(t *testing.T) {
	cfg, err := LoadTuning("")
	require.NoError(t, err)
	assert.Equal(t, game.DefaultConfig(), cfg)

	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("points_per_enemy: 25\n"), 0o644))

	cfg, err = LoadTuning(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.PointsPerEnemy)

	_, err = LoadTuning(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadTuningFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 640\n"), 0o644))
	t.Setenv(TuningEnv, path)

	cfg, err := LoadTuningFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 640.0, cfg.Width)
}
