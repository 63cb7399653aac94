package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/barco/internal/game"
)

// TuningEnv names the environment variable holding the tuning file path.
const TuningEnv = "BARCO_TUNING"

// DecodeTuning reads YAML from r and overlays it onto the default game
// configuration. Keys absent from the document keep their defaults;
// unknown keys are rejected.
func DecodeTuning(r io.Reader) (game.Config, error) {
	cfg := game.DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return game.Config{}, fmt.Errorf("decode tuning: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

// LoadTuning reads a tuning file. An empty path yields the defaults.
func LoadTuning(path string) (game.Config, error) {
	if path == "" {
		return game.DefaultConfig(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return game.Config{}, fmt.Errorf("open tuning %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := DecodeTuning(f)
	if err != nil {
		return game.Config{}, fmt.Errorf("tuning %s: %w", path, err)
	}
	return cfg, nil
}

// LoadTuningFromEnv loads the file named by BARCO_TUNING, if any.
func LoadTuningFromEnv() (game.Config, error) {
	return LoadTuning(GetEnv(TuningEnv, ""))
}
