package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// LocalConfigFileName is the per-directory override file.
const LocalConfigFileName = ".renum.toml"

// LocalConfig holds per-directory overrides from .renum.toml.
// Nil fields inherit from the global config.
type LocalConfig struct {
	Prefix    *string
	Extension *string
	Start     *int
	NoClobber *bool
}

// LoadLocal reads .renum.toml from dir.
// Returns nil (no error) if the file doesn't exist.
// Returns an error only on parse failure.
func LoadLocal(dir string) (*LocalConfig, error) {
	configFile := filepath.Join(dir, LocalConfigFileName)

	data, err := os.ReadFile(configFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
	}

	raw, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
	}

	return &LocalConfig{
		Prefix:    raw.Prefix,
		Extension: raw.Extension,
		Start:     raw.Start,
		NoClobber: raw.NoClobber,
	}, nil
}
