package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/raphi011/renum/internal/renamer"
)

// Config holds the renum configuration
type Config struct {
	Prefix    string `toml:"prefix"`
	Extension string `toml:"extension"`
	Start     int    `toml:"start"`
	NoClobber bool   `toml:"no_clobber"`
}

// Default returns the default configuration, matching the classic
// g1.jpg..gN.jpg scheme
func Default() Config {
	return Config{
		Prefix:    renamer.DefaultPrefix,
		Extension: renamer.DefaultExtension,
		Start:     renamer.DefaultStart,
	}
}

// Options converts the config into renamer options.
func (c Config) Options() renamer.Options {
	return renamer.Options{
		Prefix:    c.Prefix,
		Extension: c.Extension,
		Start:     c.Start,
		NoClobber: c.NoClobber,
	}
}

// Encode writes the config as TOML.
func (c Config) Encode() (string, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Path returns the path to the global config file
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "renum", "config.toml"), nil
}

// rawConfig uses pointers so keys missing from the file keep their defaults
type rawConfig struct {
	Prefix    *string `toml:"prefix"`
	Extension *string `toml:"extension"`
	Start     *int    `toml:"start"`
	NoClobber *bool   `toml:"no_clobber"`
}

// Load reads config from ~/.config/renum/config.toml
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads config from path. A missing file yields Default().
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	raw, err := decode(data)
	if err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg := Default()
	if raw.Prefix != nil {
		cfg.Prefix = *raw.Prefix
	}
	if raw.Extension != nil {
		cfg.Extension = *raw.Extension
	}
	if raw.Start != nil {
		cfg.Start = *raw.Start
	}
	if raw.NoClobber != nil {
		cfg.NoClobber = *raw.NoClobber
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// decode parses TOML and rejects keys renum does not know
func decode(data []byte) (rawConfig, error) {
	var raw rawConfig
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return rawConfig{}, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return rawConfig{}, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return raw, nil
}

const defaultConfig = `# renum configuration

# Prefix of the new names: prefix + index + extension
prefix = "g"

# Only entries ending with this suffix are renamed (case-sensitive).
# The same suffix is used for the new names.
extension = ".jpg"

# Index of the first file
start = 1

# Refuse to rename anything if a new name would overwrite an existing entry
no_clobber = false

# A .renum.toml file inside the target directory overrides these values
# for that directory only.
`

// Init creates a default config file at ~/.config/renum/config.toml
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	return path, InitFile(path, force)
}

// InitFile writes the default config template to path.
func InitFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(defaultConfig), 0o644)
}
