// Package config handles loading and validation of renum configuration.
//
// Configuration is read from ~/.config/renum/config.toml. A missing file
// means defaults, which reproduce the classic g1.jpg..gN.jpg scheme.
//
// # Configuration Sources (highest priority first)
//
//   - Command line flags (applied by the CLI)
//   - .renum.toml inside the target directory
//   - ~/.config/renum/config.toml
//   - Default values
//
// # Keys
//
//   - prefix: prefix of new names (default: "g")
//   - extension: case-sensitive suffix of eligible entries (default: ".jpg")
//   - start: index of the first file (default: 1)
//   - no_clobber: refuse plans that would overwrite an entry (default: false)
//
// Unknown keys are rejected so typos do not silently fall back to defaults.
package config
