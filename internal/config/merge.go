package config

import "fmt"

// MergeLocal applies local overrides on top of global, returning a new
// Config without mutating global. Returns a copy of global if local is nil.
// The merged result is validated since a local file may only be valid in
// combination with the global values.
func MergeLocal(global Config, local *LocalConfig) (Config, error) {
	merged := global
	if local == nil {
		return merged, nil
	}

	if local.Prefix != nil {
		merged.Prefix = *local.Prefix
	}
	if local.Extension != nil {
		merged.Extension = *local.Extension
	}
	if local.Start != nil {
		merged.Start = *local.Start
	}
	if local.NoClobber != nil {
		merged.NoClobber = *local.NoClobber
	}

	if err := merged.Validate(); err != nil {
		return global, fmt.Errorf("invalid %s: %w", LocalConfigFileName, err)
	}
	return merged, nil
}
