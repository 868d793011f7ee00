package config

// Validate checks that the config produces usable renamer options.
func (c Config) Validate() error {
	return c.Options().Validate()
}
