// Package config loads app settings from the environment.
package config

import "github.com/caarlos0/env/v11"

// Config holds the environment-driven settings. Command-line flags
// take precedence where both exist.
type Config struct {
	// DBPath overrides the default database location.
	DBPath string `env:"QUIZDECK_DB"`

	// NoDemo disables seeding the demo set into an empty store.
	NoDemo bool `env:"QUIZDECK_NO_DEMO"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	return env.ParseAs[Config]()
}
