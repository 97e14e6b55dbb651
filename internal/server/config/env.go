package config

import (
	"github.com/caarlos0/env/v11"
)

// portEnv mirrors the PORT variable set by hosting platforms.
type portEnv struct {
	Port string `env:"PORT"`
}

// parseEnv overlays Config with environment variables. Only variables that
// are set replace the current value. PORT wins over HTTP_ADDR and binds all
// interfaces.
func parseEnv(config *Config) {
	if err := env.Parse(config); err != nil {
		panic(err)
	}

	var p portEnv
	if err := env.Parse(&p); err != nil {
		panic(err)
	}
	if p.Port != "" {
		config.HTTPAddr = ":" + p.Port
	}
}
