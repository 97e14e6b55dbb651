package config

import "time"

// Config holds runtime settings for the PetSwap CLI.
//
// Fields:
//   - ServerURL: base URL of the PetSwap REST API.
//   - DatabasePath: SQLite file keeping the session token between runs.
//   - RequestTimeout: per-request HTTP timeout.
//   - LogLevel: client log level; session diagnostics are logged at debug.
type Config struct {
	ServerURL      string        `env:"PETSWAP_API_URL"`
	DatabasePath   string        `env:"PETSWAP_DB"`
	RequestTimeout time.Duration `env:"PETSWAP_TIMEOUT"`
	LogLevel       string        `env:"PETSWAP_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:10000"
	c.DatabasePath = ".petswap/client.db"
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
