package config

import (
	"os"
	"time"
)

const (
	DefaultAPIBaseURL     = "http://localhost:3000/api"
	DefaultRequestTimeout = 30 * time.Second
	DefaultDatabasePath   = "signkeeper.db"
)

// Config holds runtime settings for the terminal client.
type Config struct {
	APIBaseURL     string        `env:"SIGNKEEPER_API_URL"`
	RequestTimeout time.Duration `env:"SIGNKEEPER_TIMEOUT"`
	DatabasePath   string        `env:"SIGNKEEPER_DB"`
	LogLevel       string        `env:"SIGNKEEPER_LOG_LEVEL"`
	LogFormat      string        `env:"SIGNKEEPER_LOG_FORMAT"`
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.RequestTimeout = DefaultRequestTimeout
	c.DatabasePath = DefaultDatabasePath
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig builds a Config from defaults, the dotenv file, the environment,
// the JSON file and finally the command-line flags. Later sources win.
//
// Malformed input in any source panics, like flag.PanicOnError.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, args)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
