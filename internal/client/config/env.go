package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v10"
	"github.com/dmitrijs2005/signkeeper/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv loads the dotenv file into the process environment (existing
// variables are not overwritten) and then overlays Config with the
// SIGNKEEPER_* variables. Unset variables leave fields untouched.
func parseEnv(cfg *Config, args []string) {
	path := flagx.EnvFile(args)
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
