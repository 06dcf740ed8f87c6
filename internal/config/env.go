package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/tanq16/scenefetch/internal/utils"
)

// LookupFunc reports the value of an environment variable.
type LookupFunc func(key string) (string, bool)

// ReadDotEnv reads KEY=VALUE lines from path with dotenv semantics. A
// missing file yields an empty map.
func ReadDotEnv(path string) (map[string]string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}

// Lookup checks the process environment first, then the .env values.
// An empty process variable counts as unset.
func Lookup(dotenv map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
}

// WithEnv returns a copy of c with SCANNETPP_TOKEN and SCANNETPP_DATA_ROOT applied.
func (c Config) WithEnv(lookup LookupFunc) Config {
	if v, ok := lookup(utils.EnvToken); ok && v != "" {
		c.Token = v
		log.Info().Str("op", "config/env").Msgf("using token from env %s", utils.EnvToken)
	}
	if v, ok := lookup(utils.EnvDataRoot); ok && v != "" {
		c.DataRoot = v
		log.Info().Str("op", "config/env").Msgf("using data_root from env %s", utils.EnvDataRoot)
	}
	return c
}
