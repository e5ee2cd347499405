package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
)

// LoadOptions controls how Load discovers its sources.
type LoadOptions struct {
	// EnvFile is the config file name looked up in the working directory.
	// Defaults to DefaultEnvFile.
	EnvFile string
	Logger  *zap.Logger
}

// Load locates the config file, snapshots the process environment and
// resolves Settings. It is meant to be called once at startup; the result is
// handed to consumers explicitly.
func Load(opts *LoadOptions) (Settings, error) {
	var (
		envFile = DefaultEnvFile
		logger  = zap.NewNop()
	)
	if opts != nil {
		if opts.EnvFile != "" {
			envFile = opts.EnvFile
		}
		if opts.Logger != nil {
			logger = opts.Logger
		}
	}

	configFile, err := NewLocator(logger).Locate(envFile)
	if err != nil {
		return Settings{}, err
	}

	return Resolve(configFile, env.ToMap(os.Environ()), logger)
}
