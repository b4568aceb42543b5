package common

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "HAMTRI"

// Config holds ambient settings which never change the measured numbers
type Config struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`
	Workers   int    `envconfig:"WORKERS" default:"1"`
}

// LoadConfig reads optional dotenv files (".env" when none given)
// and then fills Config from the environment
func LoadConfig(envFiles ...string) (Config, error) {
	var config Config
	err := godotenv.Load(envFiles...)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return config, err
	}
	err = envconfig.Process(EnvPrefix, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

// LogConfig converts ambient settings into logger settings
func (c Config) LogConfig() LogConfig {
	return LogConfig{
		Level:  c.LogLevel,
		Format: c.LogFormat,
	}
}
