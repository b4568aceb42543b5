package common

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	guuid "github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Log output formats
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	// ErrInvalidLogLevel returned when the level name is not one of debug, info, warn, error
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat returned when the format is neither console nor json
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
	// Output defaults to os.Stderr, stdout belongs to the run report
	Output io.Writer
}

// GetNewLogger creates a leveled logger writing to the configured output
func GetNewLogger(config LogConfig) (zerolog.Logger, error) {
	level, err := parseLevel(config.Level)
	if err != nil {
		return zerolog.Nop(), err
	}
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	switch strings.ToLower(config.Format) {
	case "", FormatConsole:
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	case FormatJSON:
	default:
		return zerolog.Nop(), fmt.Errorf("%w: %q", ErrInvalidLogFormat, config.Format)
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

func parseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
	}
}

// GetRandomID generates random unique id used to tag a run
func GetRandomID() (string, error) {
	id, err := guuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
