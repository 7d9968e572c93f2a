// Package log wraps zerolog with the component/host/task field helpers used
// throughout the announcer core. Adapted from the structured-logging
// convention used across the rest of this codebase's control-plane
// packages.
package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide logger instance, configured once via Init.
var Logger zerolog.Logger

// Level is a coarse logging level, decoupled from zerolog's own type so
// config files don't need to import zerolog.
type Level string

const (
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
)

// Config controls Init.
type Config struct {
	Level      Level
	JSONOutput bool
	Output     io.Writer
}

func init() {
	Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
}

// Init (re)configures the global logger. Call once at daemon startup before
// any announcer goroutine is spawned.
func Init(cfg Config) {
	var level zerolog.Level
	switch cfg.Level {
	case DebugLevel:
		level = zerolog.DebugLevel
	case WarnLevel:
		level = zerolog.WarnLevel
	case ErrorLevel:
		level = zerolog.ErrorLevel
	default:
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := cfg.Output
	if output == nil {
		output = os.Stdout
	}

	if cfg.JSONOutput {
		Logger = zerolog.New(output).With().Timestamp().Logger()
	} else {
		Logger = zerolog.New(zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}
}

// WithComponent returns a child logger tagged with the announcer
// subsystem name (e.g. "scheduler_announcer", "reconciler").
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}

// WithHostID tags a child logger with the stable process host id.
func WithHostID(logger zerolog.Logger, hostID string) zerolog.Logger {
	return logger.With().Str("host_id", hostID).Logger()
}

// WithTaskID tags a child logger with a task id.
func WithTaskID(logger zerolog.Logger, taskID string) zerolog.Logger {
	return logger.With().Str("task_id", taskID).Logger()
}

// WithEndpoint tags a child logger with the scheduler endpoint a stream is
// routed to.
func WithEndpoint(logger zerolog.Logger, endpoint string) zerolog.Logger {
	return logger.With().Str("scheduler_endpoint", endpoint).Logger()
}
