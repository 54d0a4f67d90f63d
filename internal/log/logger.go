package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	logger     = zerolog.New(os.Stderr).With().Timestamp().Logger()
	loggerLock sync.RWMutex
)

// Setup configures the global logger. Development mode writes human
// readable console output, production writes JSON lines.
func Setup(levelStr string, development bool) {
	var output io.Writer = os.Stderr
	if development {
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}

	loggerLock.Lock()
	logger = zerolog.New(output).
		Level(parseLogLevel(levelStr)).
		With().
		Timestamp().
		Logger()
	loggerLock.Unlock()
}

// parseLogLevel converts a string log level to zerolog.Level
func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger returns the global logger, optionally scoped to a component.
func Logger(component string) zerolog.Logger {
	loggerLock.RLock()
	defer loggerLock.RUnlock()
	if component == "" {
		return logger
	}
	return logger.With().Str("component", component).Logger()
}
