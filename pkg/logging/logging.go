// Package logging configures hoard's global zerolog logger and hands out
// per-component child loggers.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLogLevel is the environment variable that sets verbosity.
const EnvLogLevel = "HOARD_LOG"

// Setup configures the global logger from a level string
// (trace|debug|info|warn|error, case-insensitive; empty/unrecognized
// falls back to warn) and tees output to both stderr and a log file under
// the state directory.
func Setup(level string) {
	zerolog.SetGlobalLevel(parseLevel(level))

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}

	writers := []io.Writer{console}
	logFile := logFilePath()
	if f, err := openLogFile(logFile); err == nil {
		writers = append(writers, f)
	} else {
		log.Warn().Err(err).Str("path", logFile).Msg("failed to open log file, logging to console only")
	}

	var out io.Writer = console
	if len(writers) > 1 {
		out = io.MultiWriter(writers...)
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()

	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Str("level", level).Str("logFile", logFile).Msg("logger initialized")
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// logFilePath follows the XDG_STATE_HOME-or-~/.local/state fallback,
// under hoard's own directory name.
func logFilePath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "hoard.log"
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "hoard", "hoard.log")
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
}

// Get returns a logger tagged with a "component" field, e.g.
// logging.Get("checker.last_paths").
func Get(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Must logs a fatal error and exits the process if err is non-nil. Reserved
// for main()-level setup failures where there is no sensible way to
// continue.
func Must(err error, msg string) {
	if err != nil {
		log.Fatal().Err(err).Msg(msg)
	}
}
