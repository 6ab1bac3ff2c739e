/*
Package logx provides a structured logging wrapper based on zerolog.

It initializes the global logger once at process start, selects the output format
(console for development, JSON otherwise), and exposes small level helpers so that
call sites do not construct zerolog events by hand.
*/
package logx

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitGlobalLogger configures the process-wide zerolog instance.
// Development mode switches to the human-readable console writer and enables
// debug-level output; every other environment logs JSON at info level.
func InitGlobalLogger(isDevelopment bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if isDevelopment {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	log.Logger = logger.With().Caller().Logger()
}

// Logger returns a pointer to the global zerolog.Logger instance.
// Components derive contextual loggers from it via With().
func Logger() *zerolog.Logger {
	return &log.Logger
}

// pairs drops a trailing odd field so zerolog never panics on a bad call site.
func pairs(fields []any) []any {
	if len(fields)%2 != 0 {
		return fields[:len(fields)-1]
	}
	return fields
}

// Debug records a log message at the Debug level with optional key-value fields.
func Debug(msg string, fields ...any) {
	Logger().Debug().Fields(pairs(fields)).CallerSkipFrame(1).Msg(msg)
}

// Info records a log message at the Info level with optional key-value fields.
func Info(msg string, fields ...any) {
	Logger().Info().Fields(pairs(fields)).CallerSkipFrame(1).Msg(msg)
}

// Warn records a log message at the Warn level with optional key-value fields.
func Warn(msg string, fields ...any) {
	Logger().Warn().Fields(pairs(fields)).CallerSkipFrame(1).Msg(msg)
}

// Error records an error and message at the Error level with optional key-value fields.
func Error(err error, msg string, fields ...any) {
	Logger().Error().Err(err).Fields(pairs(fields)).CallerSkipFrame(1).Msg(msg)
}

// Fatal records the error at the Fatal level and terminates the process.
func Fatal(err error, msg string, fields ...any) {
	Logger().Fatal().Err(err).Fields(pairs(fields)).CallerSkipFrame(1).Msg(msg)
}
