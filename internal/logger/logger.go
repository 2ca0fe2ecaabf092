// Package logger wraps zerolog for the filing service: colored console
// lines while developing, JSON in production, and child loggers bound
// to the request or case being worked on.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the service-wide structured logger. Construct through New
// or NewWithWriter; the zero value discards nothing and carries no
// timestamp.
type Logger struct {
	zlog zerolog.Logger
}

// New builds the logger for the given runtime environment. Development
// gets console output at debug level so sanitization and plan
// reconciliation steps stay visible while editing a case; anything else
// gets JSON at info level.
func New(env string) *Logger {
	var out io.Writer = os.Stdout
	if env == "development" {
		out = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}
	return NewWithWriter(env, out)
}

// NewWithWriter builds a logger against an explicit writer. Tests use
// it to capture and assert on the emitted records.
func NewWithWriter(env string, out io.Writer) *Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level := zerolog.InfoLevel
	if env == "development" {
		level = zerolog.DebugLevel
	}

	zlog := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()
	return &Logger{zlog: zlog}
}

func emit(event *zerolog.Event, msg string, fields map[string]interface{}) {
	if len(fields) > 0 {
		event = event.Fields(fields)
	}
	event.Msg(msg)
}

// Debug logs a debug message with optional fields.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	emit(l.zlog.Debug(), msg, fields)
}

// Info logs an info message with optional fields.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	emit(l.zlog.Info(), msg, fields)
}

// Warn logs a warning message with optional fields.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	emit(l.zlog.Warn(), msg, fields)
}

// Error logs an error with a message and optional fields.
func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	emit(l.zlog.Error().Err(err), msg, fields)
}

// Fatal logs the error and exits the process. Reserved for startup
// failures: a missing data file, an unreachable database.
func (l *Logger) Fatal(msg string, err error, fields map[string]interface{}) {
	emit(l.zlog.Fatal().Err(err), msg, fields)
}

// With creates a child logger carrying additional context fields.
func (l *Logger) With(fields map[string]interface{}) *Logger {
	ctx := l.zlog.With()
	if len(fields) > 0 {
		ctx = ctx.Fields(fields)
	}
	return &Logger{zlog: ctx.Logger()}
}

// WithRequestID creates a child logger bound to one HTTP request.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		zlog: l.zlog.With().Str("request_id", requestID).Logger(),
	}
}

// WithSite creates a child logger bound to one case, so every record a
// service emits while working on it carries the site id.
func (l *Logger) WithSite(siteID string) *Logger {
	return &Logger{
		zlog: l.zlog.With().Str("site_id", siteID).Logger(),
	}
}

// GetZerolog returns the underlying zerolog.Logger for advanced usage.
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zlog
}
