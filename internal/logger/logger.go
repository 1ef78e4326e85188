package logger

import (
	"io"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
	// Verbose forces debug entries regardless of Level.
	Verbose bool
}

// Logger wraps zerolog to provide a simplified API for the application.
// Loggers derived with WithFields share the verbose switch of their parent.
type Logger struct {
	base    zerolog.Logger
	verbose *atomic.Bool
}

// New creates a configured Logger instance based on Options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stdout
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	verbose := &atomic.Bool{}
	verbose.Store(opts.Verbose)

	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &Logger{base: logger, verbose: verbose}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{base: zerolog.Nop(), verbose: &atomic.Bool{}}
}

// WithFields returns a derived logger that always writes the supplied fields.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	if l == nil {
		return nil
	}

	builder := l.base.With()
	for key, value := range fields {
		builder = builder.Interface(key, value)
	}

	derived := Logger{base: builder.Logger(), verbose: l.verbose}
	return &derived
}

// SetVerbose turns forced debug output on or off for this logger and every
// logger derived from it.
func (l *Logger) SetVerbose(on bool) {
	if l == nil || l.verbose == nil {
		return
	}
	l.verbose.Store(on)
}

// Verbose reports whether forced debug output is on.
func (l *Logger) Verbose() bool {
	if l == nil || l.verbose == nil {
		return false
	}
	return l.verbose.Load()
}

// Info writes an informational log entry.
func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.base.Info().Msg(msg)
}

// Debug writes a debug-level log entry if enabled by level or verbose mode.
func (l *Logger) Debug(msg string) {
	if l == nil {
		return
	}
	if l.Verbose() && l.base.GetLevel() > zerolog.DebugLevel {
		forced := l.base.Level(zerolog.DebugLevel)
		forced.Debug().Msg(msg)
		return
	}
	l.base.Debug().Msg(msg)
}

// Warn writes a warning level log entry.
func (l *Logger) Warn(msg string) {
	if l == nil {
		return
	}
	l.base.Warn().Msg(msg)
}

// Error writes an error log entry including the supplied error context.
func (l *Logger) Error(err error, msg string) {
	if l == nil {
		return
	}
	event := l.base.Error()
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(msg)
}
