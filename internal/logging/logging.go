// Package logging provides the leveled, field-carrying logger used by the
// buffer core and the command line tool.
package logging

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents the severity level of a log message.
type Level int

const (
	// LevelDebug is for detailed debugging information.
	LevelDebug Level = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a level name. The second result is false for names it
// does not recognise, in which case LevelInfo is returned.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, true
	case "info":
		return LevelInfo, true
	case "warn", "warning":
		return LevelWarn, true
	case "error":
		return LevelError, true
	default:
		return LevelInfo, false
	}
}

// sink is shared by a logger and everything derived from it.
type sink struct {
	mu       sync.Mutex
	level    Level
	output   io.Writer
	disabled bool
}

// Logger writes leveled lines of the form
//
//	2006-01-02T15:04:05.000 [LEVEL] prefix: message {key=value, ...}
type Logger struct {
	sink   *sink
	prefix string
	fields map[string]any
}

// Config configures a logger.
type Config struct {
	// Level is the minimum level to output.
	Level Level
	// Output is where lines are written. Defaults to os.Stderr.
	Output io.Writer
	// Prefix is prepended to every message.
	Prefix string
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Output: os.Stderr,
		Prefix: "schnur",
	}
}

// New creates a logger.
func New(cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	return &Logger{
		sink:   &sink{level: cfg.Level, output: cfg.Output},
		prefix: cfg.Prefix,
	}
}

// Null discards everything.
var Null = &Logger{sink: &sink{disabled: true}}

// WithField returns a logger that adds key=value to every line.
func (l *Logger) WithField(key string, value any) *Logger {
	return l.WithFields(map[string]any{key: value})
}

// WithFields returns a logger that adds the given fields to every line.
func (l *Logger) WithFields(fields map[string]any) *Logger {
	merged := make(map[string]any, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{sink: l.sink, prefix: l.prefix, fields: merged}
}

// WithComponent returns a logger with the component field set.
func (l *Logger) WithComponent(component string) *Logger {
	return l.WithField("component", component)
}

// SetLevel sets the minimum level for this logger and all derived loggers.
func (l *Logger) SetLevel(level Level) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.level = level
}

// Enabled reports whether a message at level would be written.
func (l *Logger) Enabled(level Level) bool {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	return !l.sink.disabled && level >= l.sink.level
}

// Disable turns off all output.
func (l *Logger) Disable() {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.disabled = true
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.log(LevelDebug, msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	l.log(LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.log(LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.log(LevelError, msg, args...)
}

func (l *Logger) log(level Level, msg string, args ...any) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if l.sink.disabled || level < l.sink.level {
		return
	}

	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}

	var sb strings.Builder
	sb.WriteString(time.Now().Format("2006-01-02T15:04:05.000"))
	sb.WriteString(" [")
	sb.WriteString(level.String())
	sb.WriteString("] ")
	if l.prefix != "" {
		sb.WriteString(l.prefix)
		sb.WriteString(": ")
	}
	sb.WriteString(msg)

	if len(l.fields) > 0 {
		keys := make([]string, 0, len(l.fields))
		for k := range l.fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		sb.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%s=%v", k, l.fields[k])
		}
		sb.WriteString("}")
	}
	sb.WriteByte('\n')

	_, _ = io.WriteString(l.sink.output, sb.String())
}
