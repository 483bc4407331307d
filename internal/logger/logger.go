package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

type LogLevel int

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Logger provides component-tagged structured logging
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
}

// ParseLevel maps a level name to a LogLevel, defaulting to InfoLevel
func ParseLevel(name string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func (l LogLevel) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return "info"
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New builds the application logger. JSON output goes to writer unchanged,
// otherwise a console writer is layered on top.
func New(writer io.Writer, level LogLevel, useJSON bool) Logger {
	if writer == nil {
		writer = os.Stdout
	}
	if !useJSON {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: "15:04:05"}
	}
	return NewZerolog(writer, level.zerolog())
}

// NoOpLogger discards everything.
type NoOpLogger struct{}

func (NoOpLogger) Debug(string, string, map[string]interface{})   {}
func (NoOpLogger) Info(string, string, map[string]interface{})    {}
func (NoOpLogger) Warning(string, string, map[string]interface{}) {}
func (NoOpLogger) Error(string, error, map[string]interface{})    {}
