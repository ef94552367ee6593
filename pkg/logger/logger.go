package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus.Logger so the rest of the service depends on one type
type Logger struct {
	*logrus.Logger
}

// NewLogger creates a new logger with the given level and format ("json" or "text")
func NewLogger(level, format string) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	if strings.EqualFold(format, "text") {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	}

	return &Logger{Logger: l}
}

// NewNopLogger returns a logger that discards everything, used by tests and tools
func NewNopLogger() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{Logger: l}
}

// WithComponent tags every entry with the emitting component
func (l *Logger) WithComponent(name string) *logrus.Entry {
	return l.WithField("component", name)
}
