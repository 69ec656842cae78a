// Package logger wraps logrus with the JSON field layout the rest of the
// service expects.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is a thin wrapper so call sites depend on this package, not logrus.
type Logger struct {
	*logrus.Logger
}

// Fields aliases logrus.Fields for call-site brevity.
type Fields = logrus.Fields

// New builds a JSON logger at the given level; unknown levels fall back to info.
func New(level string) *Logger {
	l := logrus.New()

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)
	l.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})
	l.SetOutput(os.Stdout)

	return &Logger{Logger: l}
}

// Discard returns a logger that writes nowhere, for tests.
func Discard() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{Logger: l}
}
