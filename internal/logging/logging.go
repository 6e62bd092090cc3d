// Package logging provides the ambient Logger interface the pipeline
// driver uses for trace-level messages, wrapping logrus the way the
// teacher's own logging package wraps its own backend.
package logging

import (
	"github.com/sirupsen/logrus"
)

// Level is a logging severity, ordered from least to most verbose.
type Level int

const (
	Error Level = iota
	Warn
	Info
	Debug
)

func (l Level) logrusLevel() logrus.Level {
	switch l {
	case Error:
		return logrus.ErrorLevel
	case Warn:
		return logrus.WarnLevel
	case Info:
		return logrus.InfoLevel
	default:
		return logrus.DebugLevel
	}
}

// Fields is a set of structured key/value pairs attached to a log entry.
type Fields map[string]any

// Logger is the interface the pipeline driver depends on. StandardLogger
// and NoOpLogger are the two implementations shipped here; callers may
// supply their own.
type Logger interface {
	Debug(fmt string, a ...any)
	Info(fmt string, a ...any)
	Warn(fmt string, a ...any)
	Error(fmt string, a ...any)

	WithFields(fields Fields) Logger

	SetLevel(level Level)
	GetLevel() Level
}

// StandardLogger is the default Logger implementation, backed by a
// logrus.Entry.
type StandardLogger struct {
	entry *logrus.Entry
}

// New returns a StandardLogger writing to a fresh logrus.Logger with a
// text formatter, at Info level, matching the teacher's default.
func New() *StandardLogger {
	l := logrus.New()
	l.SetLevel(logrus.InfoLevel)
	return &StandardLogger{entry: logrus.NewEntry(l)}
}

func (l *StandardLogger) Debug(f string, a ...any) { l.entry.Debugf(f, a...) }
func (l *StandardLogger) Info(f string, a ...any)  { l.entry.Infof(f, a...) }
func (l *StandardLogger) Warn(f string, a ...any)  { l.entry.Warnf(f, a...) }
func (l *StandardLogger) Error(f string, a ...any) { l.entry.Errorf(f, a...) }

func (l *StandardLogger) WithFields(fields Fields) Logger {
	return &StandardLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *StandardLogger) SetLevel(level Level) {
	l.entry.Logger.SetLevel(level.logrusLevel())
}

func (l *StandardLogger) GetLevel() Level {
	switch l.entry.Logger.GetLevel() {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return Error
	case logrus.WarnLevel:
		return Warn
	case logrus.InfoLevel:
		return Info
	default:
		return Debug
	}
}

// NoOpLogger discards everything. It is the pipeline driver's default
// logger so that tracing is opt-in.
type NoOpLogger struct {
	level Level
}

// NewNoOpLogger instantiates a NoOpLogger.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (*NoOpLogger) Debug(string, ...any) {}
func (*NoOpLogger) Info(string, ...any)  {}
func (*NoOpLogger) Warn(string, ...any)  {}
func (*NoOpLogger) Error(string, ...any) {}

func (l *NoOpLogger) WithFields(Fields) Logger { return l }

func (l *NoOpLogger) SetLevel(level Level) { l.level = level }
func (l *NoOpLogger) GetLevel() Level      { return l.level }
