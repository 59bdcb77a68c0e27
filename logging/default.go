package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// DefaultLogger is a logrus-backed Logger. Output goes to stderr so that
// stdout stays reserved for the feature record, and the default level is
// Warn so a normal run is silent.
type DefaultLogger struct {
	entry *logrus.Entry
}

// NewDefaultLogger creates a logger writing to stderr at Warn level
func NewDefaultLogger() *DefaultLogger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return &DefaultLogger{entry: logrus.NewEntry(l)}
}

func (d *DefaultLogger) Debug(msg string, fields ...Fields) {
	d.withMerged(fields).Debug(msg)
}

func (d *DefaultLogger) Info(msg string, fields ...Fields) {
	d.withMerged(fields).Info(msg)
}

func (d *DefaultLogger) Warn(msg string, fields ...Fields) {
	d.withMerged(fields).Warn(msg)
}

func (d *DefaultLogger) Error(err error, msg string, fields ...Fields) {
	d.withMerged(fields).WithError(err).Error(msg)
}

func (d *DefaultLogger) Fatal(err error, msg string, fields ...Fields) {
	d.withMerged(fields).WithError(err).Fatal(msg)
}

func (d *DefaultLogger) WithFields(fields Fields) Logger {
	return &DefaultLogger{entry: d.entry.WithFields(logrus.Fields(fields))}
}

func (d *DefaultLogger) SetLevel(level Level) {
	switch level {
	case DebugLevel:
		d.entry.Logger.SetLevel(logrus.DebugLevel)
	case InfoLevel:
		d.entry.Logger.SetLevel(logrus.InfoLevel)
	case WarnLevel:
		d.entry.Logger.SetLevel(logrus.WarnLevel)
	case ErrorLevel:
		d.entry.Logger.SetLevel(logrus.ErrorLevel)
	case FatalLevel:
		d.entry.Logger.SetLevel(logrus.FatalLevel)
	}
}

// withMerged folds the variadic field maps into a single logrus entry
func (d *DefaultLogger) withMerged(fields []Fields) *logrus.Entry {
	entry := d.entry
	for _, f := range fields {
		entry = entry.WithFields(logrus.Fields(f))
	}
	return entry
}
