// Package logger is the logging contract of the chart builders, renderers
// and command line.
package logger

// Logger is a leveled logger carrying structured fields. With* calls return
// a child logger and leave the receiver untouched.
type Logger interface {
	WithField(key string, value any) Logger
	WithFields(fields map[string]any) Logger
	WithError(err error) Logger

	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)

	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
