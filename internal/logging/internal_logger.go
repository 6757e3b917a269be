package logging

import "github.com/rs/zerolog"

// InternalLogger decouples the scan packages from a specific logging
// implementation, which keeps their tests quiet.
type InternalLogger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

var _ InternalLogger = (*ZLogger)(nil)

type ZLogger struct {
	ZLog zerolog.Logger
}

func NewZLogger(zlog zerolog.Logger) ZLogger {
	return ZLogger{ZLog: zlog}
}

func (l ZLogger) Info(format string, args ...any) {
	l.ZLog.Info().Msgf(format, args...)
}

func (l ZLogger) Warn(format string, args ...any) {
	l.ZLog.Warn().Msgf(format, args...)
}

func (l ZLogger) Error(format string, args ...any) {
	l.ZLog.Error().Msgf(format, args...)
}

var _ InternalLogger = (*NopLogger)(nil)

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}
