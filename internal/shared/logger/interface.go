package logger

import "log/slog"

// Interface is the logging contract injected across the engine. The
// *w variants take alternating key/value pairs, which is how use cases
// and repositories attach coach_id, student_sid, and the like.
type Interface interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	With(args ...any) Interface
	Named(name string) Interface

	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Fatalw(msg string, keysAndValues ...interface{})
}

// slogAdapter bridges Interface onto a *slog.Logger.
type slogAdapter struct {
	logger *slog.Logger
}

// NewLogger returns an adapter over the process-wide logger. Safe before
// Init: Get falls back to a default console handler.
func NewLogger() Interface {
	return &slogAdapter{logger: Get()}
}

// NewLoggerWithSlog wraps an explicit slog logger, used by tests and by
// components that build their own handler.
func NewLoggerWithSlog(slogLog *slog.Logger) Interface {
	return &slogAdapter{logger: slogLog}
}

func (l *slogAdapter) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *slogAdapter) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *slogAdapter) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *slogAdapter) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// Fatal logs at error level and panics. Reserved for unrecoverable startup
// failures; request paths return errors instead.
func (l *slogAdapter) Fatal(msg string, args ...any) {
	l.logger.Error(msg, args...)
	panic("fatal error")
}

func (l *slogAdapter) With(args ...any) Interface {
	return &slogAdapter{logger: l.logger.With(args...)}
}

func (l *slogAdapter) Named(name string) Interface {
	return &slogAdapter{logger: l.logger.With("logger", name)}
}

func (l *slogAdapter) Debugw(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *slogAdapter) Infow(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *slogAdapter) Warnw(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}

func (l *slogAdapter) Errorw(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l *slogAdapter) Fatalw(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
	panic("fatal error")
}
