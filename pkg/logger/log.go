package logger

import (
	"context"

	"github.com/muhammadchandra19/securities-exchange/pkg/util"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Interface is an interface that wraps the Logger methods.
//
//go:generate mockgen -source log.go -destination=mock/log_mock.go -package=logger_mock
type Interface interface {
	Debug(message string, fields ...Field)
	DebugContext(ctx context.Context, message string, fields ...Field)
	Error(err error, fields ...Field)
	ErrorContext(ctx context.Context, err error, fields ...Field)
	GetZap() *zap.Logger
	Info(message string, fields ...Field)
	InfoContext(ctx context.Context, message string, fields ...Field)
	Sync() error
	Warn(message string, fields ...Field)
	WarnContext(ctx context.Context, message string, fields ...Field)
	WithFields(fields ...Field) *Logger
}

// Logger is a wrapper around zap.Logger to provide structured logging.
type Logger struct {
	logger *zap.Logger
}

// Field holds key-value to be written to log.
type Field struct {
	Key   string
	Value any
}

// Options holds configuration options for the logger.
type Options struct {
	level           Level
	outputPaths     []string
	callerTraceSkip int
}

// Level represents the severity level of the log.
type Level string

var (
	// DebugLevel is used for debug messages.
	DebugLevel Level = "debug"
	// InfoLevel is used for informational messages.
	InfoLevel Level = "info"
	// WarnLevel is used for warning messages.
	WarnLevel Level = "warn"
	// ErrorLevel is used for error messages.
	ErrorLevel Level = "error"

	messageKey = "message"
)

func (level Level) getZapLevel() zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel // use info level as default, same as zap's default production config
	}
}

// NewLogger creates new Logger instance with configuration options.
func NewLogger(opts ...Options) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	var buildOptions []zap.Option

	for _, opt := range opts {
		if opt.level != "" {
			cfg.Level = zap.NewAtomicLevelAt(opt.level.getZapLevel())
		}
		if opt.outputPaths != nil {
			cfg.OutputPaths = opt.outputPaths
		}
		if opt.callerTraceSkip > 0 {
			buildOptions = append(buildOptions, zap.AddCallerSkip(opt.callerTraceSkip))
		}
	}

	// change default message key `msg` to `message`
	cfg.EncoderConfig.MessageKey = messageKey

	logger, err := cfg.Build(buildOptions...)
	return &Logger{
		logger: logger,
	}, err
}

// NewNop returns a no-op Logger, useful for tests.
func NewNop() *Logger {
	return &Logger{logger: zap.NewNop()}
}

// WithLoggingLevel is used to set the minimum log level that will be logged to stdout.
// If not set, it will log `info` level and above by default.
func WithLoggingLevel(level Level) Options {
	return Options{level: level}
}

// WithOutputPaths is used to set the output paths that logs will be written to.
// The special paths "stdout" and "stderr" are interpreted as os.Stdout and os.Stderr.
func WithOutputPaths(paths []string) Options {
	return Options{outputPaths: paths}
}

// WithCallerTraceSkip sets the number of callers skipped by caller annotation.
func WithCallerTraceSkip(skip int) Options {
	return Options{callerTraceSkip: skip}
}

// Sync flushes the buffered log entries.
func (l *Logger) Sync() error {
	return l.logger.Sync()
}

// GetZap exposes the underlying zap logger.
func (l *Logger) GetZap() *zap.Logger {
	return l.logger
}

// WithFields returns a child logger with the given fields attached.
func (l *Logger) WithFields(fields ...Field) *Logger {
	return &Logger{logger: l.logger.With(toZapFields(fields)...)}
}

// Debug logs a message at debug level.
func (l *Logger) Debug(message string, fields ...Field) {
	l.logger.Debug(message, toZapFields(fields)...)
}

// DebugContext logs a message at debug level with fields extracted from context.
func (l *Logger) DebugContext(ctx context.Context, message string, fields ...Field) {
	l.logger.Debug(message, append(contextFields(ctx), toZapFields(fields)...)...)
}

// Info logs a message at info level.
func (l *Logger) Info(message string, fields ...Field) {
	l.logger.Info(message, toZapFields(fields)...)
}

// InfoContext logs a message at info level with fields extracted from context.
func (l *Logger) InfoContext(ctx context.Context, message string, fields ...Field) {
	l.logger.Info(message, append(contextFields(ctx), toZapFields(fields)...)...)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(message string, fields ...Field) {
	l.logger.Warn(message, toZapFields(fields)...)
}

// WarnContext logs a message at warn level with fields extracted from context.
func (l *Logger) WarnContext(ctx context.Context, message string, fields ...Field) {
	l.logger.Warn(message, append(contextFields(ctx), toZapFields(fields)...)...)
}

// Error logs an error at error level.
func (l *Logger) Error(err error, fields ...Field) {
	l.logger.Error(err.Error(), toZapFields(fields)...)
}

// ErrorContext logs an error at error level with fields extracted from context.
func (l *Logger) ErrorContext(ctx context.Context, err error, fields ...Field) {
	l.logger.Error(err.Error(), append(contextFields(ctx), toZapFields(fields)...)...)
}

func toZapFields(fields []Field) []zap.Field {
	zapFields := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		zapFields = append(zapFields, zap.Any(f.Key, f.Value))
	}
	return zapFields
}

func contextFields(ctx context.Context) []zap.Field {
	requestID := util.GetRequestID(ctx)
	if requestID == "" {
		return nil
	}
	return []zap.Field{zap.String("request_id", requestID)}
}
