package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.SugaredLogger

// Init installs a JSON logger at info level. Setup replaces it once the
// configuration is known.
func Init() {
	if err := Setup("info", "json"); err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		log = zap.NewNop().Sugar()
	}
}

// Setup builds the global logger. format is "json" or "console".
func Setup(level, format string) error {
	var cfg zap.Config
	switch format {
	case "console":
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		cfg = zap.NewProductionConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	z, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	log = z.Sugar()
	return nil
}

// New wraps an arbitrary core; tests use it with an observer core.
func New(core zapcore.Core) *zap.SugaredLogger {
	return zap.New(core, zap.AddCallerSkip(1)).Sugar()
}

// Replace swaps the package logger and returns a func restoring the previous
// one, like zap.ReplaceGlobals.
func Replace(l *zap.SugaredLogger) func() {
	prev := log
	log = l
	return func() { log = prev }
}

func L() *zap.SugaredLogger {
	if log == nil {
		Init()
	}
	return log
}

// Info logs msg with optional key/value pairs.
func Info(msg string, keysAndValues ...interface{}) {
	L().Infow(msg, keysAndValues...)
}

func Infof(format string, v ...interface{}) {
	L().Infof(format, v...)
}

func Warn(msg string, keysAndValues ...interface{}) {
	L().Warnw(msg, keysAndValues...)
}

func Warnf(format string, v ...interface{}) {
	L().Warnf(format, v...)
}

func Error(msg string, keysAndValues ...interface{}) {
	L().Errorw(msg, keysAndValues...)
}

func Errorf(format string, v ...interface{}) {
	L().Errorf(format, v...)
}

func Debug(msg string, keysAndValues ...interface{}) {
	L().Debugw(msg, keysAndValues...)
}

func Debugf(format string, v ...interface{}) {
	L().Debugf(format, v...)
}

func Fatalf(format string, v ...interface{}) {
	L().Fatalf(format, v...)
}

// WithError returns a child logger carrying err as the "error" field.
func WithError(err error) *zap.SugaredLogger {
	return L().With(zap.Error(err))
}

func WithFields(fields map[string]interface{}) *zap.SugaredLogger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return L().With(args...)
}

// Sync flushes buffered entries; call before exit.
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
