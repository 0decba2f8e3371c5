// Package logger provides the structured logger used across the
// portioning service. It keeps the WithField/WithError chaining idiom
// the application, infrastructure and transport packages are written
// against, backed by zap instead of a hand-rolled formatter.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap.SugaredLogger with persistent structured fields.
type Logger struct {
	sugar *zap.SugaredLogger
}

// Config controls how a Logger is constructed.
type Config struct {
	Level      string // debug, info, warn, error
	Service    string
	JSONFormat bool
	Colorized  bool
}

// DefaultConfig returns development-friendly defaults.
func DefaultConfig() *Config {
	return &Config{Level: "info", Service: "portioning", JSONFormat: false, Colorized: true}
}

// ProductionConfig returns JSON, uncolored defaults suited to container logs.
func ProductionConfig() *Config {
	return &Config{Level: "info", Service: "portioning", JSONFormat: true, Colorized: false}
}

func parseLevel(level string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// New builds a Logger for the given config.
func New(cfg *Config) *Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.Colorized && !cfg.JSONFormat {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	var encoder zapcore.Encoder
	if cfg.JSONFormat {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(os.Stdout)), parseLevel(cfg.Level))
	zl := zap.New(core)
	if cfg.Service != "" {
		zl = zl.With(zap.String("service", cfg.Service))
	}
	return &Logger{sugar: zl.Sugar()}
}

// NewNamed is a convenience constructor used when only a service name
// matters (tests, short-lived CLI commands).
func NewNamed(service string) *Logger {
	cfg := DefaultConfig()
	cfg.Service = service
	return New(cfg)
}

func (l *Logger) clone(sugar *zap.SugaredLogger) *Logger {
	return &Logger{sugar: sugar}
}

// WithField returns a new Logger with an additional structured field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.clone(l.sugar.With(key, value))
}

// WithFields returns a new Logger with several additional structured fields.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return l.clone(l.sugar.With(args...))
}

// WithError returns a new Logger carrying the error under the "error" field.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.clone(l.sugar.With("error", err.Error()))
}

// Debug logs a formatted message at debug level.
func (l *Logger) Debug(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }

// Info logs a formatted message at info level.
func (l *Logger) Info(format string, args ...interface{}) { l.sugar.Infof(format, args...) }

// Warn logs a formatted message at warn level.
func (l *Logger) Warn(format string, args ...interface{}) { l.sugar.Warnf(format, args...) }

// Error logs a formatted message at error level.
func (l *Logger) Error(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

// Fatal logs a formatted message at fatal level and exits the process.
func (l *Logger) Fatal(format string, args ...interface{}) { l.sugar.Fatalf(format, args...) }

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error { return l.sugar.Sync() }
