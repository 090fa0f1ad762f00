// Package logger wraps zap behind a small interface so every component of the
// daily digest receives its logger explicitly instead of reaching for a global.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the structured logging surface used across the module.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// With returns a child logger with the given fields attached.
	With(fields ...Field) Logger
	// Sync flushes any buffered log entries.
	Sync() error
}

// Field is a key-value pair attached to a log entry.
type Field = zap.Field

// Config controls where and how much the logger writes.
type Config struct {
	// Level is the minimum level (debug, info, warn, error).
	Level string
	// Dir receives one append-only file per calendar day. Empty disables the file.
	Dir string
	// Name prefixes the daily log file and names the logger.
	Name string
	// Now is used to pick the daily file name. Defaults to time.Now.
	Now func() time.Time
}

const (
	DefaultLevel = "info"
	DefaultName  = "daily_feed"
)

// SetDefaults fills in zero values.
func (c *Config) SetDefaults() {
	if c.Level == "" {
		c.Level = DefaultLevel
	}
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// FilePath returns the daily log file path, or "" when file logging is off.
func (c Config) FilePath() string {
	if c.Dir == "" {
		return ""
	}
	return filepath.Join(c.Dir, fmt.Sprintf("%s_%s.log", c.Name, c.Now().Format("2006-01-02")))
}

type zapLogger struct {
	logger *zap.Logger
}

// New builds a JSON logger writing to stdout and, when cfg.Dir is set, to the
// daily log file.
func New(cfg Config) (Logger, error) {
	return build(cfg, true)
}

// NewFileOnly is New without stdout, for commands that own the terminal. With
// no cfg.Dir it discards everything.
func NewFileOnly(cfg Config) (Logger, error) {
	if cfg.Dir == "" {
		return NewNop(), nil
	}
	return build(cfg, false)
}

func build(cfg Config, stdout bool) (Logger, error) {
	cfg.SetDefaults()

	zapCfg := zap.NewProductionConfig()
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
	zapCfg.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Level))
	zapCfg.Sampling = nil
	zapCfg.OutputPaths = nil
	if stdout {
		zapCfg.OutputPaths = append(zapCfg.OutputPaths, "stdout")
	}

	if path := cfg.FilePath(); path != "" {
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log dir %s: %w", cfg.Dir, err)
		}
		zapCfg.OutputPaths = append(zapCfg.OutputPaths, path)
		if !stdout {
			zapCfg.ErrorOutputPaths = []string{path}
		}
	}

	z, err := zapCfg.Build(
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}

	return &zapLogger{logger: z.Named(cfg.Name)}, nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *zapLogger) Debug(msg string, fields ...Field) { l.logger.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...Field)  { l.logger.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...Field)  { l.logger.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...Field) { l.logger.Error(msg, fields...) }

func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{logger: l.logger.With(fields...)}
}

func (l *zapLogger) Sync() error {
	return l.logger.Sync()
}

// String creates a string field.
func String(key, val string) Field { return zap.String(key, val) }

// Int creates an int field.
func Int(key string, val int) Field { return zap.Int(key, val) }

// Bool creates a bool field.
func Bool(key string, val bool) Field { return zap.Bool(key, val) }

// Time creates a time field.
func Time(key string, val time.Time) Field { return zap.Time(key, val) }

// Duration creates a duration field.
func Duration(key string, val time.Duration) Field { return zap.Duration(key, val) }

// Error creates an error field with the key "error".
func Error(err error) Field { return zap.Error(err) }

// Any creates a field holding an arbitrary value.
func Any(key string, val any) Field { return zap.Any(key, val) }
