// ============================================================================
// ninjachat - Cyber Ninja AI Terminal Client
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating zap backed loggers
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Process-wide base logger, replaced by Configure
	rootMu     sync.RWMutex
	rootLogger = mustBuild(DefaultLoggerConfig("ninjachat"))
	rootFile   *os.File
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (debug, info, warn, error)
	Level string

	// Output format: "json" or "console" (default: json)
	Format string

	// File receives the log output when set. The terminal UI owns stdout,
	// so interactive commands always log to a file.
	File string

	// Additional outputs (besides the file or stderr)
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "info",
		Format:      "json",
	}
}

// NewLogger creates a zap logger from the configuration. The returned closer
// releases the log file, if any.
func NewLogger(cfg LoggerConfig) (*zap.Logger, io.Closer, error) {
	var (
		output io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = f
		closer = f
	}

	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.TimeKey = "timestamp"

	var encoder zapcore.Encoder
	if cfg.Format == "console" || cfg.Format == "text" {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(output), ParseLevel(cfg.Level).zapLevel())
	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	if cfg.ServiceName != "" {
		logger = logger.Named(cfg.ServiceName)
	}
	return logger, closer, nil
}

// Configure replaces the process-wide base logger. Loggers created with New
// afterwards write through the new configuration.
func Configure(cfg LoggerConfig) error {
	logger, closer, err := NewLogger(cfg)
	if err != nil {
		return err
	}

	rootMu.Lock()
	defer rootMu.Unlock()

	_ = rootLogger.Sync()
	if rootFile != nil {
		rootFile.Close()
		rootFile = nil
	}
	rootLogger = logger
	if f, ok := closer.(*os.File); ok {
		rootFile = f
	}
	return nil
}

// Close flushes the base logger and closes its log file
func Close() error {
	rootMu.Lock()
	defer rootMu.Unlock()

	_ = rootLogger.Sync()
	if rootFile != nil {
		err := rootFile.Close()
		rootFile = nil
		rootLogger = zap.NewNop()
		return err
	}
	return nil
}

func mustBuild(cfg LoggerConfig) *zap.Logger {
	logger, _, err := NewLogger(cfg)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Logger is a named, key/value logger
type Logger struct {
	sugar *zap.SugaredLogger
	name  string
}

// New creates a named logger from the process-wide base logger
func New(name string) *Logger {
	rootMu.RLock()
	base := rootLogger
	rootMu.RUnlock()

	return &Logger{
		sugar: base.Named(name).Sugar(),
		name:  name,
	}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar(), name: "nop"}
}

// Name returns the logger name
func (l *Logger) Name() string {
	return l.name
}

// WithLevel returns a logger that drops entries below level. zap only
// allows raising the level of an existing core.
func (l *Logger) WithLevel(level Level) *Logger {
	return &Logger{
		sugar: l.sugar.WithOptions(zap.IncreaseLevel(level.zapLevel())),
		name:  l.name,
	}
}

// With returns a logger that adds the key-value pairs to every entry
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{
		sugar: l.sugar.With(keysAndValues...),
		name:  l.name,
	}
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

// Info logs an info message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
