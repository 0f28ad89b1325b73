// SPDX-License-Identifier: MIT

// Package logger builds the zap logger used by the command-line tools.
//
// Library packages never log to a global; they take a *zap.Logger through
// their options, and this package is where one gets built.
package logger

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds console and file logging settings.
type Config struct {
	Level string
	// Console receives human-oriented output; nil disables it.
	Console io.Writer

	// File enables a rotated log file when non-empty.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultConfig logs info and above to stderr without a file.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Console:    os.Stderr,
		MaxSizeMB:  50,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Compress:   true,
	}
}

// New builds a logger from cfg. The returned close function flushes the
// logger and closes the log file, if any.
func New(cfg Config) (*zap.Logger, func() error) {
	lvl := ParseLevel(cfg.Level)

	var cores []zapcore.Core
	var file *lumberjack.Logger

	if cfg.Console != nil {
		consoleEncoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
			TimeKey:          "time",
			LevelKey:         "level",
			MessageKey:       "msg",
			CallerKey:        "caller",
			EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
			EncodeLevel:      zapcore.CapitalLevelEncoder,
			EncodeCaller:     zapcore.ShortCallerEncoder,
			ConsoleSeparator: " ",
		})
		cores = append(cores, zapcore.NewCore(consoleEncoder, zapcore.AddSync(cfg.Console), lvl))
	}

	if cfg.File != "" {
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
			LocalTime:  true,
		}
		fileEncoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			MessageKey:     "msg",
			CallerKey:      "caller",
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		})
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(file), lvl))
	}

	if len(cores) == 0 {
		return zap.NewNop(), func() error { return nil }
	}
	log := zap.New(zapcore.NewTee(cores...), zap.AddCaller())

	return log, func() error {
		_ = log.Sync()
		if file != nil {
			return file.Close()
		}
		return nil
	}
}

// ParseLevel converts a level name to a zapcore.Level; unknown names map
// to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
