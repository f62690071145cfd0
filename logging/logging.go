// Package logging builds the zap logger used across the simulation.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls level and optional rotating file output.
type Config struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Stdout     bool
}

func DefaultConfig() Config {
	return Config{Level: "info", MaxSizeMB: 50, MaxBackups: 3, MaxAgeDays: 7, Stdout: true}
}

// SetDefaults registers the logger keys on v so ConfigFrom works without a
// config file.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("logger.level", d.Level)
	v.SetDefault("logger.file", d.File)
	v.SetDefault("logger.max_size_mb", d.MaxSizeMB)
	v.SetDefault("logger.max_backups", d.MaxBackups)
	v.SetDefault("logger.max_age_days", d.MaxAgeDays)
	v.SetDefault("logger.stdout", d.Stdout)
}

// ConfigFrom reads the logger section of v.
func ConfigFrom(v *viper.Viper) Config {
	return Config{
		Level:      v.GetString("logger.level"),
		File:       v.GetString("logger.file"),
		MaxSizeMB:  v.GetInt("logger.max_size_mb"),
		MaxBackups: v.GetInt("logger.max_backups"),
		MaxAgeDays: v.GetInt("logger.max_age_days"),
		Stdout:     v.GetBool("logger.stdout"),
	}
}

// ParseLevel maps a level name onto a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("logging: unknown level %q", level)
}

// New builds a JSON logger. With a File set, output goes to a lumberjack
// rotated file, teed to stdout when Stdout is true.
func New(cfg Config) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	})

	var cores []zapcore.Core
	if cfg.Stdout || cfg.File == "" {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level))
	}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("logging: create log dir: %w", err)
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)), nil
}
