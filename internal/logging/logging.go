// Package logging builds the shared zap logger for the busdisplay processes.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configure logger construction.
type Options struct {
	FilePath string // empty disables the file core
	Level    string // empty reads LOG_LEVEL, then defaults to info
	Quiet    bool   // drop the console core (the TUI owns the terminal)
}

// New builds a sugared logger writing to stdout and, when FilePath is set,
// to a log file as well. The returned close func syncs both cores.
func New(opts Options) (*zap.SugaredLogger, func(), error) {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		MessageKey:     "M",
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.0000"),
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	level := zapcore.InfoLevel
	lvl := opts.Level
	if lvl == "" {
		lvl = os.Getenv("LOG_LEVEL")
	}
	if lvl != "" {
		if parsed, err := zapcore.ParseLevel(lvl); err == nil {
			level = parsed
		}
	}

	var cores []zapcore.Core
	if !opts.Quiet {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	if opts.FilePath != "" {
		file, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(file),
			level,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...))
	sugar := logger.Sugar()
	closeFn := func() { _ = sugar.Sync() }
	return sugar, closeFn, nil
}
