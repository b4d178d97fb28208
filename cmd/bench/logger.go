package main

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logr V(n) maps to zap level -n, so V(1) engine events need "debug".
var levelStrings = map[string]zapcore.Level{
	"trace": zapcore.DebugLevel - 1,
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"error": zapcore.ErrorLevel,
}

type logOptions struct {
	Encoding string
	Level    string
}

func (o *logOptions) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Encoding, "log-encoding", "console",
		"Log encoding format. Can be 'json' or 'console'.")
	fs.StringVar(&o.Level, "log-level", "info",
		"Log verbosity level. Can be one of 'trace', 'debug', 'info', 'error'.")
}

// newLogger builds a zap logger from o and bridges it to logr.
// The returned sync func flushes buffered entries.
func newLogger(o logOptions) (logr.Logger, func() error, error) {
	lvl, ok := levelStrings[o.Level]
	if !ok {
		return logr.Discard(), nil, fmt.Errorf("unknown log level %q", o.Level)
	}
	if o.Encoding != "json" && o.Encoding != "console" {
		return logr.Discard(), nil, fmt.Errorf("unknown log encoding %q", o.Encoding)
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = o.Encoding
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	cfg.Sampling = nil

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), nil, fmt.Errorf("build logger: %w", err)
	}
	return zapr.NewLogger(zl), zl.Sync, nil
}
