// Package logging builds the zap logger shared by the CLI commands.
package logging

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options describes the logger the CLI wants.
type Options struct {
	// Level is a zap level name; empty means info.
	Level string
	// Format is "console" or "json"; empty means console.
	Format string
	// Verbose forces the debug level.
	Verbose bool
	// Output receives log lines. Nil means stderr.
	Output io.Writer
}

// New builds a logger from opts.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		level = parsed
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	var encoderConfig zapcore.EncoderConfig
	var encoder zapcore.Encoder
	switch strings.ToLower(opts.Format) {
	case "", "console":
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	case "json":
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("logging: unknown format %q", opts.Format)
	}

	var sink zapcore.WriteSyncer
	if opts.Output != nil {
		sink = zapcore.AddSync(opts.Output)
	} else {
		stderr, _, err := zap.Open("stderr")
		if err != nil {
			return nil, fmt.Errorf("logging: open stderr: %w", err)
		}
		sink = stderr
	}

	core := zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(level))
	return zap.New(core), nil
}
