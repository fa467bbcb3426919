package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLogFile is the log file written alongside stdout.
const DefaultLogFile = "file_combiner.log"

// Options controls how the logger is built.
type Options struct {
	Debug      bool   // Lower the level to debug and attach stack traces to errors
	LogFile    string // Additional log destination; empty disables the file sink
	AppName    string // Recorded on every line in debug mode
	AppVersion string // Recorded on every line in debug mode
}

// New builds a console logger writing timestamped, leveled lines to stdout
// and to opts.LogFile.
func New(opts Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.Sampling = nil
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = !opts.Debug

	cfg.OutputPaths = []string{"stdout"}
	if opts.LogFile != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, opts.LogFile)
	}

	if opts.Debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.InitialFields = map[string]interface{}{
			"appName":    opts.AppName,
			"appVersion": opts.AppVersion,
		}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
