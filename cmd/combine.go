package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"filecombiner/pkg/combine"
	"filecombiner/pkg/config"
	"filecombiner/pkg/logging"
	"filecombiner/pkg/output"
	"filecombiner/pkg/version"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// Run loads the configuration and writes the combined output.
func Run(opts *Options, deps Dependencies) error {
	logger, err := deps.NewLogger(logging.Options{
		Debug:      opts.Debug,
		LogFile:    deps.LogFile,
		AppName:    version.Name,
		AppVersion: version.Get().Version,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer syncLogger(logger)

	logger.Debug("Starting filecombiner",
		zap.String("config", opts.ConfigPath),
		zap.String("output", opts.OutputPath))

	cfg, err := config.Load(deps.Fs, opts.ConfigPath)
	if err != nil {
		return fail(logger, err)
	}
	logger.Debug("Loaded configuration", zap.Int("fileGroups", len(cfg.FileGroups)))

	combiner := combine.New(logger, combine.WithFs(deps.Fs))
	if _, err := combiner.Combine(cfg, opts.OutputPath); err != nil {
		return fail(logger, err)
	}

	if opts.Copy {
		if err := output.CopyFile(deps.Fs, opts.OutputPath, deps.Clipboard); err != nil {
			logger.Warn("Failed to copy combined output to clipboard", zap.Error(err))
		} else {
			logger.Info("Copied combined output to clipboard", zap.String("outputFile", opts.OutputPath))
		}
	}
	return nil
}

// loggedError marks a fatal error that has already been written to the log.
type loggedError struct {
	err error
}

func (e *loggedError) Error() string { return e.err.Error() }
func (e *loggedError) Unwrap() error { return e.err }

// Logged reports whether err was already reported through the logger, in
// which case the caller only needs to set the exit status.
func Logged(err error) bool {
	var le *loggedError
	return errors.As(err, &le)
}

func fail(logger *zap.Logger, err error) error {
	logger.Error("Program failed", zap.String("kind", errorKind(err)), zap.Error(err))
	return &loggedError{err: err}
}

// errorKind classifies a fatal error for the failure log line.
func errorKind(err error) string {
	var cfgErr *config.Error
	var ioErr *combine.IOError
	switch {
	case errors.As(err, &cfgErr):
		return "configuration"
	case errors.As(err, &ioErr):
		return "io"
	default:
		return "unknown"
	}
}

// syncLogger flushes the logger. Syncing stdout fails with EINVAL on pipes
// and character devices, so it is only attempted on terminals and regular files.
func syncLogger(logger *zap.Logger) {
	if !term.IsTerminal(int(os.Stdout.Fd())) && !isRegularFile(os.Stdout) {
		return
	}
	if syncErr := logger.Sync(); syncErr != nil {
		lowerErr := strings.ToLower(syncErr.Error())
		if !strings.Contains(lowerErr, "invalid argument") && !strings.Contains(lowerErr, "inappropriate ioctl") {
			log.Printf("Logger sync failed: %v", syncErr)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false
	}
	return fileInfo.Mode().IsRegular()
}
