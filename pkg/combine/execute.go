// File: pkg/combine/execute.go
package combine

import (
	"errors"
	"io/fs"
	"os"
	"syscall"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ensureDirectory ensures a directory exists, creating it if necessary.
func ensureDirectory(fsys afero.Fs, path string, logger *zap.Logger) error {
	if exists, _ := afero.DirExists(fsys, path); exists {
		return nil
	}
	if err := fsys.MkdirAll(path, 0o755); err != nil {
		logger.Error("Failed to create directory", zap.String("path", path), zap.Error(err))
		return &IOError{Op: "mkdir", Path: path, Err: err}
	}
	logger.Debug("Ensured directory exists", zap.String("path", path))
	return nil
}

// createOutput creates or truncates the output file.
func createOutput(fsys afero.Fs, path string, logger *zap.Logger) (afero.File, error) {
	file, err := fsys.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		logger.Error("Failed to create output file", zap.String("file", path), zap.Error(err))
		return nil, &IOError{Op: "create", Path: path, Err: err}
	}
	return file, nil
}

// sourceExists reports whether a configured source path exists. A path that
// cannot resolve because a parent is not a directory, or because of a
// symlink loop, counts as missing rather than as an I/O failure.
func sourceExists(fsys afero.Fs, path string) (bool, error) {
	_, err := fsys.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR), errors.Is(err, syscall.ELOOP):
		return false, nil
	default:
		return false, err
	}
}
