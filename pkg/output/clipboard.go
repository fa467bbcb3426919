// Package output delivers a finished combined file to destinations other
// than the filesystem.
package output

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/afero"
)

// ErrUnsupported is returned when no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard is not supported on this system")

// ClipboardWriter places text on a clipboard.
type ClipboardWriter func(text string) error

// SystemClipboard writes to the operating system clipboard.
var SystemClipboard ClipboardWriter = clipboard.WriteAll

// CopyFile reads the file at path and hands its content to write.
// A nil write uses SystemClipboard.
func CopyFile(fs afero.Fs, path string, write ClipboardWriter) error {
	if write == nil {
		if clipboard.Unsupported {
			return ErrUnsupported
		}
		write = SystemClipboard
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := write(string(data)); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
