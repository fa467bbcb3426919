package combine

import (
	"errors"
	"fmt"
)

// ErrInvalidEncoding is returned when a source file is not valid UTF-8 text.
var ErrInvalidEncoding = errors.New("invalid UTF-8 encoding")

// IOError is a fatal I/O failure during combination. Any IOError aborts the run.
type IOError struct {
	Op   string // The operation that failed, e.g. "open", "read", "write"
	Path string // The file or pattern involved
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
