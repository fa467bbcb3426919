// File: pkg/combine/helpers.go
package combine

import (
	"bufio"
	"io"
	"strings"
)

// lineWriter is a buffered writer that tracks how many lines and bytes
// have been written to the output.
type lineWriter struct {
	w     *bufio.Writer
	path  string
	lines int
	bytes int64
}

func newLineWriter(w io.Writer, path string) *lineWriter {
	return &lineWriter{
		w:    bufio.NewWriterSize(w, ChunkSize),
		path: path,
	}
}

// writeLine writes s followed by a newline.
func (lw *lineWriter) writeLine(s string) error {
	return lw.writeTerminated(s + "\n")
}

// writeTerminated writes a line that already carries its terminator.
func (lw *lineWriter) writeTerminated(s string) error {
	n, err := lw.w.WriteString(s)
	lw.bytes += int64(n)
	if err != nil {
		return &IOError{Op: "write", Path: lw.path, Err: err}
	}
	lw.lines++
	return nil
}

// writeLines writes each line through r, or verbatim when r is nil.
// It returns the number of lines written.
func (lw *lineWriter) writeLines(lines []string, r *strings.Replacer) (int, error) {
	for i, line := range lines {
		if r != nil {
			line = r.Replace(line)
		}
		if err := lw.writeLine(line); err != nil {
			return i, err
		}
	}
	return len(lines), nil
}

func (lw *lineWriter) flush() error {
	if err := lw.w.Flush(); err != nil {
		return &IOError{Op: "flush", Path: lw.path, Err: err}
	}
	return nil
}
