package combine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"filecombiner/pkg/config"

	"go.uber.org/zap"
)

// writeEntry writes one source file's entry: the substituted entry header,
// the file content and the substituted entry footer. It returns the number of
// output lines the entry occupies.
func (c *Combiner) writeEntry(lw *lineWriter, group config.FileGroup, path string, logger *zap.Logger) (int, error) {
	replacer := entryReplacer(path)

	written, err := lw.writeLines(group.EntryHeader, replacer)
	if err != nil {
		logger.Error("Error writing entry header", zap.String("file", path), zap.Error(err))
		return written, err
	}

	n, err := c.streamContent(lw, path)
	written += n
	if err != nil {
		logger.Error("Error writing file content", zap.String("file", path), zap.Error(err))
		return written, err
	}
	logger.Debug("Copied file content", zap.String("file", path), zap.Int("lines", n))

	n, err = lw.writeLines(group.EntryFooter, replacer)
	written += n
	if err != nil {
		logger.Error("Error writing entry footer", zap.String("file", path), zap.Error(err))
		return written, err
	}
	return written, nil
}

// streamContent copies the file at path into the output line by line.
// Line terminators are copied as found; an unterminated last line gets a
// newline so the following template line starts on its own line.
func (c *Combiner) streamContent(lw *lineWriter, path string) (int, error) {
	file, err := c.fs.Open(path)
	if err != nil {
		return 0, &IOError{Op: "open", Path: path, Err: err}
	}
	defer file.Close()

	reader := bufio.NewReaderSize(file, ChunkSize)
	lines := 0
	for {
		line, readErr := reader.ReadString('\n')
		if len(line) > 0 {
			if !utf8.ValidString(line) {
				return lines, &IOError{Op: "decode", Path: path, Err: fmt.Errorf("line %d: %w", lines+1, ErrInvalidEncoding)}
			}
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			if err := lw.writeTerminated(line); err != nil {
				return lines, err
			}
			lines++
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return lines, nil
			}
			return lines, &IOError{Op: "read", Path: path, Err: readErr}
		}
	}
}
