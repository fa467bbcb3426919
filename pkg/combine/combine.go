package combine

import (
	"fmt"
	"path/filepath"
	"time"

	"filecombiner/pkg/config"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Combine writes every file group of cfg, in order, into outputPath.
//
// Parent directories of outputPath are created as needed and an existing
// file is truncated. Sources that do not exist are skipped with a warning and
// listed in Result.Skipped. Any other failure aborts the run with an
// *IOError; a partially written output file is left in place.
func (c *Combiner) Combine(cfg *config.Config, outputPath string) (*Result, error) {
	startTime := time.Now()
	c.logger.Info("Starting combination process",
		zap.String("outputFile", outputPath),
		zap.Int("groupCount", len(cfg.FileGroups)))

	result, err := c.combine(cfg, outputPath)
	if err != nil {
		c.logger.Error("Error combining files", zap.String("outputFile", outputPath), zap.Error(err))
		return nil, fmt.Errorf("combine files: %w", err)
	}
	result.Elapsed = time.Since(startTime)

	c.logger.Info("Successfully created combined file",
		zap.String("outputFile", outputPath),
		zap.Int("groups", result.Groups),
		zap.Int("entries", result.Entries),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("lines", result.Lines),
		zap.String("size", humanize.Bytes(uint64(result.Bytes))),
		zap.Duration("elapsed", result.Elapsed))
	return result, nil
}

func (c *Combiner) combine(cfg *config.Config, outputPath string) (*Result, error) {
	if err := ensureDirectory(c.fs, filepath.Dir(outputPath), c.logger); err != nil {
		return nil, err
	}

	outFile, err := createOutput(c.fs, outputPath, c.logger)
	if err != nil {
		return nil, err
	}

	result, err := c.writeGroups(outFile, cfg, outputPath)
	if closeErr := outFile.Close(); closeErr != nil && err == nil {
		c.logger.Error("Failed to close output file", zap.String("file", outputPath), zap.Error(closeErr))
		err = &IOError{Op: "close", Path: outputPath, Err: closeErr}
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Combiner) writeGroups(outFile afero.File, cfg *config.Config, outputPath string) (*Result, error) {
	lw := newLineWriter(outFile, outputPath)
	result := &Result{OutputPath: outputPath}

	for i, group := range cfg.FileGroups {
		if err := c.writeGroup(lw, i, group, result); err != nil {
			// Keep whatever was produced so far on disk.
			_ = lw.flush()
			return nil, err
		}
		result.Groups++
	}

	if err := lw.flush(); err != nil {
		return nil, err
	}
	result.Lines = lw.lines
	result.Bytes = lw.bytes
	return result, nil
}

// writeGroup writes one group: file header, entries, optional TOC, file footer.
func (c *Combiner) writeGroup(lw *lineWriter, index int, group config.FileGroup, result *Result) error {
	logger := c.logger.With(zap.Int("group", index))
	groupStart := lw.lines

	if _, err := lw.writeLines(group.FileHeader, nil); err != nil {
		logger.Error("Error writing file header", zap.Error(err))
		return err
	}

	// 1-based line number, within the group, of the next line to be written.
	lineNo := len(group.FileHeader) + 1

	paths, err := c.resolveSources(group, logger)
	if err != nil {
		return err
	}

	var toc []TocEntry
	for _, path := range paths {
		exists, err := sourceExists(c.fs, path)
		if err != nil {
			logger.Error("Failed to stat file", zap.String("file", path), zap.Error(err))
			return &IOError{Op: "stat", Path: path, Err: err}
		}
		if !exists {
			logger.Warn("Skipping non-existent file", zap.String("file", path))
			result.Skipped = append(result.Skipped, path)
			continue
		}

		logger.Info("Processing file", zap.String("file", path))
		toc = append(toc, TocEntry{LineNo: lineNo, EntryPath: path})

		n, err := c.writeEntry(lw, group, path, logger)
		if err != nil {
			return err
		}
		lineNo += n
		result.Entries++
	}

	if group.IncludeToc {
		n, err := writeToc(lw, group.TocHeader, group.TocEntryTemplate(), group.TocFooter, toc)
		if err != nil {
			logger.Error("Error writing TOC", zap.Error(err))
			return err
		}
		lineNo += n
		logger.Debug("Wrote table of contents", zap.Int("entries", len(toc)))
	}

	if _, err := lw.writeLines(group.FileFooter, nil); err != nil {
		logger.Error("Error writing file footer", zap.Error(err))
		return err
	}

	logger.Debug("Finished file group",
		zap.Int("entries", len(toc)),
		zap.Int("linesBeforeFooter", lineNo-1),
		zap.Int("lines", lw.lines-groupStart))
	return nil
}
