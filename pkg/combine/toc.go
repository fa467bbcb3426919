// File: pkg/combine/toc.go
package combine

// writeToc renders a group's table of contents: the header verbatim, one
// rendered entryTemplate line per entry in collection order, then the footer
// verbatim. It returns the number of lines written.
func writeToc(lw *lineWriter, header []string, entryTemplate string, footer []string, entries []TocEntry) (int, error) {
	written, err := lw.writeLines(header, nil)
	if err != nil {
		return written, err
	}

	for _, entry := range entries {
		if err := lw.writeLine(tocReplacer(entry).Replace(entryTemplate)); err != nil {
			return written, err
		}
		written++
	}

	n, err := lw.writeLines(footer, nil)
	return written + n, err
}
