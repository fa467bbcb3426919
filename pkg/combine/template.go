package combine

import (
	"strconv"
	"strings"

	"filecombiner/pkg/config"
)

// entryReplacer substitutes ${entryPath} in entry header and footer lines.
func entryReplacer(path string) *strings.Replacer {
	return strings.NewReplacer(config.EntryPathToken, path)
}

// tocReplacer substitutes ${lineNo} and ${entryPath} in a TOC entry line.
func tocReplacer(entry TocEntry) *strings.Replacer {
	return strings.NewReplacer(
		config.LineNoToken, strconv.Itoa(entry.LineNo),
		config.EntryPathToken, entry.EntryPath,
	)
}
