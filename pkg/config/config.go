// File: pkg/config/config.go
package config

// Placeholder tokens recognised in template lines.
const (
	EntryPathToken = "${entryPath}"
	LineNoToken    = "${lineNo}"
)

// Config is the top-level combination configuration.
type Config struct {
	FileGroups []FileGroup `json:"fileGroups" yaml:"fileGroups"`
}

// FileGroup is one batch of files sharing header/footer templates and TOC settings.
//
// Slice fields distinguish an absent key (nil) from an empty list, since
// validation and source selection depend on presence.
type FileGroup struct {
	FileHeader  []string `json:"fileHeader" yaml:"fileHeader"`
	FileFooter  []string `json:"fileFooter" yaml:"fileFooter"`
	EntryHeader []string `json:"entryHeader" yaml:"entryHeader"`
	EntryFooter []string `json:"entryFooter" yaml:"entryFooter"`

	FileGlobs []string `json:"fileGlobs,omitempty" yaml:"fileGlobs,omitempty"`
	Files     []string `json:"files,omitempty" yaml:"files,omitempty"`

	IncludeToc bool     `json:"includeToc,omitempty" yaml:"includeToc,omitempty"`
	TocHeader  []string `json:"tocHeader,omitempty" yaml:"tocHeader,omitempty"`
	TocEntry   *string  `json:"tocEntry,omitempty" yaml:"tocEntry,omitempty"`
	TocFooter  []string `json:"tocFooter,omitempty" yaml:"tocFooter,omitempty"`
}

// UsesGlobs reports whether sources are selected by glob patterns.
// fileGlobs wins over files whenever the key is present.
func (g FileGroup) UsesGlobs() bool {
	return g.FileGlobs != nil
}

// HasBothSelectors reports whether both fileGlobs and files were given.
func (g FileGroup) HasBothSelectors() bool {
	return g.FileGlobs != nil && g.Files != nil
}

// TocEntryTemplate returns the TOC entry template, or "" when unset.
func (g FileGroup) TocEntryTemplate() string {
	if g.TocEntry == nil {
		return ""
	}
	return *g.TocEntry
}
