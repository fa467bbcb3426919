// File: pkg/config/validate.go
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/multierr"
)

// Validate checks the structure of the configuration and reports every
// violation it finds. The returned error wraps ErrInvalid.
func (c *Config) Validate() error {
	if c.FileGroups == nil {
		return fmt.Errorf("%w: missing required keys: fileGroups", ErrInvalid)
	}

	var errs error
	for i, group := range c.FileGroups {
		errs = multierr.Append(errs, group.validate(i))
	}
	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, errs)
	}
	return nil
}

func (g FileGroup) validate(index int) error {
	var errs error

	if missing := g.missingKeys(); len(missing) > 0 {
		errs = multierr.Append(errs, fmt.Errorf("fileGroups[%d]: missing required keys: %s",
			index, strings.Join(missing, ", ")))
	}

	if g.FileGlobs == nil && g.Files == nil {
		errs = multierr.Append(errs, fmt.Errorf("fileGroups[%d]: must have either 'fileGlobs' or 'files' defined", index))
	}

	if g.IncludeToc {
		if missing := g.missingTocKeys(); len(missing) > 0 {
			errs = multierr.Append(errs, fmt.Errorf("fileGroups[%d]: includeToc is set but missing keys: %s",
				index, strings.Join(missing, ", ")))
		}
	}

	for _, pattern := range g.FileGlobs {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			errs = multierr.Append(errs, fmt.Errorf("fileGroups[%d]: malformed glob pattern %q", index, pattern))
		}
	}

	return errs
}

func (g FileGroup) missingKeys() []string {
	var missing []string
	if g.FileHeader == nil {
		missing = append(missing, "fileHeader")
	}
	if g.EntryHeader == nil {
		missing = append(missing, "entryHeader")
	}
	if g.EntryFooter == nil {
		missing = append(missing, "entryFooter")
	}
	if g.FileFooter == nil {
		missing = append(missing, "fileFooter")
	}
	return missing
}

func (g FileGroup) missingTocKeys() []string {
	var missing []string
	if g.TocHeader == nil {
		missing = append(missing, "tocHeader")
	}
	if g.TocEntry == nil {
		missing = append(missing, "tocEntry")
	}
	if g.TocFooter == nil {
		missing = append(missing, "tocFooter")
	}
	return missing
}
