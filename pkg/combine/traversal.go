// File: pkg/combine/traversal.go
package combine

import (
	"path/filepath"
	"strings"

	"filecombiner/pkg/config"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// resolveSources returns the ordered list of candidate paths for a group.
// fileGlobs takes precedence over files whenever it is present. Matches from
// overlapping patterns are not deduplicated.
func (c *Combiner) resolveSources(group config.FileGroup, logger *zap.Logger) ([]string, error) {
	if !group.UsesGlobs() {
		logger.Debug("Using explicit file list", zap.Int("fileCount", len(group.Files)))
		return group.Files, nil
	}

	if group.HasBothSelectors() {
		logger.Warn("Group defines both fileGlobs and files, files will be ignored",
			zap.Strings("ignoredFiles", group.Files))
	}

	var paths []string
	for _, pattern := range group.FileGlobs {
		matches, err := c.expandGlob(pattern)
		if err != nil {
			logger.Error("Failed to expand glob pattern", zap.String("pattern", pattern), zap.Error(err))
			return nil, err
		}
		logger.Debug("Expanded glob pattern", zap.String("pattern", pattern), zap.Int("matches", len(matches)))
		paths = append(paths, matches...)
	}
	return paths, nil
}

// expandGlob expands a single pattern against the Combiner's filesystem.
// '**' matches across directory boundaries and only regular files are
// returned. Hidden files and directories are only matched by pattern
// segments that start with '.'. The literal directory prefix of the pattern
// is kept as typed.
func (c *Combiner) expandGlob(pattern string) ([]string, error) {
	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))

	fsys := c.fs
	if base != "." {
		fsys = afero.NewBasePathFs(c.fs, filepath.FromSlash(base))
	}

	matches, err := doublestar.Glob(afero.NewIOFS(fsys), rest, doublestar.WithFilesOnly())
	if err != nil {
		return nil, &IOError{Op: "glob", Path: pattern, Err: err}
	}

	visible := matches[:0]
	for _, match := range matches {
		if !isVisibleMatch(rest, match) {
			continue
		}
		visible = append(visible, filepath.FromSlash(joinBase(base, match)))
	}
	return visible, nil
}

// isVisibleMatch reports whether match, a path produced by globbing pattern,
// only enters hidden names where the pattern names them explicitly. Wildcard
// segments and '**' never match a name starting with '.', so a recursive
// pattern does not descend into .git or .venv.
func isVisibleMatch(pattern, match string) bool {
	patternSegs := strings.Split(pattern, "/")
	matchSegs := strings.Split(match, "/")

	first, last := -1, -1
	for i, seg := range patternSegs {
		if seg == "**" {
			if first < 0 {
				first = i
			}
			last = i
		}
	}

	if first < 0 {
		for i, seg := range matchSegs {
			if isHidden(seg) && (i >= len(patternSegs) || !isHidden(patternSegs[i])) {
				return false
			}
		}
		return true
	}

	head := patternSegs[:first]
	tail := patternSegs[last+1:]
	middle := patternSegs[first+1 : last]
	tailStart := len(matchSegs) - len(tail)

	for i, seg := range matchSegs {
		if !isHidden(seg) {
			continue
		}
		switch {
		case i < len(head):
			if !isHidden(head[i]) {
				return false
			}
		case i >= tailStart:
			if !isHidden(tail[i-tailStart]) {
				return false
			}
		default:
			if !matchesHiddenSegment(middle, seg) {
				return false
			}
		}
	}
	return true
}

// matchesHiddenSegment reports whether one of the explicit hidden segments
// between two '**' segments matches name.
func matchesHiddenSegment(segs []string, name string) bool {
	for _, seg := range segs {
		if !isHidden(seg) {
			continue
		}
		if ok, err := doublestar.Match(seg, name); err == nil && ok {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

func joinBase(base, match string) string {
	switch {
	case base == ".":
		return match
	case strings.HasSuffix(base, "/"):
		return base + match
	default:
		return base + "/" + match
	}
}
