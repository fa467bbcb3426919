package combine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filecombiner/pkg/config"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func strPtr(s string) *string {
	return &s
}

func simpleGroup(files ...string) config.FileGroup {
	return config.FileGroup{
		FileHeader:  []string{"=== START ==="},
		EntryHeader: []string{"--- ${entryPath} ---"},
		EntryFooter: []string{"--- end ---"},
		FileFooter:  []string{"=== END ==="},
		Files:       files,
	}
}

func newTestCombiner() (*Combiner, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return New(zap.New(core)), logs
}

func runCombine(t *testing.T, cfg *config.Config) string {
	t.Helper()
	c, _ := newTestCombiner()
	_, err := c.Combine(cfg, "out.txt")
	require.NoError(t, err)
	data, err := os.ReadFile("out.txt")
	require.NoError(t, err)
	return string(data)
}

func TestCombine_SingleFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, "a.txt", "hello\n")

	cfg := &config.Config{FileGroups: []config.FileGroup{simpleGroup("a.txt")}}

	c, _ := newTestCombiner()
	result, err := c.Combine(cfg, "combined.txt")
	require.NoError(t, err)

	data, err := os.ReadFile("combined.txt")
	require.NoError(t, err)

	want := "=== START ===\n" +
		"--- a.txt ---\n" +
		"hello\n" +
		"--- end ---\n" +
		"=== END ===\n"
	assert.Equal(t, want, string(data))
	assert.Equal(t, 1, result.Groups)
	assert.Equal(t, 1, result.Entries)
	assert.Equal(t, 5, result.Lines)
	assert.Equal(t, int64(len(want)), result.Bytes)
	assert.Empty(t, result.Skipped)
}

func TestCombine_MissingFileIsSkipped(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cfg := &config.Config{FileGroups: []config.FileGroup{simpleGroup("missing.txt")}}

	c, logs := newTestCombiner()
	result, err := c.Combine(cfg, "combined.txt")
	require.NoError(t, err)

	data, err := os.ReadFile("combined.txt")
	require.NoError(t, err)
	assert.Equal(t, "=== START ===\n=== END ===\n", string(data))
	assert.Equal(t, []string{"missing.txt"}, result.Skipped)
	assert.Zero(t, result.Entries)

	warnings := logs.FilterMessage("Skipping non-existent file").FilterField(zap.String("file", "missing.txt"))
	require.Equal(t, 1, warnings.Len())
	assert.Equal(t, zap.WarnLevel, warnings.All()[0].Level)
}

func TestCombine_SkippedFileLeavesNoTrace(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, "a.txt", "alpha\n")
	writeFile(t, "b.txt", "beta\n")

	group := simpleGroup()
	group.IncludeToc = true
	group.TocHeader = []string{"Contents:"}
	group.TocEntry = strPtr("${lineNo} ${entryPath}")
	group.TocFooter = []string{"--"}

	withMissing := group
	withMissing.Files = []string{"a.txt", "gone.txt", "b.txt"}
	without := group
	without.Files = []string{"a.txt", "b.txt"}

	got := runCombine(t, &config.Config{FileGroups: []config.FileGroup{withMissing}})
	want := runCombine(t, &config.Config{FileGroups: []config.FileGroup{without}})
	assert.Equal(t, want, got)
}

func TestCombine_GroupAndFileOrdering(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, "one.txt", "1\n")
	writeFile(t, "two.txt", "2\n")
	writeFile(t, "three.txt", "3\n")

	first := simpleGroup("two.txt", "one.txt")
	first.FileHeader = []string{"[G1]"}
	first.FileFooter = []string{"[/G1]"}
	second := simpleGroup("three.txt")
	second.FileHeader = []string{"[G2]"}
	second.FileFooter = []string{"[/G2]"}

	got := runCombine(t, &config.Config{FileGroups: []config.FileGroup{first, second}})

	want := strings.Join([]string{
		"[G1]",
		"--- two.txt ---", "2", "--- end ---",
		"--- one.txt ---", "1", "--- end ---",
		"[/G1]",
		"[G2]",
		"--- three.txt ---", "3", "--- end ---",
		"[/G2]",
	}, "\n") + "\n"
	assert.Equal(t, want, got)
}

func TestCombine_EmptyGroupStillWritesHeaderAndFooter(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	group := config.FileGroup{
		FileHeader:  []string{"head 1", "head 2"},
		EntryHeader: []string{"entry"},
		EntryFooter: []string{},
		FileFooter:  []string{"foot"},
		FileGlobs:   []string{"nothing/**/*.txt"},
		IncludeToc:  true,
		TocHeader:   []string{"TOC"},
		TocEntry:    strPtr("${lineNo}: ${entryPath}"),
		TocFooter:   []string{"/TOC"},
	}

	got := runCombine(t, &config.Config{FileGroups: []config.FileGroup{group}})
	assert.Equal(t, "head 1\nhead 2\nTOC\n/TOC\nfoot\n", got)
}

func TestCombine_TocLineNumbers(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, "a.txt", "a1\na2\n")
	writeFile(t, "b.txt", "b1")
	writeFile(t, "c.txt", "c1\n")

	tocGroup := func(header []string, files ...string) config.FileGroup {
		return config.FileGroup{
			FileHeader:  header,
			EntryHeader: []string{"--- ${entryPath} ---"},
			EntryFooter: []string{"--- end ${entryPath} ---"},
			FileFooter:  []string{"#end"},
			Files:       files,
			IncludeToc:  true,
			TocHeader:   []string{"Contents"},
			TocEntry:    strPtr("${lineNo}: ${entryPath}"),
			TocFooter:   []string{"--"},
		}
	}

	cfg := &config.Config{FileGroups: []config.FileGroup{
		tocGroup([]string{"# one", "#"}, "a.txt", "missing.txt", "b.txt"),
		tocGroup([]string{"# two"}, "c.txt"),
	}}

	got := runCombine(t, cfg)
	want := strings.Join([]string{
		"# one",
		"#",
		"--- a.txt ---",
		"a1",
		"a2",
		"--- end a.txt ---",
		"--- b.txt ---",
		"b1",
		"--- end b.txt ---",
		"Contents",
		"3: a.txt",
		"7: b.txt",
		"--",
		"#end",
		"# two",
		"--- c.txt ---",
		"c1",
		"--- end c.txt ---",
		"Contents",
		"2: c.txt",
		"--",
		"#end",
	}, "\n") + "\n"
	assert.Equal(t, want, got)

	// Every recorded line number points at its entry header, counted from the group header.
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	groupStarts := map[string]int{"# one": 0, "# two": 14}
	checks := []struct {
		group string
		line  int
		path  string
	}{
		{"# one", 3, "a.txt"},
		{"# one", 7, "b.txt"},
		{"# two", 2, "c.txt"},
	}
	for _, check := range checks {
		idx := groupStarts[check.group] + check.line - 1
		assert.Equal(t, "--- "+check.path+" ---", lines[idx])
	}
}

func TestCombine_TemplateSubstitution(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, "docs/readme.md", "body\n")

	group := config.FileGroup{
		FileHeader:  []string{"${entryPath} stays literal here"},
		EntryHeader: []string{"<${entryPath}|${entryPath}>", "${lineNo} ${other}"},
		EntryFooter: []string{"</${entryPath}>"},
		FileFooter:  []string{},
		Files:       []string{"docs/readme.md"},
	}

	got := runCombine(t, &config.Config{FileGroups: []config.FileGroup{group}})
	want := "${entryPath} stays literal here\n" +
		"<docs/readme.md|docs/readme.md>\n" +
		"${lineNo} ${other}\n" +
		"body\n" +
		"</docs/readme.md>\n"
	assert.Equal(t, want, got)
}

func TestCombine_ContentLineEndings(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, "crlf.txt", "one\r\ntwo\r\n")
	writeFile(t, "open.txt", "last line without newline")
	writeFile(t, "empty.txt", "")

	group := config.FileGroup{
		FileHeader:  []string{},
		EntryHeader: []string{">"},
		EntryFooter: []string{"<"},
		FileFooter:  []string{},
		Files:       []string{"crlf.txt", "open.txt", "empty.txt"},
	}

	got := runCombine(t, &config.Config{FileGroups: []config.FileGroup{group}})
	want := ">\none\r\ntwo\r\n<\n" +
		">\nlast line without newline\n<\n" +
		">\n<\n"
	assert.Equal(t, want, got)
}

func TestCombine_GlobsArePreferredAndNotDeduplicated(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, "src/x.txt", "x\n")
	writeFile(t, "src/sub/y.txt", "y\n")
	writeFile(t, "src/sub/z.md", "z\n")
	writeFile(t, "listed.txt", "listed\n")

	group := config.FileGroup{
		FileHeader:  []string{},
		EntryHeader: []string{"@${entryPath}"},
		EntryFooter: []string{},
		FileFooter:  []string{},
		FileGlobs:   []string{"src/**/*.txt", "src/sub/*.txt"},
		Files:       []string{"listed.txt"},
	}

	c, logs := newTestCombiner()
	result, err := c.Combine(&config.Config{FileGroups: []config.FileGroup{group}}, "out.txt")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Entries)

	data, err := os.ReadFile("out.txt")
	require.NoError(t, err)
	out := string(data)

	assert.NotContains(t, out, "listed")
	assert.NotContains(t, out, "z.md")
	assert.Equal(t, 2, strings.Count(out, "@"+filepath.Join("src", "sub", "y.txt")+"\n"))
	assert.Equal(t, 1, strings.Count(out, "@"+filepath.Join("src", "x.txt")+"\n"))
	assert.True(t, strings.HasSuffix(out, "@"+filepath.Join("src", "sub", "y.txt")+"\ny\n"))

	assert.Equal(t, 1, logs.FilterMessage("Group defines both fileGlobs and files, files will be ignored").Len())
}

func TestCombine_CreatesDirectoriesAndTruncates(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, "a.txt", "hello\n")
	output := filepath.Join("nested", "deeper", "out.txt")
	writeFile(t, output, strings.Repeat("stale content\n", 50))

	cfg := &config.Config{FileGroups: []config.FileGroup{simpleGroup("a.txt")}}
	c, _ := newTestCombiner()
	_, err := c.Combine(cfg, output)
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
	assert.Equal(t, "=== START ===\n--- a.txt ---\nhello\n--- end ---\n=== END ===\n", string(data))
}

func TestCombine_EmptyConfigProducesEmptyFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	got := runCombine(t, &config.Config{FileGroups: []config.FileGroup{}})
	assert.Empty(t, got)
}

func TestCombine_InMemoryFilesystem(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/in/a.txt", []byte("A\n"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/in/b.txt", []byte("B\n"), 0o644))

	cfg := &config.Config{FileGroups: []config.FileGroup{simpleGroup("/in/a.txt", "/in/b.txt")}}
	c := New(zap.NewNop(), WithFs(fs))
	result, err := c.Combine(cfg, "/out/combined.txt")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Entries)

	data, err := afero.ReadFile(fs, "/out/combined.txt")
	require.NoError(t, err)
	want := "=== START ===\n" +
		"--- /in/a.txt ---\nA\n--- end ---\n" +
		"--- /in/b.txt ---\nB\n--- end ---\n" +
		"=== END ===\n"
	assert.Equal(t, want, string(data))
}

func TestCombine_PathUnderRegularFileIsSkipped(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, "a.txt", "hello\n")
	nested := filepath.Join("a.txt", "b.txt")

	c, logs := newTestCombiner()
	result, err := c.Combine(&config.Config{FileGroups: []config.FileGroup{simpleGroup(nested, "a.txt")}}, "out.txt")
	require.NoError(t, err)

	data, err := os.ReadFile("out.txt")
	require.NoError(t, err)
	assert.Equal(t, "=== START ===\n--- a.txt ---\nhello\n--- end ---\n=== END ===\n", string(data))
	assert.Equal(t, []string{nested}, result.Skipped)
	assert.Equal(t, 1, logs.FilterMessage("Skipping non-existent file").FilterField(zap.String("file", nested)).Len())
}

func TestSourceExists(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "file.txt"), "x\n")
	require.NoError(t, os.Symlink(filepath.Join(dir, "loop"), filepath.Join(dir, "loop")))

	fs := afero.NewOsFs()
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"regular file", filepath.Join(dir, "file.txt"), true},
		{"directory", dir, true},
		{"absent", filepath.Join(dir, "absent.txt"), false},
		{"parent is a file", filepath.Join(dir, "file.txt", "child.txt"), false},
		{"symlink loop", filepath.Join(dir, "loop"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exists, err := sourceExists(fs, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, exists)
		})
	}
}

func TestCombine_Errors(t *testing.T) {
	t.Run("invalid encoding", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)
		writeFile(t, "bad.txt", "ok\n\xff\xfe broken\n")

		c, _ := newTestCombiner()
		_, err := c.Combine(&config.Config{FileGroups: []config.FileGroup{simpleGroup("bad.txt")}}, "out.txt")
		require.Error(t, err)

		var ioErr *IOError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, "decode", ioErr.Op)
		assert.Equal(t, "bad.txt", ioErr.Path)
		assert.ErrorIs(t, err, ErrInvalidEncoding)

		// The partial output stays on disk.
		data, readErr := os.ReadFile("out.txt")
		require.NoError(t, readErr)
		assert.True(t, strings.HasPrefix(string(data), "=== START ===\n--- bad.txt ---\nok\n"))
	})

	t.Run("directory given as file", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)
		require.NoError(t, os.Mkdir("folder", 0o755))

		c, _ := newTestCombiner()
		_, err := c.Combine(&config.Config{FileGroups: []config.FileGroup{simpleGroup("folder")}}, "out.txt")

		var ioErr *IOError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, "read", ioErr.Op)
	})

	t.Run("output directory cannot be created", func(t *testing.T) {
		dir := t.TempDir()
		chdir(t, dir)
		writeFile(t, "blocker", "not a directory\n")

		c, logs := newTestCombiner()
		_, err := c.Combine(&config.Config{FileGroups: []config.FileGroup{simpleGroup()}}, filepath.Join("blocker", "out.txt"))

		var ioErr *IOError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, "mkdir", ioErr.Op)
		assert.Equal(t, 1, logs.FilterMessage("Error combining files").Len())
	})

	t.Run("read-only filesystem", func(t *testing.T) {
		fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

		c := New(zap.NewNop(), WithFs(fs))
		_, err := c.Combine(&config.Config{FileGroups: []config.FileGroup{simpleGroup()}}, "/out.txt")

		var ioErr *IOError
		require.True(t, errors.As(err, &ioErr))
		assert.Equal(t, "create", ioErr.Op)
	})
}
