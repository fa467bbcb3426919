package combine

import "time"

// TocEntry records where one included file's entry header begins.
type TocEntry struct {
	LineNo    int    // 1-based line number, counted from the start of the group's file header
	EntryPath string // The path as resolved from the group's sources
}

// Result summarises a completed combination run.
type Result struct {
	OutputPath string        // The output file that was written
	Groups     int           // Number of file groups written
	Entries    int           // Number of files included across all groups
	Skipped    []string      // Paths skipped because they did not exist, in encounter order
	Lines      int           // Total lines written to the output
	Bytes      int64         // Total bytes written to the output
	Elapsed    time.Duration // Wall time of the run
}

// Constants
const (
	ChunkSize = 8192 // The read buffer size used when streaming source files
)
