package reader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/vegasq/datamunger/table"
)

var (
	// ErrUnsupportedFormat is returned for files whose extension names no
	// known format.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNoFiles is returned when a glob pattern matches nothing.
	ErrNoFiles = errors.New("no files match pattern")
)

// FileColumn is added to every row of a multi-file read and holds the path
// the row came from.
const FileColumn = "_file"

// maxFiles limits how many files one glob pattern may expand to.
const maxFiles = 1000

// Format identifies how a file is decoded.
type Format int

const (
	FormatCSV Format = iota
	FormatCSVGzip
	FormatCSVZstd
	FormatParquet
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatCSVGzip:
		return "csv.gz"
	case FormatCSVZstd:
		return "csv.zst"
	case FormatParquet:
		return "parquet"
	default:
		return "unknown"
	}
}

// DetectFormat picks a format from the file extension, case-insensitively.
func DetectFormat(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".csv.gz"):
		return FormatCSVGzip, nil
	case strings.HasSuffix(name, ".csv.zst"):
		return FormatCSVZstd, nil
	case strings.HasSuffix(name, ".csv"):
		return FormatCSV, nil
	case strings.HasSuffix(name, ".parquet"):
		return FormatParquet, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Open reads the whole file at path into a table.
func Open(fs afero.Fs, path string) (*table.Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatParquet:
		return readParquet(fs, path)
	default:
		return readCSVFile(fs, path, format)
	}
}

// ReadMultipleFiles reads every file matching pattern.
//
// A pattern without glob characters reads that single file unchanged. A glob
// pattern reads each match in lexical order, appends their rows and tags
// every row with a FileColumn holding its source path. Columns are the union
// of all files' columns in first-seen order.
func ReadMultipleFiles(fs afero.Fs, pattern string) (*table.Table, error) {
	if !strings.ContainsAny(pattern, "*?[]") {
		return Open(fs, pattern)
	}

	matches, err := afero.Glob(fs, pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, pattern)
	}
	if len(matches) > maxFiles {
		return nil, fmt.Errorf("glob pattern matched too many files (%d), maximum is %d", len(matches), maxFiles)
	}

	merged := table.New()
	seen := make(map[string]bool)
	addColumn := func(name string) {
		if !seen[name] {
			seen[name] = true
			merged.Columns = append(merged.Columns, name)
		}
	}

	for _, path := range matches {
		t, err := Open(fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		for _, c := range t.Columns {
			addColumn(c)
		}
		for _, row := range t.Rows {
			row[FileColumn] = path
		}
		merged.Rows = append(merged.Rows, t.Rows...)
	}
	addColumn(FileColumn)

	return merged, nil
}
