package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/datamunger/table"
)

// ErrUnsupportedFormat is returned by New for unknown format names.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to write a table in the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes t in the formatter's specific format
	Format(t *table.Table) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Formats lists the names New accepts.
var Formats = []string{"jsonl", "csv", "table"}

// New returns the formatter registered under format, writing to w. The name
// is case-insensitive and "json" is accepted for "jsonl".
func New(format string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(format) {
	case "jsonl", "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "table":
		return NewTableFormatter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, format, strings.Join(Formats, ", "))
	}
}
