package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vegasq/datamunger/table"
)

// CSVFormatter writes a header record followed by one record per row.
type CSVFormatter struct {
	writer io.Writer
}

// NewCSVFormatter returns a CSV formatter writing to w.
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes a header row followed by every row, in column order. An
// empty table still gets its header.
func (c *CSVFormatter) Format(t *table.Table) error {
	csvWriter := csv.NewWriter(c.writer)

	if len(t.Columns) > 0 {
		if err := csvWriter.Write(t.Columns); err != nil {
			return err
		}
	}

	for _, row := range t.Rows {
		values := t.Values(row)
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = sanitizeCell(v)
		}
		if err := csvWriter.Write(record); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}

// sanitizeCell guards against CSV injection by prefixing values that a
// spreadsheet application would treat as a formula.
func sanitizeCell(val string) string {
	if val == "" {
		return val
	}
	switch val[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		if isNumber(val) {
			return val
		}
		return "'" + strings.ReplaceAll(val, "'", "''")
	}
	return val
}

// isNumber reports whether val is a plain signed decimal, which is safe to
// emit unquoted.
func isNumber(val string) bool {
	if len(val) < 2 || (val[0] != '-' && val[0] != '+') {
		return false
	}
	dot := false
	for _, r := range val[1:] {
		switch {
		case r >= '0' && r <= '9':
		case r == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return true
}
