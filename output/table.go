package output

import (
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/datamunger/table"
)

// TableFormatter renders rows as an aligned text table for terminals.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (f *TableFormatter) SetOutput(w io.Writer) {
	f.writer = w
}

// Format renders t with a header row. Column names are printed as they are,
// without the upper-casing tablewriter applies by default.
func (f *TableFormatter) Format(t *table.Table) error {
	tw := tablewriter.NewWriter(f.writer)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetHeader(t.Columns)

	data := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		data[i] = t.Values(row)
	}
	tw.AppendBulk(data)
	tw.Render()
	return nil
}
