// Package table holds the in-memory row set that flows between the reader,
// engine and output packages.
package table

// Row maps a column name to its textual value.
type Row map[string]string

// Table is an ordered set of rows sharing one column list.
type Table struct {
	Columns []string
	Rows    []Row
}

// New returns an empty table with the given columns.
func New(columns ...string) *Table {
	return &Table{Columns: columns}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Column returns the index of name in Columns, or -1.
func (t *Table) Column(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	return t.Column(name) >= 0
}

// Values returns the values of row in column order. Missing cells are "".
func (t *Table) Values(row Row) []string {
	values := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		values[i] = row[c]
	}
	return values
}

// Append adds a row built from values in column order.
func (t *Table) Append(values ...string) {
	row := make(Row, len(t.Columns))
	for i, c := range t.Columns {
		if i < len(values) {
			row[c] = values[i]
		}
	}
	t.Rows = append(t.Rows, row)
}
