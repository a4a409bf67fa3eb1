package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/vegasq/datamunger/table"
)

// JSONFormatter writes one JSON object per row (JSON Lines).
type JSONFormatter struct {
	writer io.Writer
}

// NewJSONFormatter returns a JSON Lines formatter writing to w.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{writer: w}
}

// SetOutput redirects subsequent output to w.
func (j *JSONFormatter) SetOutput(w io.Writer) {
	j.writer = w
}

// Format writes one JSON object per row. Keys follow the table's column
// order.
func (j *JSONFormatter) Format(t *table.Table) error {
	bw := bufio.NewWriter(j.writer)
	for _, row := range t.Rows {
		if err := writeObject(bw, t.Columns, t.Values(row)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeObject(w *bufio.Writer, keys, values []string) error {
	_ = w.WriteByte('{')
	for i, key := range keys {
		if i > 0 {
			_ = w.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return err
		}
		v, err := json.Marshal(values[i])
		if err != nil {
			return err
		}
		_, _ = w.Write(k)
		_ = w.WriteByte(':')
		_, _ = w.Write(v)
	}
	_, err := w.WriteString("}\n")
	return err
}
