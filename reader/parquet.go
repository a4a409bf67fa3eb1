package reader

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/spf13/afero"

	"github.com/vegasq/datamunger/table"
)

// parquetFile keeps the afero handle next to the parquet handle so both are
// released together.
type parquetFile struct {
	file   afero.File
	pqFile *parquet.File
}

func openParquet(fs afero.Fs, path string) (*parquetFile, error) {
	file, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &parquetFile{file: file, pqFile: pqFile}, nil
}

func (p *parquetFile) Close() error {
	return p.file.Close()
}

// columns returns the top-level field names in schema order.
func (p *parquetFile) columns() []string {
	fields := p.pqFile.Schema().Fields()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name()
	}
	return columns
}

func (p *parquetFile) readAll() (*table.Table, error) {
	t := table.New(p.columns()...)

	reader := parquet.NewReader(p.pqFile)
	defer func() { _ = reader.Close() }()

	for {
		values := make(map[string]interface{})
		err := reader.Read(&values)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		row := make(table.Row, len(t.Columns))
		for _, c := range t.Columns {
			row[c] = formatValue(values[c])
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

func readParquet(fs afero.Fs, path string) (*table.Table, error) {
	p, err := openParquet(fs, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = p.Close() }()

	return p.readAll()
}

// formatValue renders a parquet value the way it would appear in a CSV
// cell. nil becomes the empty string.
func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int32:
		return strconv.FormatInt(int64(val), 10)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint32:
		return strconv.FormatUint(uint64(val), 10)
	case uint64:
		return strconv.FormatUint(val, 10)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format("2006-01-02")
	default:
		return fmt.Sprint(val)
	}
}
