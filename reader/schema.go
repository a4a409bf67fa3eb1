package reader

import (
	"fmt"

	"github.com/parquet-go/parquet-go"
	"github.com/spf13/afero"

	"github.com/vegasq/datamunger/datatype"
	"github.com/vegasq/datamunger/table"
)

// ColumnInfo describes one column of a data file.
type ColumnInfo struct {
	Name string            `json:"name"`
	Type datatype.DataType `json:"type"`
	// PhysicalType is the parquet storage type. Empty for CSV sources.
	PhysicalType string `json:"physical_type,omitempty"`
}

// InferSchema classifies every column of t by the first non-null value it
// holds. Columns with only empty values are Null.
func InferSchema(t *table.Table) []ColumnInfo {
	infos := make([]ColumnInfo, len(t.Columns))
	for i, c := range t.Columns {
		infos[i] = ColumnInfo{Name: c, Type: inferColumn(t, c)}
	}
	return infos
}

func inferColumn(t *table.Table, column string) datatype.DataType {
	for _, row := range t.Rows {
		if dt := datatype.Infer(row[column]); dt != datatype.Null {
			return dt
		}
	}
	return datatype.Null
}

// Schema reads the file at path and describes its columns. For parquet
// files the physical storage type of each top-level field is included.
func Schema(fs afero.Fs, path string) ([]ColumnInfo, error) {
	t, err := Open(fs, path)
	if err != nil {
		return nil, err
	}
	infos := InferSchema(t)

	if format, _ := DetectFormat(path); format != FormatParquet {
		return infos, nil
	}

	p, err := openParquet(fs, path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = p.Close() }()

	physical := make(map[string]string)
	for _, field := range p.pqFile.Schema().Fields() {
		physical[field.Name()] = physicalType(field)
	}
	for i := range infos {
		infos[i].PhysicalType = physical[infos[i].Name]
	}
	return infos, nil
}

// physicalType returns the physical type name of a parquet field.
func physicalType(field parquet.Field) string {
	if field.Type() == nil || len(field.Fields()) > 0 {
		return "GROUP"
	}

	switch kind := field.Type().Kind(); kind {
	case parquet.Boolean:
		return "BOOLEAN"
	case parquet.Int32:
		return "INT32"
	case parquet.Int64:
		return "INT64"
	case parquet.Int96:
		return "INT96"
	case parquet.Float:
		return "FLOAT"
	case parquet.Double:
		return "DOUBLE"
	case parquet.ByteArray:
		return "BYTE_ARRAY"
	case parquet.FixedLenByteArray:
		return "FIXED_LEN_BYTE_ARRAY"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", kind)
	}
}
