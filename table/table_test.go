package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	tbl := New("id", "city", "winner")
	tbl.Append("1", "Hyderabad", "Sunrisers Hyderabad")
	tbl.Append("2", "Pune")

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, 1, tbl.Column("city"))
	assert.Equal(t, -1, tbl.Column("season"))
	assert.True(t, tbl.HasColumn("winner"))
	assert.False(t, tbl.HasColumn("Winner"))

	assert.Equal(t, []string{"1", "Hyderabad", "Sunrisers Hyderabad"}, tbl.Values(tbl.Rows[0]))
	assert.Equal(t, []string{"2", "Pune", ""}, tbl.Values(tbl.Rows[1]))
}

func TestTable_ValuesMissingColumn(t *testing.T) {
	tbl := New("a", "b")
	assert.Equal(t, []string{"x", ""}, tbl.Values(Row{"a": "x", "c": "ignored"}))
}
