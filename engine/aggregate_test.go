package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/datamunger/query"
	"github.com/vegasq/datamunger/table"
)

func TestEvaluateSum(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"integers", []string{"1", "2", "40"}, "43"},
		{"integers beyond float precision", []string{"9007199254740993", "1"}, "9007199254740994"},
		{"mixed", []string{"1.5", "2"}, "3.5"},
		{"empty values skipped", []string{"", "4", ""}, "4"},
		{"no values", []string{"", ""}, ""},
		{"total overflows int64", []string{"9223372036854775807", "1"}, "9223372036854775808"},
		{"value overflows int64", []string{"99999999999999999999"}, "100000000000000000000"},
	}

	agg := query.AggregateFunction{TargetField: "n", Function: query.FuncSum}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([]table.Row, len(tt.values))
			for i, v := range tt.values {
				rows[i] = table.Row{"n": v}
			}

			got, err := evaluateSum(agg, rows)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSumInt64(t *testing.T) {
	total, ok := sumInt64([]string{"9223372036854775806", "1"})
	assert.True(t, ok)
	assert.Equal(t, int64(9223372036854775807), total)

	_, ok = sumInt64([]string{"9223372036854775807", "1"})
	assert.False(t, ok)
}
