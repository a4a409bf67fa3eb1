package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/datamunger/datatype"
	"github.com/vegasq/datamunger/query"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		op    query.Operator
		left  string
		right string
		dt    datatype.DataType
		want  bool
	}{
		// Integer
		{"int equal", query.OpEqual, "2008", "2008", datatype.Integer, true},
		{"int leading zeros", query.OpEqual, "007", "7", datatype.Integer, true},
		{"int not equal", query.OpNotEqual, "2008", "2009", datatype.Integer, true},
		{"int greater", query.OpGreater, "10", "9", datatype.Integer, true},
		{"int greater is numeric", query.OpGreater, "9", "10", datatype.Integer, false},
		{"int greater equal", query.OpGreaterEqual, "10", "10", datatype.Integer, true},
		{"int less", query.OpLess, "9", "10", datatype.Integer, true},
		{"int less equal", query.OpLessEqual, "10", "10", datatype.Integer, true},
		{"int less equal false", query.OpLessEqual, "11", "10", datatype.Integer, false},

		// Double
		{"double equal", query.OpEqual, "3.14", "3.140", datatype.Double, true},
		{"double greater", query.OpGreater, "3.15", "3.14", datatype.Double, true},
		{"double less", query.OpLess, "2.5", "10.0", datatype.Double, true},

		// Date
		{"date equal dd/mm/yyyy", query.OpEqual, "01/02/2020", "01/02/2020", datatype.Date, true},
		{"date greater iso", query.OpGreater, "2020-01-02", "2019-12-31", datatype.Date, true},
		{"date less iso", query.OpLess, "2019-12-31", "2020-01-02", datatype.Date, true},
		{"date day before month", query.OpGreater, "02/01/2020", "01/02/2020", datatype.Date, false},
		{"date month names", query.OpLess, "05-Mar-2021", "05-Apr-2021", datatype.Date, true},
		{"date full month names", query.OpGreaterEqual, "05-September-21", "05-September-21", datatype.Date, true},
		{"date layout from left only", query.OpEqual, "2020-02-01", "01/02/2020", datatype.Date, false},
		{"date mismatch not equal", query.OpNotEqual, "2020-02-01", "01/02/2020", datatype.Date, true},
		{"date mismatch greater", query.OpGreater, "2020-02-01", "01/02/2020", datatype.Date, false},
		{"date left not a date", query.OpEqual, "hello", "hello", datatype.Date, false},

		// Null
		{"null equal", query.OpEqual, "", "", datatype.Null, false},
		{"null not equal", query.OpNotEqual, "", "x", datatype.Null, true},
		{"null greater", query.OpGreater, "", "x", datatype.Null, false},
		{"null greater equal", query.OpGreaterEqual, "", "x", datatype.Null, false},
		{"null less", query.OpLess, "", "x", datatype.Null, true},
		{"null less equal", query.OpLessEqual, "", "x", datatype.Null, true},

		// Text
		{"text equal", query.OpEqual, "Pune", "Pune", datatype.Text, true},
		{"text case sensitive", query.OpEqual, "Pune", "pune", datatype.Text, false},
		{"text upper before lower", query.OpLess, "Pune", "pune", datatype.Text, true},
		{"text lexicographic", query.OpGreater, "Mumbai", "Kolkata", datatype.Text, true},
		{"text numbers as text", query.OpLess, "10", "9", datatype.Text, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.op, tt.left, tt.right, tt.dt)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		op      query.Operator
		left    string
		right   string
		dt      datatype.DataType
		wantErr error
	}{
		{"integer right not numeric", query.OpEqual, "10", "ten", datatype.Integer, ErrNumericParse},
		{"integer overflow", query.OpGreater, "99999999999999999999", "1", datatype.Integer, ErrNumericParse},
		{"double with dash", query.OpEqual, "3-4", "3.4", datatype.Double, ErrNumericParse},
		{"composed operator propagates", query.OpLessEqual, "1", "x", datatype.Integer, ErrNumericParse},
		{"unknown operator", query.Operator("<>"), "1", "2", datatype.Integer, ErrUnsupportedOperator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.op, tt.left, tt.right, tt.dt)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.False(t, got)
		})
	}
}

func TestEvaluate_OperatorConsistency(t *testing.T) {
	grids := []struct {
		dt     datatype.DataType
		values []string
	}{
		{datatype.Integer, []string{"0", "1", "9", "10", "2008"}},
		{datatype.Double, []string{"0.5", "1.0", "3.14", "10.25"}},
		{datatype.Date, []string{"2019-12-31", "2020-01-02", "2020-02-01", "31/12/2019"}},
		{datatype.Null, []string{"", "x"}},
		{datatype.Text, []string{"", "Pune", "pune", "Mumbai", "mumbai indians"}},
	}

	eval := func(t *testing.T, op query.Operator, l, r string, dt datatype.DataType) bool {
		t.Helper()
		got, err := Evaluate(op, l, r, dt)
		require.NoError(t, err)
		return got
	}

	for _, grid := range grids {
		t.Run(grid.dt.String(), func(t *testing.T) {
			for _, l := range grid.values {
				for _, r := range grid.values {
					eq := eval(t, query.OpEqual, l, r, grid.dt)
					ne := eval(t, query.OpNotEqual, l, r, grid.dt)
					gt := eval(t, query.OpGreater, l, r, grid.dt)
					ge := eval(t, query.OpGreaterEqual, l, r, grid.dt)
					lt := eval(t, query.OpLess, l, r, grid.dt)
					le := eval(t, query.OpLessEqual, l, r, grid.dt)

					assert.Equal(t, !eq, ne, "%q != %q", l, r)
					assert.Equal(t, eq || gt, ge, "%q >= %q", l, r)
					assert.Equal(t, !ge, lt, "%q < %q", l, r)
					assert.Equal(t, eq || lt, le, "%q <= %q", l, r)
				}
			}
		})
	}
}

func TestEvaluate_Trichotomy(t *testing.T) {
	values := []string{"1", "2", "10", "2008"}
	for _, l := range values {
		for _, r := range values {
			lt, err := Evaluate(query.OpLess, l, r, datatype.Integer)
			require.NoError(t, err)
			eq, err := Evaluate(query.OpEqual, l, r, datatype.Integer)
			require.NoError(t, err)
			gt, err := Evaluate(query.OpGreater, l, r, datatype.Integer)
			require.NoError(t, err)

			count := 0
			for _, b := range []bool{lt, eq, gt} {
				if b {
					count++
				}
			}
			assert.Equal(t, 1, count, "%s vs %s", l, r)
		}
	}
}
