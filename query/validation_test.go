package query

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFileName(t *testing.T) {
	assert.NoError(t, ValidateFileName("data/ipl.csv"))
	assert.True(t, errors.Is(ValidateFileName(""), ErrMalformedQuery))

	err := ValidateFileName(strings.Repeat("a", MaxFileNameLength+1))
	assert.True(t, errors.Is(err, ErrFileNameTooLong))
}

func TestValidateFieldName(t *testing.T) {
	assert.NoError(t, ValidateFieldName("select", "city"))
	assert.True(t, errors.Is(ValidateFieldName("select", ""), ErrMalformedQuery))

	err := ValidateFieldName("select", strings.Repeat("a", MaxFieldNameLength+1))
	assert.True(t, errors.Is(err, ErrFieldNameTooLong))
	assert.True(t, errors.Is(err, ErrMalformedQuery))
}

func TestValidateConditionCount(t *testing.T) {
	assert.NoError(t, ValidateConditionCount(MaxConditions))
	assert.True(t, errors.Is(ValidateConditionCount(MaxConditions+1), ErrTooManyConditions))
}

func TestParser_TooManyConditions(t *testing.T) {
	conditions := make([]string, MaxConditions+1)
	for i := range conditions {
		conditions[i] = fmt.Sprintf("c%d = %d", i, i)
	}
	query := "select * from x.csv where " + strings.Join(conditions, " and ")

	_, err := Parse(query)
	assert.True(t, errors.Is(err, ErrTooManyConditions))
}

func TestOperator_Valid(t *testing.T) {
	for _, op := range Operators {
		assert.True(t, op.Valid(), string(op))
	}
	assert.False(t, Operator("<>").Valid())
	assert.False(t, Operator("==").Valid())
}

func TestFunctionName_Valid(t *testing.T) {
	for _, name := range FunctionNames {
		assert.True(t, name.Valid(), string(name))
	}
	assert.False(t, FunctionName("median").Valid())
}

func TestAggregateFunction_Column(t *testing.T) {
	agg := AggregateFunction{TargetField: "win_by_runs", Function: FuncMax}
	assert.Equal(t, "max(win_by_runs)", agg.Column())
}

func TestRestriction_String(t *testing.T) {
	r := Restriction{FieldName: "season", Operator: OpGreaterEqual, Value: "2008"}
	assert.Equal(t, "season >= 2008", r.String())
}
