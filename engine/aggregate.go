package engine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vegasq/datamunger/datatype"
	"github.com/vegasq/datamunger/query"
	"github.com/vegasq/datamunger/table"
)

// ErrAggregate is returned when an aggregate cannot be computed, such as
// sum over a text column.
var ErrAggregate = errors.New("aggregate error")

// group is one set of rows sharing the same group-by values.
type group struct {
	rows []table.Row
}

// aggregateColumn binds a projected field to the aggregate computing it.
type aggregateColumn struct {
	name string
	agg  query.AggregateFunction
}

// aggregateColumns pairs each parenthesized field with its aggregate. The
// parser emits one aggregate per such field, in field order.
func aggregateColumns(q *query.Query) []aggregateColumn {
	aggregates := q.AggregateFunctions().Items()
	var columns []aggregateColumn
	for _, field := range q.Fields() {
		if len(columns) == len(aggregates) {
			break
		}
		if strings.Contains(field, "(") {
			columns = append(columns, aggregateColumn{name: field, agg: aggregates[len(columns)]})
		}
	}
	return columns
}

// applyGroupByAndAggregate collapses t to one row per group. Groups appear
// in the order their first row does. Without a group-by clause all rows form
// a single group, which yields one row even for empty input.
//
// Each output row keeps the source columns of the group's first row and adds
// one column per aggregate, named by the field text.
func applyGroupByAndAggregate(t *table.Table, q *query.Query) (*table.Table, error) {
	groupBy := q.GroupByFields().Items()

	var groups []*group
	if len(groupBy) == 0 {
		groups = []*group{{rows: t.Rows}}
	} else {
		index := make(map[string]*group)
		for _, row := range t.Rows {
			key := groupKey(row, groupBy)
			g, exists := index[key]
			if !exists {
				g = &group{}
				index[key] = g
				groups = append(groups, g)
			}
			g.rows = append(g.rows, row)
		}
	}

	columns := aggregateColumns(q)
	result := table.New(t.Columns...)
	for _, c := range columns {
		result.Columns = append(result.Columns, c.name)
	}

	result.Rows = make([]table.Row, 0, len(groups))
	for _, g := range groups {
		row := make(table.Row, len(result.Columns))
		if len(g.rows) > 0 {
			for k, v := range g.rows[0] {
				row[k] = v
			}
		}
		for _, c := range columns {
			value, err := evaluateAggregate(c.agg, g.rows)
			if err != nil {
				return nil, err
			}
			row[c.name] = value
		}
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}

// groupKey joins the group-by values of row with a separator that cannot
// appear in CSV text.
func groupKey(row table.Row, groupBy []string) string {
	var b strings.Builder
	for i, col := range groupBy {
		if i > 0 {
			b.WriteString("\x00")
		}
		b.WriteString(row[col])
	}
	return b.String()
}

func evaluateAggregate(agg query.AggregateFunction, rows []table.Row) (string, error) {
	switch agg.Function {
	case query.FuncCount:
		return evaluateCount(agg, rows), nil
	case query.FuncSum:
		return evaluateSum(agg, rows)
	case query.FuncAvg:
		return evaluateAvg(agg, rows)
	case query.FuncMin:
		return evaluateExtreme(agg, rows, -1), nil
	case query.FuncMax:
		return evaluateExtreme(agg, rows, 1), nil
	default:
		return "", fmt.Errorf("%w: unknown aggregate function %q", ErrAggregate, agg.Function)
	}
}

// evaluateCount counts rows for count(*) and non-empty values otherwise.
func evaluateCount(agg query.AggregateFunction, rows []table.Row) string {
	if agg.TargetField == "*" {
		return strconv.Itoa(len(rows))
	}
	count := 0
	for _, row := range rows {
		if row[agg.TargetField] != "" {
			count++
		}
	}
	return strconv.Itoa(count)
}

// numericValues returns the non-empty values of the target column, both as
// text and as numbers, and whether all of them were integers.
func numericValues(agg query.AggregateFunction, rows []table.Row) ([]string, []float64, bool, error) {
	raws := make([]string, 0, len(rows))
	values := make([]float64, 0, len(rows))
	integers := true
	for _, row := range rows {
		raw := row[agg.TargetField]
		dt := datatype.Infer(raw)
		if dt == datatype.Null {
			continue
		}
		if !dt.IsNumeric() {
			return nil, nil, false, fmt.Errorf("%w: %s: %q is not numeric", ErrAggregate, agg.Column(), raw)
		}
		num, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, nil, false, fmt.Errorf("%w: %s: %q is not numeric", ErrAggregate, agg.Column(), raw)
		}
		if dt != datatype.Integer {
			integers = false
		}
		raws = append(raws, raw)
		values = append(values, num)
	}
	return raws, values, integers, nil
}

// evaluateSum adds the non-empty values. A column of integers sums to an
// integer unless the total leaves the int64 range, in which case it is summed
// as float64 like any other numeric column. No values gives the empty string.
func evaluateSum(agg query.AggregateFunction, rows []table.Row) (string, error) {
	raws, values, integers, err := numericValues(agg, rows)
	if err != nil || len(values) == 0 {
		return "", err
	}
	if integers {
		if total, ok := sumInt64(raws); ok {
			return strconv.FormatInt(total, 10), nil
		}
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return formatFloat(sum), nil
}

// sumInt64 reports false if a value or the running total overflows int64.
func sumInt64(raws []string) (int64, bool) {
	var total int64
	for _, raw := range raws {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return 0, false
		}
		if (n > 0 && total > math.MaxInt64-n) || (n < 0 && total < math.MinInt64-n) {
			return 0, false
		}
		total += n
	}
	return total, true
}

func evaluateAvg(agg query.AggregateFunction, rows []table.Row) (string, error) {
	_, values, _, err := numericValues(agg, rows)
	if err != nil || len(values) == 0 {
		return "", err
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return formatFloat(sum / float64(len(values))), nil
}

// evaluateExtreme returns the smallest (sign -1) or largest (sign 1)
// non-empty value under the same ordering ORDER BY uses.
func evaluateExtreme(agg query.AggregateFunction, rows []table.Row, sign int) string {
	best := ""
	found := false
	for _, row := range rows {
		v := row[agg.TargetField]
		if v == "" {
			continue
		}
		if !found || compareValues(v, best)*sign > 0 {
			best = v
			found = true
		}
	}
	return best
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
