// Package filter evaluates WHERE conditions against textual row values.
package filter

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vegasq/datamunger/datatype"
	"github.com/vegasq/datamunger/query"
)

var (
	// ErrNumericParse is returned when a value classified as Integer or
	// Double does not parse as a number.
	ErrNumericParse = errors.New("numeric parse error")
	// ErrUnsupportedOperator is returned for operators outside the six
	// relational ones.
	ErrUnsupportedOperator = errors.New("unsupported operator")
)

// Evaluate compares left against right with op, interpreting both values as
// dt.
//
// Only = and > are primitive. The other operators are composed from them:
// != is !(=), >= is (=) or (>), < is !(>=) and <= is (=) or (<). As a result
// Null values satisfy !=, < and <=.
func Evaluate(op query.Operator, left, right string, dt datatype.DataType) (bool, error) {
	switch op {
	case query.OpEqual:
		return equal(left, right, dt)
	case query.OpNotEqual:
		eq, err := equal(left, right, dt)
		return !eq, err
	case query.OpGreater:
		return greater(left, right, dt)
	case query.OpGreaterEqual:
		return greaterEqual(left, right, dt)
	case query.OpLess:
		ge, err := greaterEqual(left, right, dt)
		return !ge, err
	case query.OpLessEqual:
		eq, err := equal(left, right, dt)
		if err != nil {
			return false, err
		}
		ge, err := greaterEqual(left, right, dt)
		if err != nil {
			return false, err
		}
		return eq || !ge, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnsupportedOperator, op)
	}
}

func greaterEqual(left, right string, dt datatype.DataType) (bool, error) {
	eq, err := equal(left, right, dt)
	if err != nil {
		return false, err
	}
	gt, err := greater(left, right, dt)
	if err != nil {
		return false, err
	}
	return eq || gt, nil
}

// equal is the primitive equality test.
func equal(left, right string, dt datatype.DataType) (bool, error) {
	cmp, ok, err := compare(left, right, dt)
	if err != nil || !ok {
		return false, err
	}
	return cmp == 0, nil
}

// greater is the primitive strict greater-than test.
func greater(left, right string, dt datatype.DataType) (bool, error) {
	cmp, ok, err := compare(left, right, dt)
	if err != nil || !ok {
		return false, err
	}
	return cmp > 0, nil
}

// compare orders left against right under dt. ok is false when the values
// are not comparable, which makes both primitives false.
func compare(left, right string, dt datatype.DataType) (cmp int, ok bool, err error) {
	switch dt {
	case datatype.Integer:
		l, r, err := parseInts(left, right)
		if err != nil {
			return 0, false, err
		}
		return compareOrdered(l, r), true, nil
	case datatype.Double:
		l, r, err := parseFloats(left, right)
		if err != nil {
			return 0, false, err
		}
		return compareOrdered(l, r), true, nil
	case datatype.Date:
		return compareDates(left, right)
	case datatype.Null:
		return 0, false, nil
	case datatype.Text:
		return compareOrdered(left, right), true, nil
	default:
		return 0, false, fmt.Errorf("unknown data type %d", dt)
	}
}

// compareDates parses both values with the layout of the left one. Any
// failure makes the values incomparable rather than an error.
func compareDates(left, right string) (int, bool, error) {
	layout, ok := datatype.DetectLayout(left)
	if !ok {
		return 0, false, nil
	}
	l, err := layout.Parse(left)
	if err != nil {
		return 0, false, nil
	}
	r, err := layout.Parse(right)
	if err != nil {
		return 0, false, nil
	}
	return l.Compare(r), true, nil
}

func parseInts(left, right string) (int64, int64, error) {
	l, err := strconv.ParseInt(left, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q as integer", ErrNumericParse, left)
	}
	r, err := strconv.ParseInt(right, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q as integer", ErrNumericParse, right)
	}
	return l, r, nil
}

func parseFloats(left, right string) (float64, float64, error) {
	l, err := strconv.ParseFloat(left, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q as double", ErrNumericParse, left)
	}
	r, err := strconv.ParseFloat(right, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q as double", ErrNumericParse, right)
	}
	return l, r, nil
}

func compareOrdered[T int64 | float64 | string](l, r T) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}
