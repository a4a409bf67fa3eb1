package engine

import (
	"cmp"
	"sort"
	"strconv"

	"github.com/vegasq/datamunger/datatype"
	"github.com/vegasq/datamunger/table"
)

// applyOrderBy sorts t ascending by columns, in place. Rows that compare
// equal keep their relative order.
func applyOrderBy(t *table.Table, columns []string) {
	if t.Len() < 2 || len(columns) == 0 {
		return
	}

	sort.SliceStable(t.Rows, func(i, j int) bool {
		for _, c := range columns {
			if result := compareValues(t.Rows[i][c], t.Rows[j][c]); result != 0 {
				return result < 0
			}
		}
		return false
	})
}

// compareValues orders two cells. Numbers compare numerically when both
// sides are numeric, dates chronologically when both share a layout, and
// everything else as case-sensitive text. Empty values sort first.
func compareValues(a, b string) int {
	aType, bType := datatype.Infer(a), datatype.Infer(b)

	if aType.IsNumeric() && bType.IsNumeric() {
		aNum, aErr := strconv.ParseFloat(a, 64)
		bNum, bErr := strconv.ParseFloat(b, 64)
		if aErr == nil && bErr == nil {
			return cmp.Compare(aNum, bNum)
		}
	}

	if aType == datatype.Date && bType == datatype.Date {
		aLayout, _ := datatype.DetectLayout(a)
		bLayout, _ := datatype.DetectLayout(b)
		if aLayout == bLayout {
			aTime, aErr := aLayout.Parse(a)
			bTime, bErr := bLayout.Parse(b)
			if aErr == nil && bErr == nil {
				return aTime.Compare(bTime)
			}
		}
	}

	return cmp.Compare(a, b)
}
