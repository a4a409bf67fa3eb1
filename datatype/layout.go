package datatype

import (
	"regexp"
	"time"
)

// Layout is one of the recognized date shapes.
type Layout int

const (
	// LayoutDayMonthYear is dd/mm/yyyy.
	LayoutDayMonthYear Layout = iota
	// LayoutISO is yyyy-mm-dd.
	LayoutISO
	// LayoutDayMonShortYear is dd-mon-yy.
	LayoutDayMonShortYear
	// LayoutDayMonYear is dd-mon-yyyy.
	LayoutDayMonYear
	// LayoutDayMonthShortYear is dd-month-yy.
	LayoutDayMonthShortYear
	// LayoutDayMonthFullYear is dd-month-yyyy.
	LayoutDayMonthFullYear
)

type layoutRule struct {
	layout   Layout
	name     string
	goLayout string
	pattern  *regexp.Regexp
}

// Order matters: the three-letter month shapes must be tried before the
// 3-9 letter ones so "01-Jan-20" resolves to the abbreviated layout.
var layoutRules = []layoutRule{
	{LayoutDayMonthYear, "dd/mm/yyyy", "02/01/2006", regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)},
	{LayoutISO, "yyyy-mm-dd", "2006-01-02", regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)},
	{LayoutDayMonShortYear, "dd-mon-yy", "02-Jan-06", regexp.MustCompile(`^\d{2}-[a-zA-Z]{3}-\d{2}$`)},
	{LayoutDayMonYear, "dd-mon-yyyy", "02-Jan-2006", regexp.MustCompile(`^\d{2}-[a-zA-Z]{3}-\d{4}$`)},
	{LayoutDayMonthShortYear, "dd-month-yy", "02-January-06", regexp.MustCompile(`^\d{2}-[a-zA-Z]{3,9}-\d{2}$`)},
	{LayoutDayMonthFullYear, "dd-month-yyyy", "02-January-2006", regexp.MustCompile(`^\d{2}-[a-zA-Z]{3,9}-\d{4}$`)},
}

// String returns the textual pattern of the layout, e.g. "dd/mm/yyyy".
func (l Layout) String() string {
	if l < 0 || int(l) >= len(layoutRules) {
		return "unknown"
	}
	return layoutRules[l].name
}

// GoLayout returns the reference layout understood by time.Parse.
func (l Layout) GoLayout() string {
	if l < 0 || int(l) >= len(layoutRules) {
		return ""
	}
	return layoutRules[l].goLayout
}

// Parse parses value using the layout.
func (l Layout) Parse(value string) (time.Time, error) {
	return time.Parse(l.GoLayout(), value)
}

// DetectLayout returns the layout whose shape value matches.
func DetectLayout(value string) (Layout, bool) {
	for _, rule := range layoutRules {
		if rule.pattern.MatchString(value) {
			return rule.layout, true
		}
	}
	return 0, false
}

// IsDate reports whether value has one of the recognized date shapes.
func IsDate(value string) bool {
	_, ok := DetectLayout(value)
	return ok
}
