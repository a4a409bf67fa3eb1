// Package datatype classifies textual field values into data types.
//
// Classification is purely shape based: a value is never parsed here, only
// matched against a fixed, ordered set of patterns. The first matching rule
// wins:
//
//	42          -> Integer
//	3.14        -> Double
//	2020-01-31  -> Date
//	""          -> Null
//	anything    -> Text
//
// The Double rule accepts any single character between two digit runs, so
// "3-4" and "3x4" classify as Double as well. Callers that parse Double values
// must be prepared for that.
package datatype

import "regexp"

// DataType is the inferred type of a single textual value.
type DataType int

const (
	// Integer is a run of decimal digits.
	Integer DataType = iota
	// Double is two digit runs separated by one character.
	Double
	// Date matches one of the recognized date layouts.
	Date
	// Null is the empty string.
	Null
	// Text is anything else.
	Text
)

var dataTypeNames = [...]string{
	Integer: "integer",
	Double:  "double",
	Date:    "date",
	Null:    "null",
	Text:    "text",
}

// String returns the lower-case name of the type.
func (t DataType) String() string {
	if t < 0 || int(t) >= len(dataTypeNames) {
		return "unknown"
	}
	return dataTypeNames[t]
}

// MarshalText encodes the type by name.
func (t DataType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// IsNumeric reports whether values of this type parse as numbers.
func (t DataType) IsNumeric() bool {
	return t == Integer || t == Double
}

var (
	integerPattern = regexp.MustCompile(`^\d+$`)
	// The dot is deliberately unescaped.
	doublePattern = regexp.MustCompile(`^\d+.\d+$`)
)

// Infer returns the data type of value.
func Infer(value string) DataType {
	switch {
	case integerPattern.MatchString(value):
		return Integer
	case doublePattern.MatchString(value):
		return Double
	case IsDate(value):
		return Date
	case value == "":
		return Null
	default:
		return Text
	}
}
