package query

import (
	"errors"
	"fmt"
)

// Validation limits to keep a single query from exhausting resources.
const (
	// MaxQueryLength is the maximum allowed query string length (1MB)
	MaxQueryLength = 1024 * 1024

	// MaxConditions is the maximum number of WHERE conditions
	MaxConditions = 1000

	// MaxFieldNameLength is the maximum length for a field name
	MaxFieldNameLength = 256

	// MaxFileNameLength is the maximum length for a file name
	MaxFileNameLength = 4096 // Allow long file paths
)

var (
	// ErrMalformedQuery is returned when a required clause or part of a
	// clause is missing or cannot be split.
	ErrMalformedQuery = errors.New("malformed query")

	// ErrQueryTooLong is returned when query exceeds MaxQueryLength
	ErrQueryTooLong = fmt.Errorf("%w: query too long", ErrMalformedQuery)

	// ErrTooManyConditions is returned when the WHERE clause exceeds MaxConditions
	ErrTooManyConditions = fmt.Errorf("%w: too many conditions", ErrMalformedQuery)

	// ErrFieldNameTooLong is returned when a field name is too long
	ErrFieldNameTooLong = fmt.Errorf("%w: field name too long", ErrMalformedQuery)

	// ErrFileNameTooLong is returned when the file name is too long
	ErrFileNameTooLong = fmt.Errorf("%w: file name too long", ErrMalformedQuery)
)

// malformed wraps ErrMalformedQuery with a description of what is wrong.
func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedQuery, fmt.Sprintf(format, args...))
}

// ValidateQuery checks the raw query length.
func ValidateQuery(query string) error {
	if len(query) > MaxQueryLength {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrQueryTooLong, len(query), MaxQueryLength)
	}
	return nil
}

// ValidateFileName checks the data source path.
func ValidateFileName(name string) error {
	if name == "" {
		return malformed("missing file name after from")
	}
	if len(name) > MaxFileNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrFileNameTooLong, len(name), MaxFileNameLength)
	}
	return nil
}

// ValidateFieldName checks a projected, grouped, ordered or filtered field.
func ValidateFieldName(clause, name string) error {
	if name == "" {
		return malformed("empty field in %s clause", clause)
	}
	if len(name) > MaxFieldNameLength {
		return fmt.Errorf("%w: %d chars (max %d)", ErrFieldNameTooLong, len(name), MaxFieldNameLength)
	}
	return nil
}

// ValidateConditionCount checks the number of WHERE conditions.
func ValidateConditionCount(n int) error {
	if n > MaxConditions {
		return fmt.Errorf("%w: %d conditions (max %d)", ErrTooManyConditions, n, MaxConditions)
	}
	return nil
}
