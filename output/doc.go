// Package output writes query results in various formats.
//
// This package defines the Formatter interface and provides implementations
// for JSON Lines, CSV and aligned text tables. All formatters take a
// *table.Table and emit its columns in table order.
//
// # Supported Formats
//
//   - jsonl: One JSON object per line (suitable for streaming)
//   - csv: Comma-separated values with header row
//   - table: Bordered text table for terminals
//
// # Basic Usage
//
//	formatter, err := output.New("csv", os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := formatter.Format(result); err != nil {
//	    log.Fatal(err)
//	}
//
// # CSV Injection
//
// CSV cells starting with =, +, -, @, |, tab or a line break are prefixed
// with a single quote unless they are plain signed numbers, so spreadsheet
// applications never evaluate them as formulas.
package output
