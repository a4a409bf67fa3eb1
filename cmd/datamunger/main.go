// Command datamunger runs simple SQL-like queries against CSV and Parquet
// files.
//
// Usage:
//
//	datamunger query "select name, age from people.csv where age > 30"
//	datamunger "select season, count(*) from ipl.csv group by season"
//	datamunger parse "select * from a.csv where x = 1"
//	datamunger infer 42 3.5 2019-04-05 hello
//	datamunger schema ipl.parquet
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		red := color.New(color.FgRed, color.Bold)
		_, _ = red.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// printWarning writes a yellow notice to w.
func printWarning(w io.Writer, format string, args ...any) {
	_, _ = color.New(color.FgYellow).Fprintf(w, "Warning: %s\n", fmt.Sprintf(format, args...))
}
