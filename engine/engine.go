// Package engine runs parsed queries against data files.
//
// Execution follows a fixed pipeline: load the file, check that every
// referenced column exists, filter, group and aggregate, order and finally
// project the selected fields.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/vegasq/datamunger/filter"
	"github.com/vegasq/datamunger/query"
	"github.com/vegasq/datamunger/reader"
	"github.com/vegasq/datamunger/table"
)

// ErrUnknownColumn is returned when a query references a column the data
// file does not have.
var ErrUnknownColumn = errors.New("unknown column")

// DefaultWorkers is the filter parallelism used when none is configured.
const DefaultWorkers = 4

// Engine executes queries against files on one filesystem.
type Engine struct {
	fs      afero.Fs
	logger  *slog.Logger
	workers int
	dataDir string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Engines log nothing by default.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithWorkers sets how many goroutines filter rows.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithDataDir resolves relative file names against dir.
func WithDataDir(dir string) Option {
	return func(e *Engine) {
		e.dataDir = dir
	}
}

// New returns an engine reading files from fs.
func New(fs afero.Fs, opts ...Option) *Engine {
	e := &Engine{
		fs:      fs,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs q and returns the result table. Result columns are the
// query's fields in order, with * expanded to every column of the file.
func (e *Engine) Execute(ctx context.Context, q *query.Query) (*table.Table, error) {
	start := time.Now()
	logger := e.logger.With("execution_id", uuid.NewString())

	path := e.Resolve(q.FileName())
	logger.Debug("loading", "path", path)
	t, err := reader.ReadMultipleFiles(e.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", path, err)
	}
	lowercaseColumns(t)
	source := append([]string(nil), t.Columns...)

	if err := validateColumns(t, q); err != nil {
		return nil, err
	}

	expr, err := filter.Build(q.Restrictions().Items(), q.LogicalOperators().Items())
	if err != nil {
		return nil, fmt.Errorf("failed to build filter: %w", err)
	}
	loaded := t.Len()
	t.Rows, err = filter.Apply(ctx, t.Rows, expr, e.workers)
	if err != nil {
		return nil, fmt.Errorf("failed to apply filter: %w", err)
	}
	logger.Debug("filtered", "rows_in", loaded, "rows_out", t.Len(), "workers", e.workers)

	if q.HasAggregation() {
		t, err = applyGroupByAndAggregate(t, q)
		if err != nil {
			return nil, fmt.Errorf("failed to apply aggregation: %w", err)
		}
		logger.Debug("aggregated", "groups", t.Len())
	}

	if q.OrderByFields().Present() {
		applyOrderBy(t, q.OrderByFields().Items())
		logger.Debug("ordered", "fields", q.OrderByFields().Items())
	}

	result := project(t, q.Fields(), source)
	logger.Info("query executed",
		"file", path,
		"rows", result.Len(),
		"duration", time.Since(start))
	return result, nil
}

// Resolve returns name joined to the data directory unless it is absolute.
func (e *Engine) Resolve(name string) string {
	if e.dataDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(e.dataDir, name)
}

// ApplyLimit keeps at most n rows of t. n <= 0 keeps everything.
func ApplyLimit(t *table.Table, n int) *table.Table {
	if n > 0 && t.Len() > n {
		t.Rows = t.Rows[:n]
	}
	return t
}

// lowercaseColumns renames every column of t to lower case, matching the
// lower-cased names a parsed query refers to.
func lowercaseColumns(t *table.Table) {
	renamed := false
	for i, c := range t.Columns {
		if lower := strings.ToLower(c); lower != c {
			t.Columns[i] = lower
			renamed = true
		}
	}
	if !renamed {
		return
	}
	for i, row := range t.Rows {
		lowered := make(table.Row, len(row))
		for k, v := range row {
			lowered[strings.ToLower(k)] = v
		}
		t.Rows[i] = lowered
	}
}

// validateColumns checks every column q refers to against t.
func validateColumns(t *table.Table, q *query.Query) error {
	var missing []string
	check := func(name string) {
		if !t.HasColumn(name) {
			missing = append(missing, name)
		}
	}

	aggregates := q.AggregateFunctions().Items()
	aggregateColumns := make(map[string]bool)
	next := 0
	for _, field := range q.Fields() {
		if field == "*" {
			continue
		}
		if strings.Contains(field, "(") && next < len(aggregates) {
			agg := aggregates[next]
			next++
			aggregateColumns[field] = true
			if agg.TargetField == "*" {
				if agg.Function != query.FuncCount {
					return fmt.Errorf("%w: %s(*) is not supported", ErrAggregate, agg.Function)
				}
				continue
			}
			check(agg.TargetField)
			continue
		}
		check(field)
	}
	for _, r := range q.Restrictions().Items() {
		check(r.FieldName)
	}
	for _, name := range q.GroupByFields().Items() {
		check(name)
	}
	for _, name := range q.OrderByFields().Items() {
		if q.HasAggregation() && aggregateColumns[name] {
			continue
		}
		check(name)
	}

	if len(missing) == 0 {
		return nil
	}
	available := append([]string(nil), t.Columns...)
	sort.Strings(available)
	return fmt.Errorf("%w: %s (available: %s)", ErrUnknownColumn,
		strings.Join(missing, ", "), strings.Join(available, ", "))
}

// project returns a table holding fields in order. * expands to the
// columns of the source file.
func project(t *table.Table, fields, source []string) *table.Table {
	var columns []string
	for _, field := range fields {
		if field == "*" {
			columns = append(columns, source...)
			continue
		}
		columns = append(columns, field)
	}

	result := table.New(columns...)
	result.Rows = make([]table.Row, len(t.Rows))
	for i, row := range t.Rows {
		projected := make(table.Row, len(columns))
		for _, c := range columns {
			projected[c] = row[c]
		}
		result.Rows[i] = projected
	}
	return result
}
