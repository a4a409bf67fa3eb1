package query

import (
	"encoding/json"
	"fmt"
)

// Operator is a relational operator in a WHERE condition.
type Operator string

const (
	OpEqual        Operator = "="
	OpNotEqual     Operator = "!="
	OpGreater      Operator = ">"
	OpGreaterEqual Operator = ">="
	OpLess         Operator = "<"
	OpLessEqual    Operator = "<="
)

// Operators lists every operator, longest first. A condition is split on the
// first of these that it contains, which keeps ">" from matching inside ">=".
var Operators = []Operator{OpNotEqual, OpGreaterEqual, OpLessEqual, OpEqual, OpGreater, OpLess}

// Valid reports whether op is one of the six relational operators.
func (op Operator) Valid() bool {
	for _, o := range Operators {
		if op == o {
			return true
		}
	}
	return false
}

// LogicalOperator joins two consecutive restrictions.
type LogicalOperator string

const (
	And LogicalOperator = "and"
	Or  LogicalOperator = "or"
)

// FunctionName is an aggregate function keyword.
type FunctionName string

const (
	FuncMin   FunctionName = "min"
	FuncMax   FunctionName = "max"
	FuncSum   FunctionName = "sum"
	FuncCount FunctionName = "count"
	FuncAvg   FunctionName = "avg"
)

// FunctionNames lists the recognized aggregate functions.
var FunctionNames = []FunctionName{FuncCount, FuncSum, FuncMin, FuncMax, FuncAvg}

// Valid reports whether f is a recognized aggregate function.
func (f FunctionName) Valid() bool {
	for _, name := range FunctionNames {
		if f == name {
			return true
		}
	}
	return false
}

// Restriction is one comparison from a WHERE clause.
type Restriction struct {
	FieldName string   `json:"field"`
	Operator  Operator `json:"operator"`
	Value     string   `json:"value"`
}

// String renders the restriction as "field op value".
func (r Restriction) String() string {
	return fmt.Sprintf("%s %s %s", r.FieldName, r.Operator, r.Value)
}

// AggregateFunction is a function call in the projection list, e.g. max(x).
type AggregateFunction struct {
	TargetField string       `json:"field"`
	Function    FunctionName `json:"function"`
}

// Column returns the projection text the function was parsed from.
func (a AggregateFunction) Column() string {
	return fmt.Sprintf("%s(%s)", a.Function, a.TargetField)
}

// Clause is an ordered clause value that tells a missing clause apart from
// a present one. The zero value is an absent clause.
type Clause[T any] struct {
	items   []T
	present bool
}

func presentClause[T any](items []T) Clause[T] {
	if items == nil {
		items = []T{}
	}
	return Clause[T]{items: items, present: true}
}

// Present reports whether the clause appeared in the query.
func (c Clause[T]) Present() bool {
	return c.present
}

// Len returns the number of items; zero for an absent clause.
func (c Clause[T]) Len() int {
	return len(c.items)
}

// Items returns a copy of the clause items, or nil when the clause is absent.
func (c Clause[T]) Items() []T {
	if !c.present {
		return nil
	}
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// MarshalJSON encodes an absent clause as null.
func (c Clause[T]) MarshalJSON() ([]byte, error) {
	if !c.present {
		return []byte("null"), nil
	}
	return json.Marshal(c.items)
}

// Query is the parsed, read-only description of a query string.
type Query struct {
	raw              string
	fileName         string
	baseQuery        string
	fields           []string
	restrictions     Clause[Restriction]
	logicalOperators Clause[LogicalOperator]
	groupByFields    Clause[string]
	orderByFields    Clause[string]
	aggregates       Clause[AggregateFunction]
}

// String returns the query text the descriptor was parsed from.
func (q *Query) String() string { return q.raw }

// FileName returns the data source path found after FROM.
func (q *Query) FileName() string { return q.fileName }

// BaseQuery returns the lower-cased select/from part of the query.
func (q *Query) BaseQuery() string { return q.baseQuery }

// Fields returns the projection list in query order.
func (q *Query) Fields() []string {
	out := make([]string, len(q.fields))
	copy(out, q.fields)
	return out
}

// Restrictions returns the WHERE conditions.
func (q *Query) Restrictions() Clause[Restriction] { return q.restrictions }

// LogicalOperators returns the and/or tokens between restrictions.
func (q *Query) LogicalOperators() Clause[LogicalOperator] { return q.logicalOperators }

// GroupByFields returns the GROUP BY fields.
func (q *Query) GroupByFields() Clause[string] { return q.groupByFields }

// OrderByFields returns the ORDER BY fields.
func (q *Query) OrderByFields() Clause[string] { return q.orderByFields }

// AggregateFunctions returns the aggregate calls in the projection list.
func (q *Query) AggregateFunctions() Clause[AggregateFunction] { return q.aggregates }

// HasAggregation reports whether executing the query groups rows.
func (q *Query) HasAggregation() bool {
	return q.groupByFields.Present() || q.aggregates.Len() > 0
}

// MarshalJSON encodes the descriptor with absent clauses as null.
func (q *Query) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		FileName           string                    `json:"file_name"`
		BaseQuery          string                    `json:"base_query"`
		Fields             []string                  `json:"fields"`
		Restrictions       Clause[Restriction]       `json:"restrictions"`
		LogicalOperators   Clause[LogicalOperator]   `json:"logical_operators"`
		GroupByFields      Clause[string]            `json:"group_by_fields"`
		OrderByFields      Clause[string]            `json:"order_by_fields"`
		AggregateFunctions Clause[AggregateFunction] `json:"aggregate_functions"`
	}{
		FileName:           q.fileName,
		BaseQuery:          q.baseQuery,
		Fields:             q.fields,
		Restrictions:       q.restrictions,
		LogicalOperators:   q.logicalOperators,
		GroupByFields:      q.groupByFields,
		OrderByFields:      q.orderByFields,
		AggregateFunctions: q.aggregates,
	})
}
