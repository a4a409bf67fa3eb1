package filter

import (
	"fmt"

	"github.com/vegasq/datamunger/datatype"
	"github.com/vegasq/datamunger/query"
	"github.com/vegasq/datamunger/table"
)

// Expression is a boolean condition over one row.
type Expression interface {
	Evaluate(row table.Row) (bool, error)
}

// BinaryExpr joins two expressions with and/or.
type BinaryExpr struct {
	Left     Expression
	Operator query.LogicalOperator
	Right    Expression
}

// ComparisonExpr compares one column against a literal.
type ComparisonExpr struct {
	Column   string
	Operator query.Operator
	Value    string
}

// Evaluate evaluates both sides before combining them.
func (b *BinaryExpr) Evaluate(row table.Row) (bool, error) {
	left, err := b.Left.Evaluate(row)
	if err != nil {
		return false, err
	}

	right, err := b.Right.Evaluate(row)
	if err != nil {
		return false, err
	}

	switch b.Operator {
	case query.And:
		return left && right, nil
	case query.Or:
		return left || right, nil
	default:
		return false, fmt.Errorf("unsupported logical operator: %q", b.Operator)
	}
}

// Evaluate infers the type of the row's value and compares it against the
// literal under that type. A row without the column does not match.
func (c *ComparisonExpr) Evaluate(row table.Row) (bool, error) {
	value, exists := row[c.Column]
	if !exists {
		return false, nil
	}
	matched, err := Evaluate(c.Operator, value, c.Value, datatype.Infer(value))
	if err != nil {
		return false, fmt.Errorf("column %q: %w", c.Column, err)
	}
	return matched, nil
}

func (c *ComparisonExpr) String() string {
	return fmt.Sprintf("%s %s %s", c.Column, c.Operator, c.Value)
}

// Build turns a WHERE clause into an expression tree. and binds tighter than
// or, and both associate to the left. Build returns nil for an empty clause.
func Build(restrictions []query.Restriction, operators []query.LogicalOperator) (Expression, error) {
	if len(restrictions) == 0 {
		return nil, nil
	}
	if len(operators) != len(restrictions)-1 {
		return nil, fmt.Errorf("%d conditions need %d logical operators, got %d",
			len(restrictions), len(restrictions)-1, len(operators))
	}

	b := &builder{restrictions: restrictions, operators: operators}
	return b.parseOr()
}

// builder walks restrictions and the operators between them. Operator i
// sits between restriction i and i+1.
type builder struct {
	restrictions []query.Restriction
	operators    []query.LogicalOperator
	pos          int
}

func (b *builder) parseOr() (Expression, error) {
	left, err := b.parseAnd()
	if err != nil {
		return nil, err
	}

	for b.pos < len(b.operators) && b.operators[b.pos] == query.Or {
		b.pos++
		right, err := b.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: query.Or,
			Right:    right,
		}
	}

	return left, nil
}

func (b *builder) parseAnd() (Expression, error) {
	left, err := b.parseComparison()
	if err != nil {
		return nil, err
	}

	for b.pos < len(b.operators) && b.operators[b.pos] == query.And {
		b.pos++
		right, err := b.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:     left,
			Operator: query.And,
			Right:    right,
		}
	}

	return left, nil
}

func (b *builder) parseComparison() (Expression, error) {
	r := b.restrictions[b.pos]
	if !r.Operator.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOperator, r.Operator)
	}
	if b.pos < len(b.operators) {
		if op := b.operators[b.pos]; op != query.And && op != query.Or {
			return nil, fmt.Errorf("unsupported logical operator: %q", op)
		}
	}
	return &ComparisonExpr{
		Column:   r.FieldName,
		Operator: r.Operator,
		Value:    r.Value,
	}, nil
}
