package query

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Parse parses a query string into a Query.
//
// Keywords are matched case-insensitively. Projected, grouped and ordered
// fields, the file name and restriction field names are lower-cased;
// restriction values keep their original case. Parse either returns a
// complete descriptor or an error wrapping ErrMalformedQuery.
func Parse(query string) (*Query, error) {
	if err := ValidateQuery(query); err != nil {
		return nil, err
	}

	c := scanClauses(query)
	if !c.selectKw.found {
		return nil, malformed("missing select")
	}
	if !c.from.found {
		return nil, malformed("missing from clause")
	}
	if err := checkClauseOrder(c); err != nil {
		return nil, err
	}

	baseEnd := c.baseEnd(len(query))

	fileName, err := parseFileName(between(query, c.from.end, baseEnd))
	if err != nil {
		return nil, err
	}

	fields, err := parseFields(query, c)
	if err != nil {
		return nil, err
	}

	q := &Query{
		raw:       query,
		fileName:  fileName,
		baseQuery: strings.TrimSpace(strings.ToLower(query[:baseEnd])),
		fields:    fields,
	}

	if c.where.found {
		end := len(query)
		if c.groupBy.found {
			end = c.groupBy.start
		} else if c.orderBy.found {
			end = c.orderBy.start
		}
		restrictions, operators, err := parseConditions(between(query, c.where.end, end))
		if err != nil {
			return nil, err
		}
		q.restrictions = presentClause(restrictions)
		q.logicalOperators = presentClause(operators)
	}

	if c.groupBy.found {
		end := len(query)
		if c.orderBy.found {
			end = c.orderBy.start
		}
		groupBy, err := splitFieldList("group by", between(query, c.groupBy.end, end))
		if err != nil {
			return nil, err
		}
		q.groupByFields = presentClause(groupBy)
	}

	if c.orderBy.found {
		orderBy, err := splitFieldList("order by", between(query, c.orderBy.end, len(query)))
		if err != nil {
			return nil, err
		}
		q.orderByFields = presentClause(orderBy)
	}

	aggregates, present, err := parseAggregates(query, fields)
	if err != nil {
		return nil, err
	}
	if present {
		q.aggregates = presentClause(aggregates)
	}

	return q, nil
}

// checkClauseOrder rejects queries whose optional clauses are out of order.
func checkClauseOrder(c clauses) error {
	if c.where.found {
		if (c.groupBy.found && c.groupBy.start < c.where.start) ||
			(c.orderBy.found && c.orderBy.start < c.where.start) {
			return malformed("where must come before group by and order by")
		}
	}
	if c.groupBy.found && c.orderBy.found && c.orderBy.start < c.groupBy.start {
		return malformed("group by must come before order by")
	}
	return nil
}

// parseFileName returns the first token after FROM.
func parseFileName(fragment string) (string, error) {
	tokens := strings.Fields(fragment)
	if len(tokens) == 0 {
		return "", malformed("missing file name after from")
	}
	name := strings.ToLower(tokens[0])
	if err := ValidateFileName(name); err != nil {
		return "", err
	}
	return name, nil
}

// parseFields returns the projection list between SELECT and FROM.
func parseFields(query string, c clauses) ([]string, error) {
	if c.from.start <= c.selectKw.end {
		return nil, malformed("no fields between select and from")
	}
	return splitFieldList("select", query[c.selectKw.end:c.from.start])
}

// between returns s[start:end], or "" when two keywords share the
// whitespace between them and the range is empty.
func between(s string, start, end int) string {
	if start >= end {
		return ""
	}
	return s[start:end]
}

// splitFieldList splits a comma separated field list, trimming and
// lower-casing each entry.
func splitFieldList(clause, list string) ([]string, error) {
	if strings.TrimSpace(list) == "" {
		return nil, malformed("empty %s clause", clause)
	}
	parts := strings.Split(list, ",")
	fields := make([]string, 0, len(parts))
	for _, part := range parts {
		field := strings.ToLower(strings.TrimSpace(part))
		if err := ValidateFieldName(clause, field); err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// parseConditions splits a WHERE body into restrictions and the and/or
// tokens joining them.
func parseConditions(fragment string) ([]Restriction, []LogicalOperator, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, nil, malformed("empty where clause")
	}

	tokens, err := tokenizeConditions(fragment)
	if err != nil {
		return nil, nil, malformed("where clause: %v", err)
	}

	var (
		restrictions []Restriction
		operators    []LogicalOperator
		start        = 0
		segment      []lexer.Token
	)

	flush := func(end int) error {
		r, err := parseRestriction(fragment, start, end, segment)
		if err != nil {
			return err
		}
		restrictions = append(restrictions, r)
		return nil
	}

	for _, tok := range tokens {
		op, ok := logicalOperator(tok)
		if !ok {
			segment = append(segment, tok)
			continue
		}
		if err := flush(tok.Pos.Offset); err != nil {
			return nil, nil, err
		}
		operators = append(operators, op)
		start = tokenEnd(tok)
		segment = nil
	}
	if err := flush(len(fragment)); err != nil {
		return nil, nil, err
	}

	if err := ValidateConditionCount(len(restrictions)); err != nil {
		return nil, nil, err
	}
	return restrictions, operators, nil
}

// parseRestriction builds one restriction from fragment[start:end], whose
// tokens are given in segment.
func parseRestriction(fragment string, start, end int, segment []lexer.Token) (Restriction, error) {
	text := strings.TrimSpace(fragment[start:end])
	if len(segment) == 0 {
		return Restriction{}, malformed("empty condition")
	}

	opIndex := -1
	for i, tok := range segment {
		if tok.Type != operatorToken {
			continue
		}
		if opIndex >= 0 {
			return Restriction{}, malformed("more than one operator in condition %q", text)
		}
		opIndex = i
	}
	if opIndex < 0 {
		return Restriction{}, malformed("no operator in condition %q", text)
	}

	opTok := segment[opIndex]
	field := strings.ToLower(strings.TrimSpace(fragment[start:opTok.Pos.Offset]))
	if field == "" {
		return Restriction{}, malformed("missing field name in condition %q", text)
	}
	if err := ValidateFieldName("where", field); err != nil {
		return Restriction{}, err
	}
	if opIndex == len(segment)-1 {
		return Restriction{}, malformed("missing value in condition %q", text)
	}

	value := fragment[tokenEnd(opTok):end]
	value = strings.TrimSpace(strings.NewReplacer("'", "", `"`, "").Replace(value))

	return Restriction{
		FieldName: field,
		Operator:  Operator(opTok.Value),
		Value:     value,
	}, nil
}

// parseAggregates extracts aggregate calls from the projection list. The
// clause is present whenever one of the function keywords occurs anywhere
// in the query, even if no field is actually a function call. The keyword
// check ignores case, like every other keyword match.
func parseAggregates(query string, fields []string) ([]AggregateFunction, bool, error) {
	lower := strings.ToLower(query)
	present := false
	for _, name := range FunctionNames {
		if strings.Contains(lower, string(name)) {
			present = true
			break
		}
	}
	if !present {
		return nil, false, nil
	}

	aggregates := make([]AggregateFunction, 0)
	for _, field := range fields {
		open := strings.Index(field, "(")
		if open < 0 {
			continue
		}
		closing := strings.Index(field[open:], ")")
		if closing < 0 {
			return nil, false, malformed("unclosed parenthesis in %q", field)
		}

		name := FunctionName(strings.TrimSpace(field[:open]))
		if !name.Valid() {
			return nil, false, malformed("unknown aggregate function %q", name)
		}
		target := strings.TrimSpace(field[open+1 : open+closing])
		if target == "" {
			return nil, false, malformed("missing field in %q", field)
		}

		aggregates = append(aggregates, AggregateFunction{
			TargetField: target,
			Function:    name,
		})
	}
	return aggregates, true, nil
}
