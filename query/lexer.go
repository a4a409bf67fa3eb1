package query

import (
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Clause keywords only match when surrounded by whitespace (or the end of
// the input), so field names such as from_date or order_id never split a
// clause.
var (
	selectKeyword  = regexp.MustCompile(`(?i)(^|\s)select\s`)
	fromKeyword    = regexp.MustCompile(`(?i)\sfrom(\s|$)`)
	whereKeyword   = regexp.MustCompile(`(?i)\swhere(\s|$)`)
	groupByKeyword = regexp.MustCompile(`(?i)\sgroup\s+by(\s|$)`)
	orderByKeyword = regexp.MustCompile(`(?i)\sorder\s+by(\s|$)`)
)

// span is the byte range of a keyword match. start is where the keyword
// (including its leading whitespace) begins, end is where the clause body
// begins.
type span struct {
	start, end int
	found      bool
}

// findKeyword locates the first match of re in input at or after offset.
func findKeyword(re *regexp.Regexp, input string, offset int) span {
	if offset < 0 {
		offset = 0
	}
	if offset > len(input) {
		return span{}
	}
	loc := re.FindStringIndex(input[offset:])
	if loc == nil {
		return span{}
	}
	return span{start: offset + loc[0], end: offset + loc[1], found: true}
}

// clauses holds the keyword positions of one query string.
type clauses struct {
	selectKw span
	from     span
	where    span
	groupBy  span
	orderBy  span
}

// scanClauses finds the clause keywords of input in a single left-to-right
// pass. WHERE, GROUP BY and ORDER BY are only looked for after FROM.
func scanClauses(input string) clauses {
	var c clauses
	c.selectKw = findKeyword(selectKeyword, input, 0)
	if !c.selectKw.found {
		return c
	}
	// Back up one byte so the whitespace consumed by "select " can still
	// anchor an immediately following " from".
	c.from = findKeyword(fromKeyword, input, c.selectKw.end-1)
	if !c.from.found {
		return c
	}
	c.where = findKeyword(whereKeyword, input, c.from.start)
	c.groupBy = findKeyword(groupByKeyword, input, c.from.start)
	c.orderBy = findKeyword(orderByKeyword, input, c.from.start)
	return c
}

// baseEnd returns where the select/from fragment stops: the first of WHERE,
// GROUP BY or ORDER BY, or the end of input.
func (c clauses) baseEnd(inputLen int) int {
	end := inputLen
	for _, s := range []span{c.where, c.groupBy, c.orderBy} {
		if s.found && s.start < end {
			end = s.start
		}
	}
	return end
}

// conditionLexer tokenizes the body of a WHERE clause. Operators are listed
// longest first so ">=" is never read as ">" followed by "=". A "!" that does
// not start "!=" and a quote without its partner lex as Stray, which is plain
// value text, so every input tokenizes.
var conditionLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Quoted", Pattern: `'[^']*'|"[^"]*"`},
	{Name: "Operator", Pattern: `!=|>=|<=|=|>|<`},
	{Name: "Word", Pattern: `[^\s'"!=<>]+`},
	{Name: "Stray", Pattern: `[!'"]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var (
	quotedToken   = conditionLexer.Symbols()["Quoted"]
	operatorToken = conditionLexer.Symbols()["Operator"]
	wordToken     = conditionLexer.Symbols()["Word"]
	strayToken    = conditionLexer.Symbols()["Stray"]
)

// tokenizeConditions splits a WHERE body into tokens, dropping whitespace
// and the trailing EOF token.
func tokenizeConditions(input string) ([]lexer.Token, error) {
	lex, err := conditionLexer.LexString("", input)
	if err != nil {
		return nil, err
	}
	all, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil, err
	}

	tokens := make([]lexer.Token, 0, len(all))
	for _, tok := range all {
		if tok.EOF() {
			break
		}
		switch tok.Type {
		case quotedToken, operatorToken, wordToken, strayToken:
			tokens = append(tokens, tok)
		}
	}
	return tokens, nil
}

// logicalOperator returns the connective a token stands for, if any.
func logicalOperator(tok lexer.Token) (LogicalOperator, bool) {
	if tok.Type != wordToken {
		return "", false
	}
	switch LogicalOperator(strings.ToLower(tok.Value)) {
	case And:
		return And, true
	case Or:
		return Or, true
	}
	return "", false
}

// tokenEnd returns the byte offset just past tok.
func tokenEnd(tok lexer.Token) int {
	return tok.Pos.Offset + len(tok.Value)
}
