// Package query parses restricted SQL-like queries addressed at CSV files.
//
// The supported grammar is:
//
//	select <field[,field...]> from <path>
//	    [where <cond> [(and|or) <cond>]...]
//	    [group by <field[,field...]>]
//	    [order by <field[,field...]>]
//
// where a field is either a column name or an aggregate call such as
// max(win_by_runs), and a condition is "<field> <op> <value>" with op one of
// =, !=, >, >=, <, <=.
//
// # Basic Usage
//
//	q, err := query.Parse("select city,winner from data/ipl.csv where season >= 2008 or toss_decision != bat")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	q.FileName()                 // "data/ipl.csv"
//	q.Fields()                   // ["city", "winner"]
//	q.Restrictions().Items()     // [{season >= 2008} {toss_decision != bat}]
//	q.LogicalOperators().Items() // ["or"]
//
// # Absent and Empty Clauses
//
// Optional clauses are returned as a Clause. A clause that does not appear
// in the query is not Present; a clause that appears always is, even when it
// carries no items. The aggregate clause is Present whenever any of count,
// sum, min, max or avg occurs anywhere in the query text, so a field named
// "minutes" yields a Present clause with no items.
//
// # Keyword Matching
//
// Clause keywords are matched case-insensitively and only as whole,
// whitespace-delimited tokens. Field names like from_date, order_id or
// wherever never split a clause, and an and/or inside a quoted value never
// splits a condition.
//
// # Error Handling
//
// Every parse failure wraps ErrMalformedQuery. No partial Query is returned
// alongside an error.
package query
