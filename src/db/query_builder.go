package db

import (
	"fmt"
	"strings"
)

// Anything that knows how to write itself into a query, such as an expression.
type SQLWriter interface {
	WriteSQL(qb *QueryBuilder)
}

type QueryBuilder struct {
	sql  strings.Builder
	args []interface{}
}

/*
Adds the given SQL and arguments to the query, followed by a newline. Any
occurrences of `$?` will be replaced with the correct argument number.

foo $? bar $? baz $?
foo ARG1 bar ARG2 baz $?
foo ARG1 bar ARG2 baz ARG3
*/
func (qb *QueryBuilder) Add(sql string, args ...interface{}) {
	qb.Write(sql, args...)
	qb.sql.WriteString("\n")
}

/*
Identical to Add, but does not add a newline. Use this when building up a
single clause out of several pieces.
*/
func (qb *QueryBuilder) Write(sql string, args ...interface{}) {
	numPlaceholders := strings.Count(sql, "$?")
	if numPlaceholders != len(args) {
		panic(fmt.Errorf("cannot add chunk to query; expected %d arguments but got %d", numPlaceholders, len(args)))
	}

	for _, arg := range args {
		sql = strings.Replace(sql, "$?", fmt.Sprintf("$%d", len(qb.args)+1), 1)
		qb.args = append(qb.args, arg)
	}

	qb.sql.WriteString(sql)
}

// Writes an expression into the query, followed by a newline.
func (qb *QueryBuilder) AddExpr(e SQLWriter) {
	e.WriteSQL(qb)
	qb.sql.WriteString("\n")
}

func (qb *QueryBuilder) String() string {
	return qb.sql.String()
}

func (qb *QueryBuilder) Args() []interface{} {
	return qb.args
}
