/*
Package expr builds typed SQL expressions on top of db.QueryBuilder.

Every expression carries its SQL type as a Go type parameter, so a function
declared to take an Expr[Int4] will not compile when handed an Expr[Text].
Expressions render themselves with `$?` placeholders, which the QueryBuilder
renumbers, so they can be freely mixed with hand-written SQL:

	var qb db.QueryBuilder
	qb.Add(`SELECT name FROM person WHERE`)
	qb.AddExpr(expr.Eq[expr.Text](expr.Col[expr.Text]("name"), expr.Bind[expr.Text]("Ben")))
*/
package expr

import (
	"git.handmade.network/hmn/ltree/src/db"
	"github.com/jackc/pgx/v5"
)

// A Postgres type usable as an expression's type parameter.
type SQLType interface {
	TypeName() string
}

type Int4 struct{}

func (Int4) TypeName() string { return "int4" }

type Text struct{}

func (Text) TypeName() string { return "text" }

type Bool struct{}

func (Bool) TypeName() string { return "bool" }

// An expression whose result has the SQL type T.
type Expr[T SQLType] interface {
	db.SQLWriter
	SQLType() T
}

// Renders a single expression on its own, with placeholders numbered from $1.
func Render(e db.SQLWriter) (string, []any) {
	var qb db.QueryBuilder
	e.WriteSQL(&qb)
	return qb.String(), qb.Args()
}

type Column[T SQLType] struct {
	Table string
	Name  string
}

var _ Expr[Text] = Column[Text]{}

func Col[T SQLType](name string) Column[T] {
	return Column[T]{Name: name}
}

func TableCol[T SQLType](table, name string) Column[T] {
	return Column[T]{Table: table, Name: name}
}

func (c Column[T]) SQLType() T {
	var t T
	return t
}

func (c Column[T]) WriteSQL(qb *db.QueryBuilder) {
	ident := pgx.Identifier{c.Name}
	if c.Table != "" {
		ident = pgx.Identifier{c.Table, c.Name}
	}
	qb.Write(ident.Sanitize())
}

// A Go value sent to the database as a query argument.
type Bound[T SQLType] struct {
	Value any
}

var _ Expr[Text] = Bound[Text]{}

func Bind[T SQLType](v any) Bound[T] {
	return Bound[T]{Value: v}
}

func (b Bound[T]) SQLType() T {
	var t T
	return t
}

func (b Bound[T]) WriteSQL(qb *db.QueryBuilder) {
	qb.Write("$?", b.Value)
}

// An explicit `::type` cast. The Go type changes along with the SQL type.
type Cast[T SQLType] struct {
	Inner db.SQLWriter
}

var _ Expr[Text] = Cast[Text]{}

func CastTo[T SQLType](e db.SQLWriter) Cast[T] {
	return Cast[T]{Inner: e}
}

func (c Cast[T]) SQLType() T {
	var t T
	return t
}

func (c Cast[T]) WriteSQL(qb *db.QueryBuilder) {
	var t T
	qb.Write("(")
	c.Inner.WriteSQL(qb)
	qb.Write(")::" + t.TypeName())
}
