package expr

import "git.handmade.network/hmn/ltree/src/db"

// The SQL text of a binary operator.
type Operator string

const (
	OpEq    Operator = "="
	OpNotEq Operator = "<>"
	OpGt    Operator = ">"
	OpGtEq  Operator = ">="
	OpLt    Operator = "<"
	OpLtEq  Operator = "<="
	OpPlus  Operator = "+"
	OpAnd   Operator = "AND"
	OpOr    Operator = "OR"
)

// `left OP right`, producing a value of type T.
type Infix[T SQLType] struct {
	Left  db.SQLWriter
	Op    Operator
	Right db.SQLWriter
}

var _ Expr[Bool] = Infix[Bool]{}

func NewInfix[T SQLType](left db.SQLWriter, op Operator, right db.SQLWriter) Infix[T] {
	return Infix[T]{Left: left, Op: op, Right: right}
}

func (i Infix[T]) SQLType() T {
	var t T
	return t
}

func (i Infix[T]) WriteSQL(qb *db.QueryBuilder) {
	writeOperand(qb, i.Left)
	qb.Write(" " + string(i.Op) + " ")
	writeOperand(qb, i.Right)
}

func (i Infix[T]) isInfix() {}

// Nested operators get parentheses so precedence never depends on the operators involved.
func writeOperand(qb *db.QueryBuilder, e db.SQLWriter) {
	if _, nested := e.(interface{ isInfix() }); nested {
		qb.Write("(")
		e.WriteSQL(qb)
		qb.Write(")")
	} else {
		e.WriteSQL(qb)
	}
}

/*
Comparisons for any pair of same-typed expressions. Types with their own
comparison semantics (like ltree) may declare their own versions; these remain
available for everything else.
*/

func Eq[T SQLType](left, right Expr[T]) Infix[Bool] {
	return NewInfix[Bool](left, OpEq, right)
}

func NotEq[T SQLType](left, right Expr[T]) Infix[Bool] {
	return NewInfix[Bool](left, OpNotEq, right)
}

func Gt[T SQLType](left, right Expr[T]) Infix[Bool] {
	return NewInfix[Bool](left, OpGt, right)
}

func GtEq[T SQLType](left, right Expr[T]) Infix[Bool] {
	return NewInfix[Bool](left, OpGtEq, right)
}

func Lt[T SQLType](left, right Expr[T]) Infix[Bool] {
	return NewInfix[Bool](left, OpLt, right)
}

func LtEq[T SQLType](left, right Expr[T]) Infix[Bool] {
	return NewInfix[Bool](left, OpLtEq, right)
}

func Add(left, right Expr[Int4]) Infix[Int4] {
	return NewInfix[Int4](left, OpPlus, right)
}

// Joins predicates with AND. With no predicates, this is simply TRUE.
func And(preds ...Expr[Bool]) Expr[Bool] {
	return joinPredicates(OpAnd, "TRUE", preds)
}

// Joins predicates with OR. With no predicates, this is simply FALSE.
func Or(preds ...Expr[Bool]) Expr[Bool] {
	return joinPredicates(OpOr, "FALSE", preds)
}

func joinPredicates(op Operator, empty string, preds []Expr[Bool]) Expr[Bool] {
	if len(preds) == 0 {
		return keyword(empty)
	}
	result := preds[0]
	for _, p := range preds[1:] {
		result = NewInfix[Bool](result, op, p)
	}
	return result
}

type Negation struct {
	Inner Expr[Bool]
}

func Not(e Expr[Bool]) Negation {
	return Negation{Inner: e}
}

func (n Negation) SQLType() Bool { return Bool{} }

func (n Negation) WriteSQL(qb *db.QueryBuilder) {
	qb.Write("NOT (")
	n.Inner.WriteSQL(qb)
	qb.Write(")")
}

type keyword string

func (k keyword) SQLType() Bool { return Bool{} }

func (k keyword) WriteSQL(qb *db.QueryBuilder) {
	qb.Write(string(k))
}
