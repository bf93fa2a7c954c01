package ltree

import "git.handmade.network/hmn/ltree/src/expr"

const (
	OpContains    expr.Operator = "@>"
	OpContainedBy expr.Operator = "<@"
	OpConcat      expr.Operator = "||"
)

/*
Path gives any ltree-typed expression the ltree operators. Wrap an expression
with P to get them; the constructors in this package already return a Path.

Eq and Ne here compare ltrees only. For other types, use expr.Eq and friends.
*/
type Path struct {
	expr.Expr[Ltree]
}

var _ expr.Expr[Ltree] = Path{}

func P(e expr.Expr[Ltree]) Path {
	if p, ok := e.(Path); ok {
		return p
	}
	return Path{e}
}

// Unwrapped operands let nested operators get their parentheses.
func unwrap(e expr.Expr[Ltree]) expr.Expr[Ltree] {
	if p, ok := e.(Path); ok {
		return p.Expr
	}
	return e
}

func Column(name string) Path {
	return P(expr.Col[Ltree](name))
}

func TableColumn(table, name string) Path {
	return P(expr.TableCol[Ltree](table, name))
}

// A Go string sent as an ltree argument, like "top.science".
func Value(path string) Path {
	return P(expr.Bind[Ltree](path))
}

// left || right: the two paths joined into one.
func Concat(left, right expr.Expr[Ltree]) Path {
	return P(expr.NewInfix[Ltree](unwrap(left), OpConcat, unwrap(right)))
}

// left @> right: left is an ancestor of right, or equal to it.
func Contains(left, right expr.Expr[Ltree]) expr.Infix[expr.Bool] {
	return expr.NewInfix[expr.Bool](unwrap(left), OpContains, unwrap(right))
}

// left <@ right: left is a descendant of right, or equal to it.
func ContainedBy(left, right expr.Expr[Ltree]) expr.Infix[expr.Bool] {
	return expr.NewInfix[expr.Bool](unwrap(left), OpContainedBy, unwrap(right))
}

func Eq(left, right expr.Expr[Ltree]) expr.Infix[expr.Bool] {
	return expr.NewInfix[expr.Bool](unwrap(left), expr.OpEq, unwrap(right))
}

func NotEq(left, right expr.Expr[Ltree]) expr.Infix[expr.Bool] {
	return expr.NewInfix[expr.Bool](unwrap(left), expr.OpNotEq, unwrap(right))
}

func Gt(left, right expr.Expr[Ltree]) expr.Infix[expr.Bool] {
	return expr.NewInfix[expr.Bool](unwrap(left), expr.OpGt, unwrap(right))
}

func GtEq(left, right expr.Expr[Ltree]) expr.Infix[expr.Bool] {
	return expr.NewInfix[expr.Bool](unwrap(left), expr.OpGtEq, unwrap(right))
}

func Lt(left, right expr.Expr[Ltree]) expr.Infix[expr.Bool] {
	return expr.NewInfix[expr.Bool](unwrap(left), expr.OpLt, unwrap(right))
}

func LtEq(left, right expr.Expr[Ltree]) expr.Infix[expr.Bool] {
	return expr.NewInfix[expr.Bool](unwrap(left), expr.OpLtEq, unwrap(right))
}

func (p Path) Contains(other expr.Expr[Ltree]) expr.Infix[expr.Bool] {
	return Contains(p, other)
}

func (p Path) ContainedBy(other expr.Expr[Ltree]) expr.Infix[expr.Bool] {
	return ContainedBy(p, other)
}

func (p Path) Eq(other expr.Expr[Ltree]) expr.Infix[expr.Bool] {
	return Eq(p, other)
}

func (p Path) Ne(other expr.Expr[Ltree]) expr.Infix[expr.Bool] {
	return NotEq(p, other)
}

func (p Path) Gt(other expr.Expr[Ltree]) expr.Infix[expr.Bool] {
	return Gt(p, other)
}

func (p Path) Ge(other expr.Expr[Ltree]) expr.Infix[expr.Bool] {
	return GtEq(p, other)
}

func (p Path) Lt(other expr.Expr[Ltree]) expr.Infix[expr.Bool] {
	return Lt(p, other)
}

func (p Path) Le(other expr.Expr[Ltree]) expr.Infix[expr.Bool] {
	return LtEq(p, other)
}
