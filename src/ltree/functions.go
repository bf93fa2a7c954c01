package ltree

import "git.handmade.network/hmn/ltree/src/expr"

// subltree(ltree, start, end): the labels from position start up to but not including end.
func Subltree(l expr.Expr[Ltree], start, end expr.Expr[expr.Int4]) Path {
	return P(expr.Func[Ltree]("subltree", l, start, end))
}

// subpath(ltree, offset, len): len labels starting at offset. Negative values count from the end.
func Subpath(l expr.Expr[Ltree], offset, length expr.Expr[expr.Int4]) Path {
	return P(expr.Func[Ltree]("subpath", l, offset, length))
}

// subpath(ltree, offset): every label from offset to the end.
func SubpathFrom(l expr.Expr[Ltree], offset expr.Expr[expr.Int4]) Path {
	return P(expr.Func[Ltree]("subpath", l, offset))
}

// nlevel(ltree): the number of labels in the path.
func Nlevel(l expr.Expr[Ltree]) expr.Call[expr.Int4] {
	return expr.Func[expr.Int4]("nlevel", l)
}

// index(a, b): the position of the first occurrence of b in a, or -1.
func Index(a, b expr.Expr[Ltree]) expr.Call[expr.Int4] {
	return expr.Func[expr.Int4]("index", a, b)
}

// index(a, b, offset): like Index, but the search starts at offset.
func IndexFrom(a, b expr.Expr[Ltree], offset expr.Expr[expr.Int4]) expr.Call[expr.Int4] {
	return expr.Func[expr.Int4]("index", a, b, offset)
}

func Text2Ltree(text expr.Expr[expr.Text]) Path {
	return P(expr.Func[Ltree]("text2ltree", text))
}

func Ltree2Text(l expr.Expr[Ltree]) expr.Call[expr.Text] {
	return expr.Func[expr.Text]("ltree2text", l)
}
