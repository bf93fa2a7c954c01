package expr

import "git.handmade.network/hmn/ltree/src/db"

/*
A call to a function defined in the database. Arguments are rendered in
order, separated by commas. Typed wrappers should construct these rather than
callers, so that argument types are checked by the compiler:

	func Lower(s Expr[Text]) Call[Text] {
		return Func[Text]("lower", s)
	}
*/
type Call[T SQLType] struct {
	Name string
	Args []db.SQLWriter
}

var _ Expr[Text] = Call[Text]{}

func Func[T SQLType](name string, args ...db.SQLWriter) Call[T] {
	return Call[T]{Name: name, Args: args}
}

func (c Call[T]) SQLType() T {
	var t T
	return t
}

func (c Call[T]) WriteSQL(qb *db.QueryBuilder) {
	qb.Write(c.Name)
	qb.Write("(")
	for i, arg := range c.Args {
		if i > 0 {
			qb.Write(", ")
		}
		arg.WriteSQL(qb)
	}
	qb.Write(")")
}
