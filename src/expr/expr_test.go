package expr

import (
	"testing"

	"git.handmade.network/hmn/ltree/src/db"
	"github.com/stretchr/testify/assert"
)

func TestColumn(t *testing.T) {
	sql, args := Render(Col[Text]("name"))
	assert.Equal(t, `"name"`, sql)
	assert.Empty(t, args)

	sql, _ = Render(TableCol[Int4]("tree_node", "depth"))
	assert.Equal(t, `"tree_node"."depth"`, sql)

	sql, _ = Render(Col[Text](`we"ird`))
	assert.Equal(t, `"we""ird"`, sql)
}

func TestBind(t *testing.T) {
	sql, args := Render(Bind[Int4](3))
	assert.Equal(t, "$1", sql)
	assert.Equal(t, []any{3}, args)
}

func TestCast(t *testing.T) {
	sql, args := Render(CastTo[Text](Bind[Int4](3)))
	assert.Equal(t, "($1)::text", sql)
	assert.Equal(t, []any{3}, args)
}

func TestCall(t *testing.T) {
	t.Run("no args", func(t *testing.T) {
		sql, _ := Render(Func[Int4]("random"))
		assert.Equal(t, "random()", sql)
	})
	t.Run("args in order", func(t *testing.T) {
		sql, args := Render(Func[Text]("substr", Col[Text]("name"), Bind[Int4](2), Bind[Int4](5)))
		assert.Equal(t, `substr("name", $1, $2)`, sql)
		assert.Equal(t, []any{2, 5}, args)
	})
	t.Run("nested", func(t *testing.T) {
		sql, args := Render(Func[Text]("upper", Func[Text]("trim", Bind[Text](" hi "))))
		assert.Equal(t, "upper(trim($1))", sql)
		assert.Equal(t, []any{" hi "}, args)
	})
}

func TestComparisons(t *testing.T) {
	a := Col[Int4]("a")
	b := Col[Int4]("b")

	cases := []struct {
		name     string
		expr     Expr[Bool]
		expected string
	}{
		{"eq", Eq[Int4](a, b), `"a" = "b"`},
		{"not eq", NotEq[Int4](a, b), `"a" <> "b"`},
		{"gt", Gt[Int4](a, b), `"a" > "b"`},
		{"gt eq", GtEq[Int4](a, b), `"a" >= "b"`},
		{"lt", Lt[Int4](a, b), `"a" < "b"`},
		{"lt eq", LtEq[Int4](a, b), `"a" <= "b"`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			sql, _ := Render(c.expr)
			assert.Equal(t, c.expected, sql)
		})
	}
}

func TestBooleans(t *testing.T) {
	x := Eq[Int4](Col[Int4]("x"), Bind[Int4](1))
	y := Eq[Text](Col[Text]("y"), Bind[Text]("two"))

	t.Run("and", func(t *testing.T) {
		sql, args := Render(And(x, y))
		assert.Equal(t, `("x" = $1) AND ("y" = $2)`, sql)
		assert.Equal(t, []any{1, "two"}, args)
	})
	t.Run("or of three", func(t *testing.T) {
		sql, _ := Render(Or(x, y, x))
		assert.Equal(t, `(("x" = $1) OR ("y" = $2)) OR ("x" = $3)`, sql)
	})
	t.Run("single", func(t *testing.T) {
		sql, _ := Render(And(x))
		assert.Equal(t, `"x" = $1`, sql)
	})
	t.Run("empty", func(t *testing.T) {
		sql, _ := Render(And())
		assert.Equal(t, "TRUE", sql)
		sql, _ = Render(Or())
		assert.Equal(t, "FALSE", sql)
	})
	t.Run("not", func(t *testing.T) {
		sql, _ := Render(Not(x))
		assert.Equal(t, `NOT ("x" = $1)`, sql)
	})
}

func TestInQueryBuilder(t *testing.T) {
	var qb db.QueryBuilder
	qb.Add("SELECT id FROM person WHERE active = $?", true)
	qb.Add("AND")
	qb.AddExpr(Eq[Text](Col[Text]("name"), Bind[Text]("Ben")))

	assert.Equal(t, "SELECT id FROM person WHERE active = $1\nAND\n\"name\" = $2\n", qb.String())
	assert.Equal(t, []interface{}{true, "Ben"}, qb.Args())
}

func TestAdd(t *testing.T) {
	sql, args := Render(Add(Func[Int4]("length", Col[Text]("name")), Bind[Int4](1)))
	assert.Equal(t, `length("name") + $1`, sql)
	assert.Equal(t, []any{1}, args)

	sql, _ = Render(Eq[Int4](Col[Int4]("depth"), Add(Col[Int4]("a"), Col[Int4]("b"))))
	assert.Equal(t, `"depth" = ("a" + "b")`, sql)
}
