package db

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryBuilder(t *testing.T) {
	t.Run("placeholders", func(t *testing.T) {
		var qb QueryBuilder
		qb.Add("SELECT path FROM tree_node")
		qb.Add("WHERE path <@ $? AND nlevel(path) <= $?", "a.b", 3)
		qb.Add("LIMIT $?", 10)

		assert.Equal(t, "SELECT path FROM tree_node\nWHERE path <@ $1 AND nlevel(path) <= $2\nLIMIT $3\n", qb.String())
		assert.Equal(t, []interface{}{"a.b", 3, 10}, qb.Args())
	})
	t.Run("write", func(t *testing.T) {
		var qb QueryBuilder
		qb.Write("subpath(")
		qb.Write("$?", "a.b.c")
		qb.Write(", $?)", 1)

		assert.Equal(t, "subpath($1, $2)", qb.String())
		assert.Equal(t, []interface{}{"a.b.c", 1}, qb.Args())
	})
	t.Run("expr", func(t *testing.T) {
		var qb QueryBuilder
		qb.Add("SELECT id FROM tree_node WHERE")
		qb.AddExpr(rawExpr{sql: "path = $?", arg: "x.y"})

		assert.Equal(t, "SELECT id FROM tree_node WHERE\npath = $1\n", qb.String())
		assert.Equal(t, []interface{}{"x.y"}, qb.Args())
	})
	t.Run("wrong number of args", func(t *testing.T) {
		var qb QueryBuilder
		assert.Panics(t, func() {
			qb.Add("WHERE path = $?")
		})
		assert.Panics(t, func() {
			qb.Write("WHERE path = $?", "a", "b")
		})
	})
}

type rawExpr struct {
	sql string
	arg any
}

func (e rawExpr) WriteSQL(qb *QueryBuilder) {
	qb.Write(e.sql, e.arg)
}

func TestCompileQuery(t *testing.T) {
	type Node struct {
		ID      int    `db:"id"`
		Path    string `db:"path"`
		Ignored string
		Skipped string `db:"-"`
	}
	nodeType := reflect.TypeOf(Node{})

	t.Run("no placeholder", func(t *testing.T) {
		assert.Equal(t, "SELECT id FROM tree_node", compileQuery("SELECT id FROM tree_node", nodeType))
	})
	t.Run("columns", func(t *testing.T) {
		assert.Equal(t, "SELECT id, path FROM tree_node", compileQuery("SELECT $columns FROM tree_node", nodeType))
	})
	t.Run("prefixed columns", func(t *testing.T) {
		assert.Equal(t,
			"SELECT n.id, n.path FROM tree_node AS n",
			compileQuery("SELECT $columns{n} FROM tree_node AS n", nodeType),
		)
	})
	t.Run("not a struct", func(t *testing.T) {
		assert.Panics(t, func() {
			compileQuery("SELECT $columns FROM tree_node", reflect.TypeOf(""))
		})
	})
}

func TestGetQueryName(t *testing.T) {
	name, ok := GetQueryName("\n---- Get descendants\nSELECT path FROM tree_node\n")
	assert.True(t, ok)
	assert.Equal(t, "Get descendants", name)

	_, ok = GetQueryName("SELECT 1")
	assert.False(t, ok)
}
