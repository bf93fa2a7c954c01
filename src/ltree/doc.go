/*
Package ltree teaches the db and expr packages about Postgres's ltree type,
which stores a position in a tree as a dot-separated label path like
"top.science.astronomy".

It has three parts:

  - Ltree, a marker type for ltree-typed expressions, plus Register, which
    looks up the type's oids in the database and registers it with pgx so that
    Go strings and []string round-trip as ltree and ltree[].
  - Constructors for ltree's functions: Subltree, Subpath, SubpathFrom,
    Nlevel, Index, IndexFrom, Text2Ltree and Ltree2Text.
  - Operators on Path: Contains (@>), ContainedBy (<@), and the comparisons
    Eq, Ne, Gt, Ge, Lt and Le.

All comparison semantics live in the database. This package only builds SQL.

	var qb db.QueryBuilder
	qb.Add(`SELECT path FROM tree_node WHERE`)
	qb.AddExpr(ltree.Column("path").Contains(ltree.Text2Ltree(expr.Bind[expr.Text]("a.b"))))
	// SELECT path FROM tree_node WHERE
	// "path" @> text2ltree($1)
*/
package ltree
