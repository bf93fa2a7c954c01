/*
This package contains lowish-level APIs for making database queries to our Postgres database. It streamlines the process of mapping query results to Go types, while allowing you to write arbitrary SQL queries.

The primary functions are Query and QueryScalar.

Query syntax

Arguments can be provided using placeholders like $1, $2, etc. All arguments will be safely escaped and mapped from their Go type to the correct Postgres type. (This is a direct proxy to pgx.)

	paths, err := db.QueryScalar[string](ctx, conn,
		`
		SELECT path
		FROM tree_node
		WHERE path <@ ANY($1)
		`,
		[]string{"top.science", "top.hobbies"},
	)

To query multiple columns at once, use a struct type with `db:"column_name"` tags and the special $columns placeholder:

	type TreeNode struct {
		ID   uuid.UUID `db:"id"`
		Path string    `db:"path"`
	}
	nodes, err := db.Query[TreeNode](ctx, conn, `SELECT $columns FROM tree_node`)
	// Resulting query:
	// SELECT id, path FROM tree_node

A table prefix can be given as $columns{prefix}, which is handy in joins.

Building queries

QueryBuilder assembles a query out of chunks, renumbering `$?` placeholders as it goes. Anything implementing SQLWriter, such as the typed expressions in the expr and ltree packages, can be written straight into a builder:

	var qb db.QueryBuilder
	qb.Add(`SELECT path FROM tree_node WHERE`)
	qb.AddExpr(ltree.Column("path").ContainedBy(ltree.Value("top.science")))
	paths, err := db.QueryScalar[string](ctx, conn, qb.String(), qb.Args()...)

Queries can be named for logging by starting them with a comment like `---- Get descendants`.
*/
package db
