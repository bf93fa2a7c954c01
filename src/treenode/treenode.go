package treenode

import (
	"context"
	"errors"

	"git.handmade.network/hmn/ltree/src/db"
	"git.handmade.network/hmn/ltree/src/expr"
	"git.handmade.network/hmn/ltree/src/ltree"
	"git.handmade.network/hmn/ltree/src/oops"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type TreeNode struct {
	ID   uuid.UUID `db:"id"`
	Path string    `db:"path"`
}

var pathColumn = ltree.TableColumn("tree_node", "path")

var ErrDuplicatePath = errors.New("a node with that path already exists")

func Create(ctx context.Context, conn db.ConnOrTx, path string) (*TreeNode, error) {
	node := TreeNode{
		ID:   uuid.New(),
		Path: path,
	}
	_, err := conn.Exec(ctx,
		`
		---- Create tree node
		INSERT INTO tree_node (id, path)
		VALUES ($1, $2)
		`,
		node.ID,
		node.Path,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicatePath
		}
		return nil, oops.New(err, "failed to create tree node '%s'", path)
	}
	return &node, nil
}

// Fetches nodes matching pred, ordered by path.
func fetch(ctx context.Context, conn db.ConnOrTx, name string, pred expr.Expr[expr.Bool]) ([]*TreeNode, error) {
	var qb db.QueryBuilder
	qb.Add("---- " + name)
	qb.Add(`SELECT $columns{tree_node} FROM tree_node WHERE`)
	qb.AddExpr(pred)
	qb.Add(`ORDER BY tree_node.path`)

	nodes, err := db.Query[TreeNode](ctx, conn, qb.String(), qb.Args()...)
	if err != nil {
		return nil, oops.New(err, "failed to fetch tree nodes (%s)", name)
	}
	return nodes, nil
}

// Returns root and everything below it.
func Descendants(ctx context.Context, conn db.ConnOrTx, root string) ([]*TreeNode, error) {
	return fetch(ctx, conn, "Get tree node descendants", pathColumn.ContainedBy(ltree.Value(root)))
}

// Returns leaf and everything above it, starting at the root.
func Ancestors(ctx context.Context, conn db.ConnOrTx, leaf string) ([]*TreeNode, error) {
	return fetch(ctx, conn, "Get tree node ancestors", pathColumn.Contains(ltree.Value(leaf)))
}

/*
Returns the nodes directly below parent. The empty path is the root of every
tree, so Children(ctx, conn, "") returns the top-level nodes.
*/
func Children(ctx context.Context, conn db.ConnOrTx, parent string) ([]*TreeNode, error) {
	depth := expr.Eq[expr.Int4](
		ltree.Nlevel(pathColumn),
		expr.Add(ltree.Nlevel(ltree.Value(parent)), expr.Bind[expr.Int4](1)),
	)
	return fetch(ctx, conn, "Get tree node children", expr.And(
		pathColumn.ContainedBy(ltree.Value(parent)),
		depth,
	))
}

func Get(ctx context.Context, conn db.ConnOrTx, path string) (*TreeNode, error) {
	nodes, err := fetch(ctx, conn, "Get tree node", pathColumn.Eq(ltree.Value(path)))
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, db.NotFound
	}
	return nodes[0], nil
}

// The number of labels in the node's path.
func Depth(ctx context.Context, conn db.ConnOrTx, id uuid.UUID) (int, error) {
	var qb db.QueryBuilder
	qb.Add("---- Get tree node depth")
	qb.Add("SELECT")
	qb.AddExpr(ltree.Nlevel(pathColumn))
	qb.Add("FROM tree_node WHERE id = $?", id)

	depth, err := db.QueryOneScalar[int](ctx, conn, qb.String(), qb.Args()...)
	if errors.Is(err, db.NotFound) {
		return 0, err
	} else if err != nil {
		return 0, oops.New(err, "failed to get depth of tree node %s", id)
	}
	return depth, nil
}

/*
Moves a node and everything below it under a new parent, keeping the subtree's
shape. Moving "a.b" under "x" turns "a.b.c" into "x.b.c".
*/
func Move(ctx context.Context, conn db.ConnOrTx, path string, newParent string) (int64, error) {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return 0, oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	// Everything from the moved node's own label down.
	tail := ltree.SubpathFrom(pathColumn, expr.Add(ltree.Nlevel(ltree.Value(path)), expr.Bind[expr.Int4](-1)))

	var qb db.QueryBuilder
	qb.Add("---- Move tree nodes")
	qb.Add("UPDATE tree_node SET path =")
	qb.AddExpr(ltree.Concat(ltree.Value(newParent), tail))
	qb.Add("WHERE")
	qb.AddExpr(pathColumn.ContainedBy(ltree.Value(path)))

	tag, err := tx.Exec(ctx, qb.String(), qb.Args()...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, ErrDuplicatePath
		}
		return 0, oops.New(err, "failed to move '%s' under '%s'", path, newParent)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, oops.New(err, "failed to commit move")
	}
	return tag.RowsAffected(), nil
}
