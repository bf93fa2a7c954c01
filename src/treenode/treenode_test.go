package treenode

import (
	"context"
	"testing"

	"git.handmade.network/hmn/ltree/src/config"
	"git.handmade.network/hmn/ltree/src/db"
	"git.handmade.network/hmn/ltree/src/ltree"
	"git.handmade.network/hmn/ltree/src/testutil"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Gives each test an empty tree_node table of its own, inside a transaction.
func testTx(t *testing.T) pgx.Tx {
	ctx := context.Background()

	setup := testutil.Conn(t)
	_, err := setup.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS ltree")
	require.NoError(t, err)

	conn := testutil.Conn(t, ltree.AfterConnect(config.LtreeConfig{}))
	tx := testutil.Tx(t, conn)
	_, err = tx.Exec(ctx, `
		CREATE TEMPORARY TABLE tree_node (
			id UUID PRIMARY KEY,
			path LTREE NOT NULL UNIQUE
		) ON COMMIT DROP
	`)
	require.NoError(t, err)
	return tx
}

func create(t *testing.T, tx pgx.Tx, paths ...string) {
	for _, p := range paths {
		_, err := Create(context.Background(), tx, p)
		require.NoError(t, err)
	}
}

func pathsOf(nodes []*TreeNode) []string {
	var paths []string
	for _, n := range nodes {
		paths = append(paths, n.Path)
	}
	return paths
}

func TestQueries(t *testing.T) {
	tx := testTx(t)
	ctx := context.Background()
	create(t, tx, "a", "a.b", "a.b.c", "a.d", "x", "x.y")

	t.Run("descendants", func(t *testing.T) {
		nodes, err := Descendants(ctx, tx, "a.b")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.b", "a.b.c"}, pathsOf(nodes))
	})
	t.Run("ancestors", func(t *testing.T) {
		nodes, err := Ancestors(ctx, tx, "a.b.c")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "a.b", "a.b.c"}, pathsOf(nodes))
	})
	t.Run("children", func(t *testing.T) {
		nodes, err := Children(ctx, tx, "a")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.b", "a.d"}, pathsOf(nodes))

		nodes, err = Children(ctx, tx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "x"}, pathsOf(nodes))
	})
	t.Run("get and depth", func(t *testing.T) {
		node, err := Get(ctx, tx, "a.b.c")
		require.NoError(t, err)
		assert.Equal(t, "a.b.c", node.Path)

		depth, err := Depth(ctx, tx, node.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, depth)

		_, err = Get(ctx, tx, "nope")
		assert.ErrorIs(t, err, db.NotFound)
	})
}

func TestCreateDuplicate(t *testing.T) {
	tx := testTx(t)
	ctx := context.Background()
	create(t, tx, "a")

	sp, err := tx.Begin(ctx)
	require.NoError(t, err)
	_, err = Create(ctx, sp, "a")
	assert.ErrorIs(t, err, ErrDuplicatePath)
	require.NoError(t, sp.Rollback(ctx))
}

func TestMove(t *testing.T) {
	tx := testTx(t)
	ctx := context.Background()
	create(t, tx, "a", "a.b", "a.b.c", "x")

	moved, err := Move(ctx, tx, "a.b", "x")
	require.NoError(t, err)
	assert.Equal(t, int64(2), moved)

	nodes, err := Descendants(ctx, tx, "x")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "x.b", "x.b.c"}, pathsOf(nodes))

	nodes, err = Descendants(ctx, tx, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, pathsOf(nodes))
}
