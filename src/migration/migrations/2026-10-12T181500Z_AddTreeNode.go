package migrations

import (
	"context"
	"time"

	"git.handmade.network/hmn/ltree/src/migration/types"
	"github.com/jackc/pgx/v5"
)

func init() {
	registerMigration(AddTreeNode{})
}

type AddTreeNode struct{}

func (m AddTreeNode) Version() types.MigrationVersion {
	return types.MigrationVersion(time.Date(2026, 10, 12, 18, 15, 0, 0, time.UTC))
}

func (m AddTreeNode) Name() string {
	return "AddTreeNode"
}

func (m AddTreeNode) Description() string {
	return "Add a table of ltree paths with a GiST index for ancestor/descendant queries"
}

func (m AddTreeNode) Up(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx,
		`
		CREATE TABLE tree_node (
			id UUID PRIMARY KEY,
			path LTREE NOT NULL UNIQUE
		);
		CREATE INDEX tree_node_path_gist ON tree_node USING GIST (path);
		`,
	)
	return err
}

func (m AddTreeNode) Down(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `DROP TABLE tree_node;`)
	return err
}
