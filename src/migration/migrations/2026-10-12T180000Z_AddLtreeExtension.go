package migrations

import (
	"context"
	"time"

	"git.handmade.network/hmn/ltree/src/migration/types"
	"github.com/jackc/pgx/v5"
)

func init() {
	registerMigration(AddLtreeExtension{})
}

type AddLtreeExtension struct{}

func (m AddLtreeExtension) Version() types.MigrationVersion {
	return types.MigrationVersion(time.Date(2026, 10, 12, 18, 0, 0, 0, time.UTC))
}

func (m AddLtreeExtension) Name() string {
	return "AddLtreeExtension"
}

func (m AddLtreeExtension) Description() string {
	return "Install the ltree extension"
}

func (m AddLtreeExtension) Up(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS ltree;`)
	return err
}

func (m AddLtreeExtension) Down(ctx context.Context, tx pgx.Tx) error {
	_, err := tx.Exec(ctx, `DROP EXTENSION IF EXISTS ltree;`)
	return err
}
