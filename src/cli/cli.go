package cli

import (
	"git.handmade.network/hmn/ltree/src/config"
	"git.handmade.network/hmn/ltree/src/db"
	"git.handmade.network/hmn/ltree/src/ltree"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var LtreeCommand = &cobra.Command{
	Use:   "ltree",
	Short: "Tools for working with ltree paths in Postgres",
}

// Opens a pool whose connections all know about ltree.
func NewPool() *pgxpool.Pool {
	return db.NewConnPool(ltree.AfterConnect(config.Config.Ltree))
}
