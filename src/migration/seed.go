package migration

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"git.handmade.network/hmn/ltree/src/cli"
	"git.handmade.network/hmn/ltree/src/config"
	"git.handmade.network/hmn/ltree/src/db"
	"git.handmade.network/hmn/ltree/src/ltree"
	"git.handmade.network/hmn/ltree/src/treenode"
	lorem "github.com/HandmadeNetwork/golorem"
	"github.com/spf13/cobra"
)

var sampleSize int

func init() {
	seedCommand := &cobra.Command{
		Use:   "seed [path]...",
		Short: "Migrate to the latest version and insert tree nodes",
		Long:  "Migrates to the latest version, then inserts the given paths, or a random sample tree when --sample is set.",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 && sampleSize <= 0 {
				fmt.Printf("You must provide some paths or a sample size.\n\n")
				cmd.Usage()
				os.Exit(1)
			}

			ctx := context.Background()
			conn := db.NewConn()
			err := Migrate(ctx, conn, LatestVersion())
			conn.Close(ctx)
			if err != nil {
				fmt.Printf("ERROR: %v\n", err)
				os.Exit(1)
			}

			// A fresh connection, now that the extension is sure to exist.
			conn = db.NewConn(ltree.AfterConnect(config.Config.Ltree))
			defer conn.Close(ctx)

			var paths []string
			if sampleSize > 0 {
				paths, err = SampleSeed(ctx, conn, sampleSize)
			} else {
				paths, err = Seed(ctx, conn, args...)
			}
			if err != nil {
				fmt.Printf("ERROR: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Created %d nodes:\n", len(paths))
			for _, p := range paths {
				fmt.Println("  " + p)
			}
		},
	}
	seedCommand.Flags().IntVar(&sampleSize, "sample", 0, "Create this many randomly named nodes")

	cli.LtreeCommand.AddCommand(seedCommand)
}

/*
Inserts the given paths in a single transaction. Paths that already exist are
skipped, and only newly created paths are returned.
*/
func Seed(ctx context.Context, conn db.ConnOrTx, paths ...string) ([]string, error) {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var created []string
	for _, path := range paths {
		sp, err := tx.Begin(ctx)
		if err != nil {
			return nil, err
		}
		_, err = treenode.Create(ctx, sp, path)
		if errors.Is(err, treenode.ErrDuplicatePath) {
			sp.Rollback(ctx)
			continue
		} else if err != nil {
			sp.Rollback(ctx)
			return nil, err
		}
		if err := sp.Commit(ctx); err != nil {
			return nil, err
		}
		created = append(created, path)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// Builds a random tree of n nodes with lorem ipsum labels.
func SampleSeed(ctx context.Context, conn db.ConnOrTx, n int) ([]string, error) {
	return Seed(ctx, conn, samplePaths(rand.New(rand.NewSource(rand.Int63())), n)...)
}

// Every path's parent comes before it, so the result is always a complete tree.
func samplePaths(r *rand.Rand, n int) []string {
	var paths []string
	seen := make(map[string]bool)
	for len(paths) < n {
		label := strings.ToLower(lorem.Word(3, 10))
		path := label
		if len(paths) > 0 && r.Intn(4) != 0 {
			path = paths[r.Intn(len(paths))] + "." + label
		}
		if seen[path] {
			continue
		}
		seen[path] = true
		paths = append(paths, path)
	}
	return paths
}
