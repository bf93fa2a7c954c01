package admintools

import (
	"context"
	"errors"
	"fmt"
	"os"

	"git.handmade.network/hmn/ltree/src/cli"
	"git.handmade.network/hmn/ltree/src/config"
	"git.handmade.network/hmn/ltree/src/db"
	"git.handmade.network/hmn/ltree/src/logging"
	"git.handmade.network/hmn/ltree/src/ltree"
	"git.handmade.network/hmn/ltree/src/treenode"
	"git.handmade.network/hmn/ltree/src/utils"
	"github.com/spf13/cobra"
)

func init() {
	oidsCommand := &cobra.Command{
		Use:   "oids",
		Short: "Show the ltree type oids this database uses",
		Run: func(cmd *cobra.Command, args []string) {
			defer logging.LogPanics(nil)

			ctx := context.Background()
			conn := db.NewConn()
			defer conn.Close(ctx)

			md, source := ltree.ResolveMetadata(ctx, conn, config.Config.Ltree)
			fmt.Printf("ltree:   %d\n", md.OID)
			fmt.Printf("ltree[]: %d\n", md.ArrayOID)
			fmt.Printf("(from %s)\n", source)
		},
	}
	cli.LtreeCommand.AddCommand(oidsCommand)

	subtreeCommand := &cobra.Command{
		Use:   "subtree <path>",
		Short: "List a node and everything below it",
		Run: func(cmd *cobra.Command, args []string) {
			runNodeQuery(cmd, args, treenode.Descendants)
		},
	}
	cli.LtreeCommand.AddCommand(subtreeCommand)

	ancestorsCommand := &cobra.Command{
		Use:   "ancestors <path>",
		Short: "List a node and everything above it",
		Run: func(cmd *cobra.Command, args []string) {
			runNodeQuery(cmd, args, treenode.Ancestors)
		},
	}
	cli.LtreeCommand.AddCommand(ancestorsCommand)

	childrenCommand := &cobra.Command{
		Use:   "children [path]",
		Short: "List the nodes directly below a path, or the top-level nodes",
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				args = []string{""}
			}
			runNodeQuery(cmd, args, treenode.Children)
		},
	}
	cli.LtreeCommand.AddCommand(childrenCommand)

	moveCommand := &cobra.Command{
		Use:   "move <path> <new parent>",
		Short: "Move a node and its subtree under a new parent",
		Run: func(cmd *cobra.Command, args []string) {
			defer logging.LogPanics(nil)

			if len(args) < 2 {
				fmt.Printf("You must provide a path and a new parent.\n\n")
				cmd.Usage()
				os.Exit(1)
			}

			ctx := context.Background()
			conn := cli.NewPool()
			defer conn.Close()

			moved, err := treenode.Move(ctx, conn, args[0], args[1])
			if errors.Is(err, treenode.ErrDuplicatePath) {
				fmt.Printf("Could not move '%s': a node already exists at the destination.\n", args[0])
				os.Exit(1)
			}
			utils.Must(err)

			fmt.Printf("Moved %d nodes\n", moved)
		},
	}
	cli.LtreeCommand.AddCommand(moveCommand)
}

func runNodeQuery(
	cmd *cobra.Command,
	args []string,
	query func(ctx context.Context, conn db.ConnOrTx, path string) ([]*treenode.TreeNode, error),
) {
	defer logging.LogPanics(nil)

	if len(args) < 1 {
		fmt.Printf("You must provide a path.\n\n")
		cmd.Usage()
		os.Exit(1)
	}

	ctx := context.Background()
	conn := cli.NewPool()
	defer conn.Close()

	nodes := utils.Must1(query(ctx, conn, args[0]))
	if len(nodes) == 0 {
		fmt.Println("No nodes found.")
		return
	}
	for _, node := range nodes {
		depth := utils.Must1(treenode.Depth(ctx, conn, node.ID))
		fmt.Printf("%s  (%s, depth %d)\n", node.Path, node.ID, depth)
	}
}
