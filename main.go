package main

import (
	_ "git.handmade.network/hmn/ltree/src/admintools"
	"git.handmade.network/hmn/ltree/src/cli"
	_ "git.handmade.network/hmn/ltree/src/migration"
)

func main() {
	cli.LtreeCommand.Execute()
}
