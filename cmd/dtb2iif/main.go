package main

import (
	"os"

	"github.com/ledgerline/dtb2iif/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
