package main

import (
	"os"

	"github.com/tableaux-project/gridquery/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
