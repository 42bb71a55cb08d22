package main

import (
	"os"

	"sealgram/cmd/sealgram/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
