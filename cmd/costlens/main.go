package main

import (
	"os"

	"github.com/costlens-dev/costlens/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
