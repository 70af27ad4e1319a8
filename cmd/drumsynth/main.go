package main

import (
	"os"

	"github.com/r-cha/drumsynth/cmd/drumsynth/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
