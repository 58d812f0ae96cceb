package main

import (
	"os"

	"github.com/sectorlab/sectorpulse/cmd/sectorpulse/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
