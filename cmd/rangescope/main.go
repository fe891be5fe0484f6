package main

import (
	"os"

	"github.com/rustyeddy/rangescope/cmd/rangescope/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
