package main

import (
	"os"

	"github.com/iw2rmb/flowedit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
