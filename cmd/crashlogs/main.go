package main

import (
	"os"

	"github.com/thaodangspace/crashlogs/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
