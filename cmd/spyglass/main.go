package main

import (
	"fmt"
	"os"

	"github.com/spyglass-osint/spyglass/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
