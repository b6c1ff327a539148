package main

import (
	"fmt"
	"os"

	"github.com/hookguard/hookguard/internal/adapters/inbound/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "hookguard: %v\n", err)
		os.Exit(cli.ExitCodeOf(err))
	}
}
