package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/khalid-nowaf/prefixtrie/pkg/cli"
)

func main() {
	var root cli.CLI
	ctx := kong.Parse(&root, cli.Options()...)

	logger := cli.NewLogger(os.Stderr, root.Verbose)
	if err := ctx.Run(&cli.Context{Logger: logger, Stdout: os.Stdout}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
