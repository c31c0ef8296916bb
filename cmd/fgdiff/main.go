package main

import (
	"fmt"
	"os"

	"github.com/hammerkit/fgdiff/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fgdiff: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
