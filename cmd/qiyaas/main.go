// Command qiyaas generates and serves the daily word puzzle.
package main

import (
	"fmt"
	"os"

	// Embedded zone database so America/New_York resolves on minimal images.
	_ "time/tzdata"

	"github.com/roach88/qiyaas/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		if !cli.Reported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
