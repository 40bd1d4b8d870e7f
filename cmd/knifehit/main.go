// Command knifehit plays and simulates the knife-hit arcade game.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/knifehit/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
