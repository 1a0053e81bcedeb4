// Command esgsync maps, validates and syncs ESG wizard state to the
// disclosure API.
package main

import (
	"fmt"
	"os"

	"github.com/rshade/esgsync/internal/cli"
	"github.com/rshade/esgsync/pkg/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCode(err))
	}
}

func run() error {
	return cli.NewRootCmd(version.String()).Execute()
}
