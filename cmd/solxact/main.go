// Command solxact builds, inspects, mutates, signs, and submits Solana
// transactions as a set of Unix-filter subcommands.
package main

import (
	"os"

	"github.com/bji/solxact/internal/cli"
)

func main() {
	os.Exit(int(cli.Run()))
}
