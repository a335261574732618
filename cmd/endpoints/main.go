// Command endpoints declares, lists and scaffolds REST endpoints from a
// manifest file.
package main

import (
	"os"

	"github.com/gork-labs/endpoints/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
