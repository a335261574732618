// Command bindlint reports controller bindings whose reference strings drift
// from the methods they bind.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/gork-labs/endpoints/internal/bindlint"
)

func main() {
	singlechecker.Main(bindlint.Analyzer)
}
