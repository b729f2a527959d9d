// Command fsum prints the total size of the given paths, counting every
// physical file once.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/fsum/internal/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // Build-time variable
var version = "unknown - unofficial & generated by unknown"

func main() {
	if err := cli.New(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
