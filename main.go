// Command zpace reports what takes up space on disk.
package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/idelchi/zpace/internal/cli"
)

// version is set with -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // Set at build time
var version = ""

func buildVersion() string {
	if version != "" {
		return version
	}

	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "unknown - built from source"
}

func main() {
	if err := cli.New(buildVersion()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "zpace: %v\n", err)
		os.Exit(1)
	}
}
