// Command dictator is a multi-language structural linter host: a CLI for
// one-shot linting and auto-fixing, a filesystem watch mode, and an MCP
// server for editor/agent integration.
package main

import (
	"fmt"
	"os"

	"github.com/seuros/dictator/cmd/dictator/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
