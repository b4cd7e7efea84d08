package cmd

import (
	"context"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/seuros/dictator/internal/version"
)

// Exit codes (§4.10 / §6).
const (
	ExitSuccess     = 0
	ExitDiagnostics = 1
	ExitConfigError = 2
	ExitNoFiles     = 3
)

// NewApp builds the dictator command tree.
func NewApp() *cli.Command {
	return &cli.Command{
		Name:    "dictator",
		Usage:   "A multi-language structural linter host",
		Version: version.Version(),
		Description: `dictator enforces whitespace and structural hygiene across a
polyglot codebase through a small set of composable decrees.

Examples:
  dictator lint .
  dictator dictate path/to/file.go
  dictator watch .
  dictator census --details
  dictator occupy`,
		Commands: []*cli.Command{
			lintCommand(),
			dictateCommand(),
			watchCommand(),
			censusCommand(),
			occupyCommand(),
			mcpCommand(),
			versionCommand(),
		},
	}
}

// Execute runs the CLI, auto-detecting MCP mode per §4.9: no arguments and
// stdin is not a terminal.
func Execute() error {
	if len(os.Args) == 1 && !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return runMCP(context.Background())
	}
	return NewApp().Run(context.Background(), os.Args)
}
