package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/seuros/dictator/internal/mcpserver"
)

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Run the MCP server over stdio (same as auto-detected no-arg mode)",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return runMCP(ctx)
		},
	}
}

func runMCP(ctx context.Context) error {
	cwd, err := os.Getwd()
	if err != nil {
		return cli.Exit(err.Error(), ExitConfigError)
	}
	server := mcpserver.New(cwd)
	return server.RunStdio(ctx)
}
