package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/seuros/dictator/internal/census"
)

func censusCommand() *cli.Command {
	return &cli.Command{
		Name:  "census",
		Usage: "Print loaded decrees, config presence, and external linter availability",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "details",
				Usage: "Show each external linter's tri-state status",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			dir, _ := os.Getwd()
			cfg, reg, buildErrs, err := loadRegime(dir, "")
			if err != nil {
				return cli.Exit(err.Error(), ExitConfigError)
			}
			for _, e := range buildErrs {
				cmdLogger.Warn(e)
			}

			configPresent := cfg.ConfigFile != ""
			snap := census.Build(cfg, reg, configPresent)

			if configPresent {
				fmt.Printf("config: %s\n", cfg.ConfigFile)
			} else {
				fmt.Println("config: none (using built-in defaults; run `dictator occupy`)")
			}

			fmt.Printf("native decrees: %d\n", len(snap.NativeDecrees))
			for _, d := range snap.NativeDecrees {
				fmt.Printf("  %s\n", d.Name)
			}
			fmt.Printf("wasm decrees: %d\n", len(snap.WasmDecrees))
			for _, d := range snap.WasmDecrees {
				fmt.Printf("  %s\n", d.Name)
			}

			if cmd.Bool("details") {
				fmt.Println("external linters:")
				for _, l := range snap.ExternalLinters {
					fmt.Printf("  %-12s %-10s %s\n", l.Name, statusGlyph(l.Status), l.Command)
				}
			}

			return nil
		},
	}
}

func statusGlyph(s census.LinterStatus) string {
	switch s {
	case census.StatusConfigured:
		return "configured"
	case census.StatusAvailable:
		return "available"
	default:
		return "not-found"
	}
}
