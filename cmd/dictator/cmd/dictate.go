package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/seuros/dictator/internal/discover"
	"github.com/seuros/dictator/internal/fixer"
)

func dictateCommand() *cli.Command {
	return &cli.Command{
		Name:      "dictate",
		Aliases:   []string{"kjr"},
		Usage:     "Rewrite files to fix whitespace and hygiene violations in place",
		ArgsUsage: "[paths...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to .dictate.toml (default: auto-discover in cwd)",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			dir, _ := os.Getwd()
			_, reg, buildErrs, err := loadRegime(dir, cmd.String("config"))
			if err != nil {
				return cli.Exit(err.Error(), ExitConfigError)
			}
			for _, e := range buildErrs {
				cmdLogger.Warn(e)
			}

			paths := cmd.Args().Slice()
			if len(paths) == 0 {
				paths = []string{"."}
			}

			files, err := discover.Files(paths, discover.Options{Regime: reg})
			if err != nil {
				return cli.Exit(err.Error(), ExitConfigError)
			}
			if len(files) == 0 {
				return cli.Exit("no files matched", ExitNoFiles)
			}

			changed := 0
			for _, f := range files {
				data, readErr := os.ReadFile(f)
				if readErr != nil {
					cmdLogger.Warnf("%s: %v", f, readErr)
					continue
				}
				fixed := fixer.Fix(data)
				if string(fixed) == string(data) {
					continue
				}
				if writeErr := os.WriteFile(f, fixed, 0o644); writeErr != nil { //nolint:gosec // rewriting files dictate was asked to fix
					cmdLogger.Warnf("%s: %v", f, writeErr)
					continue
				}
				changed++
			}

			fmt.Printf("dictate: %d of %d file(s) changed\n", changed, len(files))
			return nil
		},
	}
}
