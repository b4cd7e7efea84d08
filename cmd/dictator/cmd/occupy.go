package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/seuros/dictator/internal/bootstrap"
	"github.com/seuros/dictator/internal/config"
	"github.com/seuros/dictator/internal/econfig"
)

func occupyCommand() *cli.Command {
	return &cli.Command{
		Name:      "occupy",
		Aliases:   []string{"init"},
		Usage:     "Write the default .dictate.toml and bootstrap .dictator/cache/",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing " + config.FileName,
			},
			&cli.BoolFlag{
				Name:  "from-editorconfig",
				Usage: "Seed hygiene settings from the repo's .editorconfig instead of the built-in defaults",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			dir := "."
			if cmd.Args().Len() > 0 {
				dir = cmd.Args().First()
			}

			var err error
			if cmd.Bool("from-editorconfig") {
				settings := econfig.Overlay(config.DecreeSettings{}, dir, "dictate.toml")
				err = bootstrap.WriteOccupyFilesWithContent(dir, cmd.Bool("force"), bootstrap.RenderSupremeTOML(settings))
			} else {
				err = bootstrap.WriteOccupyFiles(dir, cmd.Bool("force"))
			}
			if err != nil {
				return cli.Exit(err.Error(), ExitConfigError)
			}
			fmt.Printf("wrote %s/%s\n", dir, config.FileName)
			return nil
		},
	}
}
