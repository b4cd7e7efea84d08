package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/seuros/dictator/internal/reporter"
)

func lintCommand() *cli.Command {
	return &cli.Command{
		Name:      "lint",
		Aliases:   []string{"stalint"},
		Usage:     "Lint files for hygiene and structural violations",
		ArgsUsage: "[paths...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to .dictate.toml (default: auto-discover in cwd)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output findings as JSON",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
				Sources: cli.EnvVars("NO_COLOR"),
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			dir, _ := os.Getwd()
			cfg, reg, buildErrs, err := loadRegime(dir, cmd.String("config"))
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

			findings, sources, fileCount, scopedErrs, err := lintPaths(paths, cfg, reg)
			if err != nil {
				return cli.Exit(err.Error(), ExitConfigError)
			}
			for _, e := range scopedErrs {
				cmdLogger.Warn(e)
			}
			if fileCount == 0 {
				return cli.Exit("no files matched", ExitNoFiles)
			}

			format := reporter.FormatText
			if cmd.Bool("json") {
				format = reporter.FormatJSON
			}
			noColor := cmd.Bool("no-color")
			rep, err := reporter.New(reporter.Options{
				Format:     format,
				Writer:     os.Stdout,
				Color:      boolPtrIfSet(cmd, "no-color", !noColor),
				ShowSource: true,
			})
			if err != nil {
				return cli.Exit(err.Error(), ExitConfigError)
			}
			if err := rep.Report(findings, sources, fileCount); err != nil {
				return cli.Exit(err.Error(), ExitConfigError)
			}

			if len(findings) > 0 {
				return cli.Exit("", ExitDiagnostics)
			}
			return nil
		},
	}
}

// boolPtrIfSet returns a *bool for reporter.Options.Color only when the
// user explicitly passed --no-color; otherwise nil, leaving auto-detect
// to termenv.
func boolPtrIfSet(cmd *cli.Command, flag string, value bool) *bool {
	if !cmd.IsSet(flag) {
		return nil
	}
	return &value
}
