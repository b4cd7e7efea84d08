package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/seuros/dictator/internal/processor"
	"github.com/seuros/dictator/internal/regime"
	"github.com/seuros/dictator/internal/reporter"
	"github.com/seuros/dictator/internal/watcher"
)

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Watch paths and lint files on change, until Ctrl-C",
		ArgsUsage: "[paths...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to .dictate.toml (default: auto-discover in cwd)",
			},
			&cli.IntFlag{
				Name:  "debounce-ms",
				Usage: "Debounce window in milliseconds",
				Value: 200,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output findings as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir, _ := os.Getwd()
			_, reg, buildErrs, err := loadRegime(dir, cmd.String("config"))
			if err != nil {
				return cli.Exit(err.Error(), ExitConfigError)
			}
			for _, e := range buildErrs {
				cmdLogger.Warn(e)
			}

			format := reporter.FormatText
			if cmd.Bool("json") {
				format = reporter.FormatJSON
			}
			rep, err := reporter.New(reporter.Options{Format: format, Writer: os.Stdout})
			if err != nil {
				return cli.Exit(err.Error(), ExitConfigError)
			}

			chain := processor.Default()
			lint := func(path, source string) {
				diags := reg.EnforceOne(regime.Source{Path: path, Text: source})
				findings := processor.FromDiagnostics(path, diags)
				findings = chain.Process(findings, processor.NewContext(map[string][]byte{path: []byte(source)}))
				if len(findings) == 0 {
					return
				}
				_ = rep.Report(findings, map[string][]byte{path: []byte(source)}, 1)
			}

			w, err := watcher.New(reg, cmd.Int("debounce-ms"), lint)
			if err != nil {
				return cli.Exit(err.Error(), ExitConfigError)
			}

			roots := cmd.Args().Slice()
			if len(roots) == 0 {
				roots = []string{"."}
			}
			for _, root := range roots {
				if err := w.Watch(root); err != nil {
					return cli.Exit(err.Error(), ExitConfigError)
				}
			}

			var stop atomic.Bool
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			go func() {
				select {
				case <-sigCh:
					stop.Store(true)
				case <-ctx.Done():
					stop.Store(true)
				}
			}()

			cmdLogger.Infof("watching %d root(s), Ctrl-C to stop", len(roots))
			w.Run(&stop)
			return nil
		},
	}
}
