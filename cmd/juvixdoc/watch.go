// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"juvixdoc/internal/pipeline"
	"juvixdoc/internal/watch"
)

var (
	watchClearScreen bool

	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the documentation on every change",
		Long: `Build the docs tree once, then watch it and rebuild whenever a page or
asset changes. Bursts of editor writes are debounced into a single rebuild.
Failures keep the watcher alive so the next save can fix them.`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
)

func init() {
	watchCmd.Flags().BoolVar(&watchClearScreen, "clear", false, "clear the terminal before each rebuild")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		displayError(err)
		return &ExitError{Code: 1, Err: err}
	}
	logger := newLogger(cfg)

	p, version, err := newPipeline(cmd.Context(), cfg, logger)
	if err != nil {
		displayError(err)
		return &ExitError{Code: 1, Err: err}
	}

	// Watch-mode builds survive page failures so the loop keeps running.
	opts := pipeline.BuildOptions{KeepGoing: true}
	rebuild := func(ctx context.Context) {
		start := time.Now()
		summary, buildErr := p.Build(ctx, opts)
		if buildErr != nil {
			displayError(buildErr)
		}
		if summary != nil {
			printSummary(cfg.OutputDir, summary, opts)
		}
		if writeErr := p.WriteVersionAssets(version); writeErr != nil {
			displayError(writeErr)
		}
		logger.Debug("rebuild finished", "took", time.Since(start))
	}

	rebuild(cmd.Context())

	debounce, err := time.ParseDuration(cfg.Watch.Debounce)
	if err != nil {
		debounce = 0
	}

	w, err := watch.New(watch.Config{
		BaseDir:     cfg.DocsDir,
		Ignore:      cfg.Watch.Ignore,
		Debounce:    debounce,
		ClearScreen: watchClearScreen,
		OnChange: func(ctx context.Context, changed []string) error {
			logger.Info("change detected", "files", len(changed))
			rebuild(ctx)
			return nil
		},
	})
	if err != nil {
		displayError(err)
		return &ExitError{Code: 1, Err: err}
	}

	fmt.Fprintln(os.Stdout, SubtitleStyle.Render("watching ")+PathStyle.Render(cfg.DocsDir)+
		SubtitleStyle.Render(" (ctrl-c to stop)"))

	if err := w.Run(cmd.Context()); err != nil {
		displayError(err)
		return &ExitError{Code: 1, Err: err}
	}
	return nil
}
