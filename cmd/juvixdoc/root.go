// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"juvixdoc/internal/cache"
	"juvixdoc/internal/config"
	"juvixdoc/internal/issue"
	"juvixdoc/internal/juvix"
	"juvixdoc/internal/pipeline"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug logging
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "juvixdoc",
		Short: "A Markdown preprocessor for literate Juvix documentation",
		Long: TitleStyle.Render("juvixdoc") + SubtitleStyle.Render(" - A Markdown preprocessor for literate Juvix documentation") + `

juvixdoc scans Markdown pages for Juvix code fences, assembles them into
compilable modules, runs the Juvix compiler's markdown renderer over them,
and splices the rendered markup back into each page. Pages without Juvix
fences pass through untouched.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'juvixdoc new mysite' to scaffold a project
  2. Edit docs/index.juvix.md
  3. Build with: juvixdoc build

` + SubtitleStyle.Render("Examples:") + `
  juvixdoc build            Render the docs tree
  juvixdoc check            Compile without writing output
  juvixdoc watch            Rebuild on every change
  juvixdoc new mysite       Scaffold a new project`,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./juvixdoc.cue)")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(watchCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// loadConfig reads juvixdoc.cue (or the --config override) and applies the
// verbose flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.UI.Verbose = true
	}
	return cfg, nil
}

// newLogger builds the CLI logger honoring the verbose setting.
func newLogger(cfg *config.Config) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "juvixdoc",
	})
	if cfg.UI.Verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// newPipeline wires the pipeline from configuration: the render cache, the
// compiler bridge, and the logger. The returned version string is empty when
// Juvix processing is disabled.
func newPipeline(ctx context.Context, cfg *config.Config, logger *log.Logger) (*pipeline.Pipeline, string, error) {
	var store *cache.Store
	if cfg.Cache.Enabled {
		s, err := cache.Open(cfg.Cache.Dir)
		if err != nil {
			return nil, "", fmt.Errorf("open render cache: %w", err)
		}
		store = s
	}

	var (
		comp    juvix.Compiler
		version string
	)
	if cfg.Juvix.Enabled {
		timeout, err := cfg.Juvix.ParseTimeout()
		if err != nil {
			return nil, "", err
		}
		cli := &juvix.CLI{Bin: cfg.Juvix.Bin, Timeout: timeout, Dir: cfg.DocsDir}

		version, err = cli.Probe(ctx)
		if err != nil {
			return nil, "", err
		}
		logger.Debug("compiler probed", "bin", cfg.Juvix.Bin, "version", version)

		if err := cli.UpdateDependencies(ctx); err != nil {
			logger.Warn("dependency update failed", "error", err)
		}
		comp = cli
	}

	return pipeline.New(cfg, comp, store, logger), version, nil
}

// displayError prints the error, followed by the curated guidance for its
// failure class when one exists.
func displayError(err error) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
	if entry := issue.ForError(err); entry != nil {
		if rendered, renderErr := entry.Render(); renderErr == nil {
			fmt.Fprintln(os.Stderr, rendered)
		}
	}
}
