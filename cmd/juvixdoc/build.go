// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"juvixdoc/internal/pipeline"
)

var (
	buildForce     bool
	buildKeepGoing bool
	buildJobs      int

	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Render the documentation tree",
		Long: `Process every Markdown page under the docs directory, compiling embedded
Juvix fences and writing the rendered tree to the output directory. Files
that are not Markdown are copied through verbatim.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, pipeline.BuildOptions{
				Force:     buildForce,
				KeepGoing: buildKeepGoing,
			})
		},
	}
)

func init() {
	buildCmd.Flags().BoolVar(&buildForce, "force", false, "clear the render cache and recompile everything")
	buildCmd.Flags().BoolVar(&buildKeepGoing, "keep-going", false, "process all pages even after failures")
	buildCmd.Flags().IntVarP(&buildJobs, "jobs", "j", 0, "concurrent page builds (0 = one per CPU)")
}

// runBuild is shared by build, check, and watch.
func runBuild(cmd *cobra.Command, opts pipeline.BuildOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		displayError(err)
		return &ExitError{Code: 1, Err: err}
	}
	if buildJobs > 0 {
		cfg.Build.Jobs = buildJobs
	}
	logger := newLogger(cfg)

	p, version, err := newPipeline(cmd.Context(), cfg, logger)
	if err != nil {
		displayError(err)
		return &ExitError{Code: 1, Err: err}
	}

	summary, err := p.Build(cmd.Context(), opts)
	if err != nil {
		displayError(err)
		return &ExitError{Code: 1, Err: err}
	}

	if !opts.CheckOnly {
		if err := p.WriteVersionAssets(version); err != nil {
			displayError(err)
			return &ExitError{Code: 1, Err: err}
		}
	}

	printSummary(cfg.OutputDir, summary, opts)
	return nil
}

func printSummary(outputDir string, s *pipeline.Summary, opts pipeline.BuildOptions) {
	verb := "rendered"
	if opts.CheckOnly {
		verb = "checked"
	}
	fmt.Fprintf(os.Stdout, "%s %d pages %s (%d compiled, %d cached, %d copied)\n",
		SuccessStyle.Render("✓"), s.Pages, verb, s.Compiled, s.Cached, s.Copied)

	if s.Failed > 0 {
		fmt.Fprintln(os.Stdout, WarningStyle.Render(
			fmt.Sprintf("! %d pages degraded to a failure admonition", s.Failed)))
	}
	for _, t := range s.Todos {
		fmt.Fprintln(os.Stdout, WarningStyle.Render("todo ")+t.String())
	}
	if !opts.CheckOnly {
		fmt.Fprintln(os.Stdout, SubtitleStyle.Render("output: ")+PathStyle.Render(outputDir))
	}
}
