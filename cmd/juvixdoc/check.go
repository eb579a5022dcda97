// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"juvixdoc/internal/pipeline"
)

var (
	checkKeepGoing bool

	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Compile the documentation tree without writing output",
		Long: `Run every page through the pipeline, compiling embedded Juvix fences, but
write nothing. Useful in CI to fail a pull request that breaks a page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, pipeline.BuildOptions{
				CheckOnly: true,
				KeepGoing: checkKeepGoing,
			})
		},
	}
)

func init() {
	checkCmd.Flags().BoolVar(&checkKeepGoing, "keep-going", false, "check all pages even after failures")
}
