// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"juvixdoc/internal/scaffold"
)

var (
	newForce bool
	newName  string

	newCmd = &cobra.Command{
		Use:   "new [dir]",
		Short: "Scaffold a new documentation project",
		Long: `Create a documentation project skeleton: a juvixdoc.cue configuration, a
Package.juvix manifest, and starter pages under docs/. With no argument the
current directory is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}

			created, err := scaffold.Create(scaffold.Options{
				Dir:   dir,
				Name:  newName,
				Force: newForce,
			})
			if err != nil {
				displayError(err)
				return &ExitError{Code: 1, Err: err}
			}

			fmt.Fprintln(os.Stdout, SuccessStyle.Render("✓")+" project created in "+PathStyle.Render(dir))
			for _, rel := range created {
				fmt.Fprintln(os.Stdout, "  "+rel)
			}
			return nil
		},
	}
)

func init() {
	newCmd.Flags().BoolVar(&newForce, "force", false, "overwrite existing files")
	newCmd.Flags().StringVar(&newName, "name", "", "project name (default is the directory base name)")
}
