// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for juvixdoc.
//
// This package implements the Cobra command hierarchy: build renders a
// documentation tree, check compiles it without writing output, new
// scaffolds a project, and watch rebuilds on file changes. Configuration
// is loaded once per invocation from juvixdoc.cue plus JUVIXDOC_*
// environment overrides.
package cmd
