// SPDX-License-Identifier: MPL-2.0

// Package config loads and validates juvixdoc configuration.
//
// Configuration lives in a juvixdoc.cue file at the project root, validated
// against an embedded CUE schema before use, and layered through Viper so
// JUVIXDOC_* environment variables override file values and every field has
// a sensible default. Downstream components only ever see a validated
// Config value.
package config
