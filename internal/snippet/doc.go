// SPDX-License-Identifier: MPL-2.0

// Package snippet resolves "--8<--" include markers in Markdown sources.
//
// The marker syntax follows the scissors convention used across the
// documentation tree: an inline marker includes one quoted path, a block
// marker pair includes one path per line between the markers. A path may
// select a line range ("file.md:3:10") or a named section ("file.md:intro")
// delimited inside the target file by "--8<-- [start:intro]" and
// "--8<-- [end:intro]" lines. Included files are themselves resolved,
// depth-bounded, so shared preambles can nest.
package snippet
