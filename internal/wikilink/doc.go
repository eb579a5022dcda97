// SPDX-License-Identifier: MPL-2.0

// Package wikilink resolves [[Alias]] style links between pages.
//
// A pre-build pass indexes every page by the aliases its front matter
// declares and by its first top-level heading. During rendering each
// [[Alias]] or [[Alias|label]] occurrence becomes a relative Markdown
// link to the aliased page; an alias no page claims is reported as a
// broken link and collapses to its label text.
package wikilink
