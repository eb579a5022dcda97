// SPDX-License-Identifier: MPL-2.0

// Package todos handles "!!! todo" admonition blocks in Markdown sources.
//
// By default the admonitions are stripped before rendering so work-in-
// progress notes never reach the published site; builds can instead keep
// them visible, and can report every TODO with its document position for a
// progress overview of the documentation tree.
package todos
