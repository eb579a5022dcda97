// SPDX-License-Identifier: MPL-2.0

// Package splice maps compiler output back onto the source document.
//
// Given the rendering of each assembled module and its provenance, the
// splicer substitutes every non-hidden Juvix fence with the fragment of
// markup attributable to it, applying statement-extraction truncation first
// and the hide check last (hide wins). Documents without Juvix fences pass
// through byte-identical. On a failed render nothing is spliced; the
// document's build fails with the diagnostic attributed to the nearest
// originating fence.
package splice
