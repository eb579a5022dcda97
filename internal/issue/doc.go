// SPDX-License-Identifier: MPL-2.0

// Package issue maps build failures to actionable, user-facing guidance.
//
// Every failure class the CLI surfaces has an Issue: a Markdown message
// explaining what went wrong and what the document author can do about it,
// rendered to the terminal with glamour. The pipeline's typed errors stay
// machine-readable; this package only owns the human presentation.
package issue
