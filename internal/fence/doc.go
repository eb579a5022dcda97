// SPDX-License-Identifier: MPL-2.0

// Package fence locates Juvix-tagged code fences in Markdown documents.
//
// The scanner walks a document line by line, captures the verbatim body of
// every fence whose info string declares a Juvix language tag, and parses the
// remaining header tokens into a closed Directive set. Non-Juvix fences are
// skipped (their bodies are consumed so fences inside them are never
// misrecognized) and are invisible to the rest of the pipeline.
package fence
