// SPDX-License-Identifier: MPL-2.0

// Package cache is a content-addressed lookaside for rendered documents.
//
// The compiler bridge is deterministic for identical source text, so a
// rendering keyed by the blake3 hash of a document's source can be reused
// across builds without any invalidation protocol: a changed document simply
// hashes to a different key. The cache holds no semantics of its own and can
// be deleted at any time.
package cache
