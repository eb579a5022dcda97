// SPDX-License-Identifier: MPL-2.0

// Package juvix bridges to the external Juvix compiler.
//
// The bridge is a single synchronous capability: assembled module source in,
// a line-addressable rendering or a positioned failure out. Invocations are
// stateless and deterministic for identical source text, which is what makes
// caching by content hash safe. Callers bound each invocation with a context
// timeout; a hung compiler never stalls the whole document set.
package juvix
