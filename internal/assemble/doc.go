// SPDX-License-Identifier: MPL-2.0

// Package assemble combines the Juvix code fences of one document into
// complete, compilable module sources.
//
// Partitioning is a pure function over the ordered block list: every
// standalone block forms a singleton group, and all remaining blocks of the
// document merge into a single group in document order. Each group yields
// one assembled module carrying per-line provenance back to the originating
// fences, so compiler output and diagnostics can be attributed to the right
// place in the source document.
package assemble
