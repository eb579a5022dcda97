// SPDX-License-Identifier: MPL-2.0

// Package pipeline orchestrates the document build: snippet inclusion, todo
// handling, fence scanning, module assembly, compiler invocation (with the
// content-hash render cache in front), and splicing rendered markup back
// into each page. It also walks whole documentation trees, processing pages
// concurrently and copying everything else through verbatim.
package pipeline
