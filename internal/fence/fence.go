// SPDX-License-Identifier: MPL-2.0

package fence

import (
	"fmt"
	"strings"
)

// Language identifies the flavor of a Juvix code fence.
type Language string

const (
	// LangJuvix marks a fence that merges with its siblings into one module.
	LangJuvix Language = "juvix"
	// LangJuvixStandalone marks a fence compiled as its own complete module.
	LangJuvixStandalone Language = "juvix-standalone"
)

// IsJuvix reports whether the info-string language tag belongs to the
// Juvix pipeline.
func IsJuvix(lang string) bool {
	return lang == string(LangJuvix) || lang == string(LangJuvixStandalone)
}

// ExtractSpec names an inner module and the number of leading top-level
// statements of it that remain visible in the rendered output.
type ExtractSpec struct {
	// Module is the exact, case-sensitive inner module name.
	Module string
	// Count is the number of leading statements to keep. Zero is valid and
	// yields an empty fragment.
	Count int
}

// Directive is the normalized option set of one fence header.
type Directive struct {
	// Hidden excludes the block from rendered output. The block still
	// contributes source to the assembled module, so hidden setup code is
	// typechecked together with its visible siblings.
	Hidden bool

	// Standalone compiles the block as its own module. It never contributes
	// to, nor receives contributions from, any other block.
	Standalone bool

	// Extract, when non-nil, truncates the rendered (never the compiled)
	// fragment to the leading statements of a named inner module.
	Extract *ExtractSpec
}

// CodeBlock is one Juvix fence found in a source document. Blocks are
// immutable once produced by the scanner.
type CodeBlock struct {
	// Order is the 0-based position among the document's Juvix fences.
	Order int

	// Language is the fence's language tag.
	Language Language

	// Directive is the parsed option set from the fence header.
	Directive Directive

	// Lines is the verbatim fence body, whitespace preserved, one entry per
	// source line, without the fence markers themselves.
	Lines []string

	// StartLine and EndLine are the 1-based document lines of the opening
	// and closing fence markers.
	StartLine int
	EndLine   int
}

// Body returns the fence body as a single string.
func (b *CodeBlock) Body() string {
	return strings.Join(b.Lines, "\n")
}

// StructuralError reports a malformed document structure: an unclosed Juvix
// fence or an unknown option token. The document author must fix the source;
// nothing is auto-corrected.
type StructuralError struct {
	// Line is the 1-based document line of the offending fence header.
	Line int
	// Token is the offending header token, when one exists.
	Token string
	// Reason describes what is wrong.
	Reason string
}

// Error implements the error interface.
func (e *StructuralError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Token)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// ValidationError reports a recognized option with a malformed value, such as
// a non-integer statement count.
type ValidationError struct {
	// Line is the 1-based document line of the fence header.
	Line int
	// Option is the option whose value is malformed.
	Option string
	// Value is the offending value token.
	Value string
	// Reason describes the constraint that was violated.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("line %d: option %s: %s: %q", e.Line, e.Option, e.Reason, e.Value)
}
