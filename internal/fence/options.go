// SPDX-License-Identifier: MPL-2.0

package fence

import (
	"strconv"
)

// Option tokens recognized in a fence header after the language tag.
const (
	// OptionHide excludes the block from rendered output.
	OptionHide = "hide"
	// OptionExtract keeps only the leading statements of a named inner
	// module in the rendered output. It takes two arguments: the module
	// name and a non-negative statement count.
	OptionExtract = "extract-module-statements"
)

// ParseDirective normalizes the free-form header token list of one fence
// into a Directive. Unknown tokens are rejected rather than silently
// ignored, so documentation typos surface at build time instead of as
// quietly mis-rendered pages. line is the 1-based document line of the
// fence header, used for error positions.
func ParseDirective(lang Language, tokens []string, line int) (Directive, error) {
	d := Directive{Standalone: lang == LangJuvixStandalone}

	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case OptionHide:
			d.Hidden = true

		case OptionExtract:
			if len(tokens)-i < 3 {
				return Directive{}, &ValidationError{
					Line:   line,
					Option: OptionExtract,
					Value:  "",
					Reason: "expects a module name and a statement count",
				}
			}
			name := tokens[i+1]
			count, err := strconv.Atoi(tokens[i+2])
			if err != nil || count < 0 {
				return Directive{}, &ValidationError{
					Line:   line,
					Option: OptionExtract,
					Value:  tokens[i+2],
					Reason: "statement count must be a non-negative integer",
				}
			}
			d.Extract = &ExtractSpec{Module: name, Count: count}
			i += 2

		default:
			return Directive{}, &StructuralError{
				Line:   line,
				Token:  tokens[i],
				Reason: "unknown code fence option",
			}
		}
	}

	return d, nil
}
