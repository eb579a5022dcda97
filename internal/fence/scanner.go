// SPDX-License-Identifier: MPL-2.0

package fence

import (
	"strings"
)

// fenceMarker describes the opening marker of a code fence: the marker rune
// sequence and the indentation preceding it. A fence closes on the first line
// whose trimmed content is a run of the same rune at least as long as the
// opener, with nothing else on the line.
type fenceMarker struct {
	char   byte
	length int
}

// openMarker parses a fence opener out of a raw document line. It returns the
// marker, the info string that follows it, and whether the line opens a fence
// at all. Both backtick and tilde fences are recognized, with up to three
// leading spaces per CommonMark.
func openMarker(line string) (fenceMarker, string, bool) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 || trimmed == "" {
		return fenceMarker{}, "", false
	}
	c := trimmed[0]
	if c != '`' && c != '~' {
		return fenceMarker{}, "", false
	}
	n := 0
	for n < len(trimmed) && trimmed[n] == c {
		n++
	}
	if n < 3 {
		return fenceMarker{}, "", false
	}
	info := strings.TrimSpace(trimmed[n:])
	// An info string containing the marker rune is not a valid opener
	// (backtick fences cannot carry backticks in the info string).
	if c == '`' && strings.ContainsRune(info, '`') {
		return fenceMarker{}, "", false
	}
	return fenceMarker{char: c, length: n}, info, true
}

// closes reports whether line terminates a fence opened with m.
func (m fenceMarker) closes(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < m.length {
		return false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] != m.char {
			return false
		}
	}
	return true
}

// Scan walks the document text and returns every Juvix code fence in
// document order. Fence bodies are captured verbatim. A Juvix fence that
// opens without a matching close before end of document is a
// StructuralError; an unclosed non-Juvix fence silently consumes the rest of
// the document, exactly as a Markdown renderer would treat it.
func Scan(text string) ([]CodeBlock, error) {
	lines := strings.Split(text, "\n")

	var blocks []CodeBlock
	order := 0

	for i := 0; i < len(lines); i++ {
		marker, info, ok := openMarker(lines[i])
		if !ok {
			continue
		}

		tokens := strings.Fields(info)
		if len(tokens) == 0 || !IsJuvix(tokens[0]) {
			// Foreign fence: consume its body so anything inside it stays
			// invisible to the pipeline.
			j := i + 1
			for j < len(lines) && !marker.closes(lines[j]) {
				j++
			}
			i = j
			continue
		}

		lang := Language(tokens[0])
		directive, err := ParseDirective(lang, tokens[1:], i+1)
		if err != nil {
			return nil, err
		}

		j := i + 1
		for j < len(lines) && !marker.closes(lines[j]) {
			j++
		}
		if j == len(lines) {
			return nil, &StructuralError{
				Line:   i + 1,
				Reason: "unclosed Juvix code fence",
			}
		}

		body := make([]string, j-i-1)
		copy(body, lines[i+1:j])

		blocks = append(blocks, CodeBlock{
			Order:     order,
			Language:  lang,
			Directive: directive,
			Lines:     body,
			StartLine: i + 1,
			EndLine:   j + 1,
		})
		order++
		i = j
	}

	return blocks, nil
}
