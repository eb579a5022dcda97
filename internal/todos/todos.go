// SPDX-License-Identifier: MPL-2.0

package todos

import (
	"fmt"
	"strings"
)

// Todo is one admonition found in a document.
type Todo struct {
	// Path is the source document, as given to Process.
	Path string
	// Line is the 1-based line of the "!!! todo" marker.
	Line int
	// Text is the admonition body with its indentation removed.
	Text string
}

// String renders the todo as path:line followed by its first body line.
func (t Todo) String() string {
	first := t.Text
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	return fmt.Sprintf("%s:%d: TODO %s", t.Path, t.Line, first)
}

// Options selects what Process does with the admonitions it finds.
type Options struct {
	// Keep leaves admonitions in the output instead of stripping them.
	Keep bool
}

// Process collects every "!!! todo" admonition in text and, unless Keep is
// set, removes each admonition (marker plus indented body) from the
// returned text. Documents without admonitions pass through unchanged.
func Process(path, text string, opts Options) (string, []Todo) {
	lines := strings.Split(text, "\n")

	var todos []Todo
	var out []string

	for i := 0; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(trimmed, "!!! todo") {
			out = append(out, lines[i])
			continue
		}

		marker := i
		var body []string
		for i+1 < len(lines) && admonitionBody(lines[i+1]) {
			i++
			body = append(body, strings.TrimSpace(lines[i]))
		}

		todos = append(todos, Todo{
			Path: path,
			Line: marker + 1,
			Text: strings.TrimSpace(strings.Join(body, "\n")),
		})

		if opts.Keep {
			out = append(out, lines[marker:i+1]...)
		}
	}

	if opts.Keep {
		return text, todos
	}
	return strings.Join(out, "\n"), todos
}

// admonitionBody reports whether a line still belongs to an admonition:
// blank lines and lines indented by at least four spaces (or a tab).
func admonitionBody(line string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	return strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")
}
