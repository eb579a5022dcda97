// SPDX-License-Identifier: MPL-2.0

package todos

import (
	"strings"
	"testing"
)

const todoDoc = `# Page

!!! todo

    finish this section

after
`

func TestProcess_StripsAdmonition(t *testing.T) {
	t.Parallel()

	out, found := Process("docs/page.md", todoDoc, Options{})
	if strings.Contains(out, "todo") || strings.Contains(out, "finish this section") {
		t.Errorf("admonition not stripped: %q", out)
	}
	if !strings.Contains(out, "# Page") || !strings.Contains(out, "after") {
		t.Errorf("surrounding text lost: %q", out)
	}

	if len(found) != 1 {
		t.Fatalf("todos = %v", found)
	}
	if found[0].Line != 3 {
		t.Errorf("Line = %d, want 3", found[0].Line)
	}
	if found[0].Text != "finish this section" {
		t.Errorf("Text = %q", found[0].Text)
	}
}

func TestProcess_KeepLeavesTextUnchanged(t *testing.T) {
	t.Parallel()

	out, found := Process("p.md", todoDoc, Options{Keep: true})
	if out != todoDoc {
		t.Errorf("Keep must not modify the document")
	}
	if len(found) != 1 {
		t.Errorf("todos should still be collected, got %v", found)
	}
}

func TestProcess_NoAdmonitionsIdentity(t *testing.T) {
	t.Parallel()

	doc := "# Page\n\nplain prose\n"
	out, found := Process("p.md", doc, Options{})
	if out != doc {
		t.Errorf("identity violated: %q", out)
	}
	if len(found) != 0 {
		t.Errorf("unexpected todos: %v", found)
	}
}

func TestProcess_MultipleAdmonitions(t *testing.T) {
	t.Parallel()

	doc := "!!! todo\n\n    a\n\nmid\n!!! todo\n\n    b\n"
	out, found := Process("p.md", doc, Options{})
	if len(found) != 2 {
		t.Fatalf("todos = %v", found)
	}
	if !strings.Contains(out, "mid") {
		t.Errorf("text between admonitions lost: %q", out)
	}
}

func TestTodoString(t *testing.T) {
	t.Parallel()

	td := Todo{Path: "docs/a.md", Line: 12, Text: "first\nsecond"}
	if got := td.String(); got != "docs/a.md:12: TODO first" {
		t.Errorf("String() = %q", got)
	}
}
