// SPDX-License-Identifier: MPL-2.0

package splice

import (
	"strings"
	"testing"

	"juvixdoc/internal/assemble"
	"juvixdoc/internal/fence"
	"juvixdoc/internal/juvix"
)

func scan(t *testing.T, doc string) []fence.CodeBlock {
	t.Helper()
	blocks, err := fence.Scan(doc)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	return blocks
}

func TestDocument_IdentityWithoutFences(t *testing.T) {
	t.Parallel()

	doc := "# Title\n\nprose\n"
	if got := Document(doc, nil, nil); got != doc {
		t.Errorf("identity violated: %q", got)
	}
}

func TestDocument_ReplacesFence(t *testing.T) {
	t.Parallel()

	doc := "before\n```juvix\nmodule A;\n```\nafter"
	blocks := scan(t, doc)

	got := Document(doc, blocks, map[int][]string{0: {"<pre>module A;</pre>"}})
	want := "before\n<pre>module A;</pre>\nafter"
	if got != want {
		t.Errorf("Document() = %q, want %q", got, want)
	}
}

func TestDocument_HiddenBlockEmitsNothing(t *testing.T) {
	t.Parallel()

	doc := "before\n```juvix hide\nmodule A;\n```\nafter"
	blocks := scan(t, doc)

	got := Document(doc, blocks, map[int][]string{0: {"should not appear"}})
	want := "before\nafter"
	if got != want {
		t.Errorf("Document() = %q, want %q", got, want)
	}
	if strings.Contains(got, "should not appear") {
		t.Errorf("hidden fragment leaked into output")
	}
}

func TestBlockFragments_SplitsByProvenance(t *testing.T) {
	t.Parallel()

	doc := "```juvix\nmodule X;\na : Nat := 0;\n```\ntext\n```juvix\nb : Nat := a;\n```"
	blocks := scan(t, doc)

	modules, err := assemble.Build(blocks)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	r := &juvix.Result{Lines: []string{"L0", "L1", "L2"}}
	fragments, err := BlockFragments(&modules[0], r)
	if err != nil {
		t.Fatalf("fragments: %v", err)
	}

	if got := strings.Join(fragments[0], ","); got != "L0,L1" {
		t.Errorf("fragment 0 = %q", got)
	}
	if got := strings.Join(fragments[1], ","); got != "L2" {
		t.Errorf("fragment 1 = %q", got)
	}
}

func TestBlockFragments_ExtractionTruncates(t *testing.T) {
	t.Parallel()

	doc := strings.Join([]string{
		"```juvix extract-module-statements B 1",
		"module A;",
		"module B;",
		"  s1 : Nat := 1;",
		"  s2 : Nat := 2;",
		"end;",
		"```",
	}, "\n")
	blocks := scan(t, doc)

	modules, err := assemble.Build(blocks)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	r := &juvix.Result{Lines: []string{"r0", "r1", "r2", "r3", "r4"}}
	fragments, err := BlockFragments(&modules[0], r)
	if err != nil {
		t.Fatalf("fragments: %v", err)
	}
	if got := strings.Join(fragments[0], ","); got != "r2" {
		t.Errorf("fragment = %q, want the first statement's line only", got)
	}
}

func TestBlockFragments_ExtractionErrorPropagates(t *testing.T) {
	t.Parallel()

	doc := "```juvix extract-module-statements Missing 1\nmodule A;\n```"
	blocks := scan(t, doc)

	modules, err := assemble.Build(blocks)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	_, err = BlockFragments(&modules[0], &juvix.Result{Lines: []string{"r0"}})
	if err == nil {
		t.Fatalf("expected extraction error")
	}
}

func TestAttribute(t *testing.T) {
	t.Parallel()

	doc := "```juvix\nmodule X;\na : Nat := 0;\n```\ntext\n```juvix\nb : Nat := a;\n```"
	blocks := scan(t, doc)
	modules, err := assemble.Build(blocks)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// Assembled line 3 (1-based) is the second block's only line, which sits
	// on document line 7.
	order, docLine := Attribute(&modules[0], juvix.Diagnostic{Line: 3, Column: 1})
	if order != 1 {
		t.Errorf("order = %d, want 1", order)
	}
	if docLine != 7 {
		t.Errorf("docLine = %d, want 7", docLine)
	}
}

func TestRoundTrip_HiddenSetupBlock(t *testing.T) {
	t.Parallel()

	// Hidden setup block + visible dependent block: one module, output shows
	// only the second block's rendering.
	doc := strings.Join([]string{
		"# Page",
		"```juvix hide",
		"module A; x : Int := 1;",
		"```",
		"```juvix",
		"y : Int := x + 1;",
		"```",
	}, "\n")
	blocks := scan(t, doc)

	modules, err := assemble.Build(blocks)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(modules) != 1 {
		t.Fatalf("expected one module, got %d", len(modules))
	}
	if got := modules[0].Text(); got != "module A; x : Int := 1;\ny : Int := x + 1;" {
		t.Errorf("assembled source = %q", got)
	}

	r := &juvix.Result{Lines: []string{"<hidden>", "<visible>"}}
	fragments, err := BlockFragments(&modules[0], r)
	if err != nil {
		t.Fatalf("fragments: %v", err)
	}

	got := Document(doc, blocks, fragments)
	want := "# Page\n<visible>"
	if got != want {
		t.Errorf("Document() = %q, want %q", got, want)
	}
}
