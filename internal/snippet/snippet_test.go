// SPDX-License-Identifier: MPL-2.0

package snippet

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestProcess_NoMarkersIdentity(t *testing.T) {
	t.Parallel()

	r := &Resolver{}
	doc := "# Title\n\nprose --8 text\n"
	got, err := r.Process(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != doc {
		t.Errorf("identity violated: %q", got)
	}
}

func TestProcess_InlineInclude(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "shared.md", "included line\n")

	r := &Resolver{BasePaths: []string{dir}, Check: true}
	got, err := r.Process("before\n--8<-- \"shared.md\"\nafter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "before\nincluded line\nafter" {
		t.Errorf("Process() = %q", got)
	}
}

func TestProcess_BlockInclude(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.md", "A\n")
	writeFile(t, dir, "b.md", "B\n")

	r := &Resolver{BasePaths: []string{dir}, Check: true}
	got, err := r.Process("--8<--\na.md\nb.md\n--8<--\ntail")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "A\nB\ntail" {
		t.Errorf("Process() = %q", got)
	}
}

func TestProcess_LineRange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "long.md", "1\n2\n3\n4\n5\n")

	r := &Resolver{BasePaths: []string{dir}, Check: true}
	got, err := r.Process(`--8<-- "long.md:2:4"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2\n3\n4" {
		t.Errorf("Process() = %q", got)
	}
}

func TestProcess_NamedSection(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "sec.md", strings.Join([]string{
		"outside",
		"--8<-- [start:intro]",
		"inside",
		"--8<-- [end:intro]",
		"outside again",
	}, "\n"))

	r := &Resolver{BasePaths: []string{dir}, Check: true}
	got, err := r.Process(`--8<-- "sec.md:intro"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "inside" {
		t.Errorf("Process() = %q", got)
	}
}

func TestProcess_MissingSnippet(t *testing.T) {
	t.Parallel()

	r := &Resolver{BasePaths: []string{t.TempDir()}, Check: true}
	_, err := r.Process(`--8<-- "nope.md"`)

	var missing *MissingError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingError, got %v", err)
	}
	if missing.Path != "nope.md" {
		t.Errorf("Path = %q", missing.Path)
	}
}

func TestProcess_MissingSnippetUnchecked(t *testing.T) {
	t.Parallel()

	r := &Resolver{BasePaths: []string{t.TempDir()}}
	got, err := r.Process("x\n--8<-- \"nope.md\"\ny")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "x\ny" {
		t.Errorf("Process() = %q", got)
	}
}

func TestProcess_NestedIncludes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "outer.md", "o1\n--8<-- \"inner.md\"\no2\n")
	writeFile(t, dir, "inner.md", "i\n")

	r := &Resolver{BasePaths: []string{dir}, Check: true}
	got, err := r.Process(`--8<-- "outer.md"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "o1\ni\no2" {
		t.Errorf("Process() = %q", got)
	}
}

func TestProcess_IncludeCycleFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "self.md", "--8<-- \"self.md\"\n")

	r := &Resolver{BasePaths: []string{dir}, Check: true}
	if _, err := r.Process(`--8<-- "self.md"`); err == nil {
		t.Fatalf("expected depth error for include cycle")
	}
}

func TestProcess_EscapedMarker(t *testing.T) {
	t.Parallel()

	r := &Resolver{Check: true}
	got, err := r.Process(`;--8<-- "literal.md"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `--8<-- "literal.md"` {
		t.Errorf("Process() = %q", got)
	}
}

func TestProcess_SectionMarkersStrippedFromWholeFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "sec.md", "a\n--8<-- [start:s]\nb\n--8<-- [end:s]\nc\n")

	r := &Resolver{BasePaths: []string{dir}, Check: true}
	got, err := r.Process(`--8<-- "sec.md"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a\nb\nc" {
		t.Errorf("Process() = %q", got)
	}
}
