// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"

	"juvixdoc/internal/assemble"
	"juvixdoc/internal/fence"
	"juvixdoc/internal/juvix"
	"juvixdoc/internal/snippet"
	"juvixdoc/internal/wikilink"
)

func TestId_Constants(t *testing.T) {
	ids := []Id{
		StructuralId,
		ValidationId,
		DuplicateModuleId,
		ExtractionId,
		CompileId,
		TimeoutId,
		SnippetMissingId,
		BrokenLinkId,
		CompilerNotFoundId,
		ConfigLoadFailedId,
	}

	seen := make(map[Id]bool)
	for _, id := range ids {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want Id
	}{
		{"structural", &fence.StructuralError{Line: 3, Token: "```juvix"}, StructuralId},
		{"validation", &fence.ValidationError{Line: 1, Option: "extract-module-statements"}, ValidationId},
		{"duplicate", &assemble.DuplicateModuleError{Order: 1, Name: "A"}, DuplicateModuleId},
		{"extraction", &assemble.ExtractionError{Module: "Inner", Requested: 3, Found: 1}, ExtractionId},
		{"compile", &juvix.CompileError{}, CompileId},
		{"timeout", &juvix.TimeoutError{}, TimeoutId},
		{"snippet", &snippet.MissingError{Path: "x.md"}, SnippetMissingId},
		{"broken link", &wikilink.BrokenError{Page: "index.md", Alias: "Nowhere", Line: 2}, BrokenLinkId},
		{"wrapped", errors.New("boom: " + (&juvix.TimeoutError{}).Error()), UnknownId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClassify_WrappedError(t *testing.T) {
	t.Parallel()

	wrapped := errors.Join(errors.New("building docs/index.juvix.md"),
		&juvix.CompileError{Diagnostics: []juvix.Diagnostic{{Line: 1, Column: 1, Message: "parse error"}}})
	if got := Classify(wrapped); got != CompileId {
		t.Errorf("Classify(wrapped) = %d, want %d", got, CompileId)
	}
}

func TestForError(t *testing.T) {
	t.Parallel()

	issue := ForError(&juvix.TimeoutError{})
	if issue == nil {
		t.Fatal("ForError returned nil for timeout")
	}
	if issue.Id() != TimeoutId {
		t.Errorf("issue.Id() = %d, want %d", issue.Id(), TimeoutId)
	}
}

func TestGet_UnknownHasNoGuidance(t *testing.T) {
	t.Parallel()

	if issue := Get(UnknownId); issue != nil {
		t.Errorf("Get(UnknownId) = %v, want nil", issue)
	}
}

func TestIssue_Render(t *testing.T) {
	orig := render
	render = func(md string) (string, error) { return md, nil }
	t.Cleanup(func() { render = orig })

	issue := Get(CompilerNotFoundId)
	if issue == nil {
		t.Fatal("Get(CompilerNotFoundId) returned nil")
	}

	out, err := issue.Render()
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(out, "PATH") {
		t.Error("Render() should mention PATH")
	}
}
