// SPDX-License-Identifier: MPL-2.0

package juvix

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestModuleFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "module header names the file",
			source: "module Index;\n\naxiom x : Nat;",
			want:   "Index.juvix",
		},
		{
			name:   "dotted module name",
			source: "module Docs.Intro;",
			want:   "Docs.Intro.juvix",
		},
		{
			name:   "indented header",
			source: "  module Inner;",
			want:   "Inner.juvix",
		},
		{
			name:   "leading comment before header",
			source: "-- comment\nmodule A.B.C;",
			want:   "A.B.C.juvix",
		},
		{
			name:   "no header falls back to scratch",
			source: "axiom x : Nat;",
			want:   "Scratch.juvix",
		},
		{
			name:   "empty source",
			source: "",
			want:   "Scratch.juvix",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := moduleFileName(tt.source); got != tt.want {
				t.Errorf("moduleFileName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCLI_Available_MissingBinary(t *testing.T) {
	t.Parallel()

	c := NewCLI("definitely-not-a-real-binary-name")
	if c.Available() {
		t.Error("Available() should be false for a nonexistent binary")
	}
}

func TestCLI_Probe_MissingBinary(t *testing.T) {
	t.Parallel()

	c := NewCLI("definitely-not-a-real-binary-name")
	_, err := c.Probe(context.Background())
	if !errors.Is(err, ErrCompilerNotFound) {
		t.Fatalf("Probe() error = %v, want ErrCompilerNotFound", err)
	}
	if !strings.Contains(err.Error(), "not on PATH") {
		t.Errorf("unexpected error: %v", err)
	}
}
