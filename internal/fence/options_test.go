// SPDX-License-Identifier: MPL-2.0

package fence

import (
	"errors"
	"testing"
)

func TestParseDirective_Empty(t *testing.T) {
	t.Parallel()

	d, err := ParseDirective(LangJuvix, nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Hidden || d.Standalone || d.Extract != nil {
		t.Errorf("empty header should produce the zero directive, got %+v", d)
	}
}

func TestParseDirective_StandaloneFromLanguageTag(t *testing.T) {
	t.Parallel()

	d, err := ParseDirective(LangJuvixStandalone, nil, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Standalone {
		t.Errorf("juvix-standalone tag must force Standalone")
	}
}

func TestParseDirective_Hide(t *testing.T) {
	t.Parallel()

	d, err := ParseDirective(LangJuvix, []string{"hide"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Hidden {
		t.Errorf("hide token must set Hidden")
	}
}

func TestParseDirective_Extract(t *testing.T) {
	t.Parallel()

	d, err := ParseDirective(LangJuvix, []string{"extract-module-statements", "B", "2"}, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Extract == nil || d.Extract.Module != "B" || d.Extract.Count != 2 {
		t.Errorf("Extract = %+v, want (B, 2)", d.Extract)
	}
}

func TestParseDirective_ExtractCombinesWithHide(t *testing.T) {
	t.Parallel()

	tokens := []string{"hide", "extract-module-statements", "B", "0"}
	d, err := ParseDirective(LangJuvix, tokens, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Hidden || d.Extract == nil {
		t.Errorf("both options should be retained, got %+v", d)
	}
}

func TestParseDirective_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		tokens     []string
		structural bool
		validation bool
	}{
		{
			name:       "unknown token",
			tokens:     []string{"hode"},
			structural: true,
		},
		{
			name:       "extract missing args",
			tokens:     []string{"extract-module-statements", "B"},
			validation: true,
		},
		{
			name:       "extract non-integer count",
			tokens:     []string{"extract-module-statements", "B", "two"},
			validation: true,
		},
		{
			name:       "extract negative count",
			tokens:     []string{"extract-module-statements", "B", "-1"},
			validation: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ParseDirective(LangJuvix, tt.tokens, 7)
			if err == nil {
				t.Fatalf("expected error for tokens %v", tt.tokens)
			}

			var structural *StructuralError
			var validation *ValidationError
			switch {
			case tt.structural && !errors.As(err, &structural):
				t.Errorf("expected StructuralError, got %T: %v", err, err)
			case tt.validation && !errors.As(err, &validation):
				t.Errorf("expected ValidationError, got %T: %v", err, err)
			}
			if structural != nil && structural.Line != 7 {
				t.Errorf("error line = %d, want 7", structural.Line)
			}
			if validation != nil && validation.Line != 7 {
				t.Errorf("error line = %d, want 7", validation.Line)
			}
		})
	}
}
