// SPDX-License-Identifier: MPL-2.0

// Package scaffold creates new documentation projects from embedded
// templates.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// all: so the .gitignore template is embedded too.
//
//go:embed all:templates
var templatesFS embed.FS

// Options describe the project to create.
type Options struct {
	// Dir is the target directory; it is created when missing.
	Dir string
	// Name is the project name used in the generated files. Empty defaults
	// to the base name of Dir.
	Name string
	// Force overwrites files that already exist.
	Force bool
}

// ErrExists reports a scaffold target that is already present.
type ErrExists struct {
	Path string
}

func (e *ErrExists) Error() string {
	return fmt.Sprintf("%s already exists (use --force to overwrite)", e.Path)
}

// Create writes the project skeleton and returns the created file paths,
// relative to Options.Dir.
func Create(opts Options) ([]string, error) {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Name == "" {
		abs, err := filepath.Abs(opts.Dir)
		if err != nil {
			return nil, fmt.Errorf("scaffold: resolve target dir: %w", err)
		}
		opts.Name = filepath.Base(abs)
	}

	var created []string
	err := fs.WalkDir(templatesFS, "templates", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}

		rel := strings.TrimPrefix(path, "templates/")
		rel = strings.TrimSuffix(rel, ".tmpl")
		dst := filepath.Join(opts.Dir, filepath.FromSlash(rel))

		if !opts.Force {
			if _, statErr := os.Stat(dst); statErr == nil {
				return &ErrExists{Path: rel}
			}
		}

		raw, err := templatesFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("scaffold: read template %s: %w", path, err)
		}

		tmpl, err := template.New(rel).Parse(string(raw))
		if err != nil {
			return fmt.Errorf("scaffold: parse template %s: %w", path, err)
		}

		var out strings.Builder
		if err := tmpl.Execute(&out, opts); err != nil {
			return fmt.Errorf("scaffold: render template %s: %w", path, err)
		}

		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("scaffold: create %s: %w", filepath.Dir(dst), err)
		}
		if err := os.WriteFile(dst, []byte(out.String()), 0o644); err != nil {
			return fmt.Errorf("scaffold: write %s: %w", dst, err)
		}

		created = append(created, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}
