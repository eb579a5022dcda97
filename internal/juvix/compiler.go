// SPDX-License-Identifier: MPL-2.0

package juvix

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTimeout bounds a single compiler invocation. A compile of one
// document's assembled module should finish well within this; exceeding it
// is reported as a TimeoutError, never retried.
const DefaultTimeout = 60 * time.Second

// ErrCompilerNotFound is returned when the juvix binary cannot be located.
var ErrCompilerNotFound = errors.New("juvix compiler not found")

// Result is the compiler's rendering of one assembled module. The markup is
// line-addressable: Lines[i] is the rendering of source line i, so
// provenance spans split the artifact back per originating fence.
type Result struct {
	Lines []string
}

// Compiler is the external-compiler capability the pipeline depends on.
// Implementations must be deterministic given identical source text and
// must honor context cancellation.
type Compiler interface {
	// Render compiles source and returns its rendering, a *CompileError, a
	// *TimeoutError, or an infrastructure error.
	Render(ctx context.Context, source string) (*Result, error)
}

// CLI invokes the juvix binary found on the host.
type CLI struct {
	// Bin is the compiler executable name or path. Empty means "juvix".
	Bin string
	// Timeout bounds each invocation. Zero or negative means DefaultTimeout.
	Timeout time.Duration
	// Dir is the working directory for invocations (the docs root, so the
	// compiler resolves project files). Empty means the process directory.
	Dir string
}

// NewCLI returns a CLI bridge for the given binary with the default timeout.
func NewCLI(bin string) *CLI {
	return &CLI{Bin: bin}
}

func (c *CLI) bin() string {
	if c.Bin == "" {
		return "juvix"
	}
	return c.Bin
}

// Available reports whether the compiler binary can be found on PATH.
func (c *CLI) Available() bool {
	_, err := exec.LookPath(c.bin())
	return err == nil
}

// Probe locates the compiler and returns its version. A missing binary is
// reported as ErrCompilerNotFound.
func (c *CLI) Probe(ctx context.Context) (string, error) {
	if _, err := exec.LookPath(c.bin()); err != nil {
		return "", fmt.Errorf("%w: %q is not on PATH", ErrCompilerNotFound, c.bin())
	}
	return c.Version(ctx)
}

// Version returns the compiler's numeric version string.
func (c *CLI) Version(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, c.bin(), "--numeric-version").Output()
	if err != nil {
		return "", fmt.Errorf("juvix: read compiler version: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// UpdateDependencies runs "juvix dependencies update" so the project's
// package set is resolved before the first compile of a session.
func (c *CLI) UpdateDependencies(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, c.bin(), "dependencies", "update")
	cmd.Dir = c.Dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("juvix: update dependencies: %w: %s", err, bytes.TrimSpace(out))
	}
	return nil
}

// Render writes source to a scratch module file and runs the compiler's
// markdown renderer over it. The invocation is bounded by the bridge
// timeout; cancellation and deadline expiry surface as a TimeoutError so
// the caller can attribute the failure to the document.
func (c *CLI) Render(ctx context.Context, source string) (*Result, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dir, err := os.MkdirTemp("", "juvixdoc-*")
	if err != nil {
		return nil, fmt.Errorf("juvix: create scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, moduleFileName(source))
	if err := os.WriteFile(path, []byte(source+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("juvix: write scratch module: %w", err)
	}

	cmd := exec.CommandContext(ctx, c.bin(),
		"markdown", "--stdout", "--no-colors", path)
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	if ctx.Err() != nil {
		return nil, &TimeoutError{Timeout: timeout}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, parseCompileError(stderr.String())
		}
		return nil, fmt.Errorf("juvix: invoke compiler: %w", err)
	}

	lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
	return &Result{Lines: lines}, nil
}

// moduleFileName derives the scratch file name from the module header so the
// compiler's "file name must match module name" rule is satisfied.
func moduleFileName(source string) string {
	for _, line := range strings.Split(source, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), "module ")
		if !ok {
			continue
		}
		name := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), ";"))
		if name != "" {
			return name + ".juvix"
		}
	}
	return "Scratch.juvix"
}
