// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	// FailureAbort stops the whole build on the first document that fails
	// to compile.
	FailureAbort FailureMode = "abort"
	// FailureAdmonition replaces a failing document's fences with a
	// "!!! failure" admonition above the de-tagged source and continues.
	FailureAdmonition FailureMode = "admonition"
)

var (
	// ErrInvalidFailureMode is returned when a FailureMode value is not recognized.
	ErrInvalidFailureMode = errors.New("invalid failure mode")
	// ErrInvalidTimeout is returned when the compiler timeout cannot be parsed.
	ErrInvalidTimeout = errors.New("invalid compiler timeout")
)

// FailureMode selects what a build does when a document fails to compile.
type FailureMode string

// IsValid reports whether the value is a recognized mode.
func (m FailureMode) IsValid() bool {
	return m == FailureAbort || m == FailureAdmonition
}

// Validate returns ErrInvalidFailureMode for unrecognized values.
func (m FailureMode) Validate() error {
	if !m.IsValid() {
		return fmt.Errorf("%w: %q (valid: %q, %q)",
			ErrInvalidFailureMode, string(m), FailureAbort, FailureAdmonition)
	}
	return nil
}

// Config is the root configuration.
type Config struct {
	// DocsDir is the source documentation tree.
	DocsDir string `mapstructure:"docs_dir"`
	// OutputDir receives the processed tree.
	OutputDir string `mapstructure:"output_dir"`
	// SiteURL prefixes generated links; may be empty for root-relative sites.
	SiteURL string `mapstructure:"site_url"`

	Build     BuildConfig     `mapstructure:"build"`
	Juvix     JuvixConfig     `mapstructure:"juvix"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Snippets  SnippetsConfig  `mapstructure:"snippets"`
	Todos     TodosConfig     `mapstructure:"todos"`
	Wikilinks WikilinksConfig `mapstructure:"wikilinks"`
	Watch     WatchConfig     `mapstructure:"watch"`
	UI        UIConfig        `mapstructure:"ui"`
}

// BuildConfig tunes the document build.
type BuildConfig struct {
	// Jobs bounds how many documents render concurrently. Zero means one
	// per CPU.
	Jobs int `mapstructure:"jobs"`
	// OnFailure selects abort-vs-admonition behavior for compile failures.
	OnFailure FailureMode `mapstructure:"on_failure"`
}

// JuvixConfig describes the external compiler.
type JuvixConfig struct {
	// Bin is the compiler executable name or path.
	Bin string `mapstructure:"bin"`
	// Enabled turns Juvix processing off entirely; fences are then
	// de-tagged and passed through.
	Enabled bool `mapstructure:"enabled"`
	// Timeout bounds one compiler invocation, as a Go duration string.
	Timeout string `mapstructure:"timeout"`
}

// ParseTimeout returns the configured invocation bound.
func (j JuvixConfig) ParseTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(j.Timeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, j.Timeout)
	}
	return d, nil
}

// CacheConfig controls the content-hash render cache.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// SnippetsConfig controls --8<-- include resolution.
type SnippetsConfig struct {
	// BasePaths are tried in order when resolving snippet references.
	BasePaths []string `mapstructure:"base_paths"`
	// Check makes unresolvable snippets a build error.
	Check bool `mapstructure:"check"`
}

// TodosConfig controls "!!! todo" admonition handling.
type TodosConfig struct {
	// Keep leaves the admonitions visible in rendered output.
	Keep bool `mapstructure:"keep"`
	// Report logs every TODO with its position during builds.
	Report bool `mapstructure:"report"`
}

// WikilinksConfig controls [[Alias]] link resolution between pages.
type WikilinksConfig struct {
	// Enabled turns wiki-link resolution off entirely; [[...]] text then
	// passes through verbatim.
	Enabled bool `mapstructure:"enabled"`
	// Check makes a broken wiki link a build error instead of a warning.
	Check bool `mapstructure:"check"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	// Ignore are extra glob patterns that never trigger a rebuild.
	Ignore []string `mapstructure:"ignore"`
	// Debounce is the quiet period before a rebuild, as a duration string.
	Debounce string `mapstructure:"debounce"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		DocsDir:   "docs",
		OutputDir: ".juvixdoc/html",
		Build: BuildConfig{
			Jobs:      0,
			OnFailure: FailureAbort,
		},
		Juvix: JuvixConfig{
			Bin:     "juvix",
			Enabled: true,
			Timeout: "60s",
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".juvixdoc/cache",
		},
		Snippets: SnippetsConfig{
			BasePaths: []string{".", "includes"},
			Check:     true,
		},
		Wikilinks: WikilinksConfig{
			Enabled: true,
			Check:   false,
		},
		Watch: WatchConfig{
			Debounce: "500ms",
		},
	}
}

// Validate checks constraints the CUE schema cannot express on merged,
// env-overridden values.
func (c *Config) Validate() error {
	if err := c.Build.OnFailure.Validate(); err != nil {
		return err
	}
	if _, err := c.Juvix.ParseTimeout(); err != nil {
		return err
	}
	if c.DocsDir == "" {
		return errors.New("docs_dir must not be empty")
	}
	if c.OutputDir == "" {
		return errors.New("output_dir must not be empty")
	}
	return nil
}
