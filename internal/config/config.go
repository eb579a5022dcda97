// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name, also the env var prefix.
	AppName = "juvixdoc"
	// ConfigFileName is the project config file looked up in the working
	// directory.
	ConfigFileName = "juvixdoc.cue"
)

//go:embed config_schema.cue
var configSchema string

// Load reads the project configuration. path selects an explicit config
// file; when empty, ConfigFileName in the working directory is used if it
// exists, otherwise defaults apply. JUVIXDOC_* environment variables
// override file values either way (nested keys use underscores, e.g.
// JUVIXDOC_JUVIX_BIN).
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("docs_dir", defaults.DocsDir)
	v.SetDefault("output_dir", defaults.OutputDir)
	v.SetDefault("site_url", defaults.SiteURL)
	v.SetDefault("build.jobs", defaults.Build.Jobs)
	v.SetDefault("build.on_failure", string(defaults.Build.OnFailure))
	v.SetDefault("juvix.bin", defaults.Juvix.Bin)
	v.SetDefault("juvix.enabled", defaults.Juvix.Enabled)
	v.SetDefault("juvix.timeout", defaults.Juvix.Timeout)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.dir", defaults.Cache.Dir)
	v.SetDefault("snippets.base_paths", defaults.Snippets.BasePaths)
	v.SetDefault("snippets.check", defaults.Snippets.Check)
	v.SetDefault("wikilinks.enabled", defaults.Wikilinks.Enabled)
	v.SetDefault("wikilinks.check", defaults.Wikilinks.Check)
	v.SetDefault("todos.keep", defaults.Todos.Keep)
	v.SetDefault("todos.report", defaults.Todos.Report)
	v.SetDefault("watch.ignore", defaults.Watch.Ignore)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case path != "":
		if !fileExists(path) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, err
		}
	case fileExists(ConfigFileName):
		if err := loadCUEIntoViper(v, ConfigFileName); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into Viper. The config decodes to a map
// rather than a struct so Viper's default and env layering still applies,
// and validation runs with Concrete(false) because every field is optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return fmt.Errorf("%s: %w", path, userValue.Err())
	}

	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("merge config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
