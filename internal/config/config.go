// Package config provides hierarchical configuration management for relnotes using koanf.
// Configuration is loaded with priority: command-line flags > environment variables
// (RELNOTES_*) > explicit --config file > project config (.relnotes.yml or .relnotes.json)
// > user config (~/.config/relnotes/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as configuration.
const EnvPrefix = "RELNOTES_"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUser     ConfigSource = "user"
	SourceProject  ConfigSource = "project"
	SourceExplicit ConfigSource = "file"
	SourceEnv      ConfigSource = "env"
	SourceFlag     ConfigSource = "flag"
)

// Configuration represents the relnotes CLI configuration
type Configuration struct {
	Title        string `koanf:"title" yaml:"title" json:"title"`
	Version      string `koanf:"version" yaml:"version" json:"version"`
	Date         string `koanf:"date" yaml:"date" json:"date"`
	EmptyValue   string `koanf:"empty_value" yaml:"empty_value" json:"empty_value"`
	TemplateFile string `koanf:"template_file" yaml:"template_file" json:"template_file"`
	RulesFile    string `koanf:"rules_file" yaml:"rules_file" json:"rules_file"`
	Output       string `koanf:"output" yaml:"output" json:"output"`
	Repo         string `koanf:"repo" yaml:"repo" json:"repo"`
	// Format selects the document written: markdown (rendered template), yaml or json.
	Format string `koanf:"format" yaml:"format" json:"format"`
	// Backend selects the commit source: "cli" shells out to git, "native" uses go-git.
	Backend string `koanf:"backend" yaml:"backend" json:"backend"`

	IncludeMerges        bool `koanf:"include_merges" yaml:"include_merges" json:"include_merges"`
	IncludeVersionBump   bool `koanf:"include_version_bump_commits" yaml:"include_version_bump_commits" json:"include_version_bump_commits"`
	IncludeDocStructure  bool `koanf:"include_doc_structure_commits" yaml:"include_doc_structure_commits" json:"include_doc_structure_commits"`
	IncludeDevDocsAdd    bool `koanf:"include_dev_docs_add_commits" yaml:"include_dev_docs_add_commits" json:"include_dev_docs_add_commits"`
	IncludeNonFunctional bool `koanf:"include_non_functional_commits" yaml:"include_non_functional_commits" json:"include_non_functional_commits"`
	IncludeAllCategories bool `koanf:"include_all_categories" yaml:"include_all_categories" json:"include_all_categories"`

	Debug      bool `koanf:"debug" yaml:"debug" json:"debug"`
	NoProgress bool `koanf:"no_progress" yaml:"no_progress" json:"no_progress"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectDir is searched for .relnotes.yml / .relnotes.json (default: current directory)
	ProjectDir string
	// ConfigFile is an explicit config file loaded after the project config.
	// Unlike the implicit files it must exist.
	ConfigFile string
	// SkipUserConfig ignores ~/.config/relnotes/config.yml (used by tests)
	SkipUserConfig bool
	// Overrides are applied last, keyed by config key (typically changed CLI flags)
	Overrides map[string]any
}

// Loaded is a resolved configuration plus the origin of each key.
type Loaded struct {
	*Configuration
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string

	last map[string]string
}

// Load loads configuration from the default sources without overrides.
func Load(projectDir string) (*Configuration, error) {
	loaded, err := LoadWithOptions(LoadOptions{ProjectDir: projectDir})
	if err != nil {
		return nil, err
	}
	return loaded.Configuration, nil
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Loaded, error) {
	k := koanf.New(".")
	l := &Loaded{Sources: make(map[string]ConfigSource)}

	loadDefaults(k)
	l.track(k, SourceDefault)

	if !opts.SkipUserConfig {
		if path, err := UserConfigPath(); err == nil && fileExists(path) {
			if err := loadFile(k, path, "user"); err != nil {
				return nil, err
			}
			l.Files = append(l.Files, path)
			l.track(k, SourceUser)
		}
	}

	if path := ProjectConfigPath(projectDir(opts.ProjectDir)); path != "" {
		if err := loadFile(k, path, "project"); err != nil {
			return nil, err
		}
		l.Files = append(l.Files, path)
		l.track(k, SourceProject)
	}

	if opts.ConfigFile != "" {
		if !fileExists(opts.ConfigFile) {
			return nil, fmt.Errorf("config file not found: %s", opts.ConfigFile)
		}
		if err := loadFile(k, opts.ConfigFile, "explicit"); err != nil {
			return nil, err
		}
		l.Files = append(l.Files, opts.ConfigFile)
		l.track(k, SourceExplicit)
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}
	l.track(k, SourceEnv)

	for key, value := range opts.Overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("applying override %s: %w", key, err)
		}
		l.Sources[key] = SourceFlag
	}

	cfg, err := finalizeConfig(k)
	if err != nil {
		return nil, err
	}
	l.Configuration = cfg
	return l, nil
}

// track records source for every key whose value differs from what was
// recorded for the previous layer.
func (l *Loaded) track(k *koanf.Koanf, source ConfigSource) {
	for _, key := range k.Keys() {
		if _, seen := l.Sources[key]; !seen || l.changed(k, key) {
			l.Sources[key] = source
		}
	}
	l.snapshot(k)
}

func (l *Loaded) changed(k *koanf.Koanf, key string) bool {
	return fmt.Sprint(k.Get(key)) != l.last[key]
}

func (l *Loaded) snapshot(k *koanf.Koanf) {
	if l.last == nil {
		l.last = make(map[string]string)
	}
	for _, key := range k.Keys() {
		l.last[key] = fmt.Sprint(k.Get(key))
	}
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadFile loads a YAML or JSON config file, chosen by extension.
func loadFile(k *koanf.Koanf, path, configType string) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.TemplateFile = expandHomePath(cfg.TemplateFile)
	cfg.RulesFile = expandHomePath(cfg.RulesFile)
	cfg.Output = expandHomePath(cfg.Output)
	cfg.Repo = expandHomePath(cfg.Repo)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

func projectDir(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

// envTransform converts environment variable names to config keys
// Example: RELNOTES_INCLUDE_MERGES -> include_merges
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
