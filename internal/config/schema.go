package config

import (
	"fmt"
	"sort"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeString
	TypeEnum
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ConfigKeySchema describes one configuration key.
type ConfigKeySchema struct {
	Path          string          // Key name as written in config files (e.g., "include_merges")
	Type          ConfigValueType // Expected value type
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
	Default       any             // Default value (nil means unset)
}

// EnvVar returns the environment variable that overrides the key.
func (s ConfigKeySchema) EnvVar() string {
	return EnvPrefix + strings.ToUpper(s.Path)
}

// KnownKeys is the registry of all configuration keys.
var KnownKeys = map[string]ConfigKeySchema{
	"title": {
		Path:        "title",
		Type:        TypeString,
		Description: "Document title ({{TITLE}})",
		Default:     "Release Notes / 发布说明",
	},
	"version": {
		Path:        "version",
		Type:        TypeString,
		Description: "Release version label ({{VERSION}})",
		Default:     "",
	},
	"date": {
		Path:        "date",
		Type:        TypeString,
		Description: "Release date for {{DATE}}, rendered as given; empty means today (YYYY-MM-DD)",
		Default:     "",
	},
	"empty_value": {
		Path:        "empty_value",
		Type:        TypeString,
		Description: "Text rendered for empty sections",
		Default:     "- None / 无",
	},
	"template_file": {
		Path:        "template_file",
		Type:        TypeString,
		Description: "Template file; empty uses the built-in template",
		Default:     "",
	},
	"rules_file": {
		Path:        "rules_file",
		Type:        TypeString,
		Description: "File whose content fills {{RULES}}",
		Default:     "",
	},
	"output": {
		Path:        "output",
		Type:        TypeString,
		Description: "Output file; empty writes to stdout",
		Default:     "",
	},
	"repo": {
		Path:        "repo",
		Type:        TypeString,
		Description: "Repository path",
		Default:     ".",
	},
	"format": {
		Path:          "format",
		Type:          TypeEnum,
		AllowedValues: []string{"markdown", "yaml", "json"},
		Description:   "Output format",
		Default:       "markdown",
	},
	"backend": {
		Path:          "backend",
		Type:          TypeEnum,
		AllowedValues: []string{"cli", "native"},
		Description:   "Commit source: git CLI or built-in go-git",
		Default:       "cli",
	},
	"include_merges": {
		Path:        "include_merges",
		Type:        TypeBool,
		Description: "Include merge commits",
		Default:     false,
	},
	"include_version_bump_commits": {
		Path:        "include_version_bump_commits",
		Type:        TypeBool,
		Description: "Keep version bump and release commits",
		Default:     false,
	},
	"include_doc_structure_commits": {
		Path:        "include_doc_structure_commits",
		Type:        TypeBool,
		Description: "Keep document structure commits",
		Default:     false,
	},
	"include_dev_docs_add_commits": {
		Path:        "include_dev_docs_add_commits",
		Type:        TypeBool,
		Description: "Keep commits that only add dev-docs files",
		Default:     false,
	},
	"include_non_functional_commits": {
		Path:        "include_non_functional_commits",
		Type:        TypeBool,
		Description: "Keep docs/tooling-only commits",
		Default:     false,
	},
	"include_all_categories": {
		Path:        "include_all_categories",
		Type:        TypeBool,
		Description: "Keep every category, not only features, fixes and breaking changes",
		Default:     false,
	},
	"debug": {
		Path:        "debug",
		Type:        TypeBool,
		Description: "Print debug trace to stderr",
		Default:     false,
	},
	"no_progress": {
		Path:        "no_progress",
		Type:        TypeBool,
		Description: "Disable the progress spinner",
		Default:     false,
	},
}

// ErrUnknownKey is returned when a configuration key is not in the registry.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return fmt.Sprintf("unknown configuration key: %q", e.Key)
}

// GetKeySchema returns the schema for a configuration key.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// SortedKeys returns the registry in key order.
func SortedKeys() []ConfigKeySchema {
	keys := make([]ConfigKeySchema, 0, len(KnownKeys))
	for _, s := range KnownKeys {
		keys = append(keys, s)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Path < keys[j].Path })
	return keys
}
