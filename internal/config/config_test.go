// Package config tests layered configuration loading and validation.
// Related: internal/config/config.go, internal/config/validate.go, internal/config/schema.go
// Tags: config, koanf, env, validation, yaml

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	loaded, err := LoadWithOptions(LoadOptions{ProjectDir: t.TempDir(), SkipUserConfig: true})
	require.NoError(t, err)

	assert.Equal(t, "Release Notes / 发布说明", loaded.Title)
	assert.Equal(t, "- None / 无", loaded.EmptyValue)
	assert.Equal(t, "markdown", loaded.Format)
	assert.Equal(t, "cli", loaded.Backend)
	assert.Equal(t, ".", loaded.Repo)
	assert.False(t, loaded.IncludeMerges)
	assert.Empty(t, loaded.Files)
	assert.Equal(t, SourceDefault, loaded.Sources["title"])
}

func TestLoad_ProjectFiles(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		name    string
		content string
	}{
		"yaml": {name: ".relnotes.yml", content: "title: Changelog\nbackend: native\ninclude_merges: true\n"},
		"json": {name: ".relnotes.json", content: `{"title": "Changelog", "backend": "native", "include_merges": true}`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := writeFile(t, dir, tt.name, tt.content)

			loaded, err := LoadWithOptions(LoadOptions{ProjectDir: dir, SkipUserConfig: true})
			require.NoError(t, err)
			assert.Equal(t, "Changelog", loaded.Title)
			assert.Equal(t, "native", loaded.Backend)
			assert.True(t, loaded.IncludeMerges)
			assert.Equal(t, []string{path}, loaded.Files)
			assert.Equal(t, SourceProject, loaded.Sources["title"])
			assert.Equal(t, SourceDefault, loaded.Sources["format"])
		})
	}
}

func TestLoad_ExplicitFileAndOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, ".relnotes.yml", "title: Project\nversion: v1\n")
	explicit := writeFile(t, t.TempDir(), "ci.yaml", "title: CI\nformat: json\n")

	loaded, err := LoadWithOptions(LoadOptions{
		ProjectDir:     dir,
		ConfigFile:     explicit,
		SkipUserConfig: true,
		Overrides:      map[string]any{"format": "yaml"},
	})
	require.NoError(t, err)

	assert.Equal(t, "CI", loaded.Title)
	assert.Equal(t, "v1", loaded.Version)
	assert.Equal(t, "yaml", loaded.Format)
	assert.Equal(t, SourceExplicit, loaded.Sources["title"])
	assert.Equal(t, SourceProject, loaded.Sources["version"])
	assert.Equal(t, SourceFlag, loaded.Sources["format"])
	assert.Len(t, loaded.Files, 2)
}

func TestLoad_DateIsFreeText(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"iso date":  "2026-10-19",
		"quarter":   "2024 Q3",
		"localized": "2026年10月19日",
	}

	for name, date := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			loaded, err := LoadWithOptions(LoadOptions{
				ProjectDir:     t.TempDir(),
				SkipUserConfig: true,
				Overrides:      map[string]any{"date": date},
			})
			require.NoError(t, err)
			assert.Equal(t, date, loaded.Date)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		project  string
		explicit string
		override map[string]any
		contains string
	}{
		"unknown format": {
			project:  "format: html\n",
			contains: "format: must be a valid value",
		},
		"unknown backend": {
			override: map[string]any{"backend": "libgit2"},
			contains: "backend: must be a valid value",
		},
		"empty fallback": {
			override: map[string]any{"empty_value": ""},
			contains: "empty_value: cannot be blank",
		},
		"yaml syntax": {
			project:  "title: [unclosed\n",
			contains: ".relnotes.yml",
		},
		"missing explicit file": {
			explicit: "does-not-exist.yml",
			contains: "config file not found",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			if tt.project != "" {
				writeFile(t, dir, ".relnotes.yml", tt.project)
			}
			explicit := ""
			if tt.explicit != "" {
				explicit = filepath.Join(dir, tt.explicit)
			}

			_, err := LoadWithOptions(LoadOptions{
				ProjectDir:     dir,
				ConfigFile:     explicit,
				SkipUserConfig: true,
				Overrides:      tt.override,
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoad_Environment(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".relnotes.yml", "backend: cli\n")
	t.Setenv("RELNOTES_BACKEND", "native")
	t.Setenv("RELNOTES_INCLUDE_NON_FUNCTIONAL_COMMITS", "true")

	loaded, err := LoadWithOptions(LoadOptions{ProjectDir: dir, SkipUserConfig: true})
	require.NoError(t, err)
	assert.Equal(t, "native", loaded.Backend)
	assert.True(t, loaded.IncludeNonFunctional)
	assert.Equal(t, SourceEnv, loaded.Sources["backend"])

	loaded, err = LoadWithOptions(LoadOptions{
		ProjectDir:     dir,
		SkipUserConfig: true,
		Overrides:      map[string]any{"backend": "cli"},
	})
	require.NoError(t, err)
	assert.Equal(t, "cli", loaded.Backend, "flags beat environment")
}

func TestLoad_UserConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "relnotes"), 0o755))
	writeFile(t, filepath.Join(xdg, "relnotes"), "config.yml", "title: Mine\nempty_value: n/a\n")

	project := t.TempDir()
	writeFile(t, project, ".relnotes.yml", "title: Team\n")

	cfg, err := Load(project)
	require.NoError(t, err)
	assert.Equal(t, "Team", cfg.Title)
	assert.Equal(t, "n/a", cfg.EmptyValue)
}

func TestValidateYAMLSyntax(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tests := map[string]struct {
		content  string
		wantErr  bool
		wantLine int
	}{
		"valid":          {content: "title: x\n"},
		"empty":          {content: "   \n"},
		"bad indent":     {content: "title: x\n  bad: [\n", wantErr: true},
		"unclosed quote": {content: "title: \"x\n", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := writeFile(t, dir, name+".yml", tt.content)
			err := ValidateYAMLSyntax(path)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, path, vErr.FilePath)
		})
	}

	assert.NoError(t, ValidateYAMLSyntax(filepath.Join(dir, "missing.yml")))
}

func TestExtractLineColumn(t *testing.T) {
	t.Parallel()

	line, col := extractLineColumn("yaml: line 5: could not find expected ':'")
	assert.Equal(t, 5, line)
	assert.Equal(t, 1, col)

	line, col = extractLineColumn("something else")
	assert.Zero(t, line)
	assert.Zero(t, col)

	assert.Equal(t, "could not find expected ':'", cleanYAMLError("yaml: line 5: could not find expected ':'"))
}

func TestDefaultTemplateMatchesDefaults(t *testing.T) {
	t.Parallel()

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(GetDefaultConfigTemplate()), &parsed))

	defaults := GetDefaults()
	assert.Len(t, parsed, len(defaults))
	for key, want := range defaults {
		got, ok := parsed[key]
		require.True(t, ok, "template is missing %s", key)
		assert.Equal(t, fmt.Sprint(want), fmt.Sprint(got), key)
	}
}

func TestKeySchema(t *testing.T) {
	t.Parallel()

	schema, err := GetKeySchema("include_merges")
	require.NoError(t, err)
	assert.Equal(t, TypeBool, schema.Type)
	assert.Equal(t, "RELNOTES_INCLUDE_MERGES", schema.EnvVar())

	_, err = GetKeySchema("timeout")
	assert.ErrorAs(t, err, &ErrUnknownKey{})

	keys := SortedKeys()
	assert.Len(t, keys, len(KnownKeys))
	assert.Equal(t, "backend", keys[0].Path)
}
