package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]any {
	defaults := make(map[string]any, len(KnownKeys))
	for key, schema := range KnownKeys {
		defaults[key] = schema.Default
	}
	return defaults
}

// GetDefaultConfigTemplate returns a commented config file listing every option.
func GetDefaultConfigTemplate() string {
	return `# relnotes configuration
# User: ~/.config/relnotes/config.yml   Project: .relnotes.yml
# Every key can also be set as RELNOTES_<KEY>, e.g. RELNOTES_BACKEND=native

title: "Release Notes / 发布说明"
version: ""
date: ""                              # free text, empty means today (YYYY-MM-DD)
empty_value: "- None / 无"
template_file: ""                     # empty uses the built-in template
rules_file: ""
output: ""                            # empty writes to stdout
repo: .
format: markdown                      # markdown | yaml | json
backend: cli                          # cli | native

# Filters (all false drops the noise commits)
include_merges: false
include_version_bump_commits: false
include_doc_structure_commits: false
include_dev_docs_add_commits: false
include_non_functional_commits: false
include_all_categories: false

debug: false
no_progress: false
`
}
