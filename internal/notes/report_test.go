// Package notes tests structured YAML/JSON reports.
// Related: internal/notes/report.go
// Tags: notes, report, yaml, json

package notes

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/ariel-frischer/relnotes/internal/classify"
	"github.com/ariel-frischer/relnotes/internal/commit"
	"github.com/ariel-frischer/relnotes/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() Report {
	kept := commit.New("aaa1111000", "Alice", "feat: add X", "")
	dropped := commit.New("ccc3333000", "Carol", "chore: bump version to 1.2.0", "")
	return Report{
		Placeholders: Build([]commit.Commit{kept}, Meta{Title: "T"}),
		Commits: []filter.Decision{
			{Commit: kept, Category: classify.Features},
			{Commit: dropped, Category: classify.Chore, ExcludedBy: filter.RuleVersionBump},
		},
	}
}

func TestWriteReport_YAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleReport(), FormatYAML))

	var decoded struct {
		Placeholders map[string]string `yaml:"placeholders"`
		Commits      []struct {
			Commit struct {
				ShortHash string `yaml:"short_hash"`
			} `yaml:"commit"`
			Category   string `yaml:"category"`
			ExcludedBy string `yaml:"excluded_by"`
		} `yaml:"commits"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "- feat: add X (aaa1111)", decoded.Placeholders["FEATURES"])
	require.Len(t, decoded.Commits, 2)
	assert.Equal(t, "aaa1111", decoded.Commits[0].Commit.ShortHash)
	assert.Equal(t, "", decoded.Commits[0].ExcludedBy)
	assert.Equal(t, "CHORE", decoded.Commits[1].Category)
	assert.Equal(t, "version-bump", decoded.Commits[1].ExcludedBy)
}

func TestWriteReport_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, sampleReport(), "JSON"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "placeholders")
	assert.Contains(t, decoded, "commits")
}

func TestWriteReport_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := WriteReport(&bytes.Buffer{}, Report{}, "toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "toml")
}
