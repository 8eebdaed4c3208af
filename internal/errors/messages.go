package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the relnotes CLI.
// These templates keep messages consistent and actionable.

// MissingRange creates an error for a generate run without --range.
func MissingRange() *CLIError {
	return NewArgumentErrorWithUsage(
		"--range is required",
		"relnotes --range <from>..<to>",
		"Pass a git revision range, e.g. --range v1.2.0..HEAD",
		"Use --print-placeholders to list template placeholders without a range",
	)
}

// TemplateNotFound creates an error for a missing --template-file.
func TemplateNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("Template file not found: %s", path),
		"Check the path passed to --template-file",
		"Omit --template-file to use the built-in template",
	)
}

// RulesNotFound creates an error for a missing --rules-file.
func RulesNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("Rules file not found: %s", path),
		"Check the path passed to --rules-file",
		"Omit --rules-file to leave the RULES placeholder empty",
	)
}

// FileReadError creates an error when an input file exists but cannot be read.
func FileReadError(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot read %s", path),
		"Check file permissions: ls -la "+path,
	)
}

// GitCommandFailed creates an error when the commit source fails.
// The git error text is kept verbatim as the message.
func GitCommandFailed(err error) *CLIError {
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = "git command failed"
	}
	return &CLIError{
		Category: Runtime,
		Message:  msg,
		Remediation: []string{
			"Check that both ends of --range exist: git rev-parse <rev>",
			"Fetch tags if the range uses them: git fetch --tags",
		},
		Cause: err,
	}
}

// GitNotRepository creates an error when --repo is not inside a git repository.
func GitNotRepository(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("not a git repository: %s", path),
		"Run relnotes from inside a repository",
		"Or point --repo at one",
	)
}

// ConfigLoadError creates an error for a config file that is missing or unreadable.
func ConfigLoadError(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"failed to load configuration",
		"Check config files for YAML or JSON syntax errors",
		"List the accepted keys with: relnotes config keys",
	)
}

// InvalidConfig creates an error for config values that fail validation.
func InvalidConfig(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Fix the listed fields in your config file, RELNOTES_* environment, or flags",
	)
}

// FileNotWritable creates an error when the output file cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure the parent directory exists and is writable",
	)
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'relnotes --help' to see valid options",
	)
}
