// Package health provides environment checks for relnotes. It verifies what a
// run depends on (the git CLI for the default backend, the repository, the
// configuration and any configured input files) and returns a structured
// report used by the 'relnotes doctor' command.
package health

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/config"
	"github.com/ariel-frischer/relnotes/internal/git"
)

// Check names.
const (
	CheckGitCLI     = "Git CLI"
	CheckRepository = "Repository"
	CheckConfig     = "Configuration"
	CheckTemplate   = "Template file"
	CheckRules      = "Rules file"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Optional checks report a problem without failing the report.
	Optional bool
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// Environment is what the checks inspect. LookPath is exec.LookPath outside tests.
type Environment struct {
	Config   *config.Configuration
	LookPath func(file string) (string, error)
}

// RunHealthChecks runs all health checks and returns a report.
func RunHealthChecks(env Environment) *HealthReport {
	if env.LookPath == nil {
		env.LookPath = exec.LookPath
	}

	report := &HealthReport{Passed: true}
	add := func(check CheckResult) {
		report.Checks = append(report.Checks, check)
		if !check.Passed && !check.Optional {
			report.Passed = false
		}
	}

	cfg := env.Config
	add(CheckGit(env.LookPath, cfg.Backend))
	add(CheckRepo(cfg.Repo))
	if cfg.TemplateFile != "" {
		add(CheckFile(CheckTemplate, cfg.TemplateFile))
	}
	if cfg.RulesFile != "" {
		add(CheckFile(CheckRules, cfg.RulesFile))
	}
	return report
}

// CheckGit checks if the git CLI is available. It is only required by the
// cli backend; with the native backend a missing git is reported but optional.
func CheckGit(lookPath func(string) (string, error), backend string) CheckResult {
	optional := backend == git.BackendNative
	path, err := lookPath("git")
	if err != nil {
		msg := "git not found in PATH"
		if !optional {
			msg += " (install git or use --backend native)"
		}
		return CheckResult{Name: CheckGitCLI, Passed: false, Message: msg, Optional: optional}
	}
	return CheckResult{Name: CheckGitCLI, Passed: true, Message: "found at " + path, Optional: optional}
}

// CheckRepo checks that path is inside a git repository.
func CheckRepo(path string) CheckResult {
	root, err := git.RepositoryRoot(path)
	if err != nil {
		return CheckResult{
			Name:    CheckRepository,
			Passed:  false,
			Message: fmt.Sprintf("%s is not inside a git repository", path),
		}
	}
	return CheckResult{Name: CheckRepository, Passed: true, Message: root}
}

// CheckFile checks that a configured input file is readable.
func CheckFile(name, path string) CheckResult {
	if _, err := os.ReadFile(path); err != nil {
		return CheckResult{Name: name, Passed: false, Message: err.Error()}
	}
	return CheckResult{Name: name, Passed: true, Message: path}
}

// ConfigFailure turns a configuration load error into a failed check.
func ConfigFailure(err error) CheckResult {
	return CheckResult{Name: CheckConfig, Passed: false, Message: err.Error()}
}

// ConfigLoaded reports which config files were read.
func ConfigLoaded(files []string) CheckResult {
	if len(files) == 0 {
		return CheckResult{Name: CheckConfig, Passed: true, Message: "defaults (no config file)"}
	}
	return CheckResult{Name: CheckConfig, Passed: true, Message: strings.Join(files, ", ")}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var sb strings.Builder
	for _, check := range report.Checks {
		mark := "✓"
		switch {
		case !check.Passed && check.Optional:
			mark = "○"
		case !check.Passed:
			mark = "✗"
		}
		fmt.Fprintf(&sb, "%s %s: %s\n", mark, check.Name, check.Message)
	}
	return sb.String()
}
