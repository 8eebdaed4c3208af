package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/relnotes/internal/config"
	"github.com/ariel-frischer/relnotes/internal/health"
	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check git, the repository, and configuration",
		Long: `Check that relnotes can run here: the git CLI (required by the default
cli backend), the repository, the configuration files, and any configured
template or rules file. Exits non-zero when a required check fails.`,
		Example: `  relnotes doctor
  relnotes doctor --repo ../service --backend native`,
		Args: cobra.NoArgs,
		RunE: runDoctor,
	}
	cmd.GroupID = GroupGettingStarted
	cmd.Flags().String("repo", ".", "Repository path")
	cmd.Flags().String("backend", "", "Commit source to check for: cli, native")
	return cmd
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	printDoctorHeader(out)

	configFile, _ := cmd.Flags().GetString(flagConfig)
	loaded, err := config.LoadWithOptions(config.LoadOptions{
		ConfigFile: configFile,
		Overrides:  flagOverrides(cmd.Flags()),
	})
	if err != nil {
		fmt.Fprint(out, health.FormatReport(&health.HealthReport{Checks: []health.CheckResult{health.ConfigFailure(err)}}))
		return NewExitError(ExitFailure)
	}

	report := health.RunHealthChecks(health.Environment{Config: loaded.Configuration})
	report.Checks = append([]health.CheckResult{health.ConfigLoaded(loaded.Files)}, report.Checks...)
	fmt.Fprint(out, health.FormatReport(report))

	if !report.Passed {
		return NewExitError(ExitFailure)
	}
	return nil
}

// printDoctorHeader draws a titled rule when out is a terminal.
func printDoctorHeader(out io.Writer) {
	f, ok := out.(*os.File)
	if !ok || !terminalOf(out).IsTTY {
		return
	}
	fmt.Fprintln(out, output.Rule(min(output.GetTerminalWidth(f), 60), " relnotes doctor "))
}
