package cli

import (
	"github.com/spf13/cobra"
)

func newPlaceholdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "placeholders",
		Short: "List the placeholders a template can use",
		Long: `List every placeholder relnotes fills, one per line. Write them in a
template as {{NAME}}; unknown {{TOKENS}} are left untouched.`,
		Example: `  relnotes placeholders`,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printPlaceholders(cmd.OutOrStdout())
		},
	}
	cmd.GroupID = GroupGettingStarted
	return cmd
}
