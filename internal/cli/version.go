package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"meetsched/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "meetsched %s\n", version.Version)
	},
}
