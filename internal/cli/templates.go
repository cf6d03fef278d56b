package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"meetsched/internal/meeting"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List meeting templates",
	Run: func(cmd *cobra.Command, args []string) {
		printTemplates(cmd.OutOrStdout())
	},
}

func printTemplates(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tLABEL\tDURATION\tPRIORITY\tDESCRIPTION")
	for _, t := range meeting.Templates {
		fmt.Fprintf(tw, "%s\t%s\t%d min\t%s\t%s\n", t.Name, t.Label, t.Duration, t.Priority, t.Description)
	}
	tw.Flush()
}
