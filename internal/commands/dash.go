package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/balkashynov/ceoplan/internal/tui"
)

func newDashCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dash",
		Aliases: []string{"ui"},
		Short:   "Open the interactive daily dashboard",
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			return tui.RunDashboard(cmd.Context(), a.planner, a.date, a.cfg.SaveDebounce)
		}),
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ceoplan %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
