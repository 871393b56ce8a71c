package commands

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/ceoplan/internal/parser"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search tasks across all days",
		Long: `Search tasks with ranked matching:
- Exact match (highest priority)
- Prefix match
- Suffix match
- Contains (lowest priority)

Search is case insensitive. Within a rank, newer days come first.`,
		Args: cobra.MinimumNArgs(1),
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			query := strings.Join(args, " ")
			limit, _ := cmd.Flags().GetInt("limit")
			jsonOutput, _ := cmd.Flags().GetBool("json")

			hits, err := a.planner.SearchTasks(cmd.Context(), query)
			if err != nil {
				return err
			}
			if limit > 0 && len(hits) > limit {
				hits = hits[:limit]
			}

			if jsonOutput {
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(hits)
			}

			if len(hits) == 0 {
				a.printf("No tasks found matching '%s'\n", query)
				return nil
			}

			a.printf("Found %d task(s) matching '%s':\n\n", len(hits), query)
			today := a.planner.Today()
			for _, hit := range hits {
				a.printf("%-22s %s\n", parser.FormatDay(hit.Date, today), formatTaskRow(hit.Index, hit.Task))
			}
			return nil
		}),
	}
	cmd.Flags().IntP("limit", "n", 0, "Maximum results (0 = all)")
	cmd.Flags().Bool("json", false, "Output results as JSON")
	return cmd
}
