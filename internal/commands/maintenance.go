package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Upgrade every stored record to the current format",
		Long: `Rewrite legacy records in the current format. Records are also upgraded
lazily when read; this command does it for the whole store at once.
Unreadable records are reported and left untouched.`,
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			report, err := a.planner.MigrateAll(cmd.Context())
			if err != nil {
				return err
			}
			a.printf("Scanned %d record(s), migrated %d\n", report.Scanned, len(report.Migrated))
			for _, key := range report.Migrated {
				a.printf("  ↑ %s\n", key)
			}
			if len(report.Unreadable) > 0 {
				a.printf("⚠️  %d unreadable record(s) left as is:\n", len(report.Unreadable))
				for _, key := range report.Unreadable {
					a.printf("  ? %s\n", key)
				}
			}
			return nil
		}),
	}
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every stored record as one JSON object",
		Run: withApp(func(cmd *cobra.Command, args []string, a *app) error {
			// pending game saves must be in the store before reading it
			if err := a.game.Flush(); err != nil {
				return err
			}
			records, err := a.planner.Export(cmd.Context())
			if err != nil {
				return err
			}
			payload, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode export: %w", err)
			}

			output, _ := cmd.Flags().GetString("output")
			if output == "" || output == "-" {
				a.printf("%s\n", payload)
				return nil
			}
			if err := os.WriteFile(output, append(payload, '\n'), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			a.printf("📦 Exported %d record(s) to %s\n", len(records), output)
			return nil
		}),
	}
	cmd.Flags().StringP("output", "o", "", "Write to a file instead of stdout")
	return cmd
}
