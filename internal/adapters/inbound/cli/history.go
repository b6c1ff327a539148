package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hookguard/hookguard/internal/adapters/outbound/history"
	"github.com/hookguard/hookguard/internal/adapters/outbound/tui"
)

func newHistoryCmd() *cobra.Command {
	var (
		path       string
		script     string
		last       int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show check runs recorded with --record",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := newCheckService(newLogger(cmd)).History(path)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}
			entries = history.Filter(entries, script, last)
			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project path")
	cmd.Flags().StringVar(&script, "script", "", "Only show runs of this script")
	cmd.Flags().IntVar(&last, "last", 0, "Only show the most recent N runs")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
