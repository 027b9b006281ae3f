// ABOUTME: CLI command to show knowledge base statistics
// ABOUTME: Reports document and segment counts
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show knowledge base statistics",
		Long: `Show document and segment counts for the knowledge base.

Examples:
  medassist stats
  medassist stats --format json`,
		RunE: runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	stats, err := a.Orchestrator.Stats()
	if err != nil {
		return fmt.Errorf("reading stats: %w", err)
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), stats)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Documents: %d\n", stats.DocumentCount)
	fmt.Fprintf(cmd.OutOrStdout(), "Segments:  %d\n", stats.SegmentCount)
	return nil
}
