// ABOUTME: CLI command to list ingested documents
// ABOUTME: Table output by default, JSON with --format json
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ingested documents",
		Long: `List the documents in the knowledge base with their segment counts.

Examples:
  medassist list
  medassist list --format json`,
		RunE: runList,
	}

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	docs, err := a.Orchestrator.Documents()
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	if len(docs) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No documents ingested\n")
		}
		return nil
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), docs)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "DOCUMENT ID\tFILENAME\tFORMAT\tSEGMENTS\tINGESTED\n")
	fmt.Fprintf(w, "-----------\t--------\t------\t--------\t--------\n")
	for _, doc := range docs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			doc.DocumentID,
			truncate(doc.Filename, 30),
			doc.Format,
			len(doc.SegmentIDs),
			formatTime(doc.IngestedAt))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d document(s)\n", len(docs))
	}
	return nil
}
