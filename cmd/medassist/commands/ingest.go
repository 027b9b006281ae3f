// ABOUTME: CLI command to ingest documents into the knowledge base
// ABOUTME: Accepts multiple paths; files are processed independently
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <file>...",
		Short: "Ingest documents into the knowledge base",
		Long: `Ingest one or more document files into the knowledge base.

Each file is extracted, split into overlapping segments, embedded, and
indexed. Files are processed independently, so one corrupt file never
aborts the batch; its failure is reported per-file.

Supported formats: plain text (.txt, .md, .log, .csv) and images
(.png, .jpg), though image text recognition is not available and such
documents are recorded with a warning.

Examples:
  medassist ingest report.txt
  medassist ingest labs.txt notes.md history.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIngest,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	batch := a.Orchestrator.IngestBatch(cmd.Context(), args)

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), batch)
	}

	for _, res := range batch.Succeeded {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s (%s, %d segments)\n", res.Filename, res.DocumentID, res.SegmentCount)
		}
		if res.Warning != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "  warning: %s\n", res.Warning)
		}
	}
	for _, fail := range batch.Failed {
		fmt.Fprintf(cmd.ErrOrStderr(), "✗ %s: %s\n", fail.Path, fail.Message)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nIngested %d document(s), %d segment(s); %d failure(s)\n",
			len(batch.Succeeded), batch.TotalSegments, len(batch.Failed))
	}

	if len(batch.Succeeded) == 0 && len(batch.Failed) > 0 {
		return fmt.Errorf("all %d file(s) failed to ingest", len(batch.Failed))
	}
	return nil
}
