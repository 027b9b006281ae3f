// ABOUTME: CLI command to summarize the indexed document collection
// ABOUTME: Spends one rate-limited generation request
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summarizeWords int

// NewSummarizeCmd creates the summarize command
func NewSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize the ingested documents",
		Long: `Generate a professional summary of all ingested documents.

Content is sampled from across the collection and summarized in a
single generation request.

Examples:
  medassist summarize
  medassist summarize --words 200`,
		RunE: runSummarize,
	}

	cmd.Flags().IntVar(&summarizeWords, "words", 500, "Approximate summary length in words")

	return cmd
}

func runSummarize(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	result, err := a.Orchestrator.Summarize(cmd.Context(), summarizeWords)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", result.Content)
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d words)\n", result.WordCount)
	}
	return nil
}
