// ABOUTME: CLI command to extract named sections or structured fields
// ABOUTME: Retrieval only; no generation request is spent
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	extractDocument string
	extractFields   []string
)

// NewExtractCmd creates the extract command
func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [section]",
		Short: "Extract a named section from the documents",
		Long: `Extract a named section (e.g. Diagnosis, Lab Results) from the
indexed documents, assembled in document order.

With --document and --fields, extracts a set of fields from a single
document instead, returned as a field-to-content map.

Examples:
  medassist extract "Lab Results"
  medassist extract Diagnosis
  medassist extract --document doc_ab12cd34 --fields diagnosis,medications`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExtract,
	}

	cmd.Flags().StringVar(&extractDocument, "document", "", "Extract from a single document")
	cmd.Flags().StringSliceVar(&extractFields, "fields", nil, "Fields to extract (requires --document)")

	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if extractDocument != "" {
		if len(extractFields) == 0 {
			return fmt.Errorf("--fields is required with --document")
		}
		result, err := a.Orchestrator.ExtractStructured(extractDocument, extractFields)
		if err != nil {
			return err
		}
		if outputFormat == "json" {
			return printJSON(cmd.OutOrStdout(), result)
		}
		for _, field := range extractFields {
			section := result.Fields[field]
			fmt.Fprintf(cmd.OutOrStdout(), "## %s\n\n", field)
			if section.Found {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n", section.Content)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "(no content found)\n\n")
			}
		}
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("provide a section name or use --document with --fields")
	}

	result, err := a.Orchestrator.ExtractSection(args[0])
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), result)
	}

	if !result.Found {
		fmt.Fprintf(cmd.OutOrStdout(), "No content found for section %q\n", args[0])
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", result.Content)
	if !quiet && len(result.Sources) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\nSources: %s\n", strings.Join(result.Sources, ", "))
	}
	return nil
}
