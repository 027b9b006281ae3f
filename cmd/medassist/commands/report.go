// ABOUTME: CLI command to generate a multi-section Markdown report
// ABOUTME: Summary section spends one generation request; others use retrieval
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	reportTitle    string
	reportSections []string
	reportOutput   string
)

// NewReportCmd creates the report command
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a multi-section report",
		Long: `Assemble a report from the ingested documents, rendered as Markdown.

The default sections are Summary, Diagnosis, Treatment, and Lab
Results. Only the Summary section spends a generation request; the
rest come from retrieval alone. Sections with no matching content get
an explicit placeholder.

Examples:
  medassist report
  medassist report --title "Visit Summary" --sections Summary,Medications
  medassist report --output report.md`,
		RunE: runReport,
	}

	cmd.Flags().StringVar(&reportTitle, "title", "", "Report title")
	cmd.Flags().StringSliceVar(&reportSections, "sections", nil, "Section names to include")
	cmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Write the report to a file")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	report, err := a.Orchestrator.Report(cmd.Context(), reportTitle, reportSections)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), report)
	}

	markdown := report.RenderMarkdown()
	if reportOutput != "" {
		if err := os.WriteFile(reportOutput, []byte(markdown), 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Report written to %s\n", reportOutput)
		}
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), markdown)
	return nil
}
