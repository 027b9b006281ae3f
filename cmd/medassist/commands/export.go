// ABOUTME: CLI command to export the knowledge base to a file
// ABOUTME: Supports YAML and Markdown formats plus an optional embeddings dump
package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	var (
		exportFormat   string
		embeddingsPath string
	)

	cmd := &cobra.Command{
		Use:   "export <output-file>",
		Short: "Export the knowledge base to a file",
		Long: `Export all ingested documents and their segments to a file.

The format is inferred from the file extension (.yaml, .yml, .md) unless
--format is given. Embeddings are large and excluded by default; pass
--embeddings to write them to a separate JSON file.

Examples:
  medassist export backup.yaml
  medassist export notes.md --format markdown
  medassist export backup.yaml --embeddings vectors.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0], exportFormat, embeddingsPath)
		},
	}

	cmd.Flags().StringVar(&exportFormat, "format", "", "Export format: yaml or markdown (default: from extension)")
	cmd.Flags().StringVar(&embeddingsPath, "embeddings", "", "Also write embeddings to this JSON file")

	return cmd
}

func runExport(cmd *cobra.Command, outputPath, format, embeddingsPath string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if format == "" {
		switch strings.ToLower(filepath.Ext(outputPath)) {
		case ".md", ".markdown":
			format = "markdown"
		default:
			format = "yaml"
		}
	}

	switch format {
	case "yaml", "yml":
		err = a.Store.ExportToYAML(outputPath)
	case "markdown", "md":
		err = a.Store.ExportToMarkdown(outputPath)
	default:
		return fmt.Errorf("unknown format %q (valid: yaml, markdown)", format)
	}
	if err != nil {
		return fmt.Errorf("exporting knowledge base: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported knowledge base to %s\n", outputPath)
	}

	if embeddingsPath != "" {
		if err := a.Store.ExportEmbeddingsToJSON(embeddingsPath); err != nil {
			return fmt.Errorf("exporting embeddings: %w", err)
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported embeddings to %s\n", embeddingsPath)
		}
	}

	return nil
}
