// ABOUTME: CLI command to delete a document from the knowledge base
// ABOUTME: Deleting an unknown document succeeds without effect
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCmd creates the delete command
func NewDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <document-id>",
		Short: "Delete a document from the knowledge base",
		Long: `Remove a document and all its segments from the knowledge base.

Deleting a document that does not exist succeeds without effect, so
delete is safe to retry.

Examples:
  medassist delete doc_ab12cd34`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if err := a.Orchestrator.DeleteDocument(args[0]); err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted %s\n", args[0])
	}
	return nil
}
