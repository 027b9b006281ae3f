// ABOUTME: CLI command to reset conversation state or the whole knowledge base
// ABOUTME: Full reset requires --force to avoid accidental data loss
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	resetAll     bool
	resetSession string
	resetForce   bool
)

// NewResetCmd creates the reset command
func NewResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset conversation state or the knowledge base",
		Long: `Reset conversation state.

By default clears one session's conversation history, leaving the
knowledge base intact. With --all, removes every document, segment,
and session; this requires --force.

Examples:
  medassist reset
  medassist reset --session visit-2024
  medassist reset --all --force`,
		RunE: runReset,
	}

	cmd.Flags().BoolVar(&resetAll, "all", false, "Clear the knowledge base and all sessions")
	cmd.Flags().StringVar(&resetSession, "session", "default", "Session to clear")
	cmd.Flags().BoolVar(&resetForce, "force", false, "Confirm destructive reset")

	return cmd
}

func runReset(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if resetAll {
		if !resetForce {
			return fmt.Errorf("--all removes every document; pass --force to confirm")
		}
		if err := a.Orchestrator.ResetIndex(); err != nil {
			return fmt.Errorf("resetting knowledge base: %w", err)
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Knowledge base cleared\n")
		}
		return nil
	}

	a.Orchestrator.ResetSession(resetSession)
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Session %q cleared\n", resetSession)
	}
	return nil
}
