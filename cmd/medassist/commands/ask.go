// ABOUTME: CLI command to ask questions grounded in the indexed documents
// ABOUTME: Supports one-shot questions and an interactive session mode
package commands

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"medassist/internal/app"
	"medassist/internal/core"
)

var (
	askSession     string
	askInteractive bool
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a question about the ingested documents",
		Long: `Ask a question answered from the ingested documents.

The answer is grounded in retrieved document segments and cites its
sources. Follow-up questions in the same session can use pronouns;
they are resolved against the previous question.

Examples:
  medassist ask "What medications is the patient taking?"
  medassist ask --session visit-2024 "What was the diagnosis?"
  medassist ask --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().StringVar(&askSession, "session", "default", "Conversation session ID")
	cmd.Flags().BoolVarP(&askInteractive, "interactive", "i", false, "Interactive question loop")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if askInteractive {
		return runAskLoop(cmd, a)
	}

	if len(args) == 0 {
		return fmt.Errorf("provide a question or use --interactive")
	}
	return askOnce(cmd, a, args[0])
}

func askOnce(cmd *cobra.Command, a *app.App, question string) error {
	result, err := a.Orchestrator.Ask(cmd.Context(), askSession, question)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return printJSON(cmd.OutOrStdout(), result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", result.Answer)
	if result.Grounded && !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nSources:\n")
		for _, src := range result.Sources {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s (similarity %.2f)\n", src.Filename, src.Score)
		}
	}
	return nil
}

// runAskLoop reads questions from stdin until EOF or "exit". Stats
// questions are answered locally without spending a model request.
func runAskLoop(cmd *cobra.Command, a *app.App) error {
	out := cmd.OutOrStdout()
	if !quiet {
		fmt.Fprintln(out, "Interactive mode. Type a question, or \"exit\" to quit.")
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		if core.DetermineIntent(input) != core.ActionAsk {
			stats, err := a.Orchestrator.Stats()
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "%d document(s), %d segment(s) in the knowledge base.\n",
				stats.DocumentCount, stats.SegmentCount)
			continue
		}

		if err := askOnce(cmd, a, input); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}
	}
	return scanner.Err()
}
