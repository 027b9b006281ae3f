// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines the medassist command tree and shared output settings
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
███╗   ███╗███████╗██████╗  █████╗ ███████╗███████╗██╗███████╗████████╗
████╗ ████║██╔════╝██╔══██╗██╔══██╗██╔════╝██╔════╝██║██╔════╝╚══██╔══╝
██╔████╔██║█████╗  ██║  ██║███████║███████╗███████╗██║███████╗   ██║
██║╚██╔╝██║██╔══╝  ██║  ██║██╔══██║╚════██║╚════██║██║╚════██║   ██║
██║ ╚═╝ ██║███████╗██████╔╝██║  ██║███████║███████║██║███████║   ██║
╚═╝     ╚═╝╚══════╝╚═════╝ ╚═╝  ╚═╝╚══════╝╚══════╝╚═╝╚══════╝   ╚═╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "medassist",
		Short: "Medical document assistant with grounded Q&A",
		Long: banner + `
Medical document assistant. Ingests documents into a local knowledge
base, then answers questions grounded in the retrieved content, with
section extraction, summaries, and report generation.

All answers cite the document segments they were grounded in. When the
documents contain nothing relevant, the assistant says so instead of
guessing.`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format (auto, json, table)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Subcommands
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewExtractCmd())
	cmd.AddCommand(NewSummarizeCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewDeleteCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewResetCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
