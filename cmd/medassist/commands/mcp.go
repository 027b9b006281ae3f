// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Exposes the document assistant to LLM agents via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"medassist/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the document assistant as an MCP (Model Context Protocol)
server, exposing ingest, ask, extract, summarize, and report tools
over stdio.`,
		RunE: runMCPServer,
		Example: `  # Start MCP server (typically called by an MCP client)
  medassist mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "medassist": {
  #       "command": "medassist",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCPServer starts the MCP server
func runMCPServer(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer(
		"Medical Document Assistant",
		"0.1.0",
	)

	mcp.RegisterTools(server, a.Orchestrator)

	// Graceful shutdown on interrupt
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Document assistant MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
		if err := a.Close(); err != nil {
			log.Printf("Warning: Error closing storage: %v", err)
		}
	case err := <-serverErr:
		_ = a.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
