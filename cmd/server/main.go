// ABOUTME: Main entry point for the document assistant MCP server with stdio transport
// ABOUTME: Initializes config, storage, and the pipeline, then registers all tools
package main

import (
	"log"
	"os"

	"medassist/internal/app"
	"medassist/internal/config"
	"medassist/internal/mcp"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - embedding and generation will not work")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize pipeline: %v", err)
	}
	defer a.Close()

	server := mcpserver.NewMCPServer(
		"Medical Document Assistant",
		"0.1.0",
	)

	mcp.RegisterTools(server, a.Orchestrator)

	log.Println("Document assistant MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
