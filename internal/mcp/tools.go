// ABOUTME: MCP tool definitions and registration for the document assistant server
// ABOUTME: Defines JSON schemas for the ingest, ask, extract, summarize, and report tools
package mcp

import (
	"medassist/internal/core"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, orchestrator *core.Orchestrator) *Handlers {
	handlers := &Handlers{orchestrator: orchestrator}

	// 1. ingest_documents - Add documents to the knowledge base
	server.AddTool(mcp.Tool{
		Name:        "ingest_documents",
		Description: "Ingest one or more document files into the knowledge base. Each file is extracted, chunked, embedded, and indexed. Files are processed independently; a corrupt file is reported per-file and does not abort the batch.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"paths": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Filesystem paths of the documents to ingest",
				},
			},
			Required: []string{"paths"},
		},
	}, handlers.IngestDocuments)

	// 2. ask_question - Answer a question grounded in the indexed documents
	server.AddTool(mcp.Tool{
		Name:        "ask_question",
		Description: "Answer a question using retrieved document content. Maintains per-session conversation history so follow-up questions with pronouns resolve against the previous question.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "The question to answer",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Conversation session identifier (default: \"default\")",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskQuestion)

	// 3. extract_section - Pull a named section from the documents
	server.AddTool(mcp.Tool{
		Name:        "extract_section",
		Description: "Extract a named section (e.g. Diagnosis, Lab Results) from the indexed documents. Retrieval only, no generation request is spent.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"section": map[string]interface{}{
					"type":        "string",
					"description": "Section name to extract",
				},
			},
			Required: []string{"section"},
		},
	}, handlers.ExtractSection)

	// 4. extract_structured - Extract schema fields from one document
	server.AddTool(mcp.Tool{
		Name:        "extract_structured",
		Description: "Extract a set of named fields from a single document, returned as a field-to-content map.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"document_id": map[string]interface{}{
					"type":        "string",
					"description": "Document to extract from",
				},
				"fields": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Field names to extract",
				},
			},
			Required: []string{"document_id", "fields"},
		},
	}, handlers.ExtractStructured)

	// 5. summarize_documents - Summarize the whole collection
	server.AddTool(mcp.Tool{
		Name:        "summarize_documents",
		Description: "Generate a professional summary of all indexed documents.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"max_words": map[string]interface{}{
					"type":        "number",
					"description": "Approximate summary length in words (default: 500)",
					"default":     500,
				},
			},
		},
	}, handlers.SummarizeDocuments)

	// 6. generate_report - Assemble a multi-section report
	server.AddTool(mcp.Tool{
		Name:        "generate_report",
		Description: "Assemble a multi-section report (Summary, Diagnosis, Treatment, Lab Results by default) rendered as Markdown.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Report title (default: \"Document Report\")",
				},
				"sections": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Section names to include (default: standard set)",
				},
			},
		},
	}, handlers.GenerateReport)

	// 7. get_stats - Knowledge base statistics
	server.AddTool(mcp.Tool{
		Name:        "get_stats",
		Description: "Get document and segment counts for the knowledge base, plus the list of ingested documents.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetStats)

	// 8. delete_document - Remove one document
	server.AddTool(mcp.Tool{
		Name:        "delete_document",
		Description: "Remove a document and all its segments from the knowledge base. Deleting an unknown document succeeds without effect.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"document_id": map[string]interface{}{
					"type":        "string",
					"description": "Document to delete",
				},
			},
			Required: []string{"document_id"},
		},
	}, handlers.DeleteDocument)

	// 9. reset - Clear a session or the whole knowledge base
	server.AddTool(mcp.Tool{
		Name:        "reset",
		Description: "Reset conversation state. Scope \"session\" clears one session's history; scope \"all\" clears the knowledge base and every session.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"scope": map[string]interface{}{
					"type":        "string",
					"description": "\"session\" or \"all\"",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session to clear when scope is \"session\" (default: \"default\")",
				},
			},
			Required: []string{"scope"},
		},
	}, handlers.Reset)

	return handlers
}
