// ABOUTME: MCP tool handler implementations for the document assistant server
// ABOUTME: Wraps orchestrator results in a uniform status envelope with typed error kinds
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"medassist/internal/core"

	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	orchestrator *core.Orchestrator
}

// envelope is the uniform response shape for every tool. Success carries
// data; failure carries a machine-readable kind plus a human message.
type envelope struct {
	Status    string      `json:"status"`
	Data      interface{} `json:"data,omitempty"`
	ErrorKind string      `json:"error_kind,omitempty"`
	Message   string      `json:"message,omitempty"`
}

func okResult(data interface{}) (*mcp.CallToolResult, error) {
	return marshalEnvelope(envelope{Status: "ok", Data: data})
}

func errResult(err error) (*mcp.CallToolResult, error) {
	return marshalEnvelope(envelope{
		Status:    "error",
		ErrorKind: core.ErrorKind(err),
		Message:   err.Error(),
	})
}

func marshalEnvelope(env envelope) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// IngestDocuments handles the ingest_documents tool
func (h *Handlers) IngestDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths := stringArray(request, "paths")
	if len(paths) == 0 {
		return mcp.NewToolResultError("paths argument is required and must be a non-empty string array"), nil
	}

	batch := h.orchestrator.IngestBatch(ctx, paths)
	return okResult(batch)
}

// AskQuestion handles the ask_question tool
func (h *Handlers) AskQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}
	sessionID := request.GetString("session_id", "default")

	result, err := h.orchestrator.Ask(ctx, sessionID, question)
	if err != nil {
		return errResult(err)
	}
	return okResult(result)
}

// ExtractSection handles the extract_section tool
func (h *Handlers) ExtractSection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	section, err := request.RequireString("section")
	if err != nil {
		return mcp.NewToolResultError("section argument is required and must be a string"), nil
	}

	result, err := h.orchestrator.ExtractSection(section)
	if err != nil {
		return errResult(err)
	}
	return okResult(result)
}

// ExtractStructured handles the extract_structured tool
func (h *Handlers) ExtractStructured(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID, err := request.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("document_id argument is required and must be a string"), nil
	}
	fields := stringArray(request, "fields")
	if len(fields) == 0 {
		return mcp.NewToolResultError("fields argument is required and must be a non-empty string array"), nil
	}

	result, err := h.orchestrator.ExtractStructured(documentID, fields)
	if err != nil {
		return errResult(err)
	}
	return okResult(result)
}

// SummarizeDocuments handles the summarize_documents tool
func (h *Handlers) SummarizeDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	maxWords := request.GetInt("max_words", 500)

	result, err := h.orchestrator.Summarize(ctx, maxWords)
	if err != nil {
		return errResult(err)
	}
	return okResult(result)
}

// GenerateReport handles the generate_report tool
func (h *Handlers) GenerateReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title := request.GetString("title", "")
	sections := stringArray(request, "sections")

	report, err := h.orchestrator.Report(ctx, title, sections)
	if err != nil {
		return errResult(err)
	}
	return okResult(map[string]interface{}{
		"report":   report,
		"markdown": report.RenderMarkdown(),
	})
}

// GetStats handles the get_stats tool
func (h *Handlers) GetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.orchestrator.Stats()
	if err != nil {
		return errResult(err)
	}
	docs, err := h.orchestrator.Documents()
	if err != nil {
		return errResult(err)
	}
	return okResult(map[string]interface{}{
		"stats":     stats,
		"documents": docs,
	})
}

// DeleteDocument handles the delete_document tool
func (h *Handlers) DeleteDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	documentID, err := request.RequireString("document_id")
	if err != nil {
		return mcp.NewToolResultError("document_id argument is required and must be a string"), nil
	}

	if err := h.orchestrator.DeleteDocument(documentID); err != nil {
		return errResult(err)
	}
	return okResult(map[string]interface{}{"deleted": documentID})
}

// Reset handles the reset tool
func (h *Handlers) Reset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scope, err := request.RequireString("scope")
	if err != nil {
		return mcp.NewToolResultError("scope argument is required and must be a string"), nil
	}

	switch scope {
	case "session":
		sessionID := request.GetString("session_id", "default")
		h.orchestrator.ResetSession(sessionID)
		return okResult(map[string]interface{}{"reset": "session", "session_id": sessionID})
	case "all":
		if err := h.orchestrator.ResetIndex(); err != nil {
			return errResult(err)
		}
		return okResult(map[string]interface{}{"reset": "all"})
	default:
		return mcp.NewToolResultError(fmt.Sprintf("scope must be \"session\" or \"all\", got %q", scope)), nil
	}
}

// stringArray extracts an optional string array argument from the request
func stringArray(request mcp.CallToolRequest, key string) []string {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	raw, exists := args[key]
	if !exists {
		return nil
	}
	arr, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	result := make([]string, 0, len(arr))
	for _, item := range arr {
		if str, ok := item.(string); ok {
			result = append(result, str)
		}
	}
	return result
}
