package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/brewkit/brewkit/internal/catalog"
	"github.com/brewkit/brewkit/internal/tool"
)

// NewMCPServer exposes every registered ordering tool over MCP, plus the menu
// as a readable resource. Tool schemas are passed through as-is so MCP clients
// see exactly what the chat model sees.
func NewMCPServer(registry *tool.Registry, menu []catalog.Item) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		"brewkit",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("brewkit — coffee shop menu search and ordering."),
		server.WithRecovery(),
	)

	for _, spec := range registry.List() {
		schema, err := json.Marshal(spec.Parameters)
		if err != nil {
			return nil, fmt.Errorf("marshaling schema for tool %s: %w", spec.Name, err)
		}
		s.AddTool(
			mcp.NewToolWithRawSchema(spec.Name, spec.Description, schema),
			mcpInvoke(registry, spec.Name),
		)
	}

	s.AddResource(
		mcp.NewResource(
			"menu://items",
			"Coffee Shop Menu",
			mcp.WithResourceDescription("The full menu as JSON"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceMenu(menu),
	)

	return s, nil
}

func mcpInvoke(registry *tool.Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := registry.Invoke(ctx, name, req.GetArguments())
		if err != nil {
			return mcpError(err.Error()), nil
		}
		return mcpText(result), nil
	}
}

func mcpResourceMenu(menu []catalog.Item) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := json.Marshal(menu)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal menu: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
