package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/driftguard/driftguard/internal/adapters/outbound/config"
	"github.com/driftguard/driftguard/internal/adapters/outbound/detector"
	"github.com/driftguard/driftguard/internal/adapters/outbound/gitinfo"
	"github.com/driftguard/driftguard/internal/adapters/outbound/scanner"
	"github.com/driftguard/driftguard/internal/application"
)

// registerTools registers all driftguard MCP tools on the given server.
func registerTools(s *server.MCPServer, workspacePath string) {
	s.AddTool(
		mcplib.NewTool("driftguard_validate",
			mcplib.WithDescription("Run registered validators against the workspace and return the run summary as JSON"),
			mcplib.WithString("validators",
				mcplib.Description("Comma-separated validator names (default: all)"),
			),
			mcplib.WithBoolean("strict", mcplib.Description("Treat warnings as errors")),
			mcplib.WithBoolean("keep_going", mcplib.Description("Run all validators instead of stopping at the first failure")),
		),
		handleValidate(workspacePath),
	)

	s.AddTool(
		mcplib.NewTool("driftguard_drift",
			mcplib.WithDescription("Run drift detection against the workspace and return the drift report as JSON"),
			mcplib.WithNumber("level",
				mcplib.Description("Drift level: 1 inventory, 2 consistency, 3 placement (default: 1)"),
			),
		),
		handleDrift(workspacePath),
	)
}

// newServices creates the standard set of outbound adapters and services.
func newServices() (*application.ValidateService, *application.DriftService) {
	loader := config.New()
	det := detector.New()
	scan := scanner.New()
	rev := gitinfo.New()
	return application.NewValidateService(loader, det, scan, rev),
		application.NewDriftService(loader, det, scan, rev)
}

func handleValidate(workspacePath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		args := request.GetArguments()

		var names []string
		if raw, _ := args["validators"].(string); raw != "" {
			for _, name := range strings.Split(raw, ",") {
				if name = strings.TrimSpace(name); name != "" {
					names = append(names, name)
				}
			}
		}
		strict, _ := args["strict"].(bool)
		keepGoing, _ := args["keep_going"].(bool)

		validateSvc, _ := newServices()
		summary, err := validateSvc.Run(workspacePath, application.RunOptions{
			Names:     names,
			Strict:    strict,
			KeepGoing: keepGoing,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("validation run failed: %v", err)), nil
		}
		return jsonResult(summary)
	}
}

func handleDrift(workspacePath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		// JSON numbers arrive as float64.
		level := 1
		if raw, ok := request.GetArguments()["level"].(float64); ok {
			level = int(raw)
		}

		_, driftSvc := newServices()
		report, err := driftSvc.Run(workspacePath, application.DriftOptions{Level: level})
		if err != nil {
			return errorResult(fmt.Sprintf("drift run failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
