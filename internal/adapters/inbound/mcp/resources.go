package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/driftguard/driftguard/internal/adapters/outbound/config"
	"github.com/driftguard/driftguard/internal/adapters/outbound/detector"
	"github.com/driftguard/driftguard/internal/application"
)

// registerResources registers all driftguard MCP resources on the given server.
func registerResources(s *server.MCPServer, workspacePath string) {
	s.AddResource(
		mcplib.NewResource(
			"driftguard://rules",
			"Effective Rules",
			mcplib.WithResourceDescription("Effective rule set for the workspace with per-key provenance"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(workspacePath),
	)

	s.AddResource(
		mcplib.NewResource(
			"driftguard://profile",
			"Capability Profile",
			mcplib.WithResourceDescription("Detected capability profile of the workspace"),
			mcplib.WithMIMEType("application/json"),
		),
		handleProfileResource(workspacePath),
	)
}

func handleRulesResource(workspacePath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		resolution, err := application.ResolveRules(config.New(), "", workspacePath, false)
		if err != nil {
			return nil, fmt.Errorf("resolving rules: %w", err)
		}

		data, err := json.MarshalIndent(map[string]any{
			"rules":      resolution.Rules,
			"provenance": resolution.Provenance,
			"warnings":   resolution.Warnings,
		}, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling rules: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "driftguard://rules",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleProfileResource(workspacePath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		profile := detector.New().Detect(workspacePath)

		data, err := json.MarshalIndent(profile, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling profile: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "driftguard://profile",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
