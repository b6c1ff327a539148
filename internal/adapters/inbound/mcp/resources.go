package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hookguard/hookguard/internal/application"
	"github.com/hookguard/hookguard/internal/domain"
	"github.com/hookguard/hookguard/internal/domain/rules"
)

// registerResources registers all hookguard MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string, logger *slog.Logger) {
	// 1. hookguard://config - effective configuration
	s.AddResource(
		mcplib.NewResource(
			"hookguard://config",
			"Configuration",
			mcplib.WithResourceDescription("Effective hookguard configuration after defaults are applied"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath, logger),
	)

	// 2. hookguard://rulesets - available rule sets
	s.AddResource(
		mcplib.NewResource(
			"hookguard://rulesets",
			"Rule Sets",
			mcplib.WithResourceDescription("Names and descriptions of the built-in rule sets"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRuleSetsResource(),
	)

	// 3. hookguard://history - recorded runs
	s.AddResource(
		mcplib.NewResource(
			"hookguard://history",
			"Check History",
			mcplib.WithResourceDescription("Runs recorded with hookguard check --record"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(projectPath, logger),
	)
}

func handleConfigResource(projectPath string, logger *slog.Logger) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := newCheckService(logger).ResolveConfig(projectPath, application.CheckOptions{})
		if err != nil {
			return nil, fmt.Errorf("loading config failed: %w", err)
		}
		return jsonContents("hookguard://config", cfg)
	}
}

func handleRuleSetsResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		type entry struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		var out []entry
		for _, n := range rules.Names() {
			rs, _ := rules.Lookup(n)
			out = append(out, entry{Name: rs.Name, Description: rs.Description})
		}
		return jsonContents("hookguard://rulesets", out)
	}
}

func handleHistoryResource(projectPath string, logger *slog.Logger) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := newCheckService(logger).History(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading history failed: %w", err)
		}
		if entries == nil {
			entries = []domain.RunEntry{}
		}
		return jsonContents("hookguard://history", entries)
	}
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
