package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hookguard/hookguard/internal/adapters/outbound/config"
	"github.com/hookguard/hookguard/internal/adapters/outbound/gitinfo"
	"github.com/hookguard/hookguard/internal/adapters/outbound/history"
	"github.com/hookguard/hookguard/internal/adapters/outbound/shell"
	"github.com/hookguard/hookguard/internal/adapters/outbound/source"
	"github.com/hookguard/hookguard/internal/application"
	"github.com/hookguard/hookguard/internal/domain"
	"github.com/hookguard/hookguard/internal/domain/rules"
)

// registerTools registers all hookguard MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, logger *slog.Logger) {
	s.AddTool(
		mcplib.NewTool("hookguard_check",
			mcplib.WithDescription("Check a hook script against the project's policy rules and shell syntax. Returns the policy report as JSON."),
			mcplib.WithString("script",
				mcplib.Required(),
				mcplib.Description("Path of the hook script relative to the project root (e.g. .husky/pre-commit)"),
			),
			mcplib.WithString("rule_set", mcplib.Description("Rule set to apply (defaults to the configured one)")),
			mcplib.WithString("fail_on", mcplib.Description("Lowest severity that fails the check: error or warning")),
		),
		handleCheck(projectPath, logger),
	)

	s.AddTool(
		mcplib.NewTool("hookguard_list_rules",
			mcplib.WithDescription("List the rules of a rule set with their severity"),
			mcplib.WithString("rule_set", mcplib.Description("Rule set to list (defaults to the configured one)")),
		),
		handleListRules(projectPath, logger),
	)
}

func newCheckService(logger *slog.Logger) *application.CheckService {
	fsys := source.OSFileSystem{}
	return application.NewCheckService(
		source.New(fsys),
		shell.New(nil, logger),
		config.New(),
		gitinfo.New(),
		history.New(),
		fsys,
		logger,
	)
}

func handleCheck(projectPath string, logger *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		script, err := request.RequireString("script")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		opts := application.CheckOptions{RuleSet: request.GetString("rule_set", "")}
		if f := request.GetString("fail_on", ""); f != "" {
			sev, err := domain.ParseSeverity(f)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			opts.FailOn = sev
		}

		if !filepath.IsAbs(script) {
			script = filepath.Join(projectPath, script)
		}
		rep, err := newCheckService(logger).Check(ctx, projectPath, script, opts)
		if err != nil {
			if errors.Is(err, domain.ErrCancelled) {
				return errorResult("check cancelled"), nil
			}
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(rep)
	}
}

func handleListRules(projectPath string, logger *slog.Logger) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		opts := application.CheckOptions{RuleSet: request.GetString("rule_set", "")}
		cfg, rs, err := newCheckService(logger).Rules(projectPath, opts)
		if err != nil {
			return errorResult(fmt.Sprintf("loading rules failed: %v", err)), nil
		}
		return jsonResult(map[string]any{
			"rule_set": cfg.RuleSet,
			"rules":    rules.Describe(rs),
		})
	}
}

// jsonResult marshals v into a text content result.
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
