package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hookguard/hookguard/internal/domain"
)

func callTool(t *testing.T, h func(context.Context, mcplib.CallToolRequest) (*mcplib.CallToolResult, error), args map[string]any) *mcplib.CallToolResult {
	t.Helper()
	var req mcplib.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok)
	return text.Text
}

func newHookProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".hookguard.yaml"), []byte("rule_set: minimal\ndialects: []\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".husky"), 0755))
	script := filepath.Join(dir, ".husky", "pre-commit")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\r\necho test\r\n"), 0755))
	require.NoError(t, os.Chmod(script, 0755))
	return dir
}

func TestHandleCheck(t *testing.T) {
	dir := newHookProject(t)

	res := callTool(t, handleCheck(dir, nil), map[string]any{"script": ".husky/pre-commit"})
	assert.False(t, res.IsError, resultText(t, res))

	var rep domain.PolicyReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &rep))
	assert.Equal(t, "minimal", rep.RuleSet)
	assert.True(t, rep.Passed)
	require.Len(t, rep.Violations, 1)
	assert.Equal(t, "line-endings", rep.Violations[0].RuleID)
}

func TestHandleCheck_FailOnWarning(t *testing.T) {
	dir := newHookProject(t)

	res := callTool(t, handleCheck(dir, nil), map[string]any{"script": ".husky/pre-commit", "fail_on": "warning"})
	var rep domain.PolicyReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &rep))
	assert.False(t, rep.Passed)
}

func TestHandleCheck_Errors(t *testing.T) {
	dir := newHookProject(t)
	h := handleCheck(dir, nil)

	res := callTool(t, h, map[string]any{})
	assert.True(t, res.IsError)

	res = callTool(t, h, map[string]any{"script": ".husky/pre-commit", "fail_on": "fatal"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "unknown severity")

	res = callTool(t, h, map[string]any{"script": ".husky/missing"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "not found")
}

func TestHandleListRules(t *testing.T) {
	dir := newHookProject(t)

	res := callTool(t, handleListRules(dir, nil), map[string]any{})
	require.False(t, res.IsError)

	var out struct {
		RuleSet string            `json:"rule_set"`
		Rules   []domain.RuleInfo `json:"rules"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &out))
	assert.Equal(t, "minimal", out.RuleSet)
	assert.Len(t, out.Rules, 3)

	res = callTool(t, handleListRules(dir, nil), map[string]any{"rule_set": "nope"})
	assert.True(t, res.IsError)
}
