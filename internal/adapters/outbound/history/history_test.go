package history_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hookguard/hookguard/internal/adapters/outbound/history"
	"github.com/hookguard/hookguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)

func TestHistory_SaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	entry := domain.RunEntry{
		RunID:      "run-1",
		Path:       ".husky/pre-commit",
		RuleSet:    "husky-pre-commit",
		Errors:     2,
		Warnings:   1,
		CommitHash: "abc1234",
		Timestamp:  at,
	}

	err := h.Save(dir, entry)
	require.NoError(t, err)

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry, entries[0])
}

func TestHistory_AppendMultiple(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	require.NoError(t, h.Save(dir, domain.RunEntry{RunID: "r1", Errors: 3, Timestamp: at}))
	require.NoError(t, h.Save(dir, domain.RunEntry{RunID: "r2", Errors: 1, Timestamp: at}))
	require.NoError(t, h.Save(dir, domain.RunEntry{RunID: "r3", Passed: true, Timestamp: at}))

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "r1", entries[0].RunID)
	assert.True(t, entries[2].Passed)
}

func TestHistory_KeepsMostRecent(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	for i := 0; i < 205; i++ {
		require.NoError(t, h.Save(dir, domain.RunEntry{RunID: fmt.Sprintf("r%d", i)}))
	}

	entries, err := h.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 200)
	assert.Equal(t, "r5", entries[0].RunID)
	assert.Equal(t, "r204", entries[199].RunID)
}

func TestHistory_LoadEmpty(t *testing.T) {
	dir := t.TempDir()
	h := history.New()

	entries, err := h.Load(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestHistory_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, ".hookguard", "history", "runs.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(fp), 0755))
	require.NoError(t, os.WriteFile(fp, []byte("{not json"), 0644))

	_, err := history.New().Load(dir)
	assert.Error(t, err)
}

func TestHistory_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	nestedDir := filepath.Join(dir, "deep", "nested")
	h := history.New()

	err := h.Save(nestedDir, domain.RunEntry{RunID: "r1"})
	require.NoError(t, err)

	entries, err := h.Load(nestedDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestHistory_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	h := history.New()
	require.NoError(t, h.Save(dir, domain.RunEntry{RunID: "r1"}))
	require.NoError(t, h.Save(dir, domain.RunEntry{RunID: "r2"}))

	files, err := os.ReadDir(filepath.Join(dir, ".hookguard", "history"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "runs.json", files[0].Name())
}

func TestFilter(t *testing.T) {
	entries := []domain.RunEntry{
		{RunID: "a", Path: ".husky/pre-commit"},
		{RunID: "b", Path: ".husky/pre-push"},
		{RunID: "c", Path: "./.husky/pre-commit"},
		{RunID: "d", Path: ".husky/pre-commit"},
	}

	tests := []struct {
		name   string
		script string
		n      int
		want   []string
	}{
		{"all", "", 0, []string{"a", "b", "c", "d"}},
		{"by script", ".husky/pre-commit", 0, []string{"a", "c", "d"}},
		{"last", "", 2, []string{"c", "d"}},
		{"script and last", ".husky/pre-commit", 1, []string{"d"}},
		{"no match", "hooks/other", 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := []string{}
			for _, e := range history.Filter(entries, tt.script, tt.n) {
				got = append(got, e.RunID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
