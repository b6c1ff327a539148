package rules_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/hookguard/hookguard/internal/domain/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type statFS struct{}

func (statFS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }
func (statFS) ReadFile(path string) ([]byte, error)  { return os.ReadFile(path) }

func TestPathSafetyRule(t *testing.T) {
	r := rules.NewPathSafetyRule("config-path", "--config", []string{"tools/**"}, "", nil)

	tests := []struct {
		name     string
		line     string
		contains string
	}{
		{"relative under tools", "gitleaks protect --config tools/security/.gitleaks.toml", ""},
		{"equals form", "gitleaks protect --config=tools/.gitleaks.toml", ""},
		{"quoted", `gitleaks protect --config "tools/my rules.toml"`, ""},
		{"absolute", "gitleaks protect --config /etc/gitleaks.toml", "absolute"},
		{"home", "gitleaks protect --config ~/gitleaks.toml", "absolute"},
		{"parent segment", "gitleaks protect --config tools/../../secrets.toml", "\"..\""},
		{"outside allowed", "gitleaks protect --config config/.gitleaks.toml", "must live under tools/**"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := evaluate(t, r, "#!/bin/sh\n"+tt.line+"\n")
			if tt.contains == "" {
				assert.Empty(t, vs)
				return
			}
			require.Len(t, vs, 1)
			assert.Equal(t, 2, vs[0].Line)
			assert.Contains(t, vs[0].Message, tt.contains)
		})
	}
}

func TestPathSafetyRule_ChecksExistenceUnderRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tools", "security"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "tools", "security", ".gitleaks.toml"), []byte("title = \"x\"\n"), 0o644))

	r := rules.NewPathSafetyRule("config-path", "--config", []string{"tools/**"}, root, statFS{})

	assert.Empty(t, evaluate(t, r, "gitleaks protect --config tools/security/.gitleaks.toml\n"))

	vs := evaluate(t, r, "gitleaks protect --config tools/missing.toml\n")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "does not exist")
}

func TestPathSafetyRule_BadPattern(t *testing.T) {
	r := rules.NewPathSafetyRule("config-path", "--config", []string{"tools/[a"}, "", nil)
	_, err := r.Evaluate(newDoc("gitleaks protect --config tools/x.toml\n"))
	assert.Error(t, err)
}

func TestQuotingRule(t *testing.T) {
	r := rules.NewQuotingRule("config-quoting", "--config")

	tests := []struct {
		name     string
		line     string
		contains string
	}{
		{"plain token", "gitleaks protect --config tools/x.toml --staged", ""},
		{"double quoted", `gitleaks protect --config "tools/a b.toml"`, ""},
		{"single quoted", `gitleaks protect --config='tools/a b.toml'`, ""},
		{"unterminated", `gitleaks protect --config "tools/a b.toml`, "unterminated"},
		{"mixed quoting", `gitleaks protect --config tools/"a b".toml`, "mixes quoted"},
		{"missing argument", "gitleaks protect --config", "missing its argument"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := evaluate(t, r, tt.line+"\n")
			if tt.contains == "" {
				assert.Empty(t, vs)
				return
			}
			require.Len(t, vs, 1)
			assert.Contains(t, vs[0].Message, tt.contains)
		})
	}
}
