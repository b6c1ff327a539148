package rules_test

import (
	"testing"

	"github.com/hookguard/hookguard/internal/domain/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGitleaksGuard() rules.Rule {
	return rules.NewScopedBlockRule("gitleaks-guard", "command -v gitleaks", "if", []string{"gitleaks protect"})
}

func TestScopedBlockRule_Guarded(t *testing.T) {
	script := "#!/bin/sh\n" +
		"if command -v gitleaks >/dev/null 2>&1; then\n" +
		"  gitleaks protect --staged\n" +
		"fi\n" +
		"pnpm test\n"
	assert.Empty(t, evaluate(t, newGitleaksGuard(), script))
}

func TestScopedBlockRule_SingleLineGuard(t *testing.T) {
	script := "#!/bin/sh\nif command -v gitleaks; then gitleaks protect --staged; fi\n"
	assert.Empty(t, evaluate(t, newGitleaksGuard(), script))
}

func TestScopedBlockRule_NestedBlock(t *testing.T) {
	script := "#!/bin/sh\n" +
		"if command -v gitleaks >/dev/null 2>&1; then\n" +
		"  if [ -f .gitleaks.toml ]; then\n" +
		"    echo config found\n" +
		"  fi\n" +
		"  gitleaks protect --staged\n" +
		"fi\n"
	assert.Empty(t, evaluate(t, newGitleaksGuard(), script))
}

func TestScopedBlockRule_CommandOutsideBlock(t *testing.T) {
	script := "#!/bin/sh\n" +
		"if command -v gitleaks >/dev/null 2>&1; then\n" +
		"  echo found\n" +
		"fi\n" +
		"gitleaks protect --staged\n"

	vs := evaluate(t, newGitleaksGuard(), script)
	require.Len(t, vs, 1)
	assert.Equal(t, 5, vs[0].Line)
	assert.Contains(t, vs[0].Message, "outside")
}

func TestScopedBlockRule_MissingGuard(t *testing.T) {
	vs := evaluate(t, newGitleaksGuard(), "#!/bin/sh\ngitleaks protect --staged\n")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "no \"command -v gitleaks\" guard")
}

func TestScopedBlockRule_GuardInCommentIgnored(t *testing.T) {
	vs := evaluate(t, newGitleaksGuard(), "#!/bin/sh\n# if command -v gitleaks\ngitleaks protect\n")
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "no \"command -v gitleaks\" guard")
}

func TestScopedBlockRule_Unclosed(t *testing.T) {
	script := "#!/bin/sh\nif command -v gitleaks; then\n  gitleaks protect --staged\n"

	vs := evaluate(t, newGitleaksGuard(), script)
	require.Len(t, vs, 1)
	assert.Equal(t, 2, vs[0].Line)
	assert.Contains(t, vs[0].Message, "never closed")
}

func TestScopedBlockRule_GuardWithoutIf(t *testing.T) {
	script := "#!/bin/sh\ncommand -v gitleaks && gitleaks protect --staged\n"

	vs := evaluate(t, newGitleaksGuard(), script)
	require.Len(t, vs, 2)
	assert.Contains(t, vs[0].Message, "must open with \"if\"")
	assert.Contains(t, vs[1].Message, "missing \"then\"")
}

func TestScopedBlockRule_GuardDoesNotRunCommand(t *testing.T) {
	script := "#!/bin/sh\nif command -v gitleaks; then\n  echo found\nfi\n"

	vs := evaluate(t, newGitleaksGuard(), script)
	require.Len(t, vs, 1)
	assert.Contains(t, vs[0].Message, "does not run")
}

func TestScopedBlockRule_CaseBlock(t *testing.T) {
	r := rules.NewScopedBlockRule("ci-guard", "case \"$CI\"", "case", []string{"pnpm test"})
	script := "#!/bin/sh\ncase \"$CI\" in\n  true) pnpm test ;;\nesac\n"
	assert.Empty(t, evaluate(t, r, script))
}
