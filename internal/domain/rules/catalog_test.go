package rules_test

import (
	"testing"

	"github.com/hookguard/hookguard/internal/domain"
	"github.com/hookguard/hookguard/internal/domain/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodHuskyHook = `#!/usr/bin/env sh
. "$(dirname -- "$0")/_/husky.sh"

# Secrets detection: scan staged changes with gitleaks when it is installed
if command -v gitleaks >/dev/null 2>&1; then
  gitleaks protect --staged --config tools/security/.gitleaks.toml
fi

# Run lint, typecheck and test on nx affected projects
pnpm nx affected -t lint typecheck test --base=HEAD~1
`

func ids(rs []rules.Rule) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.ID())
	}
	return out
}

func evaluateAll(t *testing.T, rs []rules.Rule, text string) []domain.Violation {
	t.Helper()
	var out []domain.Violation
	for _, r := range rs {
		out = append(out, evaluate(t, r, text)...)
	}
	return out
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"husky-pre-commit", "minimal", "posix-hook"}, rules.Names())

	rs, ok := rules.Lookup("minimal")
	require.True(t, ok)
	assert.NotEmpty(t, rs.Description)

	_, ok = rules.Lookup("nope")
	assert.False(t, ok)
}

func TestBuild_UnknownRuleSet(t *testing.T) {
	_, err := rules.Build("nope", rules.Options{Config: domain.DefaultConfig()})
	assert.ErrorContains(t, err, "unknown rule set")
}

func TestBuild_UniqueIDs(t *testing.T) {
	for _, name := range rules.Names() {
		rs, err := rules.Build(name, rules.Options{Config: domain.DefaultConfig()})
		require.NoError(t, err, name)

		seen := map[string]bool{}
		for _, id := range ids(rs) {
			assert.False(t, seen[id], "%s: duplicate id %s", name, id)
			seen[id] = true
		}
	}
}

func TestBuild_Minimal(t *testing.T) {
	rs, err := rules.Build("minimal", rules.Options{Config: domain.DefaultConfig()})
	require.NoError(t, err)
	assert.Equal(t, []string{"shebang", "line-endings", "executable"}, ids(rs))
}

func TestBuild_DisableAndCustomRules(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Disable = []string{"executable"}
	cfg.CustomRules = []domain.CustomRule{
		{Kind: domain.KindRequiredSubstring, ID: "needs-gitleaks", Text: "gitleaks"},
	}

	rs, err := rules.Build("minimal", rules.Options{Config: cfg})
	require.NoError(t, err)
	assert.Equal(t, []string{"shebang", "line-endings", "needs-gitleaks"}, ids(rs))
}

func TestBuild_CustomRuleShadowingBuiltin(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.CustomRules = []domain.CustomRule{
		{Kind: domain.KindRequiredSubstring, ID: "shebang", Text: "x"},
	}
	_, err := rules.Build("minimal", rules.Options{Config: cfg})
	assert.ErrorContains(t, err, "duplicate rule id")
}

func TestHuskyPreCommit_GoodHookPasses(t *testing.T) {
	rs, err := rules.Build("husky-pre-commit", rules.Options{Config: domain.DefaultConfig()})
	require.NoError(t, err)

	assert.Empty(t, evaluateAll(t, rs, goodHuskyHook))
}

func TestHuskyPreCommit_ViolationsAreIdentified(t *testing.T) {
	rs, err := rules.Build("husky-pre-commit", rules.Options{Config: domain.DefaultConfig()})
	require.NoError(t, err)

	script := "#!/bin/sh\n" +
		". \"$(dirname -- \"$0\")/_/husky.sh\"\n" +
		"gitleaks protect --staged --config tools/security/.gitleaks.toml || true\n" +
		"pnpm nx affected -t lint test --base=HEAD~1\n"

	got := map[string]bool{}
	for _, v := range evaluateAll(t, rs, script) {
		got[v.RuleID] = true
	}
	for _, id := range []string{"gitleaks-guard", "gitleaks-not-silenced", "nx-targets", "nx-comment", "comments"} {
		assert.True(t, got[id], "expected a %s violation", id)
	}
	for _, id := range []string{"shebang", "husky-source", "gitleaks-staged", "config-path", "no-npm"} {
		assert.False(t, got[id], "unexpected %s violation", id)
	}
}

func TestPosixHook_Portability(t *testing.T) {
	rs, err := rules.Build("posix-hook", rules.Options{Config: domain.DefaultConfig()})
	require.NoError(t, err)

	vs := evaluateAll(t, rs, "#!/bin/sh\n# check the branch name\nif [[ $BASH_VERSION ]]; then echo bash; fi\n")
	require.Len(t, vs, 2)
	for _, v := range vs {
		assert.Equal(t, "portability", v.RuleID)
		assert.Equal(t, domain.SeverityWarning, v.Severity)
	}
}
