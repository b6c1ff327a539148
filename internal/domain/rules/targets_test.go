package rules_test

import (
	"regexp"
	"testing"

	"github.com/hookguard/hookguard/internal/domain/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNxTargets() rules.Rule {
	return rules.NewTargetsRule("nx-targets", rules.TargetsSpec{
		Anchor:        "nx affected",
		Flag:          "-t",
		Targets:       []string{"lint", "typecheck", "test"},
		RequiredFlags: []string{"--base=HEAD~1"},
		Deprecated:    []string{"--base=HEAD --head=HEAD"},
		Banned:        []*regexp.Regexp{regexp.MustCompile(`--head=\S+`)},
	})
}

func TestTargetsRule(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		want     int
		contains string
	}{
		{"all targets", "pnpm nx affected -t lint typecheck test --base=HEAD~1\n", 0, ""},
		{"any order", "pnpm nx affected -t test lint typecheck --base=HEAD~1\n", 0, ""},
		{"continuation lines", "pnpm nx affected \\\n  -t lint typecheck test \\\n  --base=HEAD~1\n", 0, ""},
		{"too few targets", "pnpm nx affected -t lint test --base=HEAD~1\n", 1, "expected 3 targets"},
		{"wrong target", "pnpm nx affected -t lint test build --base=HEAD~1\n", 1, "missing typecheck"},
		{"target with suffix", "pnpm nx affected -t lint typecheck test-e2e --base=HEAD~1\n", 1, "missing test"},
		{"operator ends targets", "pnpm nx affected -t lint typecheck&& echo test --base=HEAD~1\n", 1, "expected 3 targets"},
		{"no flag", "pnpm nx affected --base=HEAD~1\n", 1, "found 0"},
		{"no base", "pnpm nx affected -t lint typecheck test\n", 1, "--base=HEAD~1"},
		{"no command", "#!/bin/sh\necho test\n", 1, "no \"nx affected\" command"},
		{"commented command", "# pnpm nx affected -t lint typecheck test --base=HEAD~1\n", 1, "no \"nx affected\" command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := evaluate(t, newNxTargets(), tt.script)
			require.Len(t, vs, tt.want)
			if tt.contains != "" {
				assert.Contains(t, vs[0].Message, tt.contains)
			}
		})
	}
}

func TestTargetsRule_DeprecatedAndBannedFlags(t *testing.T) {
	script := "#!/bin/sh\npnpm nx affected -t lint typecheck test --base=HEAD --head=HEAD\n"

	vs := evaluate(t, newNxTargets(), script)
	require.Len(t, vs, 3)
	assert.Contains(t, vs[0].Message, "--base=HEAD~1")
	assert.Contains(t, vs[1].Message, "deprecated")
	assert.Contains(t, vs[2].Message, "--head=HEAD")
	for _, v := range vs {
		assert.Equal(t, 2, v.Line)
	}
}
