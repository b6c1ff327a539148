package rules

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/hookguard/hookguard/internal/domain"
)

// Options feed configuration into rule construction.
type Options struct {
	Config domain.ProjectConfig
	// Root resolves files referenced by the script; empty skips existence checks.
	Root string
	FS   domain.FileSystem
}

// RuleSet is a named bundle of rules.
type RuleSet struct {
	Name        string
	Description string
	build       func(Options) []Rule
}

var ruleSets = map[string]RuleSet{
	"husky-pre-commit": {
		Name:        "husky-pre-commit",
		Description: "husky pre-commit hook running gitleaks on staged changes and nx affected lint/typecheck/test",
		build:       huskyPreCommit,
	},
	"posix-hook": {
		Name:        "posix-hook",
		Description: "generic hygiene for any POSIX shell hook",
		build:       posixHook,
	},
	"minimal": {
		Name:        "minimal",
		Description: "shebang, line endings and executable bit only",
		build:       minimal,
	},
}

// Names returns the known rule set names, sorted.
func Names() []string {
	names := make([]string, 0, len(ruleSets))
	for n := range ruleSets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the rule set with the given name.
func Lookup(name string) (RuleSet, bool) {
	rs, ok := ruleSets[name]
	return rs, ok
}

// Build assembles the rules of a set, appends configured custom rules and
// drops disabled ids. Rule ids are unique in the result.
func Build(name string, opts Options) ([]Rule, error) {
	rs, ok := ruleSets[name]
	if !ok {
		return nil, fmt.Errorf("unknown rule set %q (valid: %v)", name, Names())
	}

	all := rs.build(opts)
	for _, c := range opts.Config.CustomRules {
		r, err := FromCustom(c)
		if err != nil {
			return nil, err
		}
		all = append(all, r)
	}

	seen := make(map[string]bool, len(all))
	out := make([]Rule, 0, len(all))
	for _, r := range all {
		if seen[r.ID()] {
			return nil, fmt.Errorf("duplicate rule id %q in rule set %s", r.ID(), name)
		}
		seen[r.ID()] = true
		if opts.Config.IsDisabled(r.ID()) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func minimal(opts Options) []Rule {
	return []Rule{
		NewShebangRule(opts.Config.Shebangs),
		NewLineEndingRule(),
		NewExecutableRule(),
	}
}

func posixHook(opts Options) []Rule {
	return append(minimal(opts),
		NewStructureRule(opts.Config.Thresholds),
		NewCommandDenyRule(opts.Config.DenyCommands),
		portability(),
		NewHardcodedPathRule(nil),
		NewCommentRule(1, nil),
	)
}

func portability() Rule {
	return NewForbiddenTokensRule("portability", "script must use POSIX syntax only",
		[]string{"[[", "$BASH_", "$RANDOM", "$OSTYPE"},
		"bash-only syntax breaks under POSIX sh",
		domain.SeverityWarning)
}

func huskyPreCommit(opts Options) []Rule {
	prefixes := opts.Config.PathPrefixes
	if len(prefixes) == 0 {
		prefixes = []string{"tools/**"}
	}

	return []Rule{
		NewShebangRule(opts.Config.Shebangs),
		NewExecutableRule(),
		NewLineEndingRule(),
		NewRequiredSubstringRule("husky-source", `. "$(dirname -- "$0")/_/husky.sh"`,
			`hook must source husky: add . "$(dirname -- "$0")/_/husky.sh"`, domain.SeverityError),

		// Secrets scanning.
		NewScopedBlockRule("gitleaks-guard", "command -v gitleaks", "if", []string{"gitleaks protect"}),
		NewRequiredSubstringRule("gitleaks-staged", "gitleaks protect --staged",
			"run gitleaks protect --staged so only staged changes are scanned", domain.SeverityError),
		NewRequiredPatternRule("gitleaks-config", regexp.MustCompile(`gitleaks protect[^\n]*--config[= ]`),
			"pass --config to gitleaks protect so the repository rules apply", domain.SeverityError),
		NewPathSafetyRule("config-path", "--config", prefixes, opts.Root, opts.FS),
		NewQuotingRule("config-quoting", "--config"),
		NewSilencedCommandRule("gitleaks-not-silenced", "gitleaks protect"),

		// Affected-subset checks.
		NewRequiredSubstringRule("nx-affected", "pnpm nx affected",
			"run pnpm nx affected so only changed projects are checked", domain.SeverityError),
		NewTargetsRule("nx-targets", TargetsSpec{
			Anchor:        "nx affected",
			Flag:          "-t",
			Targets:       []string{"lint", "typecheck", "test"},
			RequiredFlags: []string{"--base=HEAD~1"},
			Deprecated:    []string{"--base=HEAD --head=HEAD"},
			Banned:        []*regexp.Regexp{regexp.MustCompile(`--head=\S+`)},
		}),
		NewSilencedCommandRule("nx-not-silenced", "pnpm nx affected"),
		NewForbiddenSubstringRule("no-run-many", "nx run-many",
			"use nx affected instead of nx run-many, which checks every project", domain.SeverityError),
		NewForbiddenSubstringRule("no-npm", " npm ",
			"use pnpm, not npm", domain.SeverityError),
		NewCommentAboveRule("nx-comment", "pnpm nx affected", []string{"nx"}),

		// Hygiene.
		NewStructureRule(opts.Config.Thresholds),
		NewCommandDenyRule(opts.Config.DenyCommands),
		NewCommentRule(2, [][]string{
			{"secret", "gitleak"},
			{"nx", "affected", "test", "lint"},
		}),
		portability(),
		NewHardcodedPathRule(nil),
	}
}
