package rules

import (
	"fmt"

	"github.com/hookguard/hookguard/internal/domain"
)

// DefaultDeniedCommands are executables a hook has no business running.
var DefaultDeniedCommands = []string{"curl", "wget", "eval", "exec", "rm", "sudo"}

// CommandDenyRule tokenizes code lines on word boundaries, drops shell
// keywords and reports each deny-listed executable once, at its first line.
type CommandDenyRule struct {
	meta
	deny []string
}

func NewCommandDenyRule(deny []string) *CommandDenyRule {
	if len(deny) == 0 {
		deny = DefaultDeniedCommands
	}
	return &CommandDenyRule{
		meta: newMeta("deny-commands", "script must not run remote fetch, eval, privilege escalation or destructive commands", domain.SeverityError),
		deny: deny,
	}
}

func (r *CommandDenyRule) Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error) {
	firstSeen := make(map[string]int)
	for i, l := range doc.Lines {
		if isComment(l) {
			continue
		}
		for _, m := range wordRe.FindAllStringSubmatch(l, -1) {
			w := m[1]
			if shellKeywords[w] {
				continue
			}
			if _, ok := firstSeen[w]; !ok {
				firstSeen[w] = i + 1
			}
		}
	}

	var out []domain.Violation
	for _, d := range r.deny {
		if line, ok := firstSeen[d]; ok {
			out = append(out, r.violation(line, fmt.Sprintf("suspicious command %q: remove it from the hook", d)))
		}
	}
	return out, nil
}
