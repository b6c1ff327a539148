package rules

import (
	"fmt"
	"strings"

	"github.com/hookguard/hookguard/internal/domain"
)

var DefaultHardcodedPrefixes = []string{"/home", "/usr/local"}

// HardcodedPathRule flags command lines starting with a machine-specific
// absolute path.
type HardcodedPathRule struct {
	meta
	prefixes []string
}

func NewHardcodedPathRule(prefixes []string) *HardcodedPathRule {
	if len(prefixes) == 0 {
		prefixes = DefaultHardcodedPrefixes
	}
	return &HardcodedPathRule{
		meta:     newMeta("hardcoded-paths", "commands must not use machine-specific absolute paths", domain.SeverityError),
		prefixes: prefixes,
	}
}

func (r *HardcodedPathRule) Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error) {
	var out []domain.Violation
	for i, l := range doc.Lines {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" || isComment(trimmed) {
			continue
		}
		for _, p := range r.prefixes {
			if strings.HasPrefix(trimmed, p) {
				out = append(out, r.violation(i+1, fmt.Sprintf(
					"hardcoded path under %s: resolve the tool from PATH or the repository", p)))
				break
			}
		}
	}
	return out, nil
}
