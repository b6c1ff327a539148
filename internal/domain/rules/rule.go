// Package rules holds the policy rules evaluated against hook scripts and the
// named rule sets that bundle them.
package rules

import (
	"github.com/hookguard/hookguard/internal/domain"
)

// Rule is a named, stateless predicate over a script document. Evaluate must
// only read the document, so rule order never changes the violation set.
type Rule interface {
	ID() string
	Description() string
	Severity() domain.Severity
	Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error)
}

// meta carries the identity shared by every rule implementation.
type meta struct {
	id          string
	description string
	severity    domain.Severity
}

func newMeta(id, description string, sev domain.Severity) meta {
	if sev == "" {
		sev = domain.SeverityError
	}
	return meta{id: id, description: description, severity: sev}
}

func (m meta) ID() string                { return m.id }
func (m meta) Description() string       { return m.description }
func (m meta) Severity() domain.Severity { return m.severity }

func (m meta) violation(line int, message string) domain.Violation {
	return domain.Violation{
		RuleID:   m.id,
		Severity: m.severity,
		Message:  message,
		Line:     line,
	}
}

// Describe lists rule metadata in declaration order.
func Describe(rs []Rule) []domain.RuleInfo {
	out := make([]domain.RuleInfo, 0, len(rs))
	for _, r := range rs {
		out = append(out, domain.RuleInfo{
			ID:          r.ID(),
			Description: r.Description(),
			Severity:    r.Severity(),
		})
	}
	return out
}
