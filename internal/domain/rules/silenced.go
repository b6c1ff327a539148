package rules

import (
	"fmt"
	"strings"

	"github.com/hookguard/hookguard/internal/domain"
)

// DefaultSuccessOverrides are the suffixes that turn a failing command into
// an unconditional success.
var DefaultSuccessOverrides = []string{"|| true", "||true", "|| :", "; true", "|| exit 0"}

// SilencedCommandRule forbids success overrides on any logical line that
// runs the anchored command, so its failures still block the commit.
type SilencedCommandRule struct {
	meta
	anchor    string
	overrides []string
}

func NewSilencedCommandRule(id, anchor string) *SilencedCommandRule {
	return &SilencedCommandRule{
		meta:      newMeta(id, fmt.Sprintf("failures of %q must not be suppressed", anchor), domain.SeverityError),
		anchor:    anchor,
		overrides: DefaultSuccessOverrides,
	}
}

func (r *SilencedCommandRule) Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error) {
	var out []domain.Violation
	for _, ll := range logicalLines(doc) {
		if isComment(ll.text) || !strings.Contains(ll.text, r.anchor) {
			continue
		}
		for _, o := range r.overrides {
			if strings.Contains(ll.text, o) {
				out = append(out, r.violation(ll.line, fmt.Sprintf(
					"%q is silenced with %q: remove it so failures block the commit", r.anchor, o)))
				break
			}
		}
	}
	return out, nil
}
