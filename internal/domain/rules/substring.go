package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hookguard/hookguard/internal/domain"
)

// RequiredSubstringRule fails when the script does not contain text.
type RequiredSubstringRule struct {
	meta
	text    string
	message string
}

func NewRequiredSubstringRule(id, text, message string, sev domain.Severity) *RequiredSubstringRule {
	if message == "" {
		message = fmt.Sprintf("script must contain %q", text)
	}
	return &RequiredSubstringRule{
		meta:    newMeta(id, fmt.Sprintf("requires %q", text), sev),
		text:    text,
		message: message,
	}
}

func (r *RequiredSubstringRule) Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error) {
	if strings.Contains(doc.RawText, r.text) {
		return nil, nil
	}
	return []domain.Violation{r.violation(0, r.message)}, nil
}

// ForbiddenSubstringRule fails when the script contains text. The first
// occurrence is reported.
type ForbiddenSubstringRule struct {
	meta
	text    string
	message string
}

func NewForbiddenSubstringRule(id, text, message string, sev domain.Severity) *ForbiddenSubstringRule {
	if message == "" {
		message = fmt.Sprintf("script must not contain %q", text)
	}
	return &ForbiddenSubstringRule{
		meta:    newMeta(id, fmt.Sprintf("forbids %q", text), sev),
		text:    text,
		message: message,
	}
}

func (r *ForbiddenSubstringRule) Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error) {
	if !strings.Contains(doc.RawText, r.text) {
		return nil, nil
	}
	return []domain.Violation{r.violation(doc.FindLine(r.text), r.message)}, nil
}

// ForbiddenTokensRule reports every listed token found in the script, one
// violation per token.
type ForbiddenTokensRule struct {
	meta
	tokens []string
	reason string
}

func NewForbiddenTokensRule(id, description string, tokens []string, reason string, sev domain.Severity) *ForbiddenTokensRule {
	return &ForbiddenTokensRule{
		meta:   newMeta(id, description, sev),
		tokens: tokens,
		reason: reason,
	}
}

func (r *ForbiddenTokensRule) Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error) {
	var out []domain.Violation
	for _, tok := range r.tokens {
		if n := doc.FindLine(tok); n > 0 {
			out = append(out, r.violation(n, fmt.Sprintf("%q found: %s", tok, r.reason)))
		}
	}
	return out, nil
}

// RequiredPatternRule fails when no match of pattern exists in the script.
type RequiredPatternRule struct {
	meta
	pattern *regexp.Regexp
	message string
}

func NewRequiredPatternRule(id string, pattern *regexp.Regexp, message string, sev domain.Severity) *RequiredPatternRule {
	if message == "" {
		message = fmt.Sprintf("script must match /%s/", pattern)
	}
	return &RequiredPatternRule{
		meta:    newMeta(id, fmt.Sprintf("requires /%s/", pattern), sev),
		pattern: pattern,
		message: message,
	}
}

func (r *RequiredPatternRule) Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error) {
	if r.pattern.MatchString(doc.RawText) {
		return nil, nil
	}
	return []domain.Violation{r.violation(0, r.message)}, nil
}

// ForbiddenPatternRule reports each line matching pattern.
type ForbiddenPatternRule struct {
	meta
	pattern *regexp.Regexp
	message string
}

func NewForbiddenPatternRule(id string, pattern *regexp.Regexp, message string, sev domain.Severity) *ForbiddenPatternRule {
	if message == "" {
		message = fmt.Sprintf("script must not match /%s/", pattern)
	}
	return &ForbiddenPatternRule{
		meta:    newMeta(id, fmt.Sprintf("forbids /%s/", pattern), sev),
		pattern: pattern,
		message: message,
	}
}

func (r *ForbiddenPatternRule) Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error) {
	var out []domain.Violation
	for i, l := range doc.Lines {
		if r.pattern.MatchString(l) {
			out = append(out, r.violation(i+1, r.message))
		}
	}
	return out, nil
}
