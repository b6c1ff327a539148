package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/fatih/camelcase"

	"github.com/hookguard/hookguard/internal/domain"
)

// NormalizeKind maps the spellings users write in config files
// ("RequiredSubstring", "required-substring", "requiredSubstring") to the
// canonical snake_case kind.
func NormalizeKind(kind string) string {
	var parts []string
	for _, p := range camelcase.Split(strings.TrimSpace(kind)) {
		if strings.IndexFunc(p, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }) < 0 {
			continue
		}
		parts = append(parts, strings.ToLower(p))
	}
	return strings.Join(parts, "_")
}

// FromCustom builds the rule declared by a custom_rules entry.
func FromCustom(c domain.CustomRule) (Rule, error) {
	switch NormalizeKind(c.Kind) {
	case domain.KindRequiredSubstring:
		return NewRequiredSubstringRule(c.ID, c.Text, c.Message, c.Severity), nil
	case domain.KindForbiddenSubstring:
		return NewForbiddenSubstringRule(c.ID, c.Text, c.Message, c.Severity), nil
	case domain.KindRequiredPattern, domain.KindForbiddenPattern:
		re, err := regexp.Compile(c.Text)
		if err != nil {
			return nil, fmt.Errorf("custom rule %s: invalid pattern: %w", c.ID, err)
		}
		if NormalizeKind(c.Kind) == domain.KindRequiredPattern {
			return NewRequiredPatternRule(c.ID, re, c.Message, c.Severity), nil
		}
		return NewForbiddenPatternRule(c.ID, re, c.Message, c.Severity), nil
	default:
		return nil, fmt.Errorf("custom rule %s: unknown kind %q", c.ID, c.Kind)
	}
}
