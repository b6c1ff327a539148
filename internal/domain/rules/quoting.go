package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hookguard/hookguard/internal/domain"
)

// QuotingRule requires each argument of flag to be either wrapped in matching
// quotes or a single token with no quote characters, so paths containing
// spaces are not split by the shell.
type QuotingRule struct {
	meta
	flag string
	rest *regexp.Regexp
}

func NewQuotingRule(id, flag string) *QuotingRule {
	return &QuotingRule{
		meta: newMeta(id, fmt.Sprintf("%s argument must be quoted or a single token", flag), domain.SeverityError),
		flag: flag,
		rest: regexp.MustCompile(`(?:^|\s)` + regexp.QuoteMeta(flag) + `(?:=|\s+)(.*)$`),
	}
}

func (r *QuotingRule) Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error) {
	var out []domain.Violation
	for i, l := range doc.Lines {
		if isComment(l) || !strings.Contains(l, r.flag) {
			continue
		}
		m := r.rest.FindStringSubmatch(l)
		if m == nil || strings.TrimSpace(m[1]) == "" {
			if hasFlagWord(l, r.flag) {
				out = append(out, r.violation(i+1, fmt.Sprintf("%s is missing its argument", r.flag)))
			}
			continue
		}
		if msg := checkQuoted(m[1]); msg != "" {
			out = append(out, r.violation(i+1, fmt.Sprintf("%s argument %s", r.flag, msg)))
		}
	}
	return out, nil
}

func hasFlagWord(line, flag string) bool {
	for _, w := range strings.Fields(stripComment(line)) {
		if w == flag {
			return true
		}
	}
	return false
}

// checkQuoted returns a problem description, or "" when arg is well formed.
func checkQuoted(arg string) string {
	q := arg[0]
	if q == '"' || q == '\'' {
		end := strings.IndexByte(arg[1:], q)
		if end < 0 {
			return fmt.Sprintf("has an unterminated %c quote", q)
		}
		return ""
	}
	token := arg
	if i := strings.IndexAny(arg, " \t"); i >= 0 {
		token = arg[:i]
	}
	if strings.ContainsAny(token, `"'`) {
		return fmt.Sprintf("%s mixes quoted and unquoted text: quote the whole value", token)
	}
	return ""
}
