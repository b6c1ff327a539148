package rules

import (
	"fmt"
	"strings"

	"github.com/hookguard/hookguard/internal/domain"
)

// CommentRule requires a minimum number of comment lines and, for each
// keyword group, at least one comment mentioning a keyword of that group.
type CommentRule struct {
	meta
	min      int
	mentions [][]string
}

func NewCommentRule(minComments int, mentions [][]string) *CommentRule {
	return &CommentRule{
		meta:     newMeta("comments", "script must explain what it does in comments", domain.SeverityWarning),
		min:      minComments,
		mentions: mentions,
	}
}

func (r *CommentRule) Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error) {
	comments := doc.CommentLines()
	var out []domain.Violation
	if len(comments) < r.min {
		out = append(out, r.violation(0, fmt.Sprintf(
			"found %d comment lines, want at least %d describing each step", len(comments), r.min)))
	}
	for _, group := range r.mentions {
		if !anyCommentMentions(comments, group) {
			out = append(out, r.violation(0, fmt.Sprintf(
				"no comment mentions any of %s", strings.Join(group, ", "))))
		}
	}
	return out, nil
}

func anyCommentMentions(comments, keywords []string) bool {
	for _, c := range comments {
		lower := strings.ToLower(c)
		for _, k := range keywords {
			if strings.Contains(lower, strings.ToLower(k)) {
				return true
			}
		}
	}
	return false
}

// CommentAboveRule requires the line right before the first line containing
// anchor to be a comment or to mention one of keywords.
type CommentAboveRule struct {
	meta
	anchor   string
	keywords []string
}

func NewCommentAboveRule(id, anchor string, keywords []string) *CommentAboveRule {
	return &CommentAboveRule{
		meta:     newMeta(id, fmt.Sprintf("%q must be preceded by a comment", anchor), domain.SeverityWarning),
		anchor:   anchor,
		keywords: keywords,
	}
}

func (r *CommentAboveRule) Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error) {
	n := doc.FindLine(r.anchor)
	if n <= 1 {
		// Missing anchors are reported by the rule that requires them.
		return nil, nil
	}
	prev := doc.Lines[n-2]
	if isComment(prev) {
		return nil, nil
	}
	lower := strings.ToLower(prev)
	for _, k := range r.keywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			return nil, nil
		}
	}
	return []domain.Violation{r.violation(n, fmt.Sprintf(
		"add a comment above %q describing the step", r.anchor))}, nil
}
