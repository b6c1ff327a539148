package rules

import (
	"fmt"
	"strings"

	"github.com/hookguard/hookguard/internal/domain"
)

// ScopedBlockRule locates the conditional block opened on the line holding
// marker and checks that each inner command runs only inside that block.
//
// Block matching is a nesting counter over the open/close keyword words,
// not a parse: a conditional opened and closed on one line counts as closed.
type ScopedBlockRule struct {
	meta
	marker string
	open   string
	closer string
	inner  []string
}

// NewScopedBlockRule builds a rule for an if/fi or case/esac guard.
func NewScopedBlockRule(id, marker, open string, inner []string) *ScopedBlockRule {
	return &ScopedBlockRule{
		meta:   newMeta(id, fmt.Sprintf("%s must run inside a %q guard", strings.Join(inner, ", "), marker), domain.SeverityError),
		marker: marker,
		open:   open,
		closer: closerFor(open),
		inner:  inner,
	}
}

func closerFor(open string) string {
	switch open {
	case "case":
		return "esac"
	case "while", "until", "for":
		return "done"
	default:
		return "fi"
	}
}

// block is a 1-based inclusive line range.
type block struct {
	start, end int
	closed     bool
}

func (b block) contains(line int) bool {
	return line >= b.start && line <= b.end
}

// extractBlock finds the first code line containing marker and follows the
// open/close nesting until it returns to zero.
func extractBlock(lines []string, marker, open, closer string) (block, bool) {
	start := -1
	for i, l := range lines {
		if !isComment(l) && strings.Contains(l, marker) {
			start = i
			break
		}
	}
	if start < 0 {
		return block{}, false
	}

	depth := 0
	for i := start; i < len(lines); i++ {
		depth += countWord(lines[i], open) - countWord(lines[i], closer)
		if depth <= 0 {
			return block{start: start + 1, end: i + 1, closed: true}, true
		}
	}
	return block{start: start + 1, end: len(lines)}, true
}

func (r *ScopedBlockRule) Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error) {
	b, found := extractBlock(doc.Lines, r.marker, r.open, r.closer)
	if !found {
		return []domain.Violation{r.violation(0, fmt.Sprintf(
			"no %q guard found: wrap %s in \"%s %s ...\"", r.marker, strings.Join(r.inner, ", "), r.open, r.marker))}, nil
	}

	var out []domain.Violation
	words := shellWords(doc.Lines[b.start-1])
	if len(words) == 0 || words[0] != r.open {
		out = append(out, r.violation(b.start, fmt.Sprintf(
			"guard must open with %q", r.open)))
	}
	if !b.closed {
		out = append(out, r.violation(b.start, fmt.Sprintf(
			"guard opened here is never closed with %q", r.closer)))
	}
	if r.open == "if" && !blockHasWord(doc.Lines[b.start-1:b.end], "then") {
		out = append(out, r.violation(b.start, "guard is missing \"then\""))
	}

	for _, cmd := range r.inner {
		if v, bad := r.checkInner(doc, b, cmd); bad {
			out = append(out, v)
		}
	}
	return out, nil
}

// checkInner yields at most one violation per command: either it appears
// outside the block, or it is missing altogether.
func (r *ScopedBlockRule) checkInner(doc *domain.ScriptDocument, b block, cmd string) (domain.Violation, bool) {
	inside := false
	for i, l := range doc.Lines {
		if isComment(l) || !strings.Contains(l, cmd) {
			continue
		}
		if !b.contains(i + 1) {
			return r.violation(i+1, fmt.Sprintf(
				"%q runs outside the %q guard: move it inside the block", cmd, r.marker)), true
		}
		inside = true
	}
	if !inside {
		return r.violation(b.start, fmt.Sprintf("%q guard does not run %q", r.marker, cmd)), true
	}
	return domain.Violation{}, false
}

func blockHasWord(lines []string, word string) bool {
	for _, l := range lines {
		if countWord(l, word) > 0 {
			return true
		}
	}
	return false
}
