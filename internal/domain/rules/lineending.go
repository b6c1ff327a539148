package rules

import (
	"fmt"
	"strings"

	"github.com/hookguard/hookguard/internal/domain"
)

// LineEndingRule warns about scripts saved with CRLF terminators, which make
// POSIX shells read "\r" as part of each command.
type LineEndingRule struct {
	meta
}

func NewLineEndingRule() *LineEndingRule {
	return &LineEndingRule{
		meta: newMeta("line-endings", "script must use LF line endings", domain.SeverityWarning),
	}
}

func (r *LineEndingRule) Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error) {
	if doc.LineEnding == domain.LineEndingLF {
		return nil, nil
	}
	line := strings.Count(doc.RawText[:strings.Index(doc.RawText, "\r\n")], "\n") + 1
	return []domain.Violation{r.violation(line, fmt.Sprintf(
		"%s line endings found: convert to LF (e.g. dos2unix %s)", doc.LineEnding, doc.Path))}, nil
}
