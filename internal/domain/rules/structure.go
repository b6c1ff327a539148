package rules

import (
	"fmt"

	"github.com/hookguard/hookguard/internal/domain"
)

var loopKeywords = []string{"for", "while", "until"}

// StructureRule keeps hooks short and flat: a bounded number of loops, an
// if/fi imbalance within tolerance and a bounded non-blank line count.
// Keywords count only in command position, so "echo scan for secrets" is not
// a loop.
type StructureRule struct {
	meta
	limits domain.Thresholds
}

func NewStructureRule(limits domain.Thresholds) *StructureRule {
	return &StructureRule{
		meta:   newMeta("structure", "script must stay short with shallow control flow", domain.SeverityError),
		limits: limits,
	}
}

func (r *StructureRule) Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error) {
	var out []domain.Violation

	loops, firstLoop := 0, 0
	ifs, fis := 0, 0
	for i, l := range doc.Lines {
		for _, kw := range loopKeywords {
			if n := countCommand(l, kw); n > 0 {
				loops += n
				if firstLoop == 0 {
					firstLoop = i + 1
				}
			}
		}
		ifs += countCommand(l, "if")
		fis += countCommand(l, "fi")
	}

	if loops > r.limits.MaxLoops {
		out = append(out, r.violation(firstLoop, fmt.Sprintf(
			"found %d loops, at most %d allowed: move iteration into a tool invoked by the hook", loops, r.limits.MaxLoops)))
	}
	if diff := abs(ifs - fis); diff > r.limits.BlockTolerance {
		out = append(out, r.violation(0, fmt.Sprintf(
			"if/fi imbalance of %d exceeds %d: flatten nested conditionals", diff, r.limits.BlockTolerance)))
	}
	if r.limits.MaxLines > 0 {
		if n := len(doc.NonBlankLines()); n > r.limits.MaxLines {
			out = append(out, r.violation(0, fmt.Sprintf(
				"%d non-blank lines exceeds %d: move logic into a script the hook calls", n, r.limits.MaxLines)))
		}
	}
	return out, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
