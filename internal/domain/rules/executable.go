package rules

import (
	"fmt"

	"github.com/hookguard/hookguard/internal/domain"
)

// ExecutableRule requires the owner execute bit; git skips hooks without it.
type ExecutableRule struct {
	meta
}

func NewExecutableRule() *ExecutableRule {
	return &ExecutableRule{
		meta: newMeta("executable", "script must be executable", domain.SeverityError),
	}
}

func (r *ExecutableRule) Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error) {
	if doc.IsExecutable() {
		return nil, nil
	}
	return []domain.Violation{r.violation(0, fmt.Sprintf(
		"mode %04o is not executable: run chmod +x %s", doc.Mode, doc.Path))}, nil
}
