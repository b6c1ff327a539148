// Package report aggregates check results into a PolicyReport.
package report

import (
	"github.com/hookguard/hookguard/internal/domain"
)

// Exit codes of a check run.
const (
	ExitPassed        = 0
	ExitViolations    = 1
	ExitSyntaxInvalid = 2
	ExitEnvironment   = 3
)

// Build assembles the report. It is pure: equal inputs give equal reports,
// and metadata is left for the caller to fill in.
func Build(doc *domain.ScriptDocument, ruleSet string, syntax []domain.SyntaxResult, violations []domain.Violation, failOn domain.Severity) *domain.PolicyReport {
	if failOn == "" {
		failOn = domain.SeverityError
	}
	if violations == nil {
		violations = []domain.Violation{}
	}
	if syntax == nil {
		syntax = []domain.SyntaxResult{}
	}

	syntaxValid := SyntaxValid(syntax)
	return &domain.PolicyReport{
		Path:        doc.Path,
		RuleSet:     ruleSet,
		SyntaxValid: syntaxValid,
		Passed:      Passed(syntaxValid, violations, failOn),
		FailOn:      failOn,
		Violations:  violations,
		Syntax:      syntax,
	}
}

// SyntaxValid is true when every dialect parsed the script.
func SyntaxValid(results []domain.SyntaxResult) bool {
	for _, r := range results {
		if !r.Valid {
			return false
		}
	}
	return true
}

// Passed holds when syntax is valid and no violation reaches failOn.
func Passed(syntaxValid bool, violations []domain.Violation, failOn domain.Severity) bool {
	if !syntaxValid {
		return false
	}
	for _, v := range violations {
		if v.Severity.AtLeast(failOn) {
			return false
		}
	}
	return true
}

// ExitCode maps a report to the process exit status. A genuine syntax defect
// wins over environmental failures, which win over policy violations.
func ExitCode(r *domain.PolicyReport) int {
	for _, s := range r.Syntax {
		if !s.Valid && !s.Environmental {
			return ExitSyntaxInvalid
		}
	}
	if r.Environmental() {
		return ExitEnvironment
	}
	if !r.Passed {
		return ExitViolations
	}
	return ExitPassed
}
