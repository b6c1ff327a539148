package report_test

import (
	"testing"

	"github.com/hookguard/hookguard/internal/domain"
	"github.com/hookguard/hookguard/internal/domain/report"
	"github.com/stretchr/testify/assert"
)

var doc = domain.NewScriptDocument(".husky/pre-commit", []byte("#!/bin/sh\n"), 0o755)

func TestBuild_EmptyInputs(t *testing.T) {
	rep := report.Build(doc, "minimal", nil, nil, "")

	assert.Equal(t, ".husky/pre-commit", rep.Path)
	assert.Equal(t, domain.SeverityError, rep.FailOn)
	assert.NotNil(t, rep.Violations)
	assert.NotNil(t, rep.Syntax)
	assert.True(t, rep.SyntaxValid)
	assert.True(t, rep.Passed)
}

func TestPassed(t *testing.T) {
	warn := []domain.Violation{{RuleID: "comments", Severity: domain.SeverityWarning}}
	errs := []domain.Violation{{RuleID: "shebang", Severity: domain.SeverityError}}

	assert.True(t, report.Passed(true, nil, domain.SeverityError))
	assert.True(t, report.Passed(true, warn, domain.SeverityError))
	assert.False(t, report.Passed(true, warn, domain.SeverityWarning))
	assert.False(t, report.Passed(true, errs, domain.SeverityError))
	assert.False(t, report.Passed(false, nil, domain.SeverityError))
}

func TestBuild_PassedImpliesNoBlockingViolation(t *testing.T) {
	cases := [][]domain.Violation{
		nil,
		{{Severity: domain.SeverityWarning}},
		{{Severity: domain.SeverityError}},
		{{Severity: domain.SeverityWarning}, {Severity: domain.SeverityError}},
	}
	for _, vs := range cases {
		for _, failOn := range []domain.Severity{domain.SeverityError, domain.SeverityWarning} {
			rep := report.Build(doc, "x", nil, vs, failOn)
			if rep.Passed {
				assert.True(t, rep.SyntaxValid)
				for _, v := range rep.Violations {
					assert.False(t, v.Severity.AtLeast(failOn))
				}
			}
		}
	}
}

func TestExitCode(t *testing.T) {
	valid := domain.SyntaxResult{Dialect: "sh", Valid: true}
	invalid := domain.SyntaxResult{Dialect: "bash", Diagnostic: "syntax error near unexpected token `fi'"}
	missing := domain.SyntaxResult{Dialect: "bash", Diagnostic: "interpreter not found", Environmental: true}
	errV := []domain.Violation{{RuleID: "shebang", Severity: domain.SeverityError}}

	tests := []struct {
		name   string
		syntax []domain.SyntaxResult
		vs     []domain.Violation
		want   int
	}{
		{"passed", []domain.SyntaxResult{valid}, nil, report.ExitPassed},
		{"violations", []domain.SyntaxResult{valid}, errV, report.ExitViolations},
		{"syntax invalid", []domain.SyntaxResult{valid, invalid}, errV, report.ExitSyntaxInvalid},
		{"environment", []domain.SyntaxResult{valid, missing}, nil, report.ExitEnvironment},
		{"syntax wins over environment", []domain.SyntaxResult{invalid, missing}, nil, report.ExitSyntaxInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := report.Build(doc, "x", tt.syntax, tt.vs, domain.SeverityError)
			assert.Equal(t, tt.want, report.ExitCode(rep))
		})
	}
}
