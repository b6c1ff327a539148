package domain

import (
	"fmt"
	"time"
)

// Severity is the impact level of a violation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ParseSeverity accepts "error" or "warning" (case-sensitive, as written in
// config files and CLI flags).
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeverityError, SeverityWarning:
		return Severity(s), nil
	default:
		return "", fmt.Errorf("unknown severity %q (valid: error, warning)", s)
	}
}

// AtLeast reports whether s is as severe as threshold.
func (s Severity) AtLeast(threshold Severity) bool {
	return s.rank() >= threshold.rank()
}

func (s Severity) rank() int {
	switch s {
	case SeverityError:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// Violation is a single policy failure produced by a rule. Line is 1-based;
// 0 means the violation applies to the whole file.
type Violation struct {
	RuleID   string   `json:"ruleId"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
}

// SyntaxResult is the outcome of a parse-only interpreter run for one dialect.
type SyntaxResult struct {
	Dialect    string `json:"dialect"`
	Valid      bool   `json:"valid"`
	Diagnostic string `json:"diagnostic,omitempty"`
	// Environmental marks failures caused by the host (timeout, missing
	// interpreter) rather than by the script.
	Environmental bool `json:"environmental,omitempty"`
}

// PolicyReport aggregates everything a check run found.
type PolicyReport struct {
	Path        string         `json:"path"`
	RuleSet     string         `json:"ruleSet"`
	Passed      bool           `json:"passed"`
	SyntaxValid bool           `json:"syntaxValid"`
	FailOn      Severity       `json:"failOn"`
	Violations  []Violation    `json:"violations"`
	Syntax      []SyntaxResult `json:"syntax"`
	Metadata    ReportMetadata `json:"metadata"`
}

// ReportMetadata holds run-specific facts kept apart from the violation list
// so two runs over the same file compare equal on everything else.
type ReportMetadata struct {
	RunID      string    `json:"runId,omitempty"`
	CheckedAt  time.Time `json:"checkedAt"`
	CommitHash string    `json:"commitHash,omitempty"`
	Tracked    *bool     `json:"tracked,omitempty"`
}

// Environmental reports whether any syntax result failed for environmental reasons.
func (r *PolicyReport) Environmental() bool {
	for _, s := range r.Syntax {
		if !s.Valid && s.Environmental {
			return true
		}
	}
	return false
}

// Count returns the number of violations with the given severity.
func (r *PolicyReport) Count(sev Severity) int {
	n := 0
	for _, v := range r.Violations {
		if v.Severity == sev {
			n++
		}
	}
	return n
}

// RunEntry is one recorded check run in the project history.
type RunEntry struct {
	RunID      string    `json:"run_id"`
	Path       string    `json:"path"`
	RuleSet    string    `json:"rule_set"`
	Passed     bool      `json:"passed"`
	Errors     int       `json:"errors"`
	Warnings   int       `json:"warnings"`
	CommitHash string    `json:"commit_hash,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewRunEntry summarises a report for the history file.
func NewRunEntry(r *PolicyReport) RunEntry {
	return RunEntry{
		RunID:      r.Metadata.RunID,
		Path:       r.Path,
		RuleSet:    r.RuleSet,
		Passed:     r.Passed,
		Errors:     r.Count(SeverityError),
		Warnings:   r.Count(SeverityWarning),
		CommitHash: r.Metadata.CommitHash,
		Timestamp:  r.Metadata.CheckedAt,
	}
}

// RuleInfo describes a rule for listings.
type RuleInfo struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}
