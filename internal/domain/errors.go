package domain

import (
	"errors"
	"fmt"
)

// ErrCancelled is returned when a check run is cancelled before it reports.
var ErrCancelled = errors.New("check run cancelled")

// NotFoundError means the script path does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("script %s not found: check the path or run from the repository root", e.Path)
}

// IOError means the script exists but could not be read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading script %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// RuleEvaluationError wraps a failure raised inside a single rule.
type RuleEvaluationError struct {
	RuleID string
	Err    error
}

func (e *RuleEvaluationError) Error() string {
	return fmt.Sprintf("rule %s failed: %v", e.RuleID, e.Err)
}

func (e *RuleEvaluationError) Unwrap() error { return e.Err }
