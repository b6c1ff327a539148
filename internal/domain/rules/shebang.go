package rules

import (
	"fmt"
	"strings"

	"github.com/hookguard/hookguard/internal/domain"
)

// DefaultShebangs are the interpreter declarations accepted for hook scripts.
var DefaultShebangs = []string{
	"#!/usr/bin/env sh",
	"#!/bin/sh",
	"#!/usr/bin/env bash",
	"#!/bin/bash",
}

// ShebangRule requires line 1 to be an allow-listed interpreter declaration.
type ShebangRule struct {
	meta
	allowed []string
}

func NewShebangRule(allowed []string) *ShebangRule {
	if len(allowed) == 0 {
		allowed = DefaultShebangs
	}
	return &ShebangRule{
		meta:    newMeta("shebang", "first line must declare an allowed interpreter", domain.SeverityError),
		allowed: allowed,
	}
}

func (r *ShebangRule) Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error) {
	line, ok := doc.Shebang()
	if !ok {
		if n := doc.MisplacedShebang(); n > 0 {
			return []domain.Violation{r.violation(1, fmt.Sprintf(
				"shebang must be on line 1 with no leading whitespace (found on line %d)", n))}, nil
		}
		return []domain.Violation{r.violation(1, fmt.Sprintf(
			"missing shebang: start the script with one of %s", strings.Join(r.allowed, ", ")))}, nil
	}
	for _, a := range r.allowed {
		if line == a {
			return nil, nil
		}
	}
	return []domain.Violation{r.violation(1, fmt.Sprintf(
		"shebang %q is not allowed: use one of %s", line, strings.Join(r.allowed, ", ")))}, nil
}
