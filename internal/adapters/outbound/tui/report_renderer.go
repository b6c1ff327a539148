package tui

import (
	"fmt"
	"strings"

	"github.com/hookguard/hookguard/internal/domain"
)

// RenderPolicyReport renders a report as a header box, the syntax results
// and a table of rule id, severity, line and message.
func RenderPolicyReport(r *domain.PolicyReport) string {
	var b strings.Builder

	status := passStyle.Render("PASSED")
	if !r.Passed {
		status = failStyle.Render("FAILED")
	}
	header := headerStyle.Render("hookguard") + "  " + status + "\n" +
		titleStyle.Render(r.Path) + "\n" +
		dimStyle.Render(fmt.Sprintf("rule set %s · fail on %s", r.RuleSet, r.FailOn))
	b.WriteString(boxStyle.Render(header))
	b.WriteString("\n\n")

	renderSyntax(&b, r.Syntax)
	b.WriteString("  " + separatorLine + "\n\n")
	renderViolations(&b, r.Violations)

	return b.String()
}

func renderSyntax(b *strings.Builder, results []domain.SyntaxResult) {
	b.WriteString("  " + titleStyle.Render("Syntax") + "\n")
	if len(results) == 0 {
		b.WriteString("    " + dimStyle.Render("skipped (no dialects)") + "\n\n")
		return
	}
	for _, s := range results {
		mark := passStyle.Render("✓")
		if !s.Valid {
			mark = failStyle.Render("✗")
		}
		line := fmt.Sprintf("    %s %s", mark, pad(s.Dialect, 6))
		if s.Diagnostic != "" {
			line += "  " + dimStyle.Render(firstLine(s.Diagnostic))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}

func renderViolations(b *strings.Builder, vs []domain.Violation) {
	if len(vs) == 0 {
		b.WriteString("  " + passStyle.Render("No violations found.") + "\n")
		return
	}

	errs, warns := 0, 0
	for _, v := range vs {
		if v.Severity == domain.SeverityError {
			errs++
		} else {
			warns++
		}
	}
	b.WriteString("  " + titleStyle.Render("Violations") + "  ")
	if errs > 0 {
		b.WriteString(errorTagStyle.Render(fmt.Sprintf("%d errors", errs)) + "  ")
	}
	if warns > 0 {
		b.WriteString(warnTagStyle.Render(fmt.Sprintf("%d warnings", warns)))
	}
	b.WriteString("\n\n")

	width := len("RULE")
	for _, v := range vs {
		if len(v.RuleID) > width {
			width = len(v.RuleID)
		}
	}
	b.WriteString(fmt.Sprintf("    %s  %s  %s  %s\n",
		dimStyle.Render(pad("RULE", width)), dimStyle.Render("SEVERITY"), dimStyle.Render("LINE"), dimStyle.Render("MESSAGE")))
	for _, v := range vs {
		line := "-"
		if v.Line > 0 {
			line = fmt.Sprintf("%d", v.Line)
		}
		b.WriteString(fmt.Sprintf("    %s  %s   %s  %s\n",
			ruleIDStyle.Render(pad(v.RuleID, width)), severityTag(v.Severity), pad(line, 4), v.Message))
	}
}

// RenderRuleList renders the rules of a rule set.
func RenderRuleList(name, description string, infos []domain.RuleInfo) string {
	var b strings.Builder
	b.WriteString("  " + headerStyle.Render(name) + "  " + dimStyle.Render(description) + "\n\n")
	width := 0
	for _, in := range infos {
		if len(in.ID) > width {
			width = len(in.ID)
		}
	}
	for _, in := range infos {
		b.WriteString(fmt.Sprintf("    %s  %s  %s\n", ruleIDStyle.Render(pad(in.ID, width)), severityTag(in.Severity), in.Description))
	}
	return b.String()
}

// RenderHistory renders recorded runs, newest last.
func RenderHistory(entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No recorded runs. Use hookguard check --record.") + "\n"
	}
	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Check history") + "\n\n")
	for _, e := range entries {
		status := passStyle.Render("PASS")
		if !e.Passed {
			status = failStyle.Render("FAIL")
		}
		commit := ""
		if len(e.CommitHash) >= 7 {
			commit = e.CommitHash[:7]
		}
		b.WriteString(fmt.Sprintf("    %s  %s  %s  %s  %s\n",
			dimStyle.Render(e.Timestamp.Format("2006-01-02 15:04")),
			status,
			pad(fmt.Sprintf("%d errors, %d warnings", e.Errors, e.Warnings), 22),
			dimStyle.Render(pad(commit, 7)),
			e.Path))
	}
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
