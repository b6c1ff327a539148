package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hookguard/hookguard/internal/domain"
)

// TargetsSpec configures a TargetsRule.
type TargetsSpec struct {
	// Anchor identifies the command line, e.g. "nx affected".
	Anchor string
	// Flag introduces the target list, e.g. "-t".
	Flag    string
	Targets []string
	// RequiredFlags must appear verbatim on the anchor line.
	RequiredFlags []string
	// Deprecated combinations must not appear anywhere in the script.
	Deprecated []string
	// Banned patterns must not match anywhere in the script.
	Banned []*regexp.Regexp
}

// TargetsRule checks that one logical command line runs every required
// target after a flag, in any order, with the expected flags.
type TargetsRule struct {
	meta
	spec    TargetsSpec
	capture *regexp.Regexp
}

func NewTargetsRule(id string, spec TargetsSpec) *TargetsRule {
	return &TargetsRule{
		meta: newMeta(id, fmt.Sprintf("%q must run %s", spec.Anchor, strings.Join(spec.Targets, ", ")), domain.SeverityError),
		spec: spec,
		// Whitespace-delimited tokens after the flag, up to the next option or
		// shell operator. Tokens compare whole, so "test-e2e" is not "test".
		capture: regexp.MustCompile(`(?:^|\s)` + regexp.QuoteMeta(spec.Flag) + `((?:\s+[^\s;&|-][^\s;&|]*)+)`),
	}
}

func (r *TargetsRule) Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error) {
	var out []domain.Violation

	cmd, found := r.commandLine(doc)
	if !found {
		out = append(out, r.violation(0, fmt.Sprintf("no %q command found", r.spec.Anchor)))
	} else {
		out = append(out, r.checkTargets(cmd)...)
		for _, f := range r.spec.RequiredFlags {
			if !strings.Contains(cmd.text, f) {
				out = append(out, r.violation(cmd.line, fmt.Sprintf("%q must pass %s", r.spec.Anchor, f)))
			}
		}
	}

	for _, d := range r.spec.Deprecated {
		if n := doc.FindLine(d); n > 0 {
			out = append(out, r.violation(n, fmt.Sprintf("deprecated %q found: remove it", d)))
		}
	}
	for _, p := range r.spec.Banned {
		for i, l := range doc.Lines {
			if isComment(l) {
				continue
			}
			if m := p.FindString(l); m != "" {
				out = append(out, r.violation(i+1, fmt.Sprintf("%q is not allowed here", strings.TrimSpace(m))))
			}
		}
	}
	return out, nil
}

func (r *TargetsRule) commandLine(doc *domain.ScriptDocument) (logicalLine, bool) {
	for _, ll := range logicalLines(doc) {
		if !isComment(ll.text) && strings.Contains(ll.text, r.spec.Anchor) {
			return ll, true
		}
	}
	return logicalLine{}, false
}

func (r *TargetsRule) checkTargets(cmd logicalLine) []domain.Violation {
	m := r.capture.FindStringSubmatch(cmd.text)
	var words []string
	if m != nil {
		words = strings.Fields(m[1])
	}
	if len(words) < len(r.spec.Targets) {
		return []domain.Violation{r.violation(cmd.line, fmt.Sprintf(
			"expected %d targets after %s, found %d: use %s %s",
			len(r.spec.Targets), r.spec.Flag, len(words), r.spec.Flag, strings.Join(r.spec.Targets, " ")))}
	}

	have := toSet(words)
	var missing []string
	for _, t := range r.spec.Targets {
		if !have[t] {
			missing = append(missing, t)
		}
	}
	if len(missing) > 0 {
		return []domain.Violation{r.violation(cmd.line, fmt.Sprintf(
			"targets after %s are missing %s", r.spec.Flag, strings.Join(missing, ", ")))}
	}
	return nil
}

func toSet(items []string) map[string]bool {
	s := make(map[string]bool, len(items))
	for _, item := range items {
		s[item] = true
	}
	return s
}
