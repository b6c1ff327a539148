package rules

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/hookguard/hookguard/internal/domain"
)

// PathSafetyRule checks every argument of flag: it must be relative, free of
// ".." segments and match one of the allowed doublestar patterns. With a root
// and filesystem configured it must also exist under root.
type PathSafetyRule struct {
	meta
	flag     string
	allowed  []string
	root     string
	fs       domain.FileSystem
	argument *regexp.Regexp
}

func NewPathSafetyRule(id, flag string, allowed []string, root string, fsys domain.FileSystem) *PathSafetyRule {
	return &PathSafetyRule{
		meta:     newMeta(id, fmt.Sprintf("%s must point inside %s", flag, strings.Join(allowed, ", ")), domain.SeverityError),
		flag:     flag,
		allowed:  allowed,
		root:     root,
		fs:       fsys,
		argument: flagArgumentRe(flag),
	}
}

// flagArgumentRe matches "<flag> value", "<flag>=value" and quoted values.
func flagArgumentRe(flag string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|\s)` + regexp.QuoteMeta(flag) + `(?:=|\s+)("[^"]*"|'[^']*'|\S+)`)
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func (r *PathSafetyRule) Evaluate(doc *domain.ScriptDocument) ([]domain.Violation, error) {
	var out []domain.Violation
	for i, l := range doc.Lines {
		if isComment(l) {
			continue
		}
		for _, m := range r.argument.FindAllStringSubmatch(l, -1) {
			v, err := r.checkPath(unquote(m[1]), i+1)
			if err != nil {
				return nil, err
			}
			out = append(out, v...)
		}
	}
	return out, nil
}

func (r *PathSafetyRule) checkPath(p string, line int) ([]domain.Violation, error) {
	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, "~") || filepath.IsAbs(p) {
		return []domain.Violation{r.violation(line, fmt.Sprintf(
			"%s %s is absolute: use a path relative to the repository root", r.flag, p))}, nil
	}
	for _, seg := range strings.Split(filepath.ToSlash(p), "/") {
		if seg == ".." {
			return []domain.Violation{r.violation(line, fmt.Sprintf(
				"%s %s leaves the repository with \"..\"", r.flag, p))}, nil
		}
	}

	clean := path.Clean(filepath.ToSlash(p))
	matched := len(r.allowed) == 0
	for _, pattern := range r.allowed {
		ok, err := doublestar.Match(pattern, clean)
		if err != nil {
			return nil, fmt.Errorf("bad path pattern %q: %w", pattern, err)
		}
		if ok {
			matched = true
			break
		}
	}
	if !matched {
		return []domain.Violation{r.violation(line, fmt.Sprintf(
			"%s %s must live under %s", r.flag, p, strings.Join(r.allowed, ", ")))}, nil
	}

	if r.root != "" && r.fs != nil {
		if _, err := r.fs.Stat(filepath.Join(r.root, filepath.FromSlash(clean))); err != nil {
			return []domain.Violation{r.violation(line, fmt.Sprintf(
				"%s %s does not exist under %s", r.flag, p, r.root))}, nil
		}
	}
	return nil, nil
}
