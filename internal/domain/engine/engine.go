// Package engine evaluates rule sets against a script document.
package engine

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hookguard/hookguard/internal/domain"
	"github.com/hookguard/hookguard/internal/domain/rules"
)

// Evaluate runs every rule concurrently and returns their violations
// concatenated in declaration order. A rule that errors or panics yields a
// single synthetic error violation instead of aborting the evaluation.
// Returns domain.ErrCancelled when ctx is done before all rules finish.
func Evaluate(ctx context.Context, doc *domain.ScriptDocument, rs []rules.Rule) ([]domain.Violation, error) {
	results := make([][]domain.Violation, len(rs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, r := range rs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = evaluateRule(r, doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil || ctx.Err() != nil {
		return nil, domain.ErrCancelled
	}

	var out []domain.Violation
	for _, v := range results {
		out = append(out, v...)
	}
	return out, nil
}

func evaluateRule(r rules.Rule, doc *domain.ScriptDocument) (out []domain.Violation) {
	defer func() {
		if p := recover(); p != nil {
			out = []domain.Violation{failure(r.ID(), fmt.Errorf("panic: %v", p))}
		}
	}()

	vs, err := r.Evaluate(doc)
	if err != nil {
		return []domain.Violation{failure(r.ID(), err)}
	}
	return vs
}

func failure(id string, err error) domain.Violation {
	e := &domain.RuleEvaluationError{RuleID: id, Err: err}
	return domain.Violation{
		RuleID:   id,
		Severity: domain.SeverityError,
		Message:  e.Error() + ": disable the rule or report the script that triggers it",
	}
}
