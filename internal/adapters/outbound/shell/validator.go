package shell

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/hookguard/hookguard/internal/domain"
)

// ExecRunner implements domain.CommandRunner with os/exec.
type ExecRunner struct{}

func (ExecRunner) LookPath(name string) (string, error) { return exec.LookPath(name) }

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Validator implements domain.SyntaxChecker by running "<dialect> -n <path>".
type Validator struct {
	runner domain.CommandRunner
	logger *slog.Logger
}

// New creates a Validator. A nil runner runs real interpreters.
func New(runner domain.CommandRunner, logger *slog.Logger) *Validator {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{runner: runner, logger: logger}
}

// Validate checks every dialect concurrently and returns results in the
// requested order. Failures are recorded, never returned as errors.
func (v *Validator) Validate(ctx context.Context, doc *domain.ScriptDocument, dialects []string, timeout time.Duration) []domain.SyntaxResult {
	if timeout <= 0 {
		timeout = domain.DefaultTimeout
	}

	results := make([]domain.SyntaxResult, len(dialects))
	var wg sync.WaitGroup
	for i, d := range dialects {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = v.validateOne(ctx, doc.Path, d, timeout)
		}()
	}
	wg.Wait()
	return results
}

func (v *Validator) validateOne(ctx context.Context, path, dialect string, timeout time.Duration) domain.SyntaxResult {
	res := domain.SyntaxResult{Dialect: dialect}

	bin, err := v.runner.LookPath(dialect)
	if err != nil {
		res.Environmental = true
		res.Diagnostic = fmt.Sprintf("interpreter %q not found in PATH: install it or drop it from dialects", dialect)
		v.logger.Warn("Interpreter not found", "dialect", dialect, "error", err)
		return res
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	out, err := v.runner.Run(runCtx, bin, "-n", path)
	v.logger.Debug("Syntax check finished", "dialect", dialect, "path", path, "elapsed", time.Since(start))

	switch {
	case err == nil:
		res.Valid = true
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		res.Environmental = true
		res.Diagnostic = fmt.Sprintf("%s -n timed out after %s: raise --timeout or check the interpreter", dialect, timeout)
	case ctx.Err() != nil:
		res.Environmental = true
		res.Diagnostic = fmt.Sprintf("%s -n cancelled", dialect)
	default:
		res.Diagnostic = strings.TrimSpace(string(out))
		if res.Diagnostic == "" {
			res.Diagnostic = err.Error()
		}
	}
	return res
}
