package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/hookguard/hookguard/internal/adapters/outbound/tui"
	"github.com/hookguard/hookguard/internal/adapters/outbound/watch"
	"github.com/hookguard/hookguard/internal/application"
	"github.com/hookguard/hookguard/internal/domain"
	"github.com/hookguard/hookguard/internal/domain/report"
)

// exitCancelled is returned when a run is interrupted before reporting.
const exitCancelled = 130

func newCheckCmd() *cobra.Command {
	var (
		ruleSet  string
		timeout  int
		format   string
		failOn   string
		root     string
		dialects []string
		path     string
		record   bool
		watchIt  bool
	)

	cmd := &cobra.Command{
		Use:   "check <script>",
		Short: "Check a hook script against a rule set",
		Long: "Validate the shell syntax of a hook script and evaluate the policy rules of a rule set.\n\n" +
			"Exit codes: 0 passed, 1 policy violations, 2 syntax invalid, 3 environment or tool error.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unknown format %q (valid: text, json)", format)
			}
			opts := application.CheckOptions{
				RuleSet: ruleSet,
				Timeout: time.Duration(timeout) * time.Second,
				Root:    root,
				Record:  record,
			}
			if failOn != "" {
				sev, err := domain.ParseSeverity(failOn)
				if err != nil {
					return fmt.Errorf("--fail-on: %w", err)
				}
				opts.FailOn = sev
			}
			if cmd.Flags().Changed("dialect") {
				opts.Dialects = dialects
				opts.SetDialects = true
			}

			logger := newLogger(cmd)
			svc := newCheckService(logger)
			script := args[0]

			if !watchIt {
				return runCheck(cmd.Context(), cmd, svc, path, script, opts, format)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			printResult(cmd, runCheck(ctx, cmd, svc, path, script, opts, format))
			return watch.New(script, 0, logger).Run(ctx, func(ctx context.Context) {
				printResult(cmd, runCheck(ctx, cmd, svc, path, script, opts, format))
			})
		},
	}

	cmd.Flags().StringVar(&ruleSet, "rules", "", "Rule set to apply (default from .hookguard.yaml, else husky-pre-commit)")
	cmd.Flags().IntVar(&timeout, "timeout", 0, "Seconds allowed per interpreter syntax check (default 5)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&failOn, "fail-on", "", "Lowest severity that fails the check: error or warning")
	cmd.Flags().StringVar(&root, "root", "", "Directory for resolving files referenced by the script")
	cmd.Flags().StringSliceVar(&dialects, "dialect", nil, "Interpreters for syntax checks (default sh,bash; empty to skip)")
	cmd.Flags().StringVar(&path, "path", ".", "Project path holding .hookguard.yaml")
	cmd.Flags().BoolVar(&record, "record", false, "Append the result to .hookguard/history")
	cmd.Flags().BoolVar(&watchIt, "watch", false, "Re-run the check whenever the script changes")

	return cmd
}

func runCheck(
	ctx context.Context,
	cmd *cobra.Command,
	svc *application.CheckService,
	projectPath, script string,
	opts application.CheckOptions,
	format string,
) error {
	rep, err := svc.Check(ctx, projectPath, script, opts)
	if err != nil {
		if errors.Is(err, domain.ErrCancelled) {
			return &ExitError{Code: exitCancelled, Err: err}
		}
		return &ExitError{Code: report.ExitEnvironment, Err: fmt.Errorf("check failed: %w", err)}
	}

	if format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderPolicyReport(rep))
	}

	switch code := report.ExitCode(rep); code {
	case report.ExitPassed:
		return nil
	case report.ExitSyntaxInvalid:
		return &ExitError{Code: code, Err: fmt.Errorf("%s has shell syntax errors", rep.Path)}
	case report.ExitEnvironment:
		return &ExitError{Code: code, Err: fmt.Errorf("syntax check could not run: see the syntax section for the cause")}
	default:
		return &ExitError{Code: code, Err: fmt.Errorf("%s violates %d policy rules", rep.Path, len(rep.Violations))}
	}
}

func printResult(cmd *cobra.Command, err error) {
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "hookguard: %v\n", err)
	}
}
