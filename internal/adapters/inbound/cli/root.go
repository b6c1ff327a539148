package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hookguard/hookguard/internal/adapters/outbound/config"
	"github.com/hookguard/hookguard/internal/adapters/outbound/gitinfo"
	"github.com/hookguard/hookguard/internal/adapters/outbound/history"
	"github.com/hookguard/hookguard/internal/adapters/outbound/shell"
	"github.com/hookguard/hookguard/internal/adapters/outbound/source"
	"github.com/hookguard/hookguard/internal/application"
	"github.com/hookguard/hookguard/internal/domain/report"
)

var (
	version = "dev"
	commit  = "none"
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

// ExitCodeOf maps a command error to an exit code. Errors without an
// explicit code are tool errors.
func ExitCodeOf(err error) int {
	if err == nil {
		return report.ExitPassed
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return report.ExitEnvironment
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "hookguard",
		Short:         "Policy checks for git hook scripts",
		Long:          "hookguard validates hook scripts: shell syntax under sh and bash, plus policy rules for secret scanning, affected-project builds and script hygiene.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newRulesCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newHistoryCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	return newRootCmd().Execute()
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func newCheckService(logger *slog.Logger) *application.CheckService {
	fsys := source.OSFileSystem{}
	return application.NewCheckService(
		source.New(fsys),
		shell.New(nil, logger),
		config.New(),
		gitinfo.New(),
		history.New(),
		fsys,
		logger,
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show hookguard version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "hookguard %s (%s)\n", version, commit)
			return nil
		},
	}
}
