package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hookguard/hookguard/internal/domain"
	"github.com/hookguard/hookguard/internal/domain/engine"
	"github.com/hookguard/hookguard/internal/domain/report"
	"github.com/hookguard/hookguard/internal/domain/rules"
)

// CheckOptions override project configuration for a single run. Zero values
// keep the configured value.
type CheckOptions struct {
	RuleSet  string
	FailOn   domain.Severity
	Timeout  time.Duration
	Dialects []string
	// SetDialects distinguishes "no dialects" from "not specified".
	SetDialects bool
	Root        string
	Record      bool
}

// CheckService orchestrates the check pipeline:
// load -> (syntax check || rule evaluation) -> report.
type CheckService struct {
	loader  domain.ScriptLoader
	syntax  domain.SyntaxChecker
	config  domain.ConfigLoader
	git     domain.GitInfo
	history domain.RunHistory
	fs      domain.FileSystem
	logger  *slog.Logger
	now     func() time.Time
}

func NewCheckService(
	loader domain.ScriptLoader,
	syntax domain.SyntaxChecker,
	config domain.ConfigLoader,
	git domain.GitInfo,
	history domain.RunHistory,
	fs domain.FileSystem,
	logger *slog.Logger,
) *CheckService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckService{
		loader:  loader,
		syntax:  syntax,
		config:  config,
		git:     git,
		history: history,
		fs:      fs,
		logger:  logger,
		now:     time.Now,
	}
}

// ResolveConfig loads the project config and applies per-run overrides.
func (s *CheckService) ResolveConfig(projectPath string, opts CheckOptions) (domain.ProjectConfig, error) {
	cfg, err := s.config.Load(projectPath)
	if err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("loading config: %w", err)
	}
	if opts.RuleSet != "" {
		cfg.RuleSet = opts.RuleSet
	}
	if opts.FailOn != "" {
		cfg.FailOn = opts.FailOn
	}
	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}
	if opts.SetDialects {
		cfg.Dialects = opts.Dialects
	}
	if opts.Root != "" {
		cfg.Root = opts.Root
	}
	if cfg.Root != "" && !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(projectPath, cfg.Root)
	}
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, err
	}
	return cfg, nil
}

// Rules builds the configured rule set for a project.
func (s *CheckService) Rules(projectPath string, opts CheckOptions) (domain.ProjectConfig, []rules.Rule, error) {
	cfg, err := s.ResolveConfig(projectPath, opts)
	if err != nil {
		return domain.ProjectConfig{}, nil, err
	}
	rs, err := rules.Build(cfg.RuleSet, rules.Options{Config: cfg, Root: cfg.Root, FS: s.fs})
	if err != nil {
		return domain.ProjectConfig{}, nil, err
	}
	return cfg, rs, nil
}

// Check runs the full pipeline for one script. Load failures are returned
// as *domain.NotFoundError or *domain.IOError; cancellation as
// domain.ErrCancelled. Syntax and policy failures live in the report.
func (s *CheckService) Check(ctx context.Context, projectPath, scriptPath string, opts CheckOptions) (*domain.PolicyReport, error) {
	cfg, rs, err := s.Rules(projectPath, opts)
	if err != nil {
		return nil, err
	}

	doc, err := s.loader.Load(scriptPath)
	if err != nil {
		return nil, err
	}
	run := domain.NewCheckRun()
	s.logger.Debug("Script loaded", "path", doc.Path, "lines", len(doc.Lines), "line_ending", doc.LineEnding)

	// Both passes only read doc, so they run side by side.
	var (
		syntax     []domain.SyntaxResult
		violations []domain.Violation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		syntax = s.syntax.Validate(gctx, doc, cfg.Dialects, cfg.Timeout)
		return gctx.Err()
	})
	g.Go(func() error {
		var err error
		violations, err = engine.Evaluate(gctx, doc, rs)
		return err
	})
	if err := g.Wait(); err != nil || ctx.Err() != nil {
		_ = run.Advance(domain.StateCancelled)
		s.logger.Info("Check cancelled", "path", doc.Path)
		return nil, domain.ErrCancelled
	}

	if err := run.Advance(domain.StateSyntaxChecked); err != nil {
		return nil, err
	}
	if err := run.Advance(domain.StateRulesEvaluated); err != nil {
		return nil, err
	}

	rep := report.Build(doc, cfg.RuleSet, syntax, violations, cfg.FailOn)
	rep.Metadata = s.metadata(projectPath, scriptPath)
	if err := run.Advance(domain.StateReported); err != nil {
		return nil, err
	}

	s.logger.Debug("Check finished",
		"path", doc.Path,
		"passed", rep.Passed,
		"violations", len(rep.Violations),
		"syntax_valid", rep.SyntaxValid)

	if opts.Record && s.history != nil {
		if err := s.history.Save(projectPath, domain.NewRunEntry(rep)); err != nil {
			s.logger.Warn("Failed to record run", "error", err)
		}
	}
	return rep, nil
}

func (s *CheckService) metadata(projectPath, scriptPath string) domain.ReportMetadata {
	md := domain.ReportMetadata{
		RunID:     uuid.NewString(),
		CheckedAt: s.now().UTC(),
	}
	if s.git == nil || !s.git.IsGitRepo(projectPath) {
		return md
	}
	if hash, err := s.git.CommitHash(projectPath); err == nil {
		md.CommitHash = hash
	} else {
		s.logger.Debug("No commit hash", "error", err)
	}
	if tracked, err := s.git.IsTracked(projectPath, scriptPath); err == nil {
		md.Tracked = &tracked
	}
	return md
}

// History returns the recorded runs of a project.
func (s *CheckService) History(projectPath string) ([]domain.RunEntry, error) {
	if s.history == nil {
		return nil, errors.New("run history is not configured")
	}
	return s.history.Load(projectPath)
}
