package domain

import (
	"context"
	"io/fs"
	"time"
)

// FileSystem is the read-only filesystem capability used to load scripts.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
}

// CommandRunner starts external interpreters. Run returns the combined
// output and the process error (nil on exit status 0).
type CommandRunner interface {
	LookPath(name string) (string, error)
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ScriptLoader turns a path into a ScriptDocument.
type ScriptLoader interface {
	Load(path string) (*ScriptDocument, error)
}

// SyntaxChecker validates a document under one or more shell dialects. Each
// interpreter run is bounded by timeout.
type SyntaxChecker interface {
	Validate(ctx context.Context, doc *ScriptDocument, dialects []string, timeout time.Duration) []SyntaxResult
}

// ConfigLoader loads project configuration from a directory.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// GitInfo provides repository facts recorded in report metadata.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
	IsTracked(projectPath, file string) (bool, error)
}

// RunHistory stores summaries of past check runs.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}
