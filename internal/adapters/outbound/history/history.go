package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hookguard/hookguard/internal/domain"
)

const (
	historyFile = ".hookguard/history/runs.json"
	// DefaultMaxEntries bounds the file; older runs are dropped first.
	DefaultMaxEntries = 200
)

// FileHistory implements domain.RunHistory on a JSON file under the project.
type FileHistory struct {
	maxEntries int
}

func New() *FileHistory {
	return &FileHistory{maxEntries: DefaultMaxEntries}
}

// Save appends entry and trims the file to the most recent runs. The file is
// replaced through a rename so a crash never leaves half-written JSON.
func (h *FileHistory) Save(projectPath string, entry domain.RunEntry) error {
	entries, err := h.Load(projectPath)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if h.maxEntries > 0 && len(entries) > h.maxEntries {
		entries = entries[len(entries)-h.maxEntries:]
	}

	fp := filepath.Join(projectPath, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(fp), "runs-*.json")
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return os.Rename(tmp.Name(), fp)
}

// Load returns recorded runs oldest first. A missing file yields no entries.
func (h *FileHistory) Load(projectPath string) ([]domain.RunEntry, error) {
	fp := filepath.Join(projectPath, historyFile)

	data, err := os.ReadFile(fp)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", historyFile, err)
	}
	return entries, nil
}

// Filter keeps the entries for script (all when empty) and then the last n
// of those (all when n <= 0).
func Filter(entries []domain.RunEntry, script string, n int) []domain.RunEntry {
	out := make([]domain.RunEntry, 0, len(entries))
	for _, e := range entries {
		if script == "" || filepath.Clean(e.Path) == filepath.Clean(script) {
			out = append(out, e)
		}
	}
	if n > 0 && len(out) > n {
		out = out[len(out)-n:]
	}
	return out
}
