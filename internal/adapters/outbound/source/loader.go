package source

import (
	"errors"
	"io/fs"
	"os"

	"github.com/hookguard/hookguard/internal/domain"
)

// OSFileSystem implements domain.FileSystem on the host filesystem.
type OSFileSystem struct{}

func (OSFileSystem) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }
func (OSFileSystem) ReadFile(path string) ([]byte, error)  { return os.ReadFile(path) }

// Loader implements domain.ScriptLoader.
type Loader struct {
	fs domain.FileSystem
}

// New creates a Loader reading through fsys. A nil fsys uses the host filesystem.
func New(fsys domain.FileSystem) *Loader {
	if fsys == nil {
		fsys = OSFileSystem{}
	}
	return &Loader{fs: fsys}
}

// Load reads the script and its permission bits into an immutable document.
func (l *Loader) Load(path string) (*domain.ScriptDocument, error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.NotFoundError{Path: path}
		}
		return nil, &domain.IOError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &domain.IOError{Path: path, Err: errors.New("is a directory, expected a script file")}
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		return nil, &domain.IOError{Path: path, Err: err}
	}
	return domain.NewScriptDocument(path, data, info.Mode()), nil
}
