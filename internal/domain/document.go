package domain

import (
	"io/fs"
	"strings"
)

// LineEnding classifies the line terminators used by a script.
type LineEnding string

const (
	LineEndingLF    LineEnding = "LF"
	LineEndingCRLF  LineEnding = "CRLF"
	LineEndingMixed LineEnding = "Mixed"
)

// ScriptDocument is the immutable view of a hook script that every rule reads.
// It is built once per check run and never mutated afterwards.
type ScriptDocument struct {
	Path       string      `json:"path"`
	RawText    string      `json:"-"`
	Lines      []string    `json:"-"`
	Mode       fs.FileMode `json:"mode"`
	LineEnding LineEnding  `json:"line_ending"`
}

// NewScriptDocument builds a document from raw file contents and permission bits.
func NewScriptDocument(path string, data []byte, mode fs.FileMode) *ScriptDocument {
	text := string(data)
	return &ScriptDocument{
		Path:       path,
		RawText:    text,
		Lines:      SplitLines(text),
		Mode:       mode.Perm(),
		LineEnding: DetectLineEnding(text),
	}
}

// SplitLines splits on "\n" and drops a trailing "\r" from each line. A
// trailing newline does not produce an extra empty line, so a non-empty text
// always yields at least one line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	parts := strings.Split(text, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}

// DetectLineEnding reports LF when no "\r\n" occurs, CRLF when every newline
// is preceded by "\r", and Mixed when both forms are present.
func DetectLineEnding(text string) LineEnding {
	crlf := strings.Count(text, "\r\n")
	if crlf == 0 {
		return LineEndingLF
	}
	if strings.Count(text, "\n") > crlf {
		return LineEndingMixed
	}
	return LineEndingCRLF
}

// Shebang returns line 1 when it starts with "#!" at its first byte, with
// trailing whitespace removed. The kernel ignores "#!" anywhere else.
func (d *ScriptDocument) Shebang() (line string, ok bool) {
	if len(d.Lines) == 0 || !strings.HasPrefix(d.Lines[0], "#!") {
		return "", false
	}
	return strings.TrimRight(d.Lines[0], " \t"), true
}

// MisplacedShebang returns the 1-based number of the first line that holds a
// shebang somewhere other than the start of line 1, or 0.
func (d *ScriptDocument) MisplacedShebang() int {
	for i, l := range d.Lines {
		if strings.HasPrefix(strings.TrimSpace(l), "#!") && !(i == 0 && strings.HasPrefix(l, "#!")) {
			return i + 1
		}
	}
	return 0
}

// NonBlankLines returns the lines that contain something other than whitespace.
func (d *ScriptDocument) NonBlankLines() []string {
	var out []string
	for _, l := range d.Lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

// CommentLines returns the comment lines of the script, excluding the shebang.
func (d *ScriptDocument) CommentLines() []string {
	var out []string
	for _, l := range d.Lines {
		trimmed := strings.TrimSpace(l)
		if strings.HasPrefix(trimmed, "#") && !strings.HasPrefix(trimmed, "#!") {
			out = append(out, trimmed)
		}
	}
	return out
}

// FindLine returns the 1-based number of the first line containing substr, or 0.
func (d *ScriptDocument) FindLine(substr string) int {
	for i, l := range d.Lines {
		if strings.Contains(l, substr) {
			return i + 1
		}
	}
	return 0
}

// IsExecutable reports whether the owner execute bit is set.
func (d *ScriptDocument) IsExecutable() bool {
	return d.Mode&0o100 != 0
}
