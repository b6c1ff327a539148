package rules

import (
	"regexp"
	"strings"

	"github.com/hookguard/hookguard/internal/domain"
)

// shellKeywords are filtered out before looking for command names.
var shellKeywords = map[string]bool{
	"if": true, "then": true, "else": true, "elif": true, "fi": true,
	"case": true, "esac": true, "in": true,
	"for": true, "while": true, "until": true, "do": true, "done": true,
	"function": true, "sh": true, "env": true, "usr": true, "bin": true,
}

var wordRe = regexp.MustCompile(`\b(\w+)\b`)

// isComment reports whether a line is a full-line comment (shebang included).
func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

// stripComment drops a trailing " # ..." comment. Quotes are not tracked, so a
// "#" inside a string preceded by whitespace is also cut.
func stripComment(line string) string {
	if isComment(line) {
		return ""
	}
	for i := 1; i < len(line); i++ {
		if line[i] == '#' && (line[i-1] == ' ' || line[i-1] == '\t') {
			return line[:i]
		}
	}
	return line
}

// shellWords splits the code part of a line into words on whitespace and the
// shell operators ; & | ( ).
func shellWords(line string) []string {
	code := stripComment(line)
	return strings.FieldsFunc(code, func(r rune) bool {
		switch r {
		case ' ', '\t', ';', '&', '|', '(', ')':
			return true
		}
		return false
	})
}

// countWord counts exact occurrences of word among the shell words of line.
func countWord(line, word string) int {
	n := 0
	for _, w := range shellWords(line) {
		if w == word {
			n++
		}
	}
	return n
}

// reservedWords leave the following word in command position.
var reservedWords = map[string]bool{
	"if": true, "then": true, "else": true, "elif": true,
	"while": true, "until": true, "do": true, "!": true, "{": true, "time": true,
}

// commandWords returns the words of a line that sit in command position: the
// first word of each statement and any word following a reserved word.
// Statements split on ; & | ( ) outside single or double quotes.
func commandWords(line string) []string {
	var (
		out   []string
		word  strings.Builder
		quote rune
	)
	start := true
	flush := func() {
		if word.Len() == 0 {
			return
		}
		w := word.String()
		word.Reset()
		if start {
			out = append(out, w)
		}
		start = start && reservedWords[w]
	}
	for _, c := range stripComment(line) {
		switch {
		case quote != 0:
			word.WriteRune(c)
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
			word.WriteRune(c)
		case c == ' ' || c == '\t':
			flush()
		case strings.ContainsRune(";&|()", c):
			flush()
			start = true
		default:
			word.WriteRune(c)
		}
	}
	flush()
	return out
}

// countCommand counts the statements of line that start with word.
func countCommand(line, word string) int {
	n := 0
	for _, w := range commandWords(line) {
		if w == word {
			n++
		}
	}
	return n
}

// logicalLine is a command line with backslash continuations joined.
type logicalLine struct {
	text string
	line int // 1-based number of the first physical line
}

func logicalLines(doc *domain.ScriptDocument) []logicalLine {
	var out []logicalLine
	var buf strings.Builder
	start := 0
	for i, l := range doc.Lines {
		if buf.Len() == 0 {
			start = i + 1
		}
		trimmed := strings.TrimRight(l, " \t")
		if strings.HasSuffix(trimmed, "\\") && !isComment(l) {
			buf.WriteString(strings.TrimSuffix(trimmed, "\\"))
			buf.WriteString(" ")
			continue
		}
		buf.WriteString(l)
		out = append(out, logicalLine{text: buf.String(), line: start})
		buf.Reset()
	}
	if buf.Len() > 0 {
		out = append(out, logicalLine{text: buf.String(), line: start})
	}
	return out
}
