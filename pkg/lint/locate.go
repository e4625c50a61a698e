package lint

import (
	"regexp"
	"strings"

	"github.com/lookstack-labs/lookfmt/pkg/token"
)

// Locate resolves a violation path to a best-effort source position in the
// original text. Resolution narrows step by step: the declaration's opening
// line, then the named member's opening line, then the property line. Each
// step keeps the position found so far, so a stale or partial path still
// points somewhere useful. An empty path yields the zero position.
func Locate(text string, path []string) token.Position {
	if len(path) < 2 || text == "" {
		return token.Position{}
	}
	lines := strings.Split(text, "\n")

	pos := token.Position{}
	start, end := 0, len(lines)

	// Declaration step: path[0] is the block type, path[1] the name.
	if ln, ok := findOpen(lines, start, end, path[0], path[1]); ok {
		pos = linePosition(lines, ln)
		start, end = ln+1, blockEnd(lines, ln)
	} else {
		return pos
	}
	rest := path[2:]

	// Member step: a nested named block (field, join, ...).
	if len(rest) >= 2 {
		if ln, ok := findOpen(lines, start, end, rest[0], rest[1]); ok {
			pos = linePosition(lines, ln)
			start, end = ln+1, blockEnd(lines, ln)
		} else {
			return pos
		}
		rest = rest[2:]
	}

	// Property step.
	if len(rest) == 1 {
		re := regexp.MustCompile(`^\s*` + regexp.QuoteMeta(rest[0]) + `\s*:`)
		for ln := start; ln < end && ln < len(lines); ln++ {
			if re.MatchString(lines[ln]) {
				return linePosition(lines, ln)
			}
		}
	}
	return pos
}

// findOpen scans for a block-opening line of the given type and name.
func findOpen(lines []string, start, end int, blockType, name string) (int, bool) {
	var re *regexp.Regexp
	if name == "" {
		re = regexp.MustCompile(`^\s*` + regexp.QuoteMeta(blockType) + `\s*:\s*\{`)
	} else {
		re = regexp.MustCompile(`^\s*` + regexp.QuoteMeta(blockType) + `\s*:\s*` + regexp.QuoteMeta(name) + `\s*\{`)
	}
	for ln := start; ln < end && ln < len(lines); ln++ {
		if re.MatchString(lines[ln]) {
			return ln, true
		}
	}
	return 0, false
}

// blockEnd finds the line index one past the block opened at openLine,
// tracking braces outside SQL segments only coarsely: a line that is just a
// closing brace at or below the opening indentation ends the block.
func blockEnd(lines []string, openLine int) int {
	openIndent := indentOf(lines[openLine])
	for ln := openLine + 1; ln < len(lines); ln++ {
		trim := strings.TrimSpace(lines[ln])
		if (trim == "}" || trim == "} ;;" || trim == "};;") && indentOf(lines[ln]) <= openIndent {
			return ln + 1
		}
	}
	return len(lines)
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// linePosition builds a 1-based position at the first non-blank column.
func linePosition(lines []string, ln int) token.Position {
	col := indentOf(lines[ln]) + 1
	return token.Position{Line: ln + 1, Column: col}
}
