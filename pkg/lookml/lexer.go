package lookml

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lookstack-labs/lookfmt/pkg/token"
)

// LineKind classifies a single source line.
type LineKind int

// Line classifications.
const (
	LineBlank LineKind = iota
	LineComment
	LineBlockOpen
	LineBlockClose
	LineProperty
	LineSQLOpen
	LineSQL
	LineContent
)

// String returns a readable name for the classification.
func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineComment:
		return "comment"
	case LineBlockOpen:
		return "block-open"
	case LineBlockClose:
		return "block-close"
	case LineProperty:
		return "property"
	case LineSQLOpen:
		return "sql-open"
	case LineSQL:
		return "sql"
	default:
		return "content"
	}
}

// ScannedLine is one classified input line. Depth is the number of open
// blocks before the line is consumed.
type ScannedLine struct {
	Text  string // original line, verbatim
	Trim  string // whitespace-trimmed text
	Kind  LineKind
	Depth int
	Num   int // 1-based line number

	BlockType string // LineBlockOpen
	BlockName string // LineBlockOpen, may be empty

	Property string // LineProperty and LineSQLOpen
	Value    string // text after the property colon

	// Terminated is set on a LineSQLOpen whose segment closes on the same
	// line, and on the LineSQL line carrying the ;; terminator.
	Terminated bool
}

// Anomaly is a recoverable structural problem found during scanning or
// building: an unmatched close, an unterminated block or SQL segment, a
// malformed field name.
type Anomaly struct {
	Message string
	Pos     token.Position
}

func (a Anomaly) Error() string {
	return fmt.Sprintf("line %d: %s", a.Pos.Line, a.Message)
}

// ScanResult carries the classified lines plus any recoverable anomalies.
// Degraded is set when the input had to be repaired (implicit closes at end
// of input, pops of an empty stack).
type ScanResult struct {
	Lines     []ScannedLine
	Anomalies []Anomaly
	Degraded  bool
}

var (
	blockOpenRe = regexp.MustCompile(`^([A-Za-z_]\w*)\s*:\s*([A-Za-z_][\w.]*)?\s*\{$`)
	propertyRe  = regexp.MustCompile(`^([A-Za-z_]\w*)\s*:\s*(.*)$`)
)

type openBlock struct {
	blockType string
	name      string
	line      int
}

// Scan classifies every line of the input and tracks block nesting.
// sqlProps is the set of SQL-bearing property names; pass nil for the
// default set. Scan never fails: malformed input is recorded as anomalies
// and the scan runs to end of input.
func Scan(text string, sqlProps map[string]bool) ScanResult {
	if sqlProps == nil {
		sqlProps = SQLPropertySet(nil)
	}

	var res ScanResult
	if text == "" {
		return res
	}

	lines := strings.Split(text, "\n")
	var stack []openBlock
	inSQL := false

	for i, raw := range lines {
		sl := ScannedLine{
			Text:  raw,
			Trim:  strings.TrimSpace(raw),
			Depth: len(stack),
			Num:   i + 1,
		}

		switch {
		case inSQL:
			sl.Kind = LineSQL
			if strings.HasSuffix(sl.Trim, ";;") {
				sl.Terminated = true
				inSQL = false
			}

		case sl.Trim == "":
			sl.Kind = LineBlank

		case strings.HasPrefix(sl.Trim, "#"):
			sl.Kind = LineComment

		case isCloseLine(sl.Trim):
			sl.Kind = LineBlockClose
			if len(stack) == 0 {
				res.Anomalies = append(res.Anomalies, Anomaly{
					Message: "unmatched closing brace",
					Pos:     token.Position{Line: sl.Num, Column: 1},
				})
				res.Degraded = true
			} else {
				stack = stack[:len(stack)-1]
			}

		case blockOpenRe.MatchString(sl.Trim):
			m := blockOpenRe.FindStringSubmatch(sl.Trim)
			sl.Kind = LineBlockOpen
			sl.BlockType = m[1]
			sl.BlockName = m[2]
			stack = append(stack, openBlock{blockType: m[1], name: m[2], line: sl.Num})

		case propertyRe.MatchString(sl.Trim):
			m := propertyRe.FindStringSubmatch(sl.Trim)
			sl.Property = m[1]
			sl.Value = strings.TrimSpace(m[2])
			if sqlProps[sl.Property] {
				sl.Kind = LineSQLOpen
				if strings.HasSuffix(sl.Value, ";;") {
					sl.Terminated = true
				} else {
					inSQL = true
				}
			} else {
				sl.Kind = LineProperty
			}

		default:
			sl.Kind = LineContent
		}

		res.Lines = append(res.Lines, sl)
	}

	last := len(lines)
	if inSQL {
		res.Anomalies = append(res.Anomalies, Anomaly{
			Message: "unterminated SQL segment at end of input",
			Pos:     token.Position{Line: last, Column: 1},
		})
		res.Degraded = true
	}
	for _, b := range stack {
		res.Anomalies = append(res.Anomalies, Anomaly{
			Message: fmt.Sprintf("unterminated block %q opened here", b.blockType),
			Pos:     token.Position{Line: b.line, Column: 1},
		})
		res.Degraded = true
	}

	return res
}

// isCloseLine reports whether a trimmed line closes a block. The "} ;;" form
// shows up when a SQL-flavoured block terminator shares the closing line.
func isCloseLine(trim string) bool {
	return trim == "}" || trim == "} ;;" || trim == "};;"
}
