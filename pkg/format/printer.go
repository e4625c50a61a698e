package format

import (
	"bytes"
	"strings"
)

// printer accumulates formatted output line by line. Indentation is derived
// from the depth passed to line; blank lines are collapsed so repeated runs
// of the formatter converge on the same spacing.
type printer struct {
	buf       bytes.Buffer
	unit      string
	lastBlank bool
	empty     bool
}

func newPrinter(opts Options) *printer {
	return &printer{unit: opts.indentUnit(), empty: true}
}

// line writes an indented line. Empty text degrades to a blank line.
func (p *printer) line(depth int, text string) {
	if text == "" {
		p.blank()
		return
	}
	for i := 0; i < depth; i++ {
		p.buf.WriteString(p.unit)
	}
	p.buf.WriteString(text)
	p.buf.WriteByte('\n')
	p.lastBlank = false
	p.empty = false
}

// blank writes a single blank line, suppressing leading and consecutive
// blanks.
func (p *printer) blank() {
	if p.empty || p.lastBlank {
		return
	}
	p.buf.WriteByte('\n')
	p.lastBlank = true
}

// raw writes a line verbatim, bypassing indentation and blank collapsing.
// Used for top-level interstitial text.
func (p *printer) raw(text string) {
	p.buf.WriteString(text)
	p.buf.WriteByte('\n')
	p.lastBlank = text == ""
	if text != "" {
		p.empty = false
	}
}

// String returns the output with exactly one trailing newline, or the empty
// string if nothing was written.
func (p *printer) String() string {
	s := strings.TrimRight(p.buf.String(), "\n")
	if s == "" {
		return ""
	}
	return s + "\n"
}
