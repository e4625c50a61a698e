package format

import (
	"regexp"
	"strings"

	"github.com/lookstack-labs/lookfmt/pkg/lookml"
)

// Result carries the formatted output plus the parse diagnostics for the
// input it came from. Formatting never fails: malformed input is formatted
// best-effort and Degraded is set.
type Result struct {
	Output    string
	Changed   bool
	Degraded  bool
	Anomalies []lookml.Anomaly
}

var (
	openLineRe = regexp.MustCompile(`^([A-Za-z_]\w*)\s*:\s*([A-Za-z_][\w.]*)?\s*\{$`)
	propLineRe = regexp.MustCompile(`^([A-Za-z_]\w*)\s*:\s*(.*)$`)
)

// Format parses the input and re-emits it in canonical form. The output is
// stable: formatting its own output is a no-op.
func Format(text string, opts Options) Result {
	parsed := lookml.ParseWithOptions(text, lookml.Options{SQLProperties: opts.SQLProperties})
	out := Render(parsed.Doc, opts)
	return Result{
		Output:    out,
		Changed:   out != text,
		Degraded:  parsed.Degraded,
		Anomalies: parsed.Anomalies,
	}
}

// Render emits a parsed document in canonical form.
func Render(doc *lookml.Document, opts Options) string {
	e := &emitter{
		p:        newPrinter(opts),
		opts:     opts,
		sqlProps: lookml.SQLPropertySet(opts.SQLProperties),
	}
	var prevDecl bool
	for _, it := range doc.Items {
		switch v := it.(type) {
		case *lookml.RawText:
			for _, l := range v.Lines {
				e.p.raw(strings.TrimRight(l, " \t"))
			}
			prevDecl = false
		case *lookml.Declaration:
			if prevDecl {
				e.p.blank()
			}
			e.declaration(v)
			prevDecl = true
		}
	}
	return e.p.String()
}

type emitter struct {
	p        *printer
	opts     Options
	sqlProps map[string]bool
}

func (e *emitter) declaration(d *lookml.Declaration) {
	e.p.line(0, d.Header())

	content := cleanContent(d.Content)
	e.lines(content)

	if len(d.Fields) > 0 {
		if len(content) > 0 {
			e.p.blank()
		}
		for si, sec := range arrange(d.Fields, e.opts) {
			if si > 0 {
				e.p.blank()
			}
			if sec.name != "" {
				e.p.line(1, "# ----- "+sec.name+" -----")
				e.p.blank()
			}
			for fi, f := range sec.fields {
				if fi > 0 {
					e.p.blank()
				}
				e.field(f)
			}
			if sec.name != "" {
				e.p.blank()
				e.p.line(1, "# ----- End of "+sec.name+" -----")
			}
		}
	}

	e.p.line(0, "}")
}

func (e *emitter) field(f *lookml.Field) {
	for _, c := range f.Comments {
		if !isSectionMarker(c) {
			e.p.line(f.Depth(), c)
		}
	}
	if len(f.Lines) == 0 {
		e.p.line(f.Depth(), f.Header())
		e.p.line(f.Depth(), "}")
		return
	}
	e.p.line(f.Depth(), f.Header())

	body := f.Lines[1:]
	if n := len(body); n > 0 && !body[n-1].SQL && isCloseText(body[n-1].Text) {
		body = body[:n-1]
	}
	e.lines(body)
	e.p.line(f.Depth(), "}")
}

// lines replays a run of content lines, normalizing property spacing and
// SQL segments as it goes.
func (e *emitter) lines(lines []lookml.ContentLine) {
	for i := 0; i < len(lines); i++ {
		c := lines[i]
		if c.IsBlank() {
			e.p.blank()
			continue
		}
		if c.IsComment() {
			if !isSectionMarker(c.Text) {
				e.p.line(c.Depth, c.Text)
			}
			continue
		}
		if name, value, ok := propertyParts(c.Text); ok && e.sqlProps[name] && !c.SQL {
			j := i + 1
			for j < len(lines) && lines[j].SQL {
				j++
			}
			e.sqlSegment(c.Depth, name, value, lines[i+1:j])
			i = j - 1
			continue
		}
		e.p.line(c.Depth, normalizeContentLine(c.Text))
	}
}

// sqlSegment emits one SQL-bearing property. Single-line segments stay on
// one line; multi-line bodies are re-indented in two tiers with the
// terminator on its own line.
func (e *emitter) sqlSegment(depth int, name, inline string, body []lookml.ContentLine) {
	var values []string
	add := func(s string) {
		s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ";;"))
		if s == "" {
			return
		}
		if v := normalizeSQLValue(s); v != "" {
			values = append(values, v)
		}
	}
	add(inline)
	for _, c := range body {
		add(c.Text)
	}

	switch len(values) {
	case 0:
		e.p.line(depth, name+": ;;")
	case 1:
		e.p.line(depth, name+": "+values[0]+" ;;")
	default:
		e.p.line(depth, name+":")
		for _, v := range values {
			d := depth + 1
			if isPrimarySQLLine(v) {
				d = depth
			}
			e.p.line(d, v)
		}
		e.p.line(depth, ";;")
	}
}

// cleanContent strips section banners left by a previous run and trims
// blank lines from both edges.
func cleanContent(lines []lookml.ContentLine) []lookml.ContentLine {
	var out []lookml.ContentLine
	for _, c := range lines {
		if c.IsComment() && isSectionMarker(c.Text) {
			continue
		}
		out = append(out, c)
	}
	for len(out) > 0 && out[0].IsBlank() {
		out = out[1:]
	}
	for len(out) > 0 && out[len(out)-1].IsBlank() {
		out = out[:len(out)-1]
	}
	return out
}

// normalizeContentLine canonicalizes the spacing of a structural line:
// block opens, property lines, and closes. Anything else passes through.
func normalizeContentLine(text string) string {
	if isCloseText(text) {
		if strings.HasSuffix(text, ";;") {
			return "} ;;"
		}
		return "}"
	}
	if m := openLineRe.FindStringSubmatch(text); m != nil {
		if m[2] == "" {
			return m[1] + ": {"
		}
		return m[1] + ": " + m[2] + " {"
	}
	if name, value, ok := propertyParts(text); ok {
		if value == "" {
			return name + ":"
		}
		if strings.HasSuffix(value, ";;") {
			v := strings.TrimSpace(strings.TrimSuffix(value, ";;"))
			if v == "" {
				return name + ": ;;"
			}
			return name + ": " + v + " ;;"
		}
		return name + ": " + value
	}
	return text
}

func propertyParts(text string) (name, value string, ok bool) {
	if strings.HasSuffix(text, "{") {
		return "", "", false
	}
	m := propLineRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

func isCloseText(text string) bool {
	return text == "}" || text == "} ;;" || text == "};;"
}
