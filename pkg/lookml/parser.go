package lookml

import (
	"github.com/lookstack-labs/lookfmt/pkg/token"
)

// Options controls parsing.
type Options struct {
	// SQLProperties lists additional SQL-bearing property names merged into
	// DefaultSQLProperties. The allow-list is configuration data, not code:
	// dialect-specific properties the default set misses can be added here.
	SQLProperties []string
}

// ParseResult carries the document tree plus any recoverable anomalies.
// Callers consume the tree unconditionally; Degraded marks a best-effort
// parse of malformed input.
type ParseResult struct {
	Doc       *Document
	Anomalies []Anomaly
	Degraded  bool
}

// Parse builds the structural model for a LookML document using the default
// SQL property set. It never fails, including on empty input.
func Parse(text string) *ParseResult {
	return ParseWithOptions(text, Options{})
}

// ParseWithOptions builds the structural model with explicit options.
func ParseWithOptions(text string, opts Options) *ParseResult {
	sqlProps := SQLPropertySet(opts.SQLProperties)
	scan := Scan(text, sqlProps)

	b := &builder{
		res: &ParseResult{
			Doc:       &Document{},
			Anomalies: scan.Anomalies,
			Degraded:  scan.Degraded,
		},
		lines: scan.Lines,
	}
	b.run()
	return b.res
}

type builder struct {
	res   *ParseResult
	lines []ScannedLine
	pos   int

	raw     []string // buffered top-level interstitial lines
	decl    *Declaration
	pending []ContentLine // comment lines awaiting attachment
}

func (b *builder) run() {
	for b.pos < len(b.lines) {
		sl := b.lines[b.pos]
		if b.decl == nil {
			b.topLevel(sl)
		} else {
			b.inDeclaration(sl)
		}
	}
	b.flushPendingToContent()
	b.finishDeclaration()
	b.flushRaw()
}

// topLevel consumes one line outside any declaration.
func (b *builder) topLevel(sl ScannedLine) {
	if sl.Kind == LineBlockOpen && sl.Depth == 0 {
		b.flushRaw()
		b.decl = &Declaration{
			Kind: DeclKindOf(sl.BlockType),
			Type: sl.BlockType,
			Name: sl.BlockName,
		}
		b.pos++
		return
	}
	// Interstitial text is preserved verbatim, unmatched closes included.
	b.raw = append(b.raw, sl.Text)
	b.pos++
}

// inDeclaration consumes one line inside the active declaration.
func (b *builder) inDeclaration(sl ScannedLine) {
	switch {
	case sl.Kind == LineBlockClose && sl.Depth == 1:
		b.flushPendingToContent()
		b.finishDeclaration()
		b.pos++

	case sl.Kind == LineComment:
		b.pending = append(b.pending, ContentLine{Text: sl.Trim, Depth: sl.Depth})
		b.pos++

	case sl.Kind == LineBlank:
		// A blank line detaches buffered comments from whatever follows.
		b.flushPendingToContent()
		b.appendContent(ContentLine{Depth: sl.Depth})
		b.pos++

	case sl.Kind == LineBlockOpen && sl.Depth == 1 && isFieldType(sl.BlockType):
		if sl.BlockName == "" {
			// Field block without an extractable name: keep the parse moving
			// by treating it as plain content.
			b.res.Anomalies = append(b.res.Anomalies, Anomaly{
				Message: "field block without a name",
				Pos:     token.Position{Line: sl.Num, Column: 1},
			})
			b.flushPendingToContent()
			b.appendContent(ContentLine{Text: sl.Trim, Depth: sl.Depth})
			b.pos++
			return
		}
		b.captureField(sl)

	default:
		b.flushPendingToContent()
		b.appendContent(b.contentLine(sl))
		b.pos++
	}
}

// captureField consumes a field block from its opening line through its
// matching close (or end of input on malformed documents).
func (b *builder) captureField(open ScannedLine) {
	kind, _ := FieldKindOf(open.BlockType)
	f := &Field{
		Kind:    kind,
		Type:    open.BlockType,
		Name:    open.BlockName,
		Parents: []string{b.decl.Type},
	}
	for _, c := range b.pending {
		f.Comments = append(f.Comments, c.Text)
	}
	b.pending = nil

	f.Lines = append(f.Lines, ContentLine{Text: open.Trim, Depth: open.Depth})
	b.pos++

	for b.pos < len(b.lines) {
		sl := b.lines[b.pos]
		if sl.Kind == LineBlockClose && sl.Depth == open.Depth+1 {
			f.Lines = append(f.Lines, ContentLine{Text: sl.Trim, Depth: open.Depth})
			b.pos++
			break
		}
		f.Lines = append(f.Lines, b.contentLine(sl))
		b.pos++
	}

	b.decl.Fields = append(b.decl.Fields, f)
}

// contentLine converts a scanned line to a content line with its depth.
func (b *builder) contentLine(sl ScannedLine) ContentLine {
	c := ContentLine{Text: sl.Trim, Depth: sl.Depth}
	if sl.Kind == LineBlockClose {
		c.Depth = sl.Depth - 1
		if c.Depth < 0 {
			c.Depth = 0
		}
	}
	if sl.Kind == LineSQL {
		c.SQL = true
	}
	return c
}

func (b *builder) appendContent(c ContentLine) {
	b.decl.Content = append(b.decl.Content, c)
}

func (b *builder) flushPendingToContent() {
	if b.decl == nil {
		b.pending = nil
		return
	}
	b.decl.Content = append(b.decl.Content, b.pending...)
	b.pending = nil
}

func (b *builder) finishDeclaration() {
	if b.decl == nil {
		return
	}
	b.res.Doc.Items = append(b.res.Doc.Items, b.decl)
	b.decl = nil
}

func (b *builder) flushRaw() {
	if len(b.raw) == 0 {
		return
	}
	b.res.Doc.Items = append(b.res.Doc.Items, &RawText{Lines: b.raw})
	b.raw = nil
}

func isFieldType(blockType string) bool {
	_, ok := FieldKindOf(blockType)
	return ok
}
