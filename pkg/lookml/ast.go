// Package lookml provides the structural model for LookML documents and a
// line-based parser that builds it. The parser never fails: malformed input
// degrades to best-effort classification and the result carries the partial
// tree together with the anomalies found on the way.
package lookml

import "strings"

// =============================================================================
// Declaration kinds
// =============================================================================

// DeclKind identifies the type of a top-level declaration.
type DeclKind int

// Declaration kinds.
const (
	DeclView DeclKind = iota
	DeclExplore
	DeclModel
	DeclDatagroup
	DeclOther
)

// String returns the LookML block type for the kind.
func (k DeclKind) String() string {
	switch k {
	case DeclView:
		return "view"
	case DeclExplore:
		return "explore"
	case DeclModel:
		return "model"
	case DeclDatagroup:
		return "datagroup"
	default:
		return "other"
	}
}

// DeclKindOf maps a block type identifier to a declaration kind.
func DeclKindOf(blockType string) DeclKind {
	switch blockType {
	case "view":
		return DeclView
	case "explore":
		return DeclExplore
	case "model":
		return DeclModel
	case "datagroup":
		return DeclDatagroup
	default:
		return DeclOther
	}
}

// =============================================================================
// Field kinds
// =============================================================================

// FieldKind identifies the type of a field member of a view.
type FieldKind int

// Field kinds.
const (
	FieldDimension FieldKind = iota
	FieldDimensionGroup
	FieldMeasure
	FieldFilter
	FieldParameter
	FieldOther
)

// String returns the LookML block type for the kind.
func (k FieldKind) String() string {
	switch k {
	case FieldDimension:
		return "dimension"
	case FieldDimensionGroup:
		return "dimension_group"
	case FieldMeasure:
		return "measure"
	case FieldFilter:
		return "filter"
	case FieldParameter:
		return "parameter"
	default:
		return "other"
	}
}

// FieldKindOf maps a block type identifier to a field kind.
// The second return is false when the type does not open a field block.
func FieldKindOf(blockType string) (FieldKind, bool) {
	switch blockType {
	case "dimension":
		return FieldDimension, true
	case "dimension_group":
		return FieldDimensionGroup, true
	case "measure":
		return FieldMeasure, true
	case "filter":
		return FieldFilter, true
	case "parameter":
		return FieldParameter, true
	default:
		return FieldOther, false
	}
}

// =============================================================================
// Document tree
// =============================================================================

// Document is an ordered sequence of top-level declarations and interstitial
// text. Interstitial text (blank lines, leading comments, include/connection
// statements) is preserved verbatim and never restructured.
type Document struct {
	Items []Item
}

// Item is a top-level document element: either a *Declaration or *RawText.
type Item interface {
	item()
}

// RawText holds interstitial top-level lines, preserved verbatim.
type RawText struct {
	Lines []string
}

func (*RawText) item() {}

// ContentLine is one pre-formatted line inside a declaration or field body.
// Text is the trimmed original text; Depth is the block nesting depth the
// line sits at (the declaration header is depth 0). SQL marks lines that
// belong to the body of a SQL segment, including its ;; terminator line.
type ContentLine struct {
	Text  string
	Depth int
	SQL   bool
}

// IsBlank returns true for an empty content line.
func (l ContentLine) IsBlank() bool {
	return l.Text == ""
}

// IsComment returns true for a #-prefixed content line.
func (l ContentLine) IsComment() bool {
	return strings.HasPrefix(l.Text, "#")
}

// Declaration is a top-level block: view, explore, model, datagroup, or any
// other block opened at nesting depth zero.
type Declaration struct {
	Kind DeclKind
	Type string // original block type identifier, e.g. "view"
	Name string // identifier, empty for anonymous blocks

	// Content holds the declaration's non-field lines in original order:
	// properties, nested blocks (derived_table, join, ...), comments, and
	// blank lines. It is replayed near-verbatim on re-emission.
	Content []ContentLine

	// Fields holds the declaration's field blocks in original order.
	Fields []*Field
}

func (*Declaration) item() {}

// Header returns the canonical opening line for the declaration.
func (d *Declaration) Header() string {
	if d.Name == "" {
		return d.Type + ": {"
	}
	return d.Type + ": " + d.Name + " {"
}

// Field returns the first field with the given name, or nil.
func (d *Declaration) Field(name string) *Field {
	for _, f := range d.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Declarations returns all declarations in document order.
func (doc *Document) Declarations() []*Declaration {
	var decls []*Declaration
	for _, it := range doc.Items {
		if d, ok := it.(*Declaration); ok {
			decls = append(decls, d)
		}
	}
	return decls
}

// Views returns all view declarations in document order.
func (doc *Document) Views() []*Declaration {
	var views []*Declaration
	for _, d := range doc.Declarations() {
		if d.Kind == DeclView {
			views = append(views, d)
		}
	}
	return views
}

// Explores returns all explore declarations in document order.
func (doc *Document) Explores() []*Declaration {
	var explores []*Declaration
	for _, d := range doc.Declarations() {
		if d.Kind == DeclExplore {
			explores = append(explores, d)
		}
	}
	return explores
}

// Field is a typed, named member of a view: dimension, dimension_group,
// measure, filter, or parameter.
type Field struct {
	Kind FieldKind
	Type string // original block type identifier
	Name string

	// Comments holds the leading comment lines attached to the field (those
	// immediately preceding it with no intervening blank line). They travel
	// with the field when it is reordered.
	Comments []string

	// Lines holds the field's body from its opening line through its closing
	// brace, including nested blocks and SQL segments.
	Lines []ContentLine

	// Parents is the enclosing block-type chain, outermost first. For a field
	// directly inside a view it is ["view"].
	Parents []string
}

// Header returns the canonical opening line for the field.
func (f *Field) Header() string {
	return f.Type + ": " + f.Name + " {"
}

// Depth returns the nesting depth of the field's opening line.
func (f *Field) Depth() int {
	if len(f.Lines) > 0 {
		return f.Lines[0].Depth
	}
	return len(f.Parents)
}
