package lookml

import "strings"

// DefaultSQLProperties returns the built-in set of SQL-bearing property
// names. The list is data, not logic: dialect-specific variants missing here
// can be supplied through Options.SQLProperties.
func DefaultSQLProperties() []string {
	return []string{
		"sql",
		"sql_on",
		"sql_where",
		"sql_always_where",
		"sql_always_having",
		"sql_trigger_value",
		"sql_trigger",
		"sql_table_name",
		"sql_distinct_key",
		"sql_latitude",
		"sql_longitude",
		"sql_start",
		"sql_end",
		"sql_create",
		"sql_step",
		"sql_preamble",
		"html",
	}
}

// SQLPropertySet builds the lookup set from the defaults plus extras.
func SQLPropertySet(extra []string) map[string]bool {
	set := make(map[string]bool)
	for _, p := range DefaultSQLProperties() {
		set[p] = true
	}
	for _, p := range extra {
		if p = strings.TrimSpace(p); p != "" {
			set[p] = true
		}
	}
	return set
}

// IsTruthy reports whether a LookML property value means true.
func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true":
		return true
	}
	return false
}

// =============================================================================
// Line-based structural helpers
// =============================================================================

// Block is a nested non-field block (join, derived_table, ...) extracted
// from content lines on demand.
type Block struct {
	Type  string
	Name  string
	Lines []ContentLine // opening line through closing brace
}

// ExtractBlocks finds the nested blocks of the given type at any depth
// within the lines. SQL segment bodies are never scanned for block opens.
func ExtractBlocks(lines []ContentLine, blockType string) []*Block {
	var blocks []*Block
	for i := 0; i < len(lines); i++ {
		l := lines[i]
		if l.SQL {
			continue
		}
		m := blockOpenRe.FindStringSubmatch(l.Text)
		if m == nil || m[1] != blockType {
			continue
		}
		blk := &Block{Type: m[1], Name: m[2]}
		depth := l.Depth
		blk.Lines = append(blk.Lines, l)
		j := i + 1
		for ; j < len(lines); j++ {
			blk.Lines = append(blk.Lines, lines[j])
			if !lines[j].SQL && isCloseLine(lines[j].Text) && lines[j].Depth == depth {
				break
			}
		}
		blocks = append(blocks, blk)
		i = j
	}
	return blocks
}

// PropertyValue returns the value of the first property with the given name,
// with any trailing ;; terminator stripped.
func PropertyValue(lines []ContentLine, name string) (string, bool) {
	for _, l := range lines {
		if l.SQL {
			continue
		}
		m := propertyRe.FindStringSubmatch(l.Text)
		if m == nil || m[1] != name {
			continue
		}
		v := strings.TrimSpace(m[2])
		if v == "{" {
			// Block open, not a property.
			continue
		}
		v = strings.TrimSpace(strings.TrimSuffix(v, ";;"))
		return v, true
	}
	return "", false
}

// SQLText returns the raw text of the SQL segment attached to the given
// property, joined with newlines and with the opening property prefix and
// ;; terminator stripped. Templating tags and substitution tokens come back
// exactly as written.
func SQLText(lines []ContentLine, prop string) (string, bool) {
	for i, l := range lines {
		if l.SQL {
			continue
		}
		m := propertyRe.FindStringSubmatch(l.Text)
		if m == nil || m[1] != prop {
			continue
		}
		v := strings.TrimSpace(m[2])
		if strings.HasSuffix(v, ";;") {
			return strings.TrimSpace(strings.TrimSuffix(v, ";;")), true
		}
		var parts []string
		if v != "" {
			parts = append(parts, v)
		}
		for j := i + 1; j < len(lines); j++ {
			t := lines[j].Text
			if strings.HasSuffix(t, ";;") {
				t = strings.TrimSpace(strings.TrimSuffix(t, ";;"))
				if t != "" {
					parts = append(parts, t)
				}
				return strings.Join(parts, "\n"), true
			}
			parts = append(parts, t)
		}
		return strings.Join(parts, "\n"), true
	}
	return "", false
}

// HasBlock reports whether the declaration contains a nested block of the
// given type.
func (d *Declaration) HasBlock(blockType string) bool {
	return len(ExtractBlocks(d.Content, blockType)) > 0
}

// Blocks returns the declaration's nested non-field blocks of the given type.
func (d *Declaration) Blocks(blockType string) []*Block {
	return ExtractBlocks(d.Content, blockType)
}

// PropertyValue returns a property value from the declaration's non-field
// content.
func (d *Declaration) PropertyValue(name string) (string, bool) {
	return PropertyValue(d.Content, name)
}

// PropertyValue returns a property value from the field's body.
func (f *Field) PropertyValue(name string) (string, bool) {
	return PropertyValue(f.Lines, name)
}

// SQLText returns the raw SQL segment text for a property of the field.
func (f *Field) SQLText(prop string) (string, bool) {
	return SQLText(f.Lines, prop)
}

// PropertyValue returns a property value from the block's body.
func (b *Block) PropertyValue(name string) (string, bool) {
	if len(b.Lines) < 2 {
		return "", false
	}
	return PropertyValue(b.Lines[1:], name)
}

// SQLText returns the raw SQL segment text for a property of the block.
func (b *Block) SQLText(prop string) (string, bool) {
	if len(b.Lines) < 2 {
		return "", false
	}
	return SQLText(b.Lines[1:], prop)
}

// Blocks returns nested blocks of the given type within this block.
func (b *Block) Blocks(blockType string) []*Block {
	if len(b.Lines) < 2 {
		return nil
	}
	return ExtractBlocks(b.Lines[1:], blockType)
}
