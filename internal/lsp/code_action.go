package lsp

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// rawReferenceMsgRe pulls the offending reference out of a join-substitution
// diagnostic message.
var rawReferenceMsgRe = regexp.MustCompile(`raw reference "([^"]+)"`)

// handleCodeAction handles the textDocument/codeAction request.
func (s *Server) handleCodeAction(msg *JSONRPCMessage) error {
	var params CodeActionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: -32602, Message: err.Error()})
		return err
	}

	actions := s.getCodeActions(params)
	s.sendResponse(msg.ID, actions, nil)
	return nil
}

// getCodeActions builds quick fixes for the diagnostics the client asked
// about. Fixes are computed on demand from the current document content, so
// a stale diagnostic on changed text simply yields no action.
func (s *Server) getCodeActions(params CodeActionParams) []CodeAction {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil
	}

	var actions []CodeAction
	for _, diag := range params.Context.Diagnostics {
		var action *CodeAction
		switch diag.Code {
		case "E1":
			action = s.wrapReferenceAction(doc, diag)
		case "K1":
			action = s.addPrimaryKeyAction(doc, diag)
		}
		if action != nil {
			action.Diagnostics = []Diagnostic{diag}
			actions = append(actions, *action)
		}
	}
	return actions
}

// wrapReferenceAction rewrites a bare view.field reference in a sql_on
// clause as a ${view.field} substitution.
func (s *Server) wrapReferenceAction(doc *Document, diag Diagnostic) *CodeAction {
	m := rawReferenceMsgRe.FindStringSubmatch(diag.Message)
	if m == nil {
		return nil
	}
	ref := m[1]

	line := int(diag.Range.Start.Line)
	text := doc.GetLine(line)
	col := findBareReference(text, ref)
	if col < 0 {
		return nil
	}

	return &CodeAction{
		Title:       fmt.Sprintf("Wrap as ${%s}", ref),
		Kind:        CodeActionKindQuickFix,
		IsPreferred: true,
		Edit: &WorkspaceEdit{
			Changes: map[string][]TextEdit{
				doc.URI: {{
					Range: Range{
						Start: Position{Line: uint32(line), Character: uint32(col)},            //nolint:gosec // G115: offsets are non-negative
						End:   Position{Line: uint32(line), Character: uint32(col + len(ref))}, //nolint:gosec // G115: offsets are non-negative
					},
					NewText: "${" + ref + "}",
				}},
			},
		},
	}
}

// findBareReference locates ref in text, skipping occurrences already inside
// a ${...} substitution. Returns -1 when no bare occurrence exists.
func findBareReference(text, ref string) int {
	from := 0
	for {
		idx := strings.Index(text[from:], ref)
		if idx < 0 {
			return -1
		}
		col := from + idx
		if !insideSubstitution(text, col) && !adjacentWordChar(text, col, len(ref)) {
			return col
		}
		from = col + len(ref)
	}
}

// insideSubstitution reports whether the position sits inside an unclosed
// ${ opener.
func insideSubstitution(text string, col int) bool {
	open := strings.LastIndex(text[:col], "${")
	if open < 0 {
		return false
	}
	return !strings.Contains(text[open:col], "}")
}

// adjacentWordChar reports whether the match butts up against identifier
// characters, meaning it is a fragment of a longer name.
func adjacentWordChar(text string, col, length int) bool {
	if col > 0 && isWordChar(text[col-1]) {
		return true
	}
	end := col + length
	if end < len(text) && isWordChar(text[end]) {
		return true
	}
	return false
}

func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_'
}

// addPrimaryKeyAction inserts a primary key dimension skeleton right after
// the view's opening line. Only offered for the missing-primary-key flavor
// of the diagnostic; naming violations need a rename the server cannot
// guess.
func (s *Server) addPrimaryKeyAction(doc *Document, diag Diagnostic) *CodeAction {
	if !strings.Contains(diag.Message, "no primary key") {
		return nil
	}

	line := int(diag.Range.Start.Line)
	opener := doc.GetLine(line)
	if !strings.Contains(opener, "{") {
		return nil
	}

	indent := leadingWhitespace(opener)
	unit := "  "
	if strings.HasPrefix(indent, "\t") {
		unit = "\t"
	}
	inner := indent + unit
	snippet := inner + "dimension: pk {\n" +
		inner + unit + "primary_key: yes\n" +
		inner + unit + "type: number\n" +
		inner + unit + "sql: ${TABLE}.id ;;\n" +
		inner + "}\n\n"

	insertAt := Position{Line: uint32(line + 1), Character: 0} //nolint:gosec // G115: line is non-negative
	return &CodeAction{
		Title: "Add primary key dimension",
		Kind:  CodeActionKindQuickFix,
		Edit: &WorkspaceEdit{
			Changes: map[string][]TextEdit{
				doc.URI: {{
					Range:   Range{Start: insertAt, End: insertAt},
					NewText: snippet,
				}},
			},
		},
	}
}

func leadingWhitespace(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return s[:i]
		}
	}
	return s
}
