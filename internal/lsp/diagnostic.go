package lsp

import (
	"github.com/lookstack-labs/lookfmt/pkg/lint"
	"github.com/lookstack-labs/lookfmt/pkg/lookml"
)

// publishDiagnostics analyzes the document and publishes lint findings and
// parse anomalies. Non-LookML documents get an empty set so stale markers
// clear.
func (s *Server) publishDiagnostics(uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	diagnostics := []Diagnostic{}
	if isLookMLURI(uri) {
		diagnostics = s.analyzeDocument(doc)
	}

	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// analyzeDocument runs the parser and lint rules over the document content.
// Parsing never fails; structural anomalies surface as information-level
// diagnostics alongside the rule violations.
func (s *Server) analyzeDocument(doc *Document) []Diagnostic {
	diagnostics := []Diagnostic{}

	parsed := lookml.ParseWithOptions(doc.Content, lookml.Options{
		SQLProperties: s.cfg.SQLProperties,
	})
	for _, a := range parsed.Anomalies {
		diagnostics = append(diagnostics, Diagnostic{
			Range:    lineRange(doc, a.Pos.Line),
			Severity: DiagnosticSeverityInformation,
			Source:   "lookml",
			Message:  a.Message,
		})
	}

	for _, v := range s.analyzer.Analyze(parsed.Doc) {
		pos := v.Pos
		if pos.Line == 0 {
			pos = lint.Locate(doc.Content, v.Path)
		}
		diagnostics = append(diagnostics, Diagnostic{
			Range:    lineRange(doc, pos.Line),
			Severity: toLSPSeverity(v.Severity),
			Code:     v.RuleID,
			Source:   "lookfmt-lint",
			Message:  v.Message,
		})
	}

	return diagnostics
}

// lineRange covers a whole 1-based source line; an unknown line maps to the
// start of the document.
func lineRange(doc *Document, line int) Range {
	if line < 1 {
		return Range{}
	}
	zeroLine := line - 1
	return Range{
		Start: Position{Line: uint32(zeroLine)}, //nolint:gosec // G115: line is always non-negative
		End: Position{
			Line:      uint32(zeroLine),                //nolint:gosec // G115: line is always non-negative
			Character: uint32(len(doc.GetLine(zeroLine))), //nolint:gosec // G115: length is always non-negative
		},
	}
}

// toLSPSeverity maps lint severities onto the LSP scale.
func toLSPSeverity(sev lint.Severity) DiagnosticSeverity {
	switch sev {
	case lint.SeverityError:
		return DiagnosticSeverityError
	case lint.SeverityWarning:
		return DiagnosticSeverityWarning
	case lint.SeverityInfo:
		return DiagnosticSeverityInformation
	case lint.SeverityHint:
		return DiagnosticSeverityHint
	default:
		return DiagnosticSeverityWarning
	}
}
