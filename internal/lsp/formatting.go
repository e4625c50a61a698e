package lsp

import (
	"encoding/json"

	"github.com/lookstack-labs/lookfmt/pkg/format"
)

// handleFormatting handles the textDocument/formatting request. The whole
// document is rewritten in one edit; an already-clean document gets an empty
// edit list.
func (s *Server) handleFormatting(msg *JSONRPCMessage) error {
	var params DocumentFormattingParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		s.sendResponse(msg.ID, nil, &JSONRPCError{Code: -32602, Message: err.Error()})
		return err
	}

	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil || !isLookMLURI(params.TextDocument.URI) {
		s.sendResponse(msg.ID, []TextEdit{}, nil)
		return nil
	}

	opts := s.cfg.FormatOptions()
	// The client's whitespace preferences win over the workspace config.
	if params.Options.TabSize > 0 {
		opts.IndentWidth = params.Options.TabSize
	}
	opts.UseSpaces = params.Options.InsertSpaces

	res := format.Format(doc.Content, opts)
	if !res.Changed {
		s.sendResponse(msg.ID, []TextEdit{}, nil)
		return nil
	}

	edit := TextEdit{
		Range: Range{
			Start: Position{Line: 0, Character: 0},
			End:   doc.OffsetToPosition(len(doc.Content)),
		},
		NewText: res.Output,
	}
	s.sendResponse(msg.ID, []TextEdit{edit}, nil)
	return nil
}
