package main

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/GraiaProject/kayaku/format"
	"github.com/GraiaProject/kayaku/ir"
	"github.com/GraiaProject/kayaku/parse"
	"github.com/GraiaProject/kayaku/token"
	"go.lsp.dev/protocol"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

// document is one open editor buffer.  A buffer that fails to parse
// keeps its content and error but has no tree.
type document struct {
	uri       string
	content   string
	version   int32
	format    format.Format
	node      *ir.Node
	positions map[*ir.Node]*token.Pos
	err       error
}

// docFormat picks the dialect from the file extension, JSON5 when the
// extension is unknown.
func docFormat(uri string) format.Format {
	f, err := format.ParseFormat(strings.ToLower(path.Ext(uri)))
	if err != nil {
		return format.JSON5Format
	}
	return f
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	f := docFormat(uri)
	positions := make(map[*ir.Node]*token.Pos)
	node, err := parse.Parse([]byte(content), parse.ParseFormat(f), parse.ParsePositions(positions))
	if err != nil {
		ds.docs[uri] = &document{
			uri:     uri,
			content: content,
			version: version,
			format:  f,
			err:     err,
		}
		return
	}

	ds.docs[uri] = &document{
		uri:       uri,
		content:   content,
		version:   version,
		format:    f,
		node:      node,
		positions: positions,
	}
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}

	diagnostics := diagnose(doc)

	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diagnostics,
		})
	}
}

// diagnose reports the parse failure of a document, if any.  The
// empty slice on success clears earlier diagnostics on the client.
func diagnose(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.err == nil {
		return diagnostics
	}

	diagnostic := protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 0, Character: 0},
		},
		Severity: protocol.DiagnosticSeverityError,
		Message:  doc.err.Error(),
		Source:   "kayaku",
	}
	if line, col, ok := errorPosition(doc.err); ok {
		diagnostic.Range = protocol.Range{
			Start: protocol.Position{
				Line:      uint32(line),
				Character: uint32(col),
			},
			End: protocol.Position{
				Line:      uint32(line),
				Character: uint32(col + 1),
			},
		}
	}

	return append(diagnostics, diagnostic)
}

// errorPosition recovers line and column from a parse failure, from
// the typed tokenizer error when there is one and from the rendered
// message otherwise.
func errorPosition(err error) (line, col int, ok bool) {
	var tokErr *token.TokenizeErr
	if errors.As(err, &tokErr) {
		line, col = tokErr.Pos.LineCol()
		return line, col, true
	}
	msg := err.Error()
	if i := strings.LastIndex(msg, "(line="); i >= 0 {
		if _, serr := fmt.Sscanf(msg[i:], "(line=%d, col=%d)", &line, &col); serr == nil {
			return line, col, true
		}
	}
	return 0, 0, false
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil
	}

	content := doc.content
	for _, change := range params.ContentChanges {
		r := change.Range
		if r.Start.Line == 0 && r.Start.Character == 0 && r.End.Line == 0 && r.End.Character == 0 {
			// Zero range means full document replacement.
			content = change.Text
		} else {
			contentRunes := []rune(content)
			startOffset := lineColToOffset(content, int(r.Start.Line), int(r.Start.Character))
			endOffset := lineColToOffset(content, int(r.End.Line), int(r.End.Character))
			if startOffset < len(contentRunes) && endOffset <= len(contentRunes) {
				content = string(contentRunes[:startOffset]) + change.Text + string(contentRunes[endOffset:])
			}
		}
	}

	s.docs.put(string(params.TextDocument.URI), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}

// lineColToOffset maps a line and rune column to a rune offset in
// content.
func lineColToOffset(content string, line, col int) int {
	currentLine := 0
	currentCol := 0
	off := 0
	for _, r := range content {
		if currentLine == line && currentCol == col {
			return off
		}
		if r == '\n' {
			currentLine++
			currentCol = 0
		} else {
			currentCol++
		}
		off++
	}
	return off
}
