package main

import (
	"bytes"
	"context"

	"github.com/GraiaProject/kayaku/encode"
	"github.com/GraiaProject/kayaku/parse"
	"github.com/GraiaProject/kayaku/pretty"
	"go.lsp.dev/protocol"
)

func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil, nil
	}

	// Parse a fresh tree: the prettifier rewrites in place, and the
	// stored one backs hover lookups.
	node, err := parse.Parse([]byte(doc.content), parse.ParseFormat(doc.format))
	if err != nil {
		return nil, nil
	}

	p := &pretty.Prettifier{Indent: int(params.Options.TabSize)}
	p.Prettify(node)

	var buf bytes.Buffer
	err = encode.Encode(node, &buf,
		encode.EncodeFormat(doc.format),
		encode.EncodeEndline(true),
	)
	if err != nil {
		return nil, nil
	}

	formatted := buf.String()
	if formatted == doc.content {
		return []protocol.TextEdit{}, nil
	}

	lines := bytes.Count([]byte(doc.content), []byte("\n"))
	if len(doc.content) > 0 && doc.content[len(doc.content)-1] != '\n' {
		lines++
	}

	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End: protocol.Position{
					Line:      uint32(lines),
					Character: 0,
				},
			},
			NewText: formatted,
		},
	}, nil
}
