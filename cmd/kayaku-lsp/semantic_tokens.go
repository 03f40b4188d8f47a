package main

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/GraiaProject/kayaku/token"
	"go.lsp.dev/protocol"
)

// semTokenTypes is the legend advertised by Initialize.  The sem*
// constants index into it.
var semTokenTypes = []protocol.SemanticTokenTypes{
	protocol.SemanticTokenComment,
	protocol.SemanticTokenKeyword,
	protocol.SemanticTokenString,
	protocol.SemanticTokenNumber,
	protocol.SemanticTokenOperator,
	protocol.SemanticTokenProperty,
}

const (
	semComment uint32 = iota
	semKeyword
	semString
	semNumber
	semOperator
	semProperty
)

// semType classifies a lexical token against the legend.  Member
// names highlight as properties whatever their spelling.
func semType(t token.TokenType, isKey bool) (uint32, bool) {
	if isKey {
		return semProperty, true
	}
	switch t {
	case token.TLineComment, token.TBlockComment, token.THashComment:
		return semComment, true
	case token.TString, token.TSingleString, token.TIdentifier:
		return semString, true
	case token.TInteger, token.TFloat, token.THexNumber, token.TNaN, token.TInfinity:
		return semNumber, true
	case token.TTrue, token.TFalse, token.TNull:
		return semKeyword, true
	case token.TColon, token.TComma, token.TLCurl, token.TRCurl, token.TLSquare, token.TRSquare:
		return semOperator, true
	default:
		return 0, false
	}
}

// keyAt reports whether the token at i names an object member, that
// is, whether the next non trivia token is a colon.
func keyAt(toks []token.Token, i int) bool {
	if !toks[i].Type.IsKey() {
		return false
	}
	for j := i + 1; j < len(toks); j++ {
		if toks[j].Type.IsTrivia() {
			continue
		}
		return toks[j].Type == token.TColon
	}
	return false
}

// semanticTokenData tokenizes the document and delta encodes every
// classified token.  The tokenizer keeps trivia, so a single cursor
// over the token bytes tracks line and column exactly.  Tokens
// spanning lines are emitted line by line, the wire format cannot
// express anything longer.
func semanticTokenData(doc *document) []uint32 {
	data := []uint32{}
	toks, err := token.Tokenize(nil, []byte(doc.content), token.TokenFormat(doc.format))
	if err != nil {
		return data
	}

	var line, col uint32
	var prevLine, prevCol uint32
	for i := range toks {
		t := &toks[i]
		if t.Type == token.TEOF {
			break
		}
		st, emit := semType(t.Type, keyAt(toks, i))
		for li, seg := range strings.Split(string(t.Bytes), "\n") {
			if li > 0 {
				line++
				col = 0
			}
			n := uint32(utf8.RuneCountInString(seg))
			if emit && n > 0 {
				deltaLine := line - prevLine
				deltaCol := col
				if deltaLine == 0 {
					deltaCol = col - prevCol
				}
				data = append(data, deltaLine, deltaCol, n, st, 0)
				prevLine, prevCol = line, col
			}
			col += n
		}
	}
	return data
}

func (s *Server) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{
			Data: []uint32{},
		}, nil
	}

	return &protocol.SemanticTokens{
		Data: semanticTokenData(doc),
	}, nil
}

func (s *Server) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return &protocol.SemanticTokens{
			Data: []uint32{},
		}, nil
	}

	// Full data also answers range requests, clients tolerate tokens
	// outside the window.
	return &protocol.SemanticTokens{
		Data: semanticTokenData(doc),
	}, nil
}
