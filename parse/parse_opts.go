package parse

import (
	"github.com/GraiaProject/kayaku/format"
	"github.com/GraiaProject/kayaku/ir"
	"github.com/GraiaProject/kayaku/token"
)

type parseOpts struct {
	format    format.Format
	positions map[*ir.Node]*token.Pos
}

func (o *parseOpts) TokenizeOpts() []token.TokenOpt {
	switch o.format {
	case format.JSONFormat:
		return []token.TokenOpt{token.TokenJSON()}
	case format.JSONCFormat:
		return []token.TokenOpt{token.TokenJSONC()}
	case format.JSON5Format:
		return []token.TokenOpt{token.TokenJSON5()}
	}
	return nil
}

type ParseOption func(*parseOpts)

func ParseJSON() ParseOption {
	return ParseFormat(format.JSONFormat)
}
func ParseJSONC() ParseOption {
	return ParseFormat(format.JSONCFormat)
}
func ParseJSON5() ParseOption {
	return ParseFormat(format.JSON5Format)
}
func ParseFormat(f format.Format) ParseOption {
	return func(o *parseOpts) { o.format = f }
}
func ParsePositions(m map[*ir.Node]*token.Pos) ParseOption {
	return func(o *parseOpts) {
		o.positions = m
	}
}

// GetPositions extracts the positions map from the provided options.
// This allows consumers (like the language server) to access position
// information for nodes of the last parse.
func GetPositions(opts ...ParseOption) map[*ir.Node]*token.Pos {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	return pOpts.positions
}
