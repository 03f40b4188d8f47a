package parse

import (
	"fmt"
	"strings"

	"github.com/GraiaProject/kayaku/format"
	"github.com/GraiaProject/kayaku/ir"
	"github.com/GraiaProject/kayaku/token"
)

// Parse parses a single document into an IR node.  The returned tree
// carries every byte of the input: whitespace and comments land in
// Before/After/Tail runs and scalar spellings are kept in Origin, so
// encoding the tree again reproduces the input exactly.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := &parseOpts{format: format.JSON5Format}
	for _, f := range opts {
		f(pOpts)
	}
	toks, err := token.Tokenize(nil, d, pOpts.TokenizeOpts()...)
	if err != nil {
		return nil, err
	}
	pi := 0
	before := trivia(toks, &pi)
	if toks[pi].Type == token.TEOF {
		return nil, token.NewTokenizeErr(token.ErrEmptyDoc, toks[pi].Pos)
	}
	res, err := parseValue(toks, nil, &pi, pOpts)
	if err != nil {
		return nil, err
	}
	res.Before = before
	res.After = trivia(toks, &pi)
	if t := &toks[pi]; t.Type != token.TEOF {
		return nil, fmt.Errorf("%w: trailing %q %s", ErrParse, string(t.Bytes), t.Pos)
	}
	return res, nil
}

// ParseString is Parse for string input.
func ParseString(s string, opts ...ParseOption) (*ir.Node, error) {
	return Parse([]byte(s), opts...)
}

func trackPos(node *ir.Node, pos *token.Pos, opts *parseOpts) {
	if opts.positions != nil && pos != nil {
		opts.positions[node] = pos
	}
}

// trivia consumes the run of whitespace and comment tokens at the
// cursor.  Returns nil when the cursor is already on a structural
// token.
func trivia(toks []token.Token, pi *int) []ir.WSC {
	var run []ir.WSC
	for {
		w, ok := ir.WSCFromToken(toks[*pi])
		if !ok {
			return run
		}
		run = append(run, w)
		*pi++
	}
}

func parseValue(toks []token.Token, p *ir.Node, pi *int, opts *parseOpts) (*ir.Node, error) {
	t := &toks[*pi]
	switch t.Type {
	case token.TLCurl:
		pos := t.Pos
		*pi++
		obj := &ir.Node{Type: ir.ObjectType, Parent: p}
		trackPos(obj, pos, opts)
		return parseObj(toks, obj, pi, opts)
	case token.TLSquare:
		pos := t.Pos
		*pi++
		arr := &ir.Node{Type: ir.ArrayType, Parent: p}
		trackPos(arr, pos, opts)
		return parseArr(toks, arr, pi, opts)
	case token.TString, token.TSingleString:
		s, linebreaks, err := token.Unquote(t.Bytes)
		if err != nil {
			return nil, token.NewTokenizeErr(err, t.Pos)
		}
		sy := &ir.Node{
			Type:       ir.StringType,
			Parent:     p,
			Str:        s,
			Quote:      t.Bytes[0],
			Origin:     string(t.Bytes[1 : len(t.Bytes)-1]),
			Linebreaks: linebreaks,
		}
		trackPos(sy, t.Pos, opts)
		*pi++
		return sy, nil
	case token.TInteger, token.THexNumber, token.TFloat, token.TNaN, token.TInfinity:
		ny, err := numberNode(t)
		if err != nil {
			return nil, err
		}
		ny.Parent = p
		trackPos(ny, t.Pos, opts)
		*pi++
		return ny, nil
	case token.TTrue, token.TFalse:
		by := &ir.Node{Type: ir.BoolType, Parent: p, Bool: t.Type == token.TTrue}
		trackPos(by, t.Pos, opts)
		*pi++
		return by, nil
	case token.TNull:
		ny := &ir.Node{Type: ir.NullType, Parent: p}
		trackPos(ny, t.Pos, opts)
		*pi++
		return ny, nil
	case token.TIdentifier:
		return nil, fmt.Errorf("%w: unquoted string %q %s", ErrParse, string(t.Bytes), t.Pos)
	case token.TEOF:
		return nil, fmt.Errorf("%w: premature end of document %s", ErrParse, t.Pos)
	default:
		return nil, fmt.Errorf("%w: unexpected token %q %s", ErrParse, string(t.Bytes), t.Pos)
	}
}

// parseObj is called with the cursor just past '{' and consumes
// through the matching '}'.  Trivia after the opener becomes the first
// key's Before, or Tail when the object is empty.  A member's value
// takes an After run only when a comma follows it.  The run before '}'
// is the object's Tail.
func parseObj(toks []token.Token, p *ir.Node, pi *int, opts *parseOpts) (*ir.Node, error) {
	var (
		seen     map[string]bool
		sepPos   *token.Pos
		afterSep = false
	)
	for {
		run := trivia(toks, pi)
		t := &toks[*pi]
		if t.Type == token.TRCurl {
			if afterSep && !opts.format.TrailingCommas() {
				return nil, fmt.Errorf("%w: trailing comma in %s %s", ErrParse, opts.format, sepPos)
			}
			p.Tail = run
			p.TrailingComma = afterSep
			*pi++
			return p, nil
		}
		if t.Type == token.TEOF {
			return nil, fmt.Errorf("%w: premature end of object %s", ErrParse, t.Pos)
		}
		if !t.Type.IsKey() {
			return nil, fmt.Errorf("%w: expected field or } but got %q %s", ErrParse, string(t.Bytes), t.Pos)
		}
		key, err := keyNode(t, opts)
		if err != nil {
			return nil, err
		}
		key.Before = run
		key.Parent = p
		trackPos(key, t.Pos, opts)
		*pi++
		if seen == nil {
			seen = map[string]bool{}
		}
		if seen[key.Str] {
			return nil, fmt.Errorf("%w %q %s", ErrDuplicateKey, key.Str, t.Pos)
		}
		seen[key.Str] = true

		key.After = trivia(toks, pi)
		if t := &toks[*pi]; t.Type != token.TColon {
			return nil, fmt.Errorf("%w: expected : but got %q %s", ErrParse, string(t.Bytes), t.Pos)
		}
		*pi++
		vBefore := trivia(toks, pi)
		val, err := parseValue(toks, p, pi, opts)
		if err != nil {
			return nil, err
		}
		val.Before = vBefore
		key.ParentIndex = len(p.Fields)
		val.ParentIndex = len(p.Values)
		p.Fields = append(p.Fields, key)
		p.Values = append(p.Values, val)

		run = trivia(toks, pi)
		switch t := &toks[*pi]; t.Type {
		case token.TComma:
			val.After = run
			sepPos = t.Pos
			afterSep = true
			*pi++
		case token.TRCurl:
			p.Tail = run
			*pi++
			return p, nil
		case token.TEOF:
			return nil, fmt.Errorf("%w: premature end of object %s", ErrParse, t.Pos)
		default:
			return nil, fmt.Errorf("%w: expected , or } but got %q %s", ErrParse, string(t.Bytes), t.Pos)
		}
	}
}

// parseArr mirrors parseObj for '[' ... ']'.
func parseArr(toks []token.Token, p *ir.Node, pi *int, opts *parseOpts) (*ir.Node, error) {
	var (
		sepPos   *token.Pos
		afterSep = false
	)
	for {
		run := trivia(toks, pi)
		t := &toks[*pi]
		if t.Type == token.TRSquare {
			if afterSep && !opts.format.TrailingCommas() {
				return nil, fmt.Errorf("%w: trailing comma in %s %s", ErrParse, opts.format, sepPos)
			}
			p.Tail = run
			p.TrailingComma = afterSep
			*pi++
			return p, nil
		}
		if t.Type == token.TEOF {
			return nil, fmt.Errorf("%w: premature end of array %s", ErrParse, t.Pos)
		}
		elt, err := parseValue(toks, p, pi, opts)
		if err != nil {
			return nil, err
		}
		elt.Before = run
		elt.ParentIndex = len(p.Values)
		p.Values = append(p.Values, elt)

		run = trivia(toks, pi)
		switch t := &toks[*pi]; t.Type {
		case token.TComma:
			elt.After = run
			sepPos = t.Pos
			afterSep = true
			*pi++
		case token.TRSquare:
			p.Tail = run
			*pi++
			return p, nil
		case token.TEOF:
			return nil, fmt.Errorf("%w: premature end of array %s", ErrParse, t.Pos)
		default:
			return nil, fmt.Errorf("%w: expected , or ] but got %q %s", ErrParse, string(t.Bytes), t.Pos)
		}
	}
}

// keyNode builds the node for an object member name.  Quoted names
// become strings, everything else an identifier.  Keyword tokens
// (true, null, NaN, ...) double as identifier names.
func keyNode(t *token.Token, opts *parseOpts) (*ir.Node, error) {
	switch t.Type {
	case token.TString, token.TSingleString:
		s, linebreaks, err := token.Unquote(t.Bytes)
		if err != nil {
			return nil, token.NewTokenizeErr(err, t.Pos)
		}
		return &ir.Node{
			Type:       ir.StringType,
			Str:        s,
			Quote:      t.Bytes[0],
			Origin:     string(t.Bytes[1 : len(t.Bytes)-1]),
			Linebreaks: linebreaks,
		}, nil
	case token.TIdentifier, token.TTrue, token.TFalse, token.TNull, token.TNaN, token.TInfinity:
		if !opts.format.IsJSON5() {
			return nil, fmt.Errorf("%w: unquoted key %q in %s %s", ErrParse, string(t.Bytes), opts.format, t.Pos)
		}
		return &ir.Node{Type: ir.IdentifierType, Str: string(t.Bytes)}, nil
	default:
		return nil, fmt.Errorf("%w: expected field but got %q %s", errInternal, string(t.Bytes), t.Pos)
	}
}

// numberNode converts a number token, keeping the spelling in Origin
// and the presentation flags for the canonical form.  Integers and
// hex literals beyond int64 degrade to their double value.
func numberNode(t *token.Token) (*ir.Node, error) {
	i, f, isInt, err := token.NumberValue(t)
	if err != nil {
		return nil, fmt.Errorf("%w: %v %s", ErrParse, err, t.Pos)
	}
	s := string(t.Bytes)
	n := &ir.Node{Origin: s, Prefixed: s[0] == '+', Significand: -1}
	switch {
	case isInt && t.Type == token.THexNumber:
		n.Type = ir.HexType
		n.Int64 = i
	case isInt:
		n.Type = ir.IntType
		n.Int64 = i
	default:
		n.Type = ir.FloatType
		n.Float64 = f
		if t.Type == token.TFloat {
			body := s
			if body[0] == '+' || body[0] == '-' {
				body = body[1:]
			}
			n.LeadingPoint = body[0] == '.'
			if dot := strings.IndexByte(body, '.'); dot >= 0 {
				frac := body[dot+1:]
				k := 0
				for k < len(frac) && frac[k] >= '0' && frac[k] <= '9' {
					k++
				}
				n.Significand = k
			}
		}
	}
	return n, nil
}
