package token

import (
	"unicode"
	"unicode/utf8"

	"github.com/GraiaProject/kayaku/format"
)

// Tokenize appends the tokens of src to dst. Trivia is kept, so the
// concatenated token bytes reproduce src exactly. A TEOF token is
// always appended last.
func Tokenize(dst []Token, src []byte, opts ...TokenOpt) ([]Token, error) {
	opt := &tokenOpts{format: format.JSON5Format}
	for _, o := range opts {
		o(opt)
	}
	var (
		posDoc = NewPosDoc(src)
		d      = posDoc.d
		i      int
		n      = len(d)
	)
	for i < n {
		c := d[i]
		switch c {
		case ' ', '\t', '\n', '\r':
			j := whitespace(d[i:], opt.format)
			dst = append(dst, Token{
				Type:  TWhitespace,
				Pos:   posDoc.Pos(i),
				Bytes: d[i : i+j],
			})
			i += j

		case '\v', '\f':
			if !opt.format.IsJSON5() {
				return nil, UnexpectedErr("whitespace", posDoc.Pos(i))
			}
			j := whitespace(d[i:], opt.format)
			dst = append(dst, Token{
				Type:  TWhitespace,
				Pos:   posDoc.Pos(i),
				Bytes: d[i : i+j],
			})
			i += j

		case '/':
			if !opt.format.Comments() {
				return nil, UnexpectedErr("/", posDoc.Pos(i))
			}
			if i+1 >= n {
				return nil, NewTokenizeErr(ErrUnterminated, posDoc.Pos(i))
			}
			switch d[i+1] {
			case '/':
				j := lineComment(d[i:])
				dst = append(dst, Token{
					Type:  TLineComment,
					Pos:   posDoc.Pos(i),
					Bytes: d[i : i+j],
				})
				i += j
			case '*':
				j, err := blockComment(d[i:])
				if err != nil {
					return nil, NewTokenizeErr(err, posDoc.Pos(i))
				}
				dst = append(dst, Token{
					Type:  TBlockComment,
					Pos:   posDoc.Pos(i),
					Bytes: d[i : i+j],
				})
				i += j
			default:
				return nil, UnexpectedErr("/", posDoc.Pos(i))
			}

		case '#':
			if !opt.format.IsJSON5() {
				return nil, UnexpectedErr("#", posDoc.Pos(i))
			}
			j := lineComment(d[i:])
			dst = append(dst, Token{
				Type:  THashComment,
				Pos:   posDoc.Pos(i),
				Bytes: d[i : i+j],
			})
			i += j

		case '"':
			j, err := quoted(d[i:], opt.format)
			if err != nil {
				return nil, NewTokenizeErr(err, posDoc.Pos(i))
			}
			dst = append(dst, Token{
				Type:  TString,
				Pos:   posDoc.Pos(i),
				Bytes: d[i : i+j],
			})
			i += j

		case '\'':
			if !opt.format.IsJSON5() {
				return nil, UnexpectedErr("'", posDoc.Pos(i))
			}
			j, err := quoted(d[i:], opt.format)
			if err != nil {
				return nil, NewTokenizeErr(err, posDoc.Pos(i))
			}
			dst = append(dst, Token{
				Type:  TSingleString,
				Pos:   posDoc.Pos(i),
				Bytes: d[i : i+j],
			})
			i += j

		case '{':
			dst = append(dst, Token{Type: TLCurl, Pos: posDoc.Pos(i), Bytes: d[i : i+1]})
			i++
		case '}':
			dst = append(dst, Token{Type: TRCurl, Pos: posDoc.Pos(i), Bytes: d[i : i+1]})
			i++
		case '[':
			dst = append(dst, Token{Type: TLSquare, Pos: posDoc.Pos(i), Bytes: d[i : i+1]})
			i++
		case ']':
			dst = append(dst, Token{Type: TRSquare, Pos: posDoc.Pos(i), Bytes: d[i : i+1]})
			i++
		case ':':
			dst = append(dst, Token{Type: TColon, Pos: posDoc.Pos(i), Bytes: d[i : i+1]})
			i++
		case ',':
			dst = append(dst, Token{Type: TComma, Pos: posDoc.Pos(i), Bytes: d[i : i+1]})
			i++

		case '+', '-', '.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
			j, typ, err := number(d[i:], opt.format)
			if err != nil {
				return nil, NewTokenizeErr(err, posDoc.Pos(i))
			}
			dst = append(dst, Token{
				Type:  typ,
				Pos:   posDoc.Pos(i),
				Bytes: d[i : i+j],
			})
			i += j

		case 't', 'f', 'n', 'I', 'N':
			if tt, kw := keyword(d[i:]); tt != TNone && keywordAllowed(tt, opt.format) {
				dst = append(dst, Token{
					Type:  tt,
					Pos:   posDoc.Pos(i),
					Bytes: d[i : i+len(kw)],
				})
				i += len(kw)
				continue
			}
			if !opt.format.IsJSON5() {
				return nil, UnexpectedErr(string(d[i:i+1]), posDoc.Pos(i))
			}
			j, err := identifier(d[i:])
			if err != nil {
				return nil, NewTokenizeErr(err, posDoc.Pos(i))
			}
			dst = append(dst, Token{
				Type:  TIdentifier,
				Pos:   posDoc.Pos(i),
				Bytes: d[i : i+j],
			})
			i += j

		default:
			if opt.format.IsJSON5() {
				r, _ := utf8.DecodeRune(d[i:])
				if isJSON5Space(r) {
					j := whitespace(d[i:], opt.format)
					dst = append(dst, Token{
						Type:  TWhitespace,
						Pos:   posDoc.Pos(i),
						Bytes: d[i : i+j],
					})
					i += j
					continue
				}
				if identStart(r) {
					j, err := identifier(d[i:])
					if err != nil {
						return nil, NewTokenizeErr(err, posDoc.Pos(i))
					}
					dst = append(dst, Token{
						Type:  TIdentifier,
						Pos:   posDoc.Pos(i),
						Bytes: d[i : i+j],
					})
					i += j
					continue
				}
			}
			return nil, UnexpectedErr(string(d[i:i+1]), posDoc.Pos(i))
		}
	}
	dst = append(dst, Token{Type: TEOF, Pos: posDoc.end()})
	return dst, nil
}

// whitespace returns the length of the whitespace run at d[0].
func whitespace(d []byte, f format.Format) int {
	i, n := 0, len(d)
	for i < n {
		switch d[i] {
		case ' ', '\t', '\n', '\r':
			i++
			continue
		case '\v', '\f':
			if f.IsJSON5() {
				i++
				continue
			}
			return i
		}
		if d[i] < utf8.RuneSelf || !f.IsJSON5() {
			return i
		}
		r, sz := utf8.DecodeRune(d[i:])
		if !isJSON5Space(r) {
			return i
		}
		i += sz
	}
	return i
}

func isJSON5Space(r rune) bool {
	switch r {
	case 0x00a0, 0xfeff, 0x2028, 0x2029:
		return true
	default:
		return unicode.Is(unicode.Zs, r)
	}
}

// lineComment returns the length of a line or hash comment starting at
// d[0], excluding the terminating newline.
func lineComment(d []byte) int {
	for i, c := range d {
		if c == '\n' {
			return i
		}
	}
	return len(d)
}

// blockComment returns the length of a block comment at d[0],
// closing marker included.
func blockComment(d []byte) (int, error) {
	i, n := 2, len(d)
	for i+1 < n {
		if d[i] == '*' && d[i+1] == '/' {
			return i + 2, nil
		}
		i++
	}
	return 0, ErrUnterminated
}

func keyword(d []byte) (TokenType, string) {
	switch d[0] {
	case 't':
		if isKeyword(d, "true") {
			return TTrue, "true"
		}
	case 'f':
		if isKeyword(d, "false") {
			return TFalse, "false"
		}
	case 'n':
		if isKeyword(d, "null") {
			return TNull, "null"
		}
	case 'N':
		if isKeyword(d, "NaN") {
			return TNaN, "NaN"
		}
	case 'I':
		if isKeyword(d, "Infinity") {
			return TInfinity, "Infinity"
		}
	}
	return TNone, ""
}

func keywordAllowed(t TokenType, f format.Format) bool {
	switch t {
	case TNaN, TInfinity:
		return f.IsJSON5()
	default:
		return true
	}
}
