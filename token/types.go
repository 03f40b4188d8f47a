package token

import (
	"fmt"
)

type TokenType int

const (
	TNone = iota
	TWhitespace
	TLineComment
	TBlockComment
	THashComment
	TString
	TSingleString
	TIdentifier
	TInteger
	TFloat
	THexNumber
	TTrue
	TFalse
	TNull
	TNaN
	TInfinity
	TLCurl
	TRCurl
	TLSquare
	TRSquare
	TColon
	TComma
	TEOF
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TNone:         "TNone",
		TWhitespace:   "TWhitespace",
		TLineComment:  "TLineComment",
		TBlockComment: "TBlockComment",
		THashComment:  "THashComment",
		TString:       "TString",
		TSingleString: "TSingleString",
		TIdentifier:   "TIdentifier",
		TInteger:      "TInteger",
		TFloat:        "TFloat",
		THexNumber:    "THexNumber",
		TTrue:         "TTrue",
		TFalse:        "TFalse",
		TNull:         "TNull",
		TNaN:          "TNaN",
		TInfinity:     "TInfinity",
		TLCurl:        "TLCurl",
		TRCurl:        "TRCurl",
		TLSquare:      "TLSquare",
		TRSquare:      "TRSquare",
		TColon:        "TColon",
		TComma:        "TComma",
		TEOF:          "TEOF",
	}[t]
}

func (t TokenType) IsComment() bool {
	switch t {
	case TLineComment, TBlockComment, THashComment:
		return true
	default:
		return false
	}
}

func (t TokenType) IsTrivia() bool {
	return t == TWhitespace || t.IsComment()
}

func (t TokenType) IsNumber() bool {
	switch t {
	case TInteger, TFloat, THexNumber, TNaN, TInfinity:
		return true
	default:
		return false
	}
}

func (t TokenType) IsScalar() bool {
	switch t {
	case TString, TSingleString, TTrue, TFalse, TNull:
		return true
	default:
		return t.IsNumber()
	}
}

// IsKey reports whether the token can appear as an object member name.
// Keyword tokens double as identifier names in JSON5.
func (t TokenType) IsKey() bool {
	switch t {
	case TString, TSingleString, TIdentifier, TTrue, TFalse, TNull, TNaN, TInfinity:
		return true
	default:
		return false
	}
}

type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}

// String returns the decoded text of the token: quoted strings are
// unescaped, comments lose their markers, everything else is the raw
// bytes.
func (t *Token) String() string {
	switch t.Type {
	case TString, TSingleString:
		s, _, err := Unquote(t.Bytes)
		if err != nil {
			return string(t.Bytes)
		}
		return s
	case TLineComment, TBlockComment, THashComment:
		return CommentText(t.Type, t.Bytes)
	default:
		return string(t.Bytes)
	}
}

// CommentText strips the comment markers from raw comment bytes.
func CommentText(t TokenType, d []byte) string {
	switch t {
	case TLineComment:
		return string(d[2:])
	case TBlockComment:
		return string(d[2 : len(d)-2])
	case THashComment:
		return string(d[1:])
	default:
		return string(d)
	}
}

type TokenizeErr struct {
	Err error
	Pos Pos
}

func (t *TokenizeErr) Unwrap() error {
	return t.Err
}

func NewTokenizeErr(e error, p *Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: *p}
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func ExpectedErr(what string, p *Pos) error {
	return NewTokenizeErr(fmt.Errorf("expected %s", what), p)
}
func UnexpectedErr(what string, p *Pos) error {
	return NewTokenizeErr(fmt.Errorf("unexpected %s", what), p)
}
