package ir

import (
	"fmt"
	"strings"

	"github.com/GraiaProject/kayaku/token"
)

// WSCKind discriminates the kinds of [WSC].
type WSCKind int

const (
	WhitespaceKind WSCKind = iota
	LineCommentKind
	BlockCommentKind
	HashCommentKind
)

func (k WSCKind) String() string {
	s, ok := map[WSCKind]string{
		WhitespaceKind:   "Whitespace",
		LineCommentKind:  "LineComment",
		BlockCommentKind: "BlockComment",
		HashCommentKind:  "HashComment",
	}[k]
	if ok {
		return s
	}
	return "<unknown wsc kind>"
}

func (k WSCKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *WSCKind) UnmarshalText(d []byte) error {
	kk, ok := map[string]WSCKind{
		"Whitespace":   WhitespaceKind,
		"LineComment":  LineCommentKind,
		"BlockComment": BlockCommentKind,
		"HashComment":  HashCommentKind,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized wsc kind %q", d)
	}
	*k = kk
	return nil
}

// WSC is one piece of inter-token trivia: a run of whitespace or a
// single comment.  For comments, Text excludes the markers; [WSC.Encode]
// restores them.
type WSC struct {
	Kind WSCKind
	Text string
}

func Whitespace(text string) WSC {
	return WSC{Kind: WhitespaceKind, Text: text}
}

func LineComment(text string) WSC {
	return WSC{Kind: LineCommentKind, Text: text}
}

func BlockComment(text string) WSC {
	return WSC{Kind: BlockCommentKind, Text: text}
}

func HashComment(text string) WSC {
	return WSC{Kind: HashCommentKind, Text: text}
}

func (w WSC) IsComment() bool {
	return w.Kind != WhitespaceKind
}

// HasNewline reports whether w is whitespace containing a line break.
// Comments never report a newline, even line comments whose extent
// ends at one, because the break itself is lexed into the following
// whitespace run.
func (w WSC) HasNewline() bool {
	return w.Kind == WhitespaceKind && strings.ContainsAny(w.Text, "\n\r")
}

// Encode renders w with its comment markers restored.
func (w WSC) Encode() string {
	switch w.Kind {
	case WhitespaceKind:
		return w.Text
	case LineCommentKind:
		return "//" + w.Text
	case BlockCommentKind:
		return "/*" + w.Text + "*/"
	case HashCommentKind:
		return "#" + w.Text
	default:
		return ""
	}
}

// WSCFromToken converts a trivia token to a WSC.  The second result is
// false when t is not a trivia token.
func WSCFromToken(t token.Token) (WSC, bool) {
	switch t.Type {
	case token.TWhitespace:
		return Whitespace(string(t.Bytes)), true
	case token.TLineComment:
		return LineComment(token.CommentText(t.Type, t.Bytes)), true
	case token.TBlockComment:
		return BlockComment(token.CommentText(t.Type, t.Bytes)), true
	case token.THashComment:
		return HashComment(token.CommentText(t.Type, t.Bytes)), true
	default:
		return WSC{}, false
	}
}

// ParseWSC lexes s, which must consist only of whitespace and
// comments, into a WSC sequence.  It is used to vet programmatically
// supplied trivia.  Inputs with any other content return [ErrTrivia].
func ParseWSC(s string) ([]WSC, error) {
	if s == "" {
		return nil, nil
	}
	toks, err := token.Tokenize(nil, []byte(s))
	if err != nil {
		return nil, err
	}
	var res []WSC
	for _, t := range toks {
		if t.Type == token.TEOF {
			break
		}
		w, ok := WSCFromToken(t)
		if !ok {
			return nil, token.NewTokenizeErr(ErrTrivia, t.Pos)
		}
		res = append(res, w)
	}
	return res, nil
}

// Comments filters ws down to its comments.
func Comments(ws []WSC) []WSC {
	var res []WSC
	for _, w := range ws {
		if w.IsComment() {
			res = append(res, w)
		}
	}
	return res
}

// HasComment reports whether ws contains any comment.
func HasComment(ws []WSC) bool {
	for _, w := range ws {
		if w.IsComment() {
			return true
		}
	}
	return false
}

// EncodeWSC renders a trivia sequence.
func EncodeWSC(ws []WSC) string {
	var sb strings.Builder
	for _, w := range ws {
		sb.WriteString(w.Encode())
	}
	return sb.String()
}
