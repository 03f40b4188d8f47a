package encode

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/GraiaProject/kayaku/format"
	"github.com/GraiaProject/kayaku/ir"
	"github.com/GraiaProject/kayaku/token"
)

type EncState struct {
	format   format.Format
	checked  bool
	comments bool
	endline  bool
	trimmed  bool
	last     byte

	colorType ir.Type
	Color     func(ir.Type, ColorAttr, string) string
}

// Encode writes node to w.  With no options the output is verbatim:
// every trivia run and every scalar spelling the tree carries is
// reproduced, so a freshly parsed document encodes back to its exact
// source text.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{comments: true}
	for _, opt := range opts {
		opt(es)
	}
	if err := encode(node, w, es); err != nil {
		return err
	}
	if es.endline && es.last != '\n' {
		return writeString(w, "\n", es)
	}
	return nil
}

func writeString(w io.Writer, s string, es *EncState) error {
	if s == "" {
		return nil
	}
	es.last = s[len(s)-1]
	_, err := w.Write([]byte(s))
	return err
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	if node == nil {
		return fmt.Errorf("%w: nil node", ErrEncoding)
	}
	es.colorType = node.Type
	if err := writeWSCs(node.Before, w, es); err != nil {
		return err
	}
	var err error
	switch node.Type {
	case ir.ObjectType:
		err = encodeObject(node, w, es)
	case ir.ArrayType:
		err = encodeArray(node, w, es)
	case ir.StringType, ir.IdentifierType:
		err = encodeString(node, w, es)
	case ir.IntType, ir.HexType, ir.FloatType:
		err = encodeNumber(node, w, es)
	case ir.BoolType:
		err = encodeBool(node, w, es)
	case ir.NullType:
		err = encodeNull(node, w, es)
	default:
		err = &ir.UnsupportedValueError{Value: node.Type, Msg: fmt.Sprintf("cannot encode %s", node.Type)}
	}
	if err != nil {
		return err
	}
	es.colorType = node.Type
	return writeWSCs(node.After, w, es)
}

// writeWSCs emits a trivia run.  Comments drop under
// EncodeComments(false); whitespace runs collapse under
// EncodeTrimmed.
func writeWSCs(wscs []ir.WSC, w io.Writer, es *EncState) error {
	for i := range wscs {
		c := &wscs[i]
		switch c.Kind {
		case ir.WhitespaceKind:
			t := c.Text
			if es.trimmed && t != "" {
				if strings.ContainsAny(t, "\n\r") {
					t = "\n"
				} else {
					t = " "
				}
			}
			if err := writeString(w, t, es); err != nil {
				return err
			}
		case ir.LineCommentKind, ir.BlockCommentKind, ir.HashCommentKind:
			if !es.comments {
				continue
			}
			if es.checked && !es.format.Comments() {
				return &ir.UnsupportedValueError{Value: c.Text, Msg: fmt.Sprintf("comment in %s", es.format)}
			}
			if es.checked && c.Kind == ir.HashCommentKind && !es.format.IsJSON5() {
				return &ir.UnsupportedValueError{Value: c.Text, Msg: fmt.Sprintf("hash comment in %s", es.format)}
			}
			v := applyColor(es, es.colorType, CommentColor, c.Encode())
			if err := writeString(w, v, es); err != nil {
				return err
			}
		default:
			return &ir.UnsupportedValueError{Value: c.Kind, Msg: "unknown trivia kind"}
		}
	}
	return nil
}

func encodeObject(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Fields) != len(node.Values) {
		return fmt.Errorf("%w: object with %d fields and %d values",
			ErrEncoding, len(node.Fields), len(node.Values))
	}
	if node.TrailingComma && es.checked && !es.format.TrailingCommas() {
		return &ir.UnsupportedValueError{Value: node, Msg: fmt.Sprintf("trailing comma in %s", es.format)}
	}
	if err := writeSep(w, "{", ir.ObjectType, es); err != nil {
		return err
	}
	n := len(node.Fields)
	for i, f := range node.Fields {
		if !f.Type.IsStringLike() {
			return &ir.UnsupportedValueError{Value: f, Msg: fmt.Sprintf("%s object key", f.Type)}
		}
		if err := encode(f, w, es); err != nil {
			return err
		}
		if err := writeSep(w, ":", ir.ObjectType, es); err != nil {
			return err
		}
		if err := encode(node.Values[i], w, es); err != nil {
			return err
		}
		if i < n-1 || node.TrailingComma {
			if err := writeSep(w, ",", ir.ObjectType, es); err != nil {
				return err
			}
		}
	}
	es.colorType = ir.ObjectType
	if err := writeWSCs(node.Tail, w, es); err != nil {
		return err
	}
	return writeSep(w, "}", ir.ObjectType, es)
}

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	if node.TrailingComma && es.checked && !es.format.TrailingCommas() {
		return &ir.UnsupportedValueError{Value: node, Msg: fmt.Sprintf("trailing comma in %s", es.format)}
	}
	if err := writeSep(w, "[", ir.ArrayType, es); err != nil {
		return err
	}
	n := len(node.Values)
	for i, v := range node.Values {
		if err := encode(v, w, es); err != nil {
			return err
		}
		if i < n-1 || node.TrailingComma {
			if err := writeSep(w, ",", ir.ArrayType, es); err != nil {
				return err
			}
		}
	}
	es.colorType = ir.ArrayType
	if err := writeWSCs(node.Tail, w, es); err != nil {
		return err
	}
	return writeSep(w, "]", ir.ArrayType, es)
}

func writeSep(w io.Writer, sep string, t ir.Type, es *EncState) error {
	return writeString(w, applyColor(es, t, SepColor, sep), es)
}

func encodeString(node *ir.Node, w io.Writer, es *EncState) error {
	attr := ValueColor
	if isKey(node) {
		attr = FieldColor
	}
	if node.Type == ir.IdentifierType {
		if !token.IsIdentifier(node.Str) {
			return &ir.UnsupportedValueError{Value: node.Str, Msg: fmt.Sprintf("%q is not an identifier", node.Str)}
		}
		if !isKey(node) {
			return &ir.UnsupportedValueError{Value: node.Str, Msg: "identifier outside a key"}
		}
		if es.checked && !es.format.IsJSON5() {
			return &ir.UnsupportedValueError{Value: node.Str, Msg: fmt.Sprintf("identifier key in %s", es.format)}
		}
		return writeString(w, applyColor(es, ir.IdentifierType, attr, node.Str), es)
	}
	q := node.Quote
	if q == 0 {
		q = '"'
	}
	if q == '\'' && es.checked && !es.format.IsJSON5() {
		return &ir.UnsupportedValueError{Value: node.Str, Msg: fmt.Sprintf("single quotes in %s", es.format)}
	}
	var v string
	if originStringValid(node, q, es) {
		v = string(q) + node.Origin + string(q)
	} else {
		v = token.Quote(node.Str, q)
	}
	return writeString(w, applyColor(es, ir.StringType, attr, v), es)
}

func encodeNumber(node *ir.Node, w io.Writer, es *EncState) error {
	if es.checked && !es.format.IsJSON5() {
		switch {
		case node.Type == ir.HexType:
			return &ir.UnsupportedValueError{Value: node.Int64, Msg: fmt.Sprintf("hex number in %s", es.format)}
		case node.Type == ir.FloatType && math.IsNaN(node.Float64):
			return &ir.UnsupportedValueError{Value: node.Float64, Msg: fmt.Sprintf("NaN in %s", es.format)}
		case node.Type == ir.FloatType && math.IsInf(node.Float64, 0):
			return &ir.UnsupportedValueError{Value: node.Float64, Msg: fmt.Sprintf("Infinity in %s", es.format)}
		}
	}
	var v string
	if originNumberValid(node, es) {
		v = node.Origin
	} else {
		v = canonicalNumber(node, es)
	}
	return writeString(w, applyColor(es, node.Type, ValueColor, v), es)
}

// canonicalNumber renders a number from its value and presentation
// flags, used when Origin is absent or no longer denotes the value.
func canonicalNumber(node *ir.Node, es *EncState) string {
	json5 := !es.checked || es.format.IsJSON5()
	switch node.Type {
	case ir.IntType:
		v := strconv.FormatInt(node.Int64, 10)
		if node.Prefixed && node.Int64 > 0 && json5 {
			v = "+" + v
		}
		return v
	case ir.HexType:
		m := uint64(node.Int64)
		sign := ""
		switch {
		case node.Int64 < 0:
			m = -m
			sign = "-"
		case node.Prefixed && node.Int64 > 0:
			sign = "+"
		}
		return sign + "0x" + strconv.FormatUint(m, 16)
	default:
		f := node.Float64
		switch {
		case math.IsNaN(f):
			return "NaN"
		case math.IsInf(f, 1):
			if node.Prefixed {
				return "+Infinity"
			}
			return "Infinity"
		case math.IsInf(f, -1):
			return "-Infinity"
		}
		var v string
		if node.Significand >= 0 {
			v = strconv.FormatFloat(f, 'f', node.Significand, 64)
		} else {
			v = strconv.FormatFloat(f, 'g', -1, 64)
			if !strings.ContainsAny(v, ".eE") {
				v += ".0"
			}
		}
		if node.LeadingPoint && json5 && strings.HasPrefix(v, "0.") {
			v = v[1:]
		}
		if node.Prefixed && f > 0 && json5 {
			v = "+" + v
		}
		return v
	}
}

func encodeBool(node *ir.Node, w io.Writer, es *EncState) error {
	v := strconv.FormatBool(node.Bool)
	return writeString(w, applyColor(es, ir.BoolType, ValueColor, v), es)
}

func encodeNull(node *ir.Node, w io.Writer, es *EncState) error {
	return writeString(w, applyColor(es, ir.NullType, ValueColor, "null"), es)
}

// isKey reports whether node sits in its parent's Fields.
func isKey(node *ir.Node) bool {
	p := node.Parent
	return p != nil && node.ParentIndex < len(p.Fields) && p.Fields[node.ParentIndex] == node
}

func applyColor(es *EncState, t ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(t, attr, v)
}

func (es *EncState) tokenOpts() []token.TokenOpt {
	if !es.checked {
		return nil
	}
	return []token.TokenOpt{token.TokenFormat(es.format)}
}

// originStringValid reports whether the recorded spelling still
// denotes Str, scanning it under the target dialect.
func originStringValid(n *ir.Node, q byte, es *EncState) bool {
	qs := make([]byte, 0, len(n.Origin)+2)
	qs = append(qs, q)
	qs = append(qs, n.Origin...)
	qs = append(qs, q)
	toks, err := token.Tokenize(nil, qs, es.tokenOpts()...)
	if err != nil || len(toks) != 2 {
		return false
	}
	s, _, err := token.Unquote(toks[0].Bytes)
	return err == nil && s == n.Str
}

// originNumberValid reports whether the recorded spelling still
// denotes the node's numeric value.  Comparison crosses kinds, so an
// integer spelling stays attached to a float of equal value and vice
// versa.
func originNumberValid(n *ir.Node, es *EncState) bool {
	toks, err := token.Tokenize(nil, []byte(n.Origin), es.tokenOpts()...)
	if err != nil || len(toks) != 2 || !toks[0].Type.IsNumber() {
		return false
	}
	i, f, isInt, err := token.NumberValue(&toks[0])
	if err != nil {
		return false
	}
	switch n.Type {
	case ir.IntType, ir.HexType:
		if isInt {
			return i == n.Int64
		}
		return f == float64(n.Int64)
	default:
		if isInt {
			return float64(i) == n.Float64
		}
		if math.IsNaN(f) {
			return math.IsNaN(n.Float64)
		}
		return f == n.Float64
	}
}
