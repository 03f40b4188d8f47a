package ir

import (
	"encoding/json"
	"fmt"
)

// irBase is the JSON shape of a Node, used for debug dumps and test
// fixtures.  Parent links are not serialized; they are rebuilt on
// unmarshal.
type irBase struct {
	Type   Type    `json:"type"`
	Fields []*Node `json:"fields,omitempty"`
	Values []*Node `json:"values,omitempty"`

	Before        []WSC `json:"before,omitempty"`
	After         []WSC `json:"after,omitempty"`
	Tail          []WSC `json:"tail,omitempty"`
	TrailingComma bool  `json:"trailingComma,omitempty"`

	Origin       string `json:"origin,omitempty"`
	Quote        string `json:"quote,omitempty"`
	Linebreaks   []int  `json:"linebreaks,omitempty"`
	Prefixed     bool   `json:"prefixed,omitempty"`
	LeadingPoint bool   `json:"leadingPoint,omitempty"`
	Significand  *int   `json:"significand,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	base := &irBase{
		Type:          n.Type,
		Fields:        n.Fields,
		Values:        n.Values,
		Before:        n.Before,
		After:         n.After,
		Tail:          n.Tail,
		TrailingComma: n.TrailingComma,
		Origin:        n.Origin,
		Linebreaks:    n.Linebreaks,
		Prefixed:      n.Prefixed,
		LeadingPoint:  n.LeadingPoint,
	}
	if n.Quote != 0 {
		base.Quote = string(n.Quote)
	}
	if n.Type == FloatType && n.Significand >= 0 {
		s := n.Significand
		base.Significand = &s
	}
	switch n.Type {
	case StringType, IdentifierType:
		type C struct {
			irBase
			Str string `json:"str"`
		}
		return json.Marshal(C{irBase: *base, Str: n.Str})
	case BoolType:
		type C struct {
			irBase
			Bool bool `json:"bool"`
		}
		return json.Marshal(C{irBase: *base, Bool: n.Bool})
	case IntType, HexType:
		type C struct {
			irBase
			Int64 int64 `json:"int"`
		}
		return json.Marshal(C{irBase: *base, Int64: n.Int64})
	case FloatType:
		type C struct {
			irBase
			Float64 float64 `json:"float"`
		}
		return json.Marshal(C{irBase: *base, Float64: n.Float64})
	default:
		return json.Marshal(base)
	}
}

func (n *Node) UnmarshalJSON(d []byte) error {
	type C struct {
		irBase
		Str     string  `json:"str"`
		Bool    bool    `json:"bool"`
		Int64   int64   `json:"int"`
		Float64 float64 `json:"float"`
	}
	tmp := &C{}
	if err := json.Unmarshal(d, tmp); err != nil {
		return err
	}
	n.Type = tmp.Type
	n.Fields = tmp.Fields
	n.Values = tmp.Values
	n.Before = tmp.Before
	n.After = tmp.After
	n.Tail = tmp.Tail
	n.TrailingComma = tmp.TrailingComma
	n.Str = tmp.Str
	n.Bool = tmp.Bool
	n.Int64 = tmp.Int64
	n.Float64 = tmp.Float64
	n.Origin = tmp.Origin
	n.Linebreaks = tmp.Linebreaks
	n.Prefixed = tmp.Prefixed
	n.LeadingPoint = tmp.LeadingPoint
	n.Significand = -1
	if tmp.Significand != nil {
		n.Significand = *tmp.Significand
	}
	n.Quote = 0
	if tmp.Quote != "" {
		n.Quote = tmp.Quote[0]
	}

	switch n.Type {
	case ObjectType:
		if len(n.Fields) != len(n.Values) {
			return fmt.Errorf("object with %d fields but %d values", len(n.Fields), len(n.Values))
		}
		for i, f := range n.Fields {
			if !f.Type.IsStringLike() {
				return fmt.Errorf("invalid field type %s", f.Type)
			}
			f.Parent = n
			f.ParentIndex = i
		}
		for i, v := range n.Values {
			v.Parent = n
			v.ParentIndex = i
		}
	case ArrayType:
		if len(n.Fields) != 0 {
			return fmt.Errorf("array with %d fields", len(n.Fields))
		}
		for i, v := range n.Values {
			v.Parent = n
			v.ParentIndex = i
		}
	default:
		if len(n.Fields) != 0 || len(n.Values) != 0 {
			return fmt.Errorf("%s with container members", n.Type)
		}
	}
	return nil
}
