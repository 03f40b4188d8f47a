package ir

import (
	"maps"
	"slices"
)

// Node is a single JSON value together with its spelling and the
// trivia around it.  Which fields are meaningful depends on Type.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int

	// Trivia around the node's own text.
	Before []WSC
	After  []WSC

	// Containers.  Objects hold keys in Fields (String or Identifier
	// nodes) parallel to Values; arrays use Values alone.  Tail is
	// the trivia between the last member, or the trailing comma, and
	// the closing bracket.
	Fields        []*Node
	Values        []*Node
	Tail          []WSC
	TrailingComma bool

	// Scalars.  Origin is the source spelling, for numbers the whole
	// literal and for strings the raw content between the quotes; it
	// is emitted verbatim while it still denotes the current value.
	Str          string
	Bool         bool
	Int64        int64
	Float64      float64
	Origin       string
	Quote        byte
	Linebreaks   []int
	Prefixed     bool
	LeadingPoint bool
	Significand  int
}

func (n *Node) Clone() *Node {
	res := &Node{}
	return n.CloneTo(res)
}

func (n *Node) CloneTo(dst *Node) *Node {
	dst.Type = n.Type
	dst.Parent = n.Parent
	dst.ParentIndex = n.ParentIndex
	dst.Before = slices.Clone(n.Before)
	dst.After = slices.Clone(n.After)
	dst.Tail = slices.Clone(n.Tail)
	dst.TrailingComma = n.TrailingComma
	if len(n.Fields) > 0 {
		dst.Fields = make([]*Node, len(n.Fields))
		for i, f := range n.Fields {
			dstI := &Node{}
			f.CloneTo(dstI)
			dstI.Parent = dst
			dstI.ParentIndex = i
			dst.Fields[i] = dstI
		}
	}
	if len(n.Values) > 0 {
		dst.Values = make([]*Node, len(n.Values))
		for i, v := range n.Values {
			dstI := &Node{}
			v.CloneTo(dstI)
			dstI.Parent = dst
			dstI.ParentIndex = i
			dst.Values[i] = dstI
		}
	}
	dst.Str = n.Str
	dst.Bool = n.Bool
	dst.Int64 = n.Int64
	dst.Float64 = n.Float64
	dst.Origin = n.Origin
	dst.Quote = n.Quote
	dst.Linebreaks = slices.Clone(n.Linebreaks)
	dst.Prefixed = n.Prefixed
	dst.LeadingPoint = n.LeadingPoint
	dst.Significand = n.Significand
	return dst
}

func FromString(v string) *Node {
	return FromStringAt(&Node{}, v)
}

func FromStringAt(p *Node, v string) *Node {
	p.Type = StringType
	p.Str = v
	p.Quote = '"'
	return p
}

// FromIdentifier makes a quoteless key node.  The caller is
// responsible for v being a legal identifier.
func FromIdentifier(v string) *Node {
	return &Node{
		Type: IdentifierType,
		Str:  v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  IntType,
		Int64: v,
	}
}

// FromHex makes an integer node spelled in hexadecimal.
func FromHex(v int64) *Node {
	return &Node{
		Type:  HexType,
		Int64: v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:        FloatType,
		Float64:     f,
		Significand: -1,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func ToMap(node *Node) map[string]*Node {
	if node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i := range node.Fields {
		res[node.Fields[i].Str] = node.Values[i]
	}
	return res
}

func FromMap(nMap map[string]*Node) *Node {
	res := &Node{}
	res.Type = ObjectType
	res.Fields = make([]*Node, len(nMap))
	res.Values = make([]*Node, len(nMap))
	keys := make([]string, 0, len(nMap))
	for key := range nMap {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for i, key := range keys {
		v := nMap[key]
		v.Parent = res
		v.ParentIndex = i
		nField := &Node{
			Parent:      res,
			ParentIndex: i,
			Type:        StringType,
			Str:         key,
			Quote:       '"',
		}
		res.Fields[i] = nField
		res.Values[i] = v
	}
	return res
}

type KeyVal struct {
	Key *Node
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{}
	return FromKeyValsAt(res, kvs)
}

func FromKeyValsAt(res *Node, kvs []KeyVal) *Node {
	res.Type = ObjectType
	res.Fields = make([]*Node, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		kv := &kvs[i]
		if kv.Key == nil {
			kv.Key = &Node{Type: StringType, Quote: '"'}
		}
		kv.Val.Parent = res
		kv.Val.ParentIndex = i
		kv.Key.Parent = res
		kv.Key.ParentIndex = i
		res.Fields[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

func FromSlice(nSlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(nSlice))
	for i, v := range nSlice {
		res.Values[i] = v
		v.Parent = res
		v.ParentIndex = i
	}
	return res
}

// Get returns the value under field, or nil.
func (n *Node) Get(field string) *Node {
	for i := range n.Fields {
		if n.Fields[i].Str == field {
			return n.Values[i]
		}
	}
	return nil
}

// Index returns the i'th element, or nil when out of range.
func (n *Node) Index(i int) *Node {
	if i < 0 || i >= len(n.Values) {
		return nil
	}
	return n.Values[i]
}

// Set replaces the value under field, appending a new member when the
// field is absent, and returns n.
func (n *Node) Set(field string, v *Node) *Node {
	for i := range n.Fields {
		if n.Fields[i].Str == field {
			v.Parent = n
			v.ParentIndex = i
			n.Values[i] = v
			return n
		}
	}
	key := &Node{
		Parent:      n,
		ParentIndex: len(n.Fields),
		Type:        StringType,
		Str:         field,
		Quote:       '"',
	}
	v.Parent = n
	v.ParentIndex = len(n.Values)
	n.Fields = append(n.Fields, key)
	n.Values = append(n.Values, v)
	return n
}

// Delete removes the member under field, reindexing later members.
func (n *Node) Delete(field string) bool {
	for i := range n.Fields {
		if n.Fields[i].Str != field {
			continue
		}
		n.Fields = append(n.Fields[:i], n.Fields[i+1:]...)
		n.Values = append(n.Values[:i], n.Values[i+1:]...)
		for j := i; j < len(n.Values); j++ {
			n.Fields[j].ParentIndex = j
			n.Values[j].ParentIndex = j
		}
		return true
	}
	return false
}

// Append adds v to an array node and returns n.
func (n *Node) Append(v *Node) *Node {
	v.Parent = n
	v.ParentIndex = len(n.Values)
	n.Values = append(n.Values, v)
	return n
}

func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, nn := range n.Values {
			if err := nn.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

func (n *Node) Root() *Node {
	res := n
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// ClearStyle drops the trivia attached to n itself.  Spelling fields
// such as Origin and Quote are kept.
func (n *Node) ClearStyle() {
	n.Before = nil
	n.After = nil
	n.Tail = nil
	n.TrailingComma = false
}

// StripStyle drops trivia from n and everything below it, keys
// included.
func (n *Node) StripStyle() {
	n.ClearStyle()
	for _, f := range n.Fields {
		f.StripStyle()
	}
	for _, v := range n.Values {
		v.StripStyle()
	}
}
