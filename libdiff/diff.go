package libdiff

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/GraiaProject/kayaku/encode"
	"github.com/GraiaProject/kayaku/ir"
	"github.com/GraiaProject/kayaku/ir/kpath"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Op classifies an [Edit].
type Op int

const (
	OpReplace Op = iota
	OpAdd
	OpDelete
)

func (op Op) String() string {
	switch op {
	case OpReplace:
		return "replace"
	case OpAdd:
		return "add"
	case OpDelete:
		return "delete"
	}
	return "Op(" + strconv.Itoa(int(op)) + ")"
}

// Edit is one difference between two trees.  From is nil for OpAdd and
// To is nil for OpDelete; both point into the compared trees, not
// copies.  Array indices in Path refer to the tree the node came from:
// the old tree for deleted and replaced elements, the new tree for
// inserted ones.
type Edit struct {
	Path *kpath.KPath
	Op   Op
	From *ir.Node
	To   *ir.Node
}

// String renders the edit as one or two diff lines.
func (e Edit) String() string {
	at := e.Path.String()
	if at != "" {
		at += ": "
	}
	switch e.Op {
	case OpAdd:
		return "+ " + at + compact(e.To)
	case OpDelete:
		return "- " + at + compact(e.From)
	default:
		return "- " + at + compact(e.From) + "\n+ " + at + compact(e.To)
	}
}

// compact renders a node on one line.  Scalar spellings survive,
// trivia and line continuations do not.
func compact(n *ir.Node) string {
	c := n.Clone()
	flatten(c)
	return encode.MustString(c)
}

func flatten(n *ir.Node) {
	n.ClearStyle()
	if len(n.Linebreaks) > 0 {
		n.Origin = ""
		n.Linebreaks = nil
	}
	for _, f := range n.Fields {
		flatten(f)
	}
	for _, v := range n.Values {
		flatten(v)
	}
}

// Diff returns the edits that turn from into to.  Equal trees, however
// differently spelled, yield no edits.  A nil from or to reports the
// whole other tree as added or deleted.
func Diff(from, to *ir.Node) []Edit {
	d := &differ{cfg: diffpatch.New()}
	d.node(nil, from, to)
	return d.edits
}

type differ struct {
	cfg   *diffpatch.DiffMatchPatch
	edits []Edit
}

func (d *differ) edit(p *kpath.KPath, op Op, from, to *ir.Node) {
	d.edits = append(d.edits, Edit{Path: p, Op: op, From: from, To: to})
}

func (d *differ) node(p *kpath.KPath, from, to *ir.Node) {
	if ir.Equal(from, to) {
		return
	}
	switch {
	case from == nil:
		d.edit(p, OpAdd, nil, to)
	case to == nil:
		d.edit(p, OpDelete, from, nil)
	case from.Type == ir.ObjectType && to.Type == ir.ObjectType:
		d.object(p, from, to)
	case from.Type == ir.ArrayType && to.Type == ir.ArrayType:
		d.array(p, from, to)
	default:
		d.edit(p, OpReplace, from, to)
	}
}

// object diffs the member sequences by field name: each name interns
// to a rune and the two rune strings run through the sequence diff.
// Leftover deletions then pair with insertions of the same name, so a
// member that merely moved reports only its value change.
func (d *differ) object(p *kpath.KPath, from, to *ir.Node) {
	fieldMap := map[string]rune{}
	fromRunes := internFields(fieldMap, from)
	toRunes := internFields(fieldMap, to)
	diffs := d.cfg.DiffMainRunes(fromRunes, toRunes, false)

	type pair struct{ fi, ti int }
	var eqs []pair
	var dels, inss []int
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			for range diff.Text {
				dels = append(dels, fi)
				fi++
			}
		case diffpatch.DiffEqual:
			for range diff.Text {
				eqs = append(eqs, pair{fi, ti})
				fi++
				ti++
			}
		case diffpatch.DiffInsert:
			for range diff.Text {
				inss = append(inss, ti)
				ti++
			}
		}
	}

	moved := map[string][]int{}
	for _, fi := range dels {
		f := from.Fields[fi].Str
		moved[f] = append(moved[f], fi)
	}
	paired := map[int]bool{}
	var adds []int
	for _, ti := range inss {
		f := to.Fields[ti].Str
		if q := moved[f]; len(q) > 0 {
			eqs = append(eqs, pair{q[0], ti})
			paired[q[0]] = true
			moved[f] = q[1:]
			continue
		}
		adds = append(adds, ti)
	}

	slices.SortFunc(eqs, func(a, b pair) int { return cmp.Compare(a.ti, b.ti) })
	for _, eq := range eqs {
		at := p.Append(kpath.Field(to.Fields[eq.ti].Str))
		d.node(at, from.Values[eq.fi], to.Values[eq.ti])
	}
	for _, ti := range adds {
		d.edit(p.Append(kpath.Field(to.Fields[ti].Str)), OpAdd, nil, to.Values[ti])
	}
	for _, fi := range dels {
		if !paired[fi] {
			d.edit(p.Append(kpath.Field(from.Fields[fi].Str)), OpDelete, from.Values[fi], nil)
		}
	}
}

// array interns element summaries instead of names: scalars by value,
// containers by kind, multi-line strings by a marker.  A deletion run
// directly followed by an insertion run pairs element for element, so
// a changed element recurses instead of reporting a remove plus an
// insert.
func (d *differ) array(p *kpath.KPath, from, to *ir.Node) {
	m := map[string]rune{}
	fromRunes := internValues(m, from)
	toRunes := internValues(m, to)
	diffs := d.cfg.DiffMainRunes(fromRunes, toRunes, false)

	fi, ti := 0, 0
	for i := 0; i < len(diffs); i++ {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffEqual:
			for range diff.Text {
				d.node(p.Append(kpath.Index(fi)), from.Values[fi], to.Values[ti])
				fi++
				ti++
			}
		case diffpatch.DiffDelete:
			del := utf8.RuneCountInString(diff.Text)
			ins := 0
			if i+1 < len(diffs) && diffs[i+1].Type == diffpatch.DiffInsert {
				ins = utf8.RuneCountInString(diffs[i+1].Text)
				i++
			}
			for del > 0 && ins > 0 {
				d.node(p.Append(kpath.Index(fi)), from.Values[fi], to.Values[ti])
				fi++
				ti++
				del--
				ins--
			}
			for ; del > 0; del-- {
				d.edit(p.Append(kpath.Index(fi)), OpDelete, from.Values[fi], nil)
				fi++
			}
			for ; ins > 0; ins-- {
				d.edit(p.Append(kpath.Index(ti)), OpAdd, nil, to.Values[ti])
				ti++
			}
		case diffpatch.DiffInsert:
			for range diff.Text {
				d.edit(p.Append(kpath.Index(ti)), OpAdd, nil, to.Values[ti])
				ti++
			}
		}
	}
}

func internFields(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Fields))
	for i, f := range node.Fields {
		r, ok := m[f.Str]
		if !ok {
			r = rune(len(m))
			m[f.Str] = r
		}
		rs[i] = r
	}
	return rs
}

func internValues(m map[string]rune, node *ir.Node) []rune {
	rs := make([]rune, len(node.Values))
	for i, v := range node.Values {
		s := summary(v)
		r, ok := m[s]
		if !ok {
			r = rune(len(m))
			m[s] = r
		}
		rs[i] = r
	}
	return rs
}

// summary keys an element for the sequence diff.  Numerically equal
// values map to the same key whatever their kind, so 1 and 0x1 and 1.0
// intern alike.
func summary(n *ir.Node) string {
	switch {
	case n.Type.IsNumber():
		if n.Type == ir.FloatType {
			return "number-" + strconv.FormatFloat(n.Float64, 'g', -1, 64)
		}
		return "number-" + strconv.FormatInt(n.Int64, 10)
	case n.Type.IsStringLike():
		if strings.Contains(n.Str, "\n") {
			return "string/m"
		}
		return "string-" + n.Str
	case n.Type == ir.BoolType:
		return "bool-" + strconv.FormatBool(n.Bool)
	}
	return n.Type.String()
}
