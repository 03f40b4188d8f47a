package pretty

import (
	"strings"

	"github.com/GraiaProject/kayaku/ir"
	"github.com/GraiaProject/kayaku/token"
)

// QuotePolicy selects how keys or string values are quoted.
type QuotePolicy int

const (
	// QuoteKeep leaves the source quoting alone.
	QuoteKeep QuotePolicy = iota
	QuoteDouble
	QuoteSingle
	// QuoteBare emits an identifier when the text allows it and a
	// double quoted string otherwise.  For string values it acts as
	// QuoteDouble.
	QuoteBare
)

// Prettifier rewrites the trivia of a tree into a uniform layout.
// Values and spellings are untouched, and no comment text is lost:
// comments are gathered per member and re-attached around the
// rebuilt whitespace.  The node's own leading and trailing trivia
// belong to the enclosing document and are left alone.
type Prettifier struct {
	Indent       int // spaces per nesting level, 4 when zero
	TrailComma   bool
	KeyQuote     QuotePolicy
	StringQuote  QuotePolicy
	UnfoldSingle bool
}

// Prettify rebuilds the layout of n in place and returns it.
// Prettifying an already prettified tree changes nothing.
func (p *Prettifier) Prettify(n *ir.Node) *ir.Node {
	p.node(n, 0)
	return n
}

func (p *Prettifier) node(n *ir.Node, depth int) {
	switch n.Type {
	case ir.ObjectType, ir.ArrayType:
		p.container(n, depth)
	case ir.StringType:
		applyQuote(n, p.StringQuote, false)
	}
}

func (p *Prettifier) container(n *ir.Node, depth int) {
	for _, k := range n.Fields {
		applyQuote(k, p.KeyQuote, true)
	}
	for _, v := range n.Values {
		p.node(v, depth+1)
	}

	if len(n.Values) == 0 {
		if !ir.HasComment(n.Tail) {
			n.Tail = nil
			n.TrailingComma = false
			return
		}
		p.rebuildTail(n, depth, nil)
		n.TrailingComma = false
		return
	}
	if len(n.Values) == 1 && !p.UnfoldSingle && p.collapse(n) {
		return
	}

	ind := p.pad(depth + 1)
	var carry []ir.WSC
	for i, val := range n.Values {
		var key *ir.Node
		if n.Type == ir.ObjectType {
			key = n.Fields[i]
		}

		var att, own []ir.WSC
		if key != nil {
			a, o := splitAttached(key.Before)
			att, own = a, o
			own = append(own, ir.Comments(key.After)...)
			own = append(own, ir.Comments(val.Before)...)
		} else {
			att, own = splitAttached(val.Before)
		}
		attSelf, ownV := splitAttached(val.After)
		own = append(own, ownV...)

		var lead []ir.WSC
		for _, c := range append(carry, att...) {
			lead = append(lead, ir.Whitespace(" "), normalize(c, ind))
		}
		for _, c := range own {
			lead = append(lead, ir.Whitespace("\n"+ind), normalize(c, ind))
		}
		lead = append(lead, ir.Whitespace("\n"+ind))

		if key != nil {
			key.Before = lead
			key.After = nil
			val.Before = []ir.WSC{ir.Whitespace(" ")}
		} else {
			val.Before = lead
		}
		val.After = nil
		carry = attSelf
	}
	p.rebuildTail(n, depth, carry)
	n.TrailingComma = p.TrailComma
}

// collapse renders a single childless entry inline, as in {"a": 1}
// or [1].  It reports false when comments or a non-empty container
// value force the entry onto its own line.
func (p *Prettifier) collapse(n *ir.Node) bool {
	val := n.Values[0]
	if len(val.Values) > 0 {
		return false
	}
	if ir.HasComment(val.Before) || ir.HasComment(val.After) || ir.HasComment(n.Tail) {
		return false
	}
	if n.Type == ir.ObjectType {
		key := n.Fields[0]
		if ir.HasComment(key.Before) || ir.HasComment(key.After) {
			return false
		}
		key.Before = nil
		key.After = nil
		val.Before = []ir.WSC{ir.Whitespace(" ")}
	} else {
		val.Before = nil
	}
	val.After = nil
	n.Tail = nil
	n.TrailingComma = false
	return true
}

// rebuildTail lays out the stretch between the last member and the
// closing bracket.  carry holds comments that stay attached to the
// last member's line.
func (p *Prettifier) rebuildTail(n *ir.Node, depth int, carry []ir.WSC) {
	ind := p.pad(depth + 1)
	att, own := splitAttached(n.Tail)
	var tail []ir.WSC
	for _, c := range append(carry, att...) {
		tail = append(tail, ir.Whitespace(" "), normalize(c, ind))
	}
	for _, c := range own {
		tail = append(tail, ir.Whitespace("\n"+ind), normalize(c, ind))
	}
	tail = append(tail, ir.Whitespace("\n"+p.pad(depth)))
	n.Tail = tail
}

func (p *Prettifier) pad(depth int) string {
	ind := p.Indent
	if ind <= 0 {
		ind = 4
	}
	return strings.Repeat(" ", ind*depth)
}

// splitAttached partitions the comments of a trivia run into those
// that stay on the line they followed and those that get a line of
// their own.  A comment is attached when no line break separates it
// from the token before the run; block comments never attach.
func splitAttached(run []ir.WSC) (att, own []ir.WSC) {
	head := true
	for _, w := range run {
		if !w.IsComment() {
			if w.HasNewline() {
				head = false
			}
			continue
		}
		if head && w.Kind != ir.BlockCommentKind {
			att = append(att, w)
			continue
		}
		head = false
		own = append(own, w)
	}
	return att, own
}

func normalize(c ir.WSC, ind string) ir.WSC {
	switch c.Kind {
	case ir.LineCommentKind, ir.HashCommentKind:
		c.Text = strings.TrimRight(c.Text, "\r")
	case ir.BlockCommentKind:
		return rewrapBlock(c, ind)
	}
	return c
}

// rewrapBlock reflows a block comment spanning several lines into the
// conventional star margin form,
//
//	/*
//	 * text
//	 */
//
// aligned at ind.  Single line block comments pass through.
func rewrapBlock(c ir.WSC, ind string) ir.WSC {
	if !strings.Contains(c.Text, "\n") {
		return c
	}
	lines := strings.Split(c.Text, "\n")
	for i, ln := range lines {
		ln = strings.TrimSpace(ln)
		ln = strings.TrimPrefix(ln, "*")
		lines[i] = strings.TrimPrefix(ln, " ")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ir.BlockComment(" ")
	}
	var sb strings.Builder
	sb.WriteString("\n")
	for _, ln := range lines {
		sb.WriteString(ind)
		if ln == "" {
			sb.WriteString(" *\n")
			continue
		}
		sb.WriteString(" * ")
		sb.WriteString(ln)
		sb.WriteString("\n")
	}
	sb.WriteString(ind)
	sb.WriteString(" ")
	return ir.BlockComment(sb.String())
}

func applyQuote(n *ir.Node, q QuotePolicy, key bool) {
	switch q {
	case QuoteKeep:
	case QuoteSingle:
		toQuoted(n, '\'')
	case QuoteBare:
		if key && token.IsIdentifier(n.Str) {
			if n.Type != ir.IdentifierType {
				n.Type = ir.IdentifierType
				n.Quote = 0
				n.Origin = ""
				n.Linebreaks = nil
			}
			return
		}
		toQuoted(n, '"')
	case QuoteDouble:
		toQuoted(n, '"')
	}
}

func toQuoted(n *ir.Node, q byte) {
	if n.Type == ir.StringType && n.Quote == q {
		return
	}
	n.Type = ir.StringType
	n.Quote = q
	n.Origin = ""
	n.Linebreaks = nil
}
