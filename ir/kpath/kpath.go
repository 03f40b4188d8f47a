package kpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GraiaProject/kayaku/token"
)

// KPath is one segment of a parsed path, linked to the rest.  Exactly
// one of Field and Index is set.  A nil *KPath addresses the root.
type KPath struct {
	Field *string
	Index *int
	Next  *KPath
}

// Field makes a single-segment path addressing an object field.
func Field(name string) *KPath {
	return &KPath{Field: &name}
}

// Index makes a single-segment path addressing an array element.
func Index(i int) *KPath {
	return &KPath{Index: &i}
}

// Parse parses a path such as "a.b[0].'weird key'.c".  The empty
// string yields nil, the root path.
func Parse(s string) (*KPath, error) {
	var head, tail *KPath
	add := func(seg *KPath) {
		if tail == nil {
			head, tail = seg, seg
			return
		}
		tail.Next = seg
		tail = seg
	}
	i := 0
	expectSeg := true
	for i < len(s) {
		switch c := s[i]; {
		case c == '.':
			if expectSeg {
				return nil, fmt.Errorf("empty segment at offset %d in %q", i, s)
			}
			expectSeg = true
			i++
		case c == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("unterminated index at offset %d in %q", i, s)
			}
			idx, err := strconv.Atoi(s[i+1 : i+end])
			if err != nil {
				return nil, fmt.Errorf("bad index %q at offset %d in %q", s[i+1:i+end], i, s)
			}
			add(&KPath{Index: &idx})
			expectSeg = false
			i += end + 1
		case c == '\'' || c == '"':
			if !expectSeg {
				return nil, fmt.Errorf("expected . or [ at offset %d in %q", i, s)
			}
			end, err := quotedEnd(s, i)
			if err != nil {
				return nil, err
			}
			f, _, err := token.Unquote([]byte(s[i:end]))
			if err != nil {
				return nil, fmt.Errorf("bad quoted segment at offset %d in %q: %w", i, s, err)
			}
			add(&KPath{Field: &f})
			expectSeg = false
			i = end
		default:
			if !expectSeg {
				return nil, fmt.Errorf("expected . or [ at offset %d in %q", i, s)
			}
			j := i
			for j < len(s) && s[j] != '.' && s[j] != '[' && s[j] != '\'' && s[j] != '"' {
				j++
			}
			f := s[i:j]
			add(&KPath{Field: &f})
			expectSeg = false
			i = j
		}
	}
	if expectSeg && head != nil {
		return nil, fmt.Errorf("trailing . in %q", s)
	}
	return head, nil
}

// quotedEnd returns the offset just past the quoted run starting at i.
func quotedEnd(s string, i int) (int, error) {
	q := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case q:
			return j + 1, nil
		}
	}
	return 0, fmt.Errorf("unterminated quote at offset %d in %q", i, s)
}

func (p *KPath) String() string {
	var sb strings.Builder
	for seg := p; seg != nil; seg = seg.Next {
		if seg != p && seg.Field != nil {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.SegmentString())
	}
	return sb.String()
}

// SegmentString returns the canonical form of this single segment,
// quoting fields which are not legal identifiers.
func (p *KPath) SegmentString() string {
	if p == nil {
		return ""
	}
	if p.Field != nil {
		f := *p.Field
		if token.IsIdentifier(f) {
			return f
		}
		return token.Quote(f, '\'')
	}
	if p.Index != nil {
		return fmt.Sprintf("[%d]", *p.Index)
	}
	return ""
}

func (p *KPath) copySegment() *KPath {
	if p == nil {
		return nil
	}
	res := &KPath{}
	if p.Field != nil {
		tmp := *p.Field
		res.Field = &tmp
	}
	if p.Index != nil {
		tmp := *p.Index
		res.Index = &tmp
	}
	return res
}

// Append returns a copy of p with seg attached at the end.  p is not
// modified.
func (p *KPath) Append(seg *KPath) *KPath {
	if p == nil {
		return seg
	}
	head := p.copySegment()
	tail := head
	for cur := p.Next; cur != nil; cur = cur.Next {
		tail.Next = cur.copySegment()
		tail = tail.Next
	}
	tail.Next = seg
	return head
}

// Equal reports whether p and q have the same segments.
func (p *KPath) Equal(q *KPath) bool {
	for ; p != nil && q != nil; p, q = p.Next, q.Next {
		if (p.Field == nil) != (q.Field == nil) || (p.Index == nil) != (q.Index == nil) {
			return false
		}
		if p.Field != nil && *p.Field != *q.Field {
			return false
		}
		if p.Index != nil && *p.Index != *q.Index {
			return false
		}
	}
	return p == nil && q == nil
}
