package kayaku

import (
	"fmt"

	"github.com/GraiaProject/kayaku/debug"
	"github.com/GraiaProject/kayaku/ir"
)

// Update merges data into dst, touching as little of dst's styling as
// possible.  Members whose value is already equal keep their spelling
// and trivia, containers of the same kind merge member by member, and
// everything else is swapped out in place.  data may be a plain Go
// value or an *ir.Node; node subtrees from data are linked into dst,
// not copied.  When del is set, object members absent from data are
// removed, along with their attached comments.  dst must be a
// container of the same kind as data.
func Update(dst *ir.Node, data any, del bool) error {
	if dst == nil {
		return fmt.Errorf("%w: nil destination", ErrUpdate)
	}
	src, err := dataNode(data)
	if err != nil {
		return err
	}
	if !sameKind(dst, src) {
		return fmt.Errorf("%w: cannot update %s from %s", ErrUpdate, dst.Type, src.Type)
	}
	if debug.Update() {
		debug.Logf("update %s <- %s del=%v\n", dst, src, del)
	}
	return update(dst, src, del)
}

func dataNode(data any) (*ir.Node, error) {
	if n, ok := data.(*ir.Node); ok {
		return n, nil
	}
	return ir.FromGo(data)
}

// sameKind reports whether a and b are containers of the same kind.
func sameKind(a, b *ir.Node) bool {
	if a.Type != ir.ObjectType && a.Type != ir.ArrayType {
		return false
	}
	return a.Type == b.Type
}

// update merges src into dst.  Both are containers of the same kind.
func update(dst, src *ir.Node, del bool) error {
	if ir.Equal(dst, src) {
		return nil
	}
	if dst.Type == ir.ArrayType {
		updateArray(dst, src)
		return nil
	}
	return updateObject(dst, src, del)
}

func updateObject(dst, src *ir.Node, del bool) error {
	for i, f := range src.Fields {
		v := src.Values[i]
		cur := dst.Get(f.Str)
		if cur == nil {
			dst.Set(f.Str, v)
			continue
		}
		if sameKind(cur, v) {
			if err := update(cur, v, del); err != nil {
				return err
			}
			continue
		}
		if ir.Equal(cur, v) {
			continue
		}
		v.Before, v.After = cur.Before, cur.After
		dst.Set(f.Str, v)
	}
	if !del {
		return nil
	}
	var stale []string
	for _, f := range dst.Fields {
		if src.Get(f.Str) == nil {
			stale = append(stale, f.Str)
		}
	}
	for _, field := range stale {
		dst.Delete(field)
	}
	return nil
}

// updateArray resizes dst to src's length, then swaps out the elements
// which changed.  Equal elements keep their styling; changed elements
// are replaced whole, not merged.
func updateArray(dst, src *ir.Node) {
	if len(dst.Values) > len(src.Values) {
		dst.Values = dst.Values[:len(src.Values)]
	}
	for len(dst.Values) < len(src.Values) {
		dst.Append(ir.Null())
	}
	for i, v := range src.Values {
		cur := dst.Values[i]
		if ir.Equal(cur, v) {
			continue
		}
		v.Before, v.After = cur.Before, cur.After
		v.Parent = dst
		v.ParentIndex = i
		dst.Values[i] = v
	}
}
