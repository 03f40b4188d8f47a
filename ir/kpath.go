package ir

import (
	"fmt"

	"github.com/GraiaProject/kayaku/ir/kpath"
	"github.com/GraiaProject/kayaku/token"
)

// KPath returns the path of this node's position in the tree, as in
// "a.b[0]".  The root node yields "".
func (n *Node) KPath() string {
	if n.Parent == nil {
		return ""
	}
	switch n.Parent.Type {
	case ObjectType:
		f := n.Parent.Fields[n.ParentIndex].Str
		prefix := n.Parent.KPath()
		if !token.IsIdentifier(f) {
			f = token.Quote(f, '\'')
		}
		if prefix == "" {
			return f
		}
		return prefix + "." + f

	case ArrayType:
		return fmt.Sprintf("%s[%d]", n.Parent.KPath(), n.ParentIndex)

	default:
		panic("parent but not in container")
	}
}

// GetKPath navigates the tree under n using a path such as "a.b[0]".
// A missing path returns (nil, nil); a path which mismatches the tree
// shape returns an error.
func (n *Node) GetKPath(kp string) (*Node, error) {
	p, err := kpath.Parse(kp)
	if err != nil {
		return nil, err
	}
	return n.getKPath(p)
}

func (n *Node) getKPath(kp *kpath.KPath) (*Node, error) {
	res := n
	for kp != nil {
		switch {
		case kp.Index != nil:
			if res.Type != ArrayType {
				return nil, fmt.Errorf("expected array, got %s", res.Type)
			}
			index := *kp.Index
			if index < 0 || index >= len(res.Values) {
				return nil, fmt.Errorf("index out of bounds %d (len %d)", index, len(res.Values))
			}
			res = res.Values[index]
			kp = kp.Next

		case kp.Field != nil:
			if res.Type != ObjectType {
				return nil, fmt.Errorf("expected object, got %s", res.Type)
			}
			v := res.Get(*kp.Field)
			if v == nil {
				return nil, nil
			}
			res = v
			kp = kp.Next

		default:
			return nil, fmt.Errorf("empty path segment")
		}
	}
	return res, nil
}
