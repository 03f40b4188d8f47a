package encode

import (
	"bytes"

	"github.com/GraiaProject/kayaku/ir"
)

// MustString encodes node verbatim, panicking on nodes the encoder
// rejects.  It is meant for trees built by parse, which always
// encode.
func MustString(node *ir.Node) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf); err != nil {
		panic(err)
	}
	return buf.String()
}

// String encodes node to a string.
func String(node *ir.Node, opts ...EncodeOption) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(node, buf, opts...); err != nil {
		return "", err
	}
	return buf.String(), nil
}
