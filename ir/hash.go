package ir

import (
	"encoding/binary"
	"hash/maphash"
	"math"
)

var hashSeed = maphash.MakeSeed()

// Hash returns a 64-bit hash of the node's value, consistent with
// [Equal]: trivia and spelling do not contribute, numeric kinds hash
// by value, and object member order does not matter.
// It panics if n is nil.
func (n *Node) Hash() uint64 {
	if n == nil {
		panic("ir: Hash called on nil node")
	}

	var h maphash.Hash
	h.SetSeed(hashSeed)
	h.WriteByte(byte(rank(n.Type)))

	var b [8]byte
	switch {
	case n.Type.IsNumber():
		v := floatValue(n)
		if v == 0 {
			v = 0 // -0 hashes as +0
		}
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
		h.Write(b[:])
	case n.Type.IsStringLike():
		h.WriteString(n.Str)
	}
	switch n.Type {
	case BoolType:
		if n.Bool {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case ArrayType:
		for _, v := range n.Values {
			binary.LittleEndian.PutUint64(b[:], v.Hash())
			h.Write(b[:])
		}
	case ObjectType:
		// XOR of member hashes keeps the result independent of
		// member order.
		var acc uint64
		for i, field := range n.Fields {
			var hm maphash.Hash
			hm.SetSeed(hashSeed)
			binary.LittleEndian.PutUint64(b[:], field.Hash())
			hm.Write(b[:])
			binary.LittleEndian.PutUint64(b[:], n.Values[i].Hash())
			hm.Write(b[:])
			acc ^= hm.Sum64()
		}
		binary.LittleEndian.PutUint64(b[:], acc)
		h.Write(b[:])
	}
	return h.Sum64()
}
