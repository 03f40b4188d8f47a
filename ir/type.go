package ir

import "fmt"

// Type discriminates the kind of value a [Node] holds.
type Type int

const (
	NullType Type = iota
	BoolType
	IntType
	HexType
	FloatType
	StringType
	IdentifierType
	ArrayType
	ObjectType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		NullType:       "Null",
		BoolType:       "Bool",
		IntType:        "Int",
		HexType:        "Hex",
		FloatType:      "Float",
		StringType:     "String",
		IdentifierType: "Identifier",
		ArrayType:      "Array",
		ObjectType:     "Object",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":       NullType,
		"Bool":       BoolType,
		"Int":        IntType,
		"Hex":        HexType,
		"Float":      FloatType,
		"String":     StringType,
		"Identifier": IdentifierType,
		"Array":      ArrayType,
		"Object":     ObjectType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		NullType,
		BoolType,
		IntType,
		HexType,
		FloatType,
		StringType,
		IdentifierType,
		ArrayType,
		ObjectType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ObjectType, ArrayType:
		return false
	default:
		return true
	}
}

// IsNumber reports whether t is one of the numeric types.
func (t Type) IsNumber() bool {
	switch t {
	case IntType, HexType, FloatType:
		return true
	default:
		return false
	}
}

// IsStringLike reports whether t holds text, quoted or not.
func (t Type) IsStringLike() bool {
	return t == StringType || t == IdentifierType
}
