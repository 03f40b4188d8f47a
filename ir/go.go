package ir

import (
	"encoding"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// FromGo converts a plain Go value to a Node.  Pointers and
// interfaces are dereferenced, nil becoming null; structs use their
// json tags when present; map keys may be strings or integers.
// Values outside the JSON data model return [UnsupportedValueError].
func FromGo(v any) (*Node, error) {
	visited := make(map[uintptr]string)
	return fromGo(reflect.ValueOf(v), "", visited)
}

func fromGo(val reflect.Value, path string, visited map[uintptr]string) (*Node, error) {
	if !val.IsValid() {
		return Null(), nil
	}
	typ := val.Type()
	kind := typ.Kind()

	if kind == reflect.Pointer {
		if val.IsNil() {
			return Null(), nil
		}
		ptr := val.Pointer()
		if prev, seen := visited[ptr]; seen {
			return nil, cycleErr(typ, path, prev)
		}
		visited[ptr] = path
		node, err := fromGo(val.Elem(), path, visited)
		delete(visited, ptr)
		return node, err
	}

	if num, ok := val.Interface().(json.Number); ok {
		if i, err := num.Int64(); err == nil {
			return FromInt(i), nil
		}
		f, err := num.Float64()
		if err != nil {
			return nil, &UnsupportedValueError{
				Value: string(num),
				Msg:   fmt.Sprintf("bad number at %q", path),
			}
		}
		return FromFloat(f), nil
	}

	if tm, ok := val.Interface().(encoding.TextMarshaler); ok {
		text, err := tm.MarshalText()
		if err != nil {
			return nil, err
		}
		return FromString(string(text)), nil
	}

	switch kind {
	case reflect.String:
		return FromString(val.String()), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return FromInt(val.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := val.Uint()
		if u > math.MaxInt64 {
			return nil, &UnsupportedValueError{
				Value: u,
				Msg:   fmt.Sprintf("%d overflows int64 at %q", u, path),
			}
		}
		return FromInt(int64(u)), nil

	case reflect.Float32, reflect.Float64:
		return FromFloat(val.Float()), nil

	case reflect.Bool:
		return FromBool(val.Bool()), nil

	case reflect.Slice, reflect.Array:
		return sliceFromGo(val, path, visited)

	case reflect.Map:
		return mapFromGo(val, path, visited)

	case reflect.Struct:
		kvs, err := structKeyVals(val, path, visited)
		if err != nil {
			return nil, err
		}
		return FromKeyVals(kvs), nil

	case reflect.Interface:
		if val.IsNil() {
			return Null(), nil
		}
		return fromGo(val.Elem(), path, visited)
	}
	return nil, &UnsupportedValueError{
		Value: typ.String(),
		Msg:   fmt.Sprintf("cannot convert %s at %q", typ, path),
	}
}

func sliceFromGo(val reflect.Value, path string, visited map[uintptr]string) (*Node, error) {
	if val.Kind() == reflect.Slice {
		if val.IsNil() {
			return Null(), nil
		}
		ptr := val.Pointer()
		if prev, seen := visited[ptr]; seen {
			return nil, cycleErr(val.Type(), path, prev)
		}
		visited[ptr] = path
		defer delete(visited, ptr)
	}
	elems := make([]*Node, val.Len())
	for i := range elems {
		node, err := fromGo(val.Index(i), fmt.Sprintf("%s[%d]", path, i), visited)
		if err != nil {
			return nil, err
		}
		elems[i] = node
	}
	return FromSlice(elems), nil
}

func mapFromGo(val reflect.Value, path string, visited map[uintptr]string) (*Node, error) {
	if val.IsNil() {
		return Null(), nil
	}
	ptr := val.Pointer()
	if prev, seen := visited[ptr]; seen {
		return nil, cycleErr(val.Type(), path, prev)
	}
	visited[ptr] = path
	defer delete(visited, ptr)

	switch val.Type().Key().Kind() {
	case reflect.String:
		nMap := make(map[string]*Node, val.Len())
		iter := val.MapRange()
		for iter.Next() {
			key := iter.Key().String()
			node, err := fromGo(iter.Value(), path+"."+key, visited)
			if err != nil {
				return nil, err
			}
			nMap[key] = node
		}
		return FromMap(nMap), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		keys := val.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return intKey(keys[i]) < intKey(keys[j])
		})
		kvs := make([]KeyVal, 0, len(keys))
		for _, key := range keys {
			keyStr := strconv.FormatInt(intKey(key), 10)
			node, err := fromGo(val.MapIndex(key), path+"."+keyStr, visited)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, KeyVal{Key: FromString(keyStr), Val: node})
		}
		return FromKeyVals(kvs), nil
	}
	return nil, &UnsupportedValueError{
		Value: val.Type().String(),
		Msg:   fmt.Sprintf("map key type %s at %q", val.Type().Key(), path),
	}
}

func intKey(key reflect.Value) int64 {
	switch key.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(key.Uint())
	default:
		return key.Int()
	}
}

func structKeyVals(val reflect.Value, path string, visited map[uintptr]string) ([]KeyVal, error) {
	typ := val.Type()
	var kvs []KeyVal
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name, omitEmpty := parseJSONTag(f.Tag.Get("json"))
		if name == "-" {
			continue
		}
		fv := val.Field(i)
		if f.Anonymous && name == "" && f.Type.Kind() == reflect.Struct {
			sub, err := structKeyVals(fv, path, visited)
			if err != nil {
				return nil, err
			}
			kvs = append(kvs, sub...)
			continue
		}
		if omitEmpty && isEmptyValue(fv) {
			continue
		}
		if name == "" {
			name = f.Name
		}
		node, err := fromGo(fv, path+"."+name, visited)
		if err != nil {
			return nil, err
		}
		kvs = append(kvs, KeyVal{Key: FromString(name), Val: node})
	}
	return kvs, nil
}

func parseJSONTag(tag string) (name string, omitEmpty bool) {
	if tag == "" {
		return "", false
	}
	parts := strings.Split(tag, ",")
	name = parts[0]
	for _, p := range parts[1:] {
		if p == "omitempty" {
			omitEmpty = true
		}
	}
	return name, omitEmpty
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}

func cycleErr(typ reflect.Type, path, prev string) error {
	return &UnsupportedValueError{
		Value: typ.String(),
		Msg:   fmt.Sprintf("circular reference at %q (previously seen at %q)", path, prev),
	}
}

// ToGo extracts the plain Go value n denotes: objects become
// map[string]any, arrays []any, integers int64, floats float64.
func (n *Node) ToGo() any {
	switch n.Type {
	case NullType:
		return nil
	case BoolType:
		return n.Bool
	case IntType, HexType:
		return n.Int64
	case FloatType:
		return n.Float64
	case StringType, IdentifierType:
		return n.Str
	case ArrayType:
		res := make([]any, len(n.Values))
		for i, v := range n.Values {
			res[i] = v.ToGo()
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(n.Fields))
		for i := range n.Fields {
			res[n.Fields[i].Str] = n.Values[i].ToGo()
		}
		return res
	}
	return nil
}
