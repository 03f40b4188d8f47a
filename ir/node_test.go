package ir

import (
	"testing"
)

func testObject() *Node {
	return FromKeyVals([]KeyVal{
		{Key: FromString("name"), Val: FromString("box")},
		{Key: FromIdentifier("size"), Val: FromInt(3)},
		{Key: FromString("tags"), Val: FromSlice([]*Node{
			FromString("a"),
			FromString("b"),
		})},
	})
}

func TestNodeGet(t *testing.T) {
	obj := testObject()
	if v := obj.Get("name"); v == nil || v.Str != "box" {
		t.Errorf("Get(name) = %v", v)
	}
	if v := obj.Get("size"); v == nil || v.Int64 != 3 {
		t.Errorf("Get(size) = %v", v)
	}
	if v := obj.Get("missing"); v != nil {
		t.Errorf("Get(missing) = %v, want nil", v)
	}
}

func TestNodeIndex(t *testing.T) {
	arr := testObject().Get("tags")
	if v := arr.Index(1); v == nil || v.Str != "b" {
		t.Errorf("Index(1) = %v", v)
	}
	if v := arr.Index(-1); v != nil {
		t.Errorf("Index(-1) = %v, want nil", v)
	}
	if v := arr.Index(2); v != nil {
		t.Errorf("Index(2) = %v, want nil", v)
	}
}

func TestNodeSet(t *testing.T) {
	obj := testObject()
	obj.Set("size", FromInt(5))
	if v := obj.Get("size"); v.Int64 != 5 {
		t.Errorf("after Set size = %d", v.Int64)
	}
	if len(obj.Fields) != 3 {
		t.Errorf("Set replaced but grew to %d members", len(obj.Fields))
	}
	obj.Set("extra", FromBool(true))
	if len(obj.Fields) != 4 {
		t.Errorf("Set append: %d members", len(obj.Fields))
	}
	v := obj.Get("extra")
	if v == nil || !v.Bool {
		t.Errorf("Get(extra) = %v", v)
	}
	if v.Parent != obj || v.ParentIndex != 3 {
		t.Errorf("appended member not linked: parent=%p index=%d", v.Parent, v.ParentIndex)
	}
}

func TestNodeDelete(t *testing.T) {
	obj := testObject()
	if !obj.Delete("name") {
		t.Fatalf("Delete(name) = false")
	}
	if obj.Delete("name") {
		t.Errorf("second Delete(name) = true")
	}
	if len(obj.Fields) != 2 || len(obj.Values) != 2 {
		t.Fatalf("after delete: %d fields, %d values", len(obj.Fields), len(obj.Values))
	}
	for i := range obj.Values {
		if obj.Values[i].ParentIndex != i || obj.Fields[i].ParentIndex != i {
			t.Errorf("member %d not reindexed", i)
		}
	}
}

func TestNodeAppend(t *testing.T) {
	arr := FromSlice(nil)
	arr.Append(FromInt(1)).Append(FromInt(2))
	if len(arr.Values) != 2 {
		t.Fatalf("len = %d", len(arr.Values))
	}
	if arr.Values[1].Parent != arr || arr.Values[1].ParentIndex != 1 {
		t.Errorf("appended element not linked")
	}
}

func TestNodeClone(t *testing.T) {
	obj := testObject()
	obj.Get("name").Before = []WSC{Whitespace(" ")}
	obj.TrailingComma = true
	obj.Tail = []WSC{LineComment(" end")}

	clone := obj.Clone()
	if !Equal(obj, clone) {
		t.Fatalf("clone not equal")
	}
	if clone.Get("name").Before[0] != Whitespace(" ") {
		t.Errorf("clone lost trivia")
	}
	if !clone.TrailingComma || len(clone.Tail) != 1 {
		t.Errorf("clone lost container style")
	}

	clone.Get("tags").Append(FromString("c"))
	clone.Get("name").Str = "mutated"
	if len(obj.Get("tags").Values) != 2 {
		t.Errorf("clone shares array with original")
	}
	if obj.Get("name").Str != "box" {
		t.Errorf("clone shares scalar with original")
	}
	if clone.Values[0].Parent != clone {
		t.Errorf("clone children point at original parent")
	}
}

func TestNodeVisit(t *testing.T) {
	obj := testObject()
	var pre, post int
	err := obj.Visit(func(n *Node, isPost bool) (bool, error) {
		if isPost {
			post++
		} else {
			pre++
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	// object + 3 values + 2 array elements
	if pre != 6 || post != 6 {
		t.Errorf("pre=%d post=%d, want 6/6", pre, post)
	}

	var shallow int
	obj.Visit(func(n *Node, isPost bool) (bool, error) {
		if !isPost {
			shallow++
		}
		return n == obj, nil
	})
	if shallow != 4 {
		t.Errorf("shallow visit = %d, want 4", shallow)
	}
}

func TestNodeRoot(t *testing.T) {
	obj := testObject()
	leaf := obj.Get("tags").Index(0)
	if leaf.Root() != obj {
		t.Errorf("Root() did not reach the top")
	}
	if obj.Root() != obj {
		t.Errorf("Root() of root is not itself")
	}
}

func TestNodeKPath(t *testing.T) {
	obj := testObject()
	tests := []struct {
		node *Node
		want string
	}{
		{obj, ""},
		{obj.Get("name"), "name"},
		{obj.Get("tags"), "tags"},
		{obj.Get("tags").Index(1), "tags[1]"},
	}
	for _, tt := range tests {
		if got := tt.node.KPath(); got != tt.want {
			t.Errorf("KPath = %q, want %q", got, tt.want)
		}
	}
}

func TestNodeGetKPath(t *testing.T) {
	obj := testObject()
	v, err := obj.GetKPath("tags[0]")
	if err != nil {
		t.Fatal(err)
	}
	if v == nil || v.Str != "a" {
		t.Errorf("GetKPath(tags[0]) = %v", v)
	}
	v, err = obj.GetKPath("missing.path")
	if err != nil || v != nil {
		t.Errorf("GetKPath(missing.path) = %v, %v", v, err)
	}
	if _, err = obj.GetKPath("name[0]"); err == nil {
		t.Errorf("GetKPath(name[0]) expected shape error")
	}
}

func TestStripStyle(t *testing.T) {
	obj := testObject()
	obj.Before = []WSC{BlockComment(" doc ")}
	obj.Fields[0].After = []WSC{Whitespace(" ")}
	obj.Get("tags").Tail = []WSC{Whitespace("\n")}
	obj.Get("tags").TrailingComma = true

	obj.StripStyle()
	if obj.Before != nil {
		t.Errorf("Before survived StripStyle")
	}
	if obj.Fields[0].After != nil {
		t.Errorf("key After survived StripStyle")
	}
	tags := obj.Get("tags")
	if tags.Tail != nil || tags.TrailingComma {
		t.Errorf("container style survived StripStyle")
	}
}

func TestFromMapSorted(t *testing.T) {
	obj := FromMap(map[string]*Node{
		"zeta":  FromInt(1),
		"alpha": FromInt(2),
		"mid":   FromInt(3),
	})
	want := []string{"alpha", "mid", "zeta"}
	for i, f := range obj.Fields {
		if f.Str != want[i] {
			t.Errorf("field %d = %q, want %q", i, f.Str, want[i])
		}
		if f.Parent != obj || f.ParentIndex != i {
			t.Errorf("field %d not linked", i)
		}
	}
}

func TestToMap(t *testing.T) {
	obj := testObject()
	m := ToMap(obj)
	if len(m) != 3 {
		t.Fatalf("len = %d", len(m))
	}
	if m["size"].Int64 != 3 {
		t.Errorf("size = %d", m["size"].Int64)
	}
	if ToMap(FromInt(1)) != nil {
		t.Errorf("ToMap of non-object should be nil")
	}
}
