package parse

import (
	"errors"
	"math"
	"testing"

	"github.com/GraiaProject/kayaku/format"
	"github.com/GraiaProject/kayaku/ir"
	"github.com/GraiaProject/kayaku/token"
)

func TestParseOK(t *testing.T) {
	ins := []string{
		`null`,
		`true`,
		`false`,
		`22`,
		`-7`,
		`+7`,
		`1e14`,
		`1.5`,
		`.5`,
		`5.`,
		`0x1A`,
		`-0xff`,
		`NaN`,
		`Infinity`,
		`-Infinity`,
		`"hello"`,
		`'hello'`,
		`""`,
		`[]`,
		`[1, 2, 3]`,
		`[[],[[]]]`,
		`[1, [2, [3]]]`,
		`{}`,
		`{"a": "b"}`,
		`{a: "b0", "c": 'd'}`,
		`{nested: {object: "value"}}`,
		`{users: [{name: "alice"}, {name: "bob"}]}`,
		`[1, 2, 3,]`,
		`{"a": 1,}`,
		"// leading\n{}",
		"{} // trailing",
		"# hash\n[1] # more",
		"/* block */ [ /* inner */ ] /* after */",
		"{\n  // a comment\n  a: 1,\n\n  b: 2, // trailing\n}",
		`{null: 1, true: 2, NaN: 3, Infinity: 4}`,
		`"with\nescapesA"`,
		"'line\\\ncontinuation'",
	}
	for _, in := range ins {
		if _, err := Parse([]byte(in)); err != nil {
			t.Errorf("# doc\n%s\n# error %v", in, err)
		}
	}
}

func TestParseJSONOK(t *testing.T) {
	ins := []string{
		`null`,
		`{"a": [1, 2.5e3], "b": {"c": null}}`,
		"\n\t {\"a\": -1} \r\n",
		`[true, false, "x"]`,
	}
	for _, in := range ins {
		if _, err := Parse([]byte(in), ParseJSON()); err != nil {
			t.Errorf("# doc\n%s\n# error %v", in, err)
		}
	}
}

// TestParseTree pins down where trivia lands: runs before a token go to
// Before, a value's After is only filled when a comma follows, and the
// run before a closer is the container's Tail.
func TestParseTree(t *testing.T) {
	in := "{ // hi\n  \"a\": 1, /*x*/ b: [1.5, {}],\n}"
	n, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if n.Type != ir.ObjectType || len(n.Fields) != 2 {
		t.Fatalf("got %s with %d fields", n.Type, len(n.Fields))
	}
	if !n.TrailingComma {
		t.Errorf("trailing comma not recorded")
	}
	if len(n.Tail) != 1 || n.Tail[0].Text != "\n" {
		t.Errorf("tail = %#v", n.Tail)
	}

	a := n.Fields[0]
	if a.Type != ir.StringType || a.Str != "a" || a.Quote != '"' {
		t.Errorf("key a = %#v", a)
	}
	if len(a.Before) != 3 ||
		a.Before[0].Text != " " ||
		a.Before[1] != ir.LineComment(" hi") ||
		a.Before[2].Text != "\n  " {
		t.Errorf("key a before = %#v", a.Before)
	}
	if len(a.After) != 0 {
		t.Errorf("key a after = %#v", a.After)
	}
	av := n.Values[0]
	if av.Type != ir.IntType || av.Int64 != 1 || av.Origin != "1" {
		t.Errorf("value a = %#v", av)
	}
	if len(av.Before) != 1 || av.Before[0].Text != " " {
		t.Errorf("value a before = %#v", av.Before)
	}
	if len(av.After) != 0 {
		t.Errorf("value a after = %#v", av.After)
	}

	b := n.Fields[1]
	if b.Type != ir.IdentifierType || b.Str != "b" {
		t.Errorf("key b = %#v", b)
	}
	if len(b.Before) != 3 || b.Before[1] != ir.BlockComment("x") {
		t.Errorf("key b before = %#v", b.Before)
	}
	bv := n.Values[1]
	if bv.Type != ir.ArrayType || len(bv.Values) != 2 {
		t.Fatalf("value b = %#v", bv)
	}
	if f := bv.Values[0]; f.Type != ir.FloatType || f.Float64 != 1.5 || f.Origin != "1.5" {
		t.Errorf("b[0] = %#v", f)
	}
	if o := bv.Values[1]; o.Type != ir.ObjectType || len(o.Values) != 0 ||
		len(o.Before) != 1 || o.Before[0].Text != " " {
		t.Errorf("b[1] = %#v", o)
	}
	if len(bv.Tail) != 0 || bv.TrailingComma {
		t.Errorf("b tail = %#v trailing = %v", bv.Tail, bv.TrailingComma)
	}

	// parent links
	if av.Parent != n || av.ParentIndex != 0 {
		t.Errorf("value a parent link broken")
	}
	if bv.Values[1].Parent != bv || bv.Values[1].ParentIndex != 1 {
		t.Errorf("b[1] parent link broken")
	}
}

func TestParseDocEdges(t *testing.T) {
	n, err := Parse([]byte("  // head\n 42 /* tail */ "))
	if err != nil {
		t.Fatal(err)
	}
	if n.Type != ir.IntType || n.Int64 != 42 {
		t.Fatalf("node = %#v", n)
	}
	if len(n.Before) != 3 || n.Before[1] != ir.LineComment(" head") {
		t.Errorf("before = %#v", n.Before)
	}
	if len(n.After) != 3 || n.After[1] != ir.BlockComment(" tail ") {
		t.Errorf("after = %#v", n.After)
	}
}

func TestParseEmptyContainers(t *testing.T) {
	n, err := Parse([]byte("{ /* why */ }"))
	if err != nil {
		t.Fatal(err)
	}
	if len(n.Tail) != 3 || n.Tail[1] != ir.BlockComment(" why ") {
		t.Errorf("tail = %#v", n.Tail)
	}
	if n.TrailingComma {
		t.Errorf("empty object cannot have a trailing comma")
	}

	n, err = Parse([]byte("[\n]"))
	if err != nil {
		t.Fatal(err)
	}
	if len(n.Tail) != 1 || n.Tail[0].Text != "\n" {
		t.Errorf("tail = %#v", n.Tail)
	}
}

func TestParseNumbers(t *testing.T) {
	numTests := []struct {
		in           string
		typ          ir.Type
		int64V       int64
		float64V     float64
		prefixed     bool
		leadingPoint bool
		significand  int
	}{
		{in: `42`, typ: ir.IntType, int64V: 42},
		{in: `-42`, typ: ir.IntType, int64V: -42},
		{in: `+42`, typ: ir.IntType, int64V: 42, prefixed: true},
		{in: `0x11`, typ: ir.HexType, int64V: 17},
		{in: `-0x11`, typ: ir.HexType, int64V: -17},
		{in: `+0x11`, typ: ir.HexType, int64V: 17, prefixed: true},
		{in: `1.50`, typ: ir.FloatType, float64V: 1.5, significand: 2},
		{in: `.5`, typ: ir.FloatType, float64V: 0.5, leadingPoint: true, significand: 1},
		{in: `5.`, typ: ir.FloatType, float64V: 5, significand: 0},
		{in: `1e3`, typ: ir.FloatType, float64V: 1000, significand: -1},
		{in: `1.5e3`, typ: ir.FloatType, float64V: 1500, significand: 1},
		{in: `+.25`, typ: ir.FloatType, float64V: 0.25, prefixed: true, leadingPoint: true, significand: 2},
		// beyond int64, falls back to the double value
		{in: `92233720368547758080`, typ: ir.FloatType, float64V: 92233720368547758080, significand: -1},
		{in: `0x10000000000000000`, typ: ir.FloatType, float64V: 18446744073709551616, significand: -1},
		{in: `Infinity`, typ: ir.FloatType, float64V: math.Inf(1), significand: -1},
		{in: `-Infinity`, typ: ir.FloatType, float64V: math.Inf(-1), significand: -1},
	}
	for _, nt := range numTests {
		n, err := Parse([]byte(nt.in))
		if err != nil {
			t.Errorf("%s: %v", nt.in, err)
			continue
		}
		if n.Type != nt.typ {
			t.Errorf("%s: type %s, want %s", nt.in, n.Type, nt.typ)
			continue
		}
		if n.Origin != nt.in {
			t.Errorf("%s: origin %q", nt.in, n.Origin)
		}
		switch nt.typ {
		case ir.IntType, ir.HexType:
			if n.Int64 != nt.int64V {
				t.Errorf("%s: int64 %d, want %d", nt.in, n.Int64, nt.int64V)
			}
		case ir.FloatType:
			if n.Float64 != nt.float64V {
				t.Errorf("%s: float64 %v, want %v", nt.in, n.Float64, nt.float64V)
			}
			if n.LeadingPoint != nt.leadingPoint {
				t.Errorf("%s: leadingPoint %v", nt.in, n.LeadingPoint)
			}
			if n.Significand != nt.significand {
				t.Errorf("%s: significand %d, want %d", nt.in, n.Significand, nt.significand)
			}
		}
		if n.Prefixed != nt.prefixed {
			t.Errorf("%s: prefixed %v", nt.in, n.Prefixed)
		}
	}

	n, err := Parse([]byte(`NaN`))
	if err != nil {
		t.Fatal(err)
	}
	if !math.IsNaN(n.Float64) || n.Origin != "NaN" {
		t.Errorf("NaN = %#v", n)
	}
}

func TestParseStrings(t *testing.T) {
	strTests := []struct {
		in     string
		str    string
		quote  byte
		origin string
	}{
		{in: `"hello"`, str: "hello", quote: '"', origin: "hello"},
		{in: `'hello'`, str: "hello", quote: '\'', origin: "hello"},
		{in: `"aAb"`, str: "aAb", quote: '"', origin: `aAb`},
		{in: `"tab\there"`, str: "tab\there", quote: '"', origin: `tab\there`},
		{in: `'it\'s'`, str: "it's", quote: '\'', origin: `it\'s`},
	}
	for _, st := range strTests {
		n, err := Parse([]byte(st.in))
		if err != nil {
			t.Errorf("%s: %v", st.in, err)
			continue
		}
		if n.Type != ir.StringType || n.Str != st.str || n.Quote != st.quote || n.Origin != st.origin {
			t.Errorf("%s: %#v", st.in, n)
		}
	}

	n, err := Parse([]byte("'one \\\ntwo'"))
	if err != nil {
		t.Fatal(err)
	}
	if n.Str != "one two" {
		t.Errorf("continuation: str %q", n.Str)
	}
	if len(n.Linebreaks) != 1 {
		t.Errorf("continuation: linebreaks %v", n.Linebreaks)
	}
}

func TestParseErrs(t *testing.T) {
	errTests := []struct {
		in string
		e  error
	}{
		{in: ``, e: token.ErrEmptyDoc},
		{in: `  `, e: token.ErrEmptyDoc},
		{in: "// only\n", e: token.ErrEmptyDoc},
		{in: `{`, e: ErrParse},
		{in: `[`, e: ErrParse},
		{in: `{"a"`, e: ErrParse},
		{in: `{"a":`, e: ErrParse},
		{in: `{"a":1`, e: ErrParse},
		{in: `[1`, e: ErrParse},
		{in: `[1,`, e: ErrParse},
		{in: `}`, e: ErrParse},
		{in: `]`, e: ErrParse},
		{in: `{,}`, e: ErrParse},
		{in: `[,]`, e: ErrParse},
		{in: `[1 2]`, e: ErrParse},
		{in: `{"a":1 "b":2}`, e: ErrParse},
		{in: `{"a" 1}`, e: ErrParse},
		{in: `{1: 2}`, e: ErrParse},
		{in: `{} {}`, e: ErrParse},
		{in: `1 2`, e: ErrParse},
		{in: `{"a": }`, e: ErrParse},
		{in: `{"a": 1, "a": 2}`, e: ErrDuplicateKey},
		{in: `{a: 1, "a": 2}`, e: ErrDuplicateKey},
		{in: `hello`, e: ErrParse},
		{in: `[a]`, e: ErrParse},
	}
	for _, et := range errTests {
		_, err := Parse([]byte(et.in))
		if err == nil {
			t.Errorf("%q: no error", et.in)
			continue
		}
		if !errors.Is(err, et.e) {
			t.Errorf("%q: error %v, want %v", et.in, err, et.e)
		}
	}
}

// Duplicate keys unwrap to ErrParse too.
func TestParseDuplicateKeyIsParseErr(t *testing.T) {
	_, err := Parse([]byte(`{"a": 1, "a": 2}`))
	if !errors.Is(err, ErrParse) {
		t.Errorf("error %v does not unwrap to ErrParse", err)
	}
}

func TestParseDialectGates(t *testing.T) {
	gateTests := []struct {
		in   string
		opts []ParseOption
	}{
		// strict JSON rejects every JSON5 form
		{in: `{a: 1}`, opts: []ParseOption{ParseJSON()}},
		{in: `'x'`, opts: []ParseOption{ParseJSON()}},
		{in: `0x11`, opts: []ParseOption{ParseJSON()}},
		{in: `+1`, opts: []ParseOption{ParseJSON()}},
		{in: `.5`, opts: []ParseOption{ParseJSON()}},
		{in: `5.`, opts: []ParseOption{ParseJSON()}},
		{in: `NaN`, opts: []ParseOption{ParseJSON()}},
		{in: `Infinity`, opts: []ParseOption{ParseJSON()}},
		{in: `[1,]`, opts: []ParseOption{ParseJSON()}},
		{in: `{"a":1,}`, opts: []ParseOption{ParseJSON()}},
		{in: "[1] // c", opts: []ParseOption{ParseJSON()}},
		{in: "[1] /* c */", opts: []ParseOption{ParseJSON()}},
		{in: "# c\n[1]", opts: []ParseOption{ParseJSON()}},
		// JSONC adds comments and trailing commas, nothing else
		{in: `{a: 1}`, opts: []ParseOption{ParseJSONC()}},
		{in: `'x'`, opts: []ParseOption{ParseJSONC()}},
		{in: `0x11`, opts: []ParseOption{ParseJSONC()}},
		{in: `NaN`, opts: []ParseOption{ParseJSONC()}},
		{in: "# c\n[1]", opts: []ParseOption{ParseJSONC()}},
	}
	for _, gt := range gateTests {
		if _, err := Parse([]byte(gt.in), gt.opts...); err == nil {
			t.Errorf("%q: accepted", gt.in)
		}
	}

	okTests := []struct {
		in   string
		opts []ParseOption
	}{
		{in: "[1, 2,] // c", opts: []ParseOption{ParseJSONC()}},
		{in: "/* c */ {\"a\": 1,}", opts: []ParseOption{ParseJSONC()}},
		{in: `[1,]`, opts: []ParseOption{ParseJSON5()}},
	}
	for _, ot := range okTests {
		if _, err := Parse([]byte(ot.in), ot.opts...); err != nil {
			t.Errorf("%q: %v", ot.in, err)
		}
	}
}

func TestParsePositions(t *testing.T) {
	positions := map[*ir.Node]*token.Pos{}
	n, err := Parse([]byte("{\n  \"a\": [1, 2]\n}"), ParsePositions(positions))
	if err != nil {
		t.Fatal(err)
	}
	rp, ok := positions[n]
	if !ok {
		t.Fatal("no position for root")
	}
	if rp.I != 0 {
		t.Errorf("root at %s", rp)
	}
	kp, ok := positions[n.Fields[0]]
	if !ok {
		t.Fatal("no position for key")
	}
	if line, col := kp.LineCol(); kp.I != 4 || line != 1 || col != 2 {
		t.Errorf("key at %s", kp)
	}
	av := n.Values[0]
	if p, ok := positions[av.Values[1]]; !ok || p.I != 13 {
		t.Errorf("a[1] at %v", p)
	}
}

func TestParseFormatOption(t *testing.T) {
	if _, err := Parse([]byte(`{a: 1}`), ParseFormat(format.JSONFormat)); err == nil {
		t.Errorf("json accepted an identifier key")
	}
	if _, err := Parse([]byte(`{a: 1}`), ParseFormat(format.JSON5Format)); err != nil {
		t.Errorf("json5 rejected an identifier key: %v", err)
	}
}

func TestGetPositions(t *testing.T) {
	m := map[*ir.Node]*token.Pos{}
	if got := GetPositions(ParseJSON(), ParsePositions(m)); got == nil {
		t.Errorf("positions lost")
	}
	if got := GetPositions(ParseJSON()); got != nil {
		t.Errorf("unexpected positions %v", got)
	}
}
