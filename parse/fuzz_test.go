package parse

import (
	"bytes"
	"testing"

	"github.com/GraiaProject/kayaku/encode"
)

// FuzzParse checks that any document the parser accepts encodes back
// to its exact input, and that the result parses again.
func FuzzParse(f *testing.F) {
	seeds := []string{
		`{"a": 1.50, b: [true, null,], 'c': 0x1A} // done`,
		"# cfg\n{\n  host: \"x\", /* port */ port: 8080,\n}\n",
		`[.5, 5., +1, -Infinity, NaN, 1e5]`,
		"'one \\\ntwo'",
		"{ /* why */ }",
		`""`,
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}
	f.Fuzz(func(t *testing.T, d []byte) {
		n, err := Parse(d)
		if err != nil {
			return
		}
		out := encode.MustString(n)
		if !bytes.Equal(d, []byte(out)) {
			t.Fatalf("# doc\n%q\n# round trip\n%q", d, out)
		}
		if _, err := Parse([]byte(out)); err != nil {
			t.Fatalf("# doc\n%q\n# reparse: %v", out, err)
		}
	})
}
