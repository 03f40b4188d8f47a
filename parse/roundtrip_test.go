package parse

import (
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/GraiaProject/kayaku/encode"
	"github.com/GraiaProject/kayaku/format"
)

// TestRoundTripCorpus pushes every document under testdata through a
// parse and encode cycle and expects the input back byte for byte.
// The extension of each archive entry picks the dialect.
func TestRoundTripCorpus(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(archives) == 0 {
		t.Fatal("no corpus archives under testdata")
	}
	for _, name := range archives {
		ar, err := txtar.ParseFile(name)
		if err != nil {
			t.Fatal(err)
		}
		for _, file := range ar.Files {
			f, ferr := format.ParseFormat(filepath.Ext(file.Name))
			if ferr != nil {
				t.Errorf("%s: %s: %v", name, file.Name, ferr)
				continue
			}
			node, err := Parse(file.Data, ParseFormat(f))
			if err != nil {
				t.Errorf("%s: %s: %v", name, file.Name, err)
				continue
			}
			out, err := encode.String(node)
			if err != nil {
				t.Errorf("%s: %s: encode: %v", name, file.Name, err)
				continue
			}
			if out != string(file.Data) {
				t.Errorf("%s: %s: round trip drifted\n# in\n%s\n# out\n%s",
					name, file.Name, file.Data, out)
			}
		}
	}
}

// TestRoundTripCorpusStrict re-encodes the strict JSON corpus in
// checked mode; none of its spellings may trip a dialect error.
func TestRoundTripCorpusStrict(t *testing.T) {
	ar, err := txtar.ParseFile(filepath.Join("testdata", "json.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	for _, file := range ar.Files {
		node, err := Parse(file.Data, ParseJSON())
		if err != nil {
			t.Errorf("%s: %v", file.Name, err)
			continue
		}
		out, err := encode.String(node, encode.EncodeFormat(format.JSONFormat))
		if err != nil {
			t.Errorf("%s: checked encode: %v", file.Name, err)
			continue
		}
		if out != string(file.Data) {
			t.Errorf("%s: checked round trip drifted\n# in\n%s\n# out\n%s",
				file.Name, file.Data, out)
		}
	}
}
