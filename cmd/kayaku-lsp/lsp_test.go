package main

import (
	"context"
	"strings"
	"testing"

	"github.com/GraiaProject/kayaku/format"
	"github.com/GraiaProject/kayaku/parse"
	"github.com/google/go-cmp/cmp"
	"go.lsp.dev/protocol"
)

type docFormatTest struct {
	uri  string
	want format.Format
}

var docFormatTests = []docFormatTest{
	{uri: "file:///etc/app/config.json", want: format.JSONFormat},
	{uri: "file:///home/u/settings.jsonc", want: format.JSONCFormat},
	{uri: "file:///srv/conf.json5", want: format.JSON5Format},
	{uri: "file:///srv/CONF.JSON", want: format.JSONFormat},
	{uri: "file:///srv/notes.txt", want: format.JSON5Format},
	{uri: "file:///srv/noext", want: format.JSON5Format},
}

func TestDocFormat(t *testing.T) {
	for i := range docFormatTests {
		dt := &docFormatTests[i]
		if got := docFormat(dt.uri); got != dt.want {
			t.Errorf("docFormat(%q) = %s, want %s", dt.uri, got, dt.want)
		}
	}
}

type errPosTest struct {
	src  string
	f    format.Format
	line int
	col  int
}

var errPosTests = []errPosTest{
	// tokenizer failure, carries a typed position
	{src: `["abc`, f: format.JSON5Format, line: 0, col: 1},
	// structural failures render their position into the message
	{src: `{"a": }`, f: format.JSONFormat, line: 0, col: 6},
	{src: "{\n  \"a\": [1,\n}", f: format.JSONCFormat, line: 2, col: 0},
}

func TestErrorPosition(t *testing.T) {
	for i := range errPosTests {
		et := &errPosTests[i]
		_, err := parse.Parse([]byte(et.src), parse.ParseFormat(et.f))
		if err == nil {
			t.Errorf("%d: parse of %q succeeded", i, et.src)
			continue
		}
		line, col, ok := errorPosition(err)
		if !ok {
			t.Errorf("%d: no position in %q", i, err.Error())
			continue
		}
		if line != et.line || col != et.col {
			t.Errorf("%d: position (%d, %d), want (%d, %d)", i, line, col, et.line, et.col)
		}
	}
}

func TestDiagnose(t *testing.T) {
	s := NewServer()
	ctx := context.Background()
	uri := protocol.DocumentURI("file:///broken.json")
	s.DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: `{"a": }`},
	})

	doc := s.docs.get(string(uri))
	if doc == nil {
		t.Fatal("document not stored")
	}
	if doc.node != nil {
		t.Error("broken document has a tree")
	}
	ds := diagnose(doc)
	if len(ds) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(ds))
	}
	d := &ds[0]
	if d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("severity %v", d.Severity)
	}
	if d.Source != "kayaku" {
		t.Errorf("source %q", d.Source)
	}
	if d.Range.Start.Line != 0 || d.Range.Start.Character != 6 {
		t.Errorf("range starts at (%d, %d), want (0, 6)", d.Range.Start.Line, d.Range.Start.Character)
	}

	// a fixed document diagnoses clean
	s.DidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{
			{Text: `{"a": 1}`},
		},
	})
	doc = s.docs.get(string(uri))
	if doc.node == nil {
		t.Fatal("fixed document has no tree")
	}
	if ds := diagnose(doc); len(ds) != 0 {
		t.Errorf("fixed document still diagnoses %v", ds)
	}
}

func TestDidChangeIncremental(t *testing.T) {
	s := NewServer()
	ctx := context.Background()
	uri := protocol.DocumentURI("file:///app.json5")
	s.DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: "{a: 1}"},
	})
	s.DidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{
			{
				Range: protocol.Range{
					Start: protocol.Position{Line: 0, Character: 4},
					End:   protocol.Position{Line: 0, Character: 5},
				},
				Text: "42",
			},
		},
	})

	doc := s.docs.get(string(uri))
	if doc == nil {
		t.Fatal("document missing after change")
	}
	if doc.content != "{a: 42}" {
		t.Errorf("content %q, want %q", doc.content, "{a: 42}")
	}
	if doc.version != 2 {
		t.Errorf("version %d, want 2", doc.version)
	}
	if doc.node == nil || doc.node.Get("a") == nil || doc.node.Get("a").Int64 != 42 {
		t.Error("tree not reparsed after change")
	}

	s.DidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if s.docs.get(string(uri)) != nil {
		t.Error("document survived close")
	}
}

func TestFormatting(t *testing.T) {
	s := NewServer()
	ctx := context.Background()
	uri := protocol.DocumentURI("file:///svc.jsonc")
	s.DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: `{"a":1,"b":[1,2]}`},
	})

	params := &protocol.DocumentFormattingParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Options:      protocol.FormattingOptions{TabSize: 2},
	}
	edits, err := s.Formatting(ctx, params)
	if err != nil {
		t.Fatal(err)
	}
	if len(edits) != 1 {
		t.Fatalf("got %d edits, want 1", len(edits))
	}
	want := "{\n  \"a\": 1,\n  \"b\": [\n    1,\n    2\n  ]\n}\n"
	if edits[0].NewText != want {
		t.Errorf("formatted to %q, want %q", edits[0].NewText, want)
	}
	if edits[0].Range.Start.Line != 0 || edits[0].Range.End.Line != 1 {
		t.Errorf("edit range %v", edits[0].Range)
	}

	// a second pass over the formatted text is a no-op
	s.DidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []protocol.TextDocumentContentChangeEvent{
			{Text: want},
		},
	})
	edits, err = s.Formatting(ctx, params)
	if err != nil {
		t.Fatal(err)
	}
	if len(edits) != 0 {
		t.Errorf("reformat produced %d edits, want none", len(edits))
	}
}

func TestHover(t *testing.T) {
	s := NewServer()
	ctx := context.Background()
	uri := protocol.DocumentURI("file:///h.json")
	s.DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, Version: 1, Text: "{\n  \"port\": 8080\n}"},
	})

	hov, err := s.Hover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 1, Character: 3},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if hov == nil {
		t.Fatal("no hover over key")
	}
	if !strings.Contains(hov.Contents.Value, "**Type:** string") {
		t.Errorf("key hover %q", hov.Contents.Value)
	}
	if !strings.Contains(hov.Contents.Value, "**Path:** `port`") {
		t.Errorf("key hover lacks path: %q", hov.Contents.Value)
	}

	hov, err = s.Hover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: 1, Character: 9},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if hov == nil {
		t.Fatal("no hover over value")
	}
	if !strings.Contains(hov.Contents.Value, "**Value:** `8080`") {
		t.Errorf("value hover %q", hov.Contents.Value)
	}
}

type semTokenTest struct {
	content string
	f       format.Format
	want    []uint32
}

var semTokenTests = []semTokenTest{
	{
		content: "{\n  // port\n  \"a\": 1\n}",
		f:       format.JSONCFormat,
		want: []uint32{
			0, 0, 1, semOperator, 0,
			1, 2, 7, semComment, 0,
			1, 2, 3, semProperty, 0,
			0, 3, 1, semOperator, 0,
			0, 2, 1, semNumber, 0,
			1, 0, 1, semOperator, 0,
		},
	},
	{
		// block comment spanning lines is emitted line by line
		content: "[1, /* x\ny */ 2]",
		f:       format.JSON5Format,
		want: []uint32{
			0, 0, 1, semOperator, 0,
			0, 1, 1, semNumber, 0,
			0, 1, 1, semOperator, 0,
			0, 2, 4, semComment, 0,
			1, 0, 4, semComment, 0,
			0, 5, 1, semNumber, 0,
			0, 1, 1, semOperator, 0,
		},
	},
	{
		content: "{port: true}",
		f:       format.JSON5Format,
		want: []uint32{
			0, 0, 1, semOperator, 0,
			0, 1, 4, semProperty, 0,
			0, 4, 1, semOperator, 0,
			0, 2, 4, semKeyword, 0,
			0, 4, 1, semOperator, 0,
		},
	},
}

func TestSemanticTokenData(t *testing.T) {
	for i := range semTokenTests {
		st := &semTokenTests[i]
		doc := &document{content: st.content, format: st.f}
		got := semanticTokenData(doc)
		if d := cmp.Diff(st.want, got); d != "" {
			t.Errorf("%d: token data (-want +got):\n%s", i, d)
		}
	}
}
