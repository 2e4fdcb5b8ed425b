package lsp

import (
	"path/filepath"
	"testing"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type notification struct {
	method string
	params protocol.PublishDiagnosticsParams
}

func newTestContext(t *testing.T, got *[]notification) *glsp.Context {
	t.Helper()
	return &glsp.Context{
		Notify: func(method string, params any) {
			p, ok := params.(protocol.PublishDiagnosticsParams)
			if !ok {
				t.Fatalf("unexpected params %T for %s", params, method)
			}
			*got = append(*got, notification{method: method, params: p})
		},
	}
}

func TestLineAt(t *testing.T) {
	content := []byte("one\rtwo\r\nthree\nfour")
	tests := []struct {
		line int
		want string
		ok   bool
	}{
		{1, "one", true},
		{2, "two", true},
		{3, "three", true},
		{4, "four", true},
		{5, "", false},
		{0, "", false},
	}

	for _, tt := range tests {
		got, ok := lineAt(content, tt.line)
		if ok != tt.ok || string(got) != tt.want {
			t.Errorf("lineAt(%d) = %q, %v, want %q, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    protocol.Position
		message string
	}{
		{"mismatched end tag", "<a>\n<b></c>\n</a>", protocol.Position{Line: 1, Character: 5}, "end tag </c> does not match start tag <b>"},
		{"wide rune before error", "<a>\U0001F600</b>", protocol.Position{Line: 0, Character: 7}, "end tag </b> does not match start tag <a>"},
		{"invalid name", "<1/>", protocol.Position{Line: 0, Character: 1}, "expected name"},
		{"carriage return lines", "<a>\r<b>\U0001F600</c>\r</a>", protocol.Position{Line: 1, Character: 7}, "end tag </c> does not match start tag <b>"},
		{"crlf lines", "<a>\r\n<b>\U0001F600</c>\r\n</a>", protocol.Position{Line: 1, Character: 7}, "end tag </c> does not match start tag <b>"},
	}

	ws := NewWorkspace(t.TempDir())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ws.UpdateFile("doc.xml", []byte(tt.content))
			diags := Diagnostics(f.Content, f.ParseErr)
			if len(diags) != 1 {
				t.Fatalf("got %d diagnostics, want 1", len(diags))
			}
			d := diags[0]
			if d.Range.Start != tt.want {
				t.Errorf("start = %+v, want %+v", d.Range.Start, tt.want)
			}
			if d.Range.End.Character != tt.want.Character+1 {
				t.Errorf("end = %+v", d.Range.End)
			}
			if d.Message != tt.message {
				t.Errorf("Message = %q, want %q", d.Message, tt.message)
			}
			if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
				t.Errorf("Severity = %v, want error", d.Severity)
			}
		})
	}
}

func TestDiagnosticsValidDocument(t *testing.T) {
	diags := Diagnostics([]byte("<a/>"), nil)
	if diags == nil || len(diags) != 0 {
		t.Errorf("Diagnostics = %#v, want empty non-nil list", diags)
	}
}

func TestServerPublishesDiagnostics(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "doc.xml")
	uri := pathToURI(path)

	ls := NewServer("test")
	if _, err := ls.initialize(&glsp.Context{}, &protocol.InitializeParams{RootPath: &root}); err != nil {
		t.Fatalf("initialize error: %v", err)
	}

	var got []notification
	ctx := newTestContext(t, &got)

	err := ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "xml", Text: "<a><b></a>"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || len(got[0].params.Diagnostics) != 1 {
		t.Fatalf("didOpen notifications = %+v, want one diagnostic", got)
	}
	if got[0].method != protocol.ServerTextDocumentPublishDiagnostics || got[0].params.URI != uri {
		t.Errorf("notification = %s %s", got[0].method, got[0].params.URI)
	}
	if !ls.workspace.IsOpen(path) {
		t.Error("document not marked open")
	}

	err = ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "<a><b/></a>"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || len(got[1].params.Diagnostics) != 0 {
		t.Fatalf("didChange notifications = %+v, want empty diagnostics", got)
	}

	text := "<a>"
	err = ls.textDocumentDidSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Text:         &text,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || len(got[2].params.Diagnostics) != 1 {
		t.Fatalf("didSave notifications = %+v, want one diagnostic", got)
	}

	err = ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 4 || len(got[3].params.Diagnostics) != 0 {
		t.Fatalf("didClose notifications = %+v, want cleared diagnostics", got)
	}
	if ls.workspace.GetFile(path) != nil {
		t.Error("closed document without a file on disk is still known")
	}
}

func TestURIRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a b.xml")
	got, err := uriToPath(pathToURI(path))
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Errorf("uriToPath(pathToURI(%q)) = %q", path, got)
	}
}
