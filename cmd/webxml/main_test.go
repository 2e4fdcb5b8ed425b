package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseCmdFormats(t *testing.T) {
	path := writeDoc(t, "doc.xml", `<a b="1">x<c/></a>`)

	tests := []struct {
		format string
		want   string
	}{
		{"tree", "Document\n  Element a b=\"1\"\n    Text \"x\"\n    Element c\n"},
		{"xml", "<a b=\"1\">x<c/></a>\n"},
		{"lines", "document\t-\nelement\t/a\tb=\"1\"\ntext\t/a\t\"x\"\nelement\t/a/c\t-\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			got, err := run(t, newParseCmd(), "--format", tt.format, path)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseCmdUnknownFormat(t *testing.T) {
	path := writeDoc(t, "doc.xml", `<a/>`)
	if _, err := run(t, newParseCmd(), "--format", "yaml", path); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestCheckCmd(t *testing.T) {
	good := writeDoc(t, "good.xml", `<a/>`)
	bad := writeDoc(t, "bad.xml", `<a></b>`)

	got, err := run(t, newCheckCmd(), good, bad)
	if err == nil {
		t.Fatal("expected check to fail")
	}
	if !strings.Contains(got, good+": ok") {
		t.Errorf("output %q does not report %s as ok", got, good)
	}
	if !strings.Contains(got, bad+":1:6: invalid data: end tag </b> does not match start tag <a>") {
		t.Errorf("output %q does not report the error in %s", got, bad)
	}

	if _, err := run(t, newCheckCmd(), "--strict", good); err != nil {
		t.Errorf("strict check of a valid document failed: %v", err)
	}
}

func TestGrammarCheckCmd(t *testing.T) {
	if _, err := run(t, newGrammarCmd(), "check"); err != nil {
		t.Errorf("built-in grammar failed verification: %v", err)
	}

	path := writeDoc(t, "bad.ebnf", `Doc = word . word = Doc .`)
	got, err := run(t, newGrammarCmd(), "check", "--start", "Doc", path)
	if err == nil {
		t.Fatal("expected verification to fail")
	}
	if !strings.Contains(got, "reference to non-lexical production Doc") {
		t.Errorf("output = %q", got)
	}
}

func TestTokensCmd(t *testing.T) {
	path := writeDoc(t, "doc.xml", "<a>x</a>")

	got, err := run(t, newTokensCmd(), path)
	if err != nil {
		t.Fatal(err)
	}
	want := path + ":1:1 startTag \"<a>\"\n" +
		path + ":1:4 charData \"x\"\n" +
		path + ":1:5 endTag \"</a>\"\n" +
		path + ":1:9 EOF \"\"\n"
	if got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestGrammarMatchCmd(t *testing.T) {
	good := writeDoc(t, "good.xml", "<a>\n  <b/>\n</a>\n")
	bad := writeDoc(t, "bad.xml", `<a/><b/>`)

	got, err := run(t, newGrammarCmd(), "match", good, bad)
	if err == nil {
		t.Fatal("expected match to fail")
	}
	if !strings.Contains(got, good+": ok") {
		t.Errorf("output %q does not report %s as ok", got, good)
	}
	if !strings.Contains(got, bad+":1:5: unexpected emptyTag \"<b/>\"") {
		t.Errorf("output %q does not report the error in %s", got, bad)
	}
}
