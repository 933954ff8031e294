package gemini

import (
	"strings"
	"testing"
)

func TestParseClassifiesLines(t *testing.T) {
	src := "# Title\n## Sub\n### Sub2\nplain text\n=> gemini://x.y/ a link\n* item\n> quote\n\n"
	doc := Parse(src)
	want := []LineKind{LineHeading1, LineHeading2, LineHeading3, LineText, LineLink, LineListItem, LineQuote, LineEmpty}
	if len(doc.Lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(doc.Lines), len(want))
	}
	for i, k := range want {
		if doc.Lines[i].Kind != k {
			t.Errorf("line %d kind = %v, want %v", i, doc.Lines[i].Kind, k)
		}
	}
	if doc.Lines[4].LinkURL != "gemini://x.y/" || doc.Lines[4].Text != "a link" {
		t.Errorf("link line = %+v", doc.Lines[4])
	}
}

func TestParsePreformattedCapturesVerbatim(t *testing.T) {
	src := "```alt text\ncode line 1\n# not a heading\n```\nafter"
	doc := Parse(src)
	if doc.Lines[0].Kind != LinePreformatted || doc.Lines[0].Text != "code line 1" {
		t.Errorf("line 0 = %+v", doc.Lines[0])
	}
	if doc.Lines[0].AltText != "alt text" {
		t.Errorf("AltText = %q, want %q", doc.Lines[0].AltText, "alt text")
	}
	if doc.Lines[1].Kind != LinePreformatted || doc.Lines[1].Text != "# not a heading" {
		t.Errorf("line 1 = %+v", doc.Lines[1])
	}
	if doc.Lines[2].Kind != LineText || doc.Lines[2].Text != "after" {
		t.Errorf("line 2 = %+v", doc.Lines[2])
	}
}

func TestParseUnclosedPreformattedClosesAtEof(t *testing.T) {
	src := "```\nline one\nline two"
	doc := Parse(src) // must not panic or hang
	if len(doc.Lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(doc.Lines))
	}
	for _, l := range doc.Lines {
		if l.Kind != LinePreformatted {
			t.Errorf("line = %+v, want preformatted", l)
		}
	}
}

func TestCategorizeStatus(t *testing.T) {
	cases := map[int]StatusCategory{
		11: StatusInput, 20: StatusSuccess, 30: StatusRedirect,
		44: StatusTempFail, 51: StatusPermFail, 61: StatusClientCert, 99: StatusUnknown,
	}
	for status, want := range cases {
		if got := CategorizeStatus(status); got != want {
			t.Errorf("CategorizeStatus(%d) = %v, want %v", status, got, want)
		}
	}
}

func TestReadResponseParsesSuccessBody(t *testing.T) {
	raw := "20 text/gemini\r\n# Hello\nworld"
	resp, err := ReadResponse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadResponse: %v", err)
	}
	if resp.Status != 20 || resp.Meta != "text/gemini" {
		t.Errorf("Status/Meta = %d/%q", resp.Status, resp.Meta)
	}
	if string(resp.Body) != "# Hello\nworld" {
		t.Errorf("Body = %q", resp.Body)
	}
}

func TestReadResponseNonSuccessHasNoBody(t *testing.T) {
	raw := "51 not found\r\n"
	resp, err := ReadResponse(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadResponse: %v", err)
	}
	if resp.Status != 51 || len(resp.Body) != 0 {
		t.Errorf("resp = %+v, want empty body", resp)
	}
}

func TestRequestWritesUrlWithCrlf(t *testing.T) {
	var b strings.Builder
	if err := Request(&b, "gemini://example.com/"); err != nil {
		t.Fatalf("Request: %v", err)
	}
	if b.String() != "gemini://example.com/\r\n" {
		t.Errorf("Request wrote %q", b.String())
	}
}
