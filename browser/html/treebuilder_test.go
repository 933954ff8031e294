package html

import "testing"

func TestParseBuildsImpliedHtmlHeadBody(t *testing.T) {
	doc := Parse("<p>hi</p>")
	htmlEl := doc.Root.Children[0]
	if htmlEl.Tag != "html" {
		t.Fatalf("root child tag = %q, want html", htmlEl.Tag)
	}
	if len(htmlEl.Children) != 2 || htmlEl.Children[0].Tag != "head" || htmlEl.Children[1].Tag != "body" {
		t.Fatalf("html children = %+v, want [head body]", htmlEl.Children)
	}
}

func TestParseMergesExplicitHtmlHeadBody(t *testing.T) {
	doc := Parse("<html><head></head><body><p>hi</p></body></html>")
	if len(doc.Root.Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(doc.Root.Children))
	}
	htmlEl := doc.Root.Children[0]
	if htmlEl.Tag != "html" {
		t.Fatalf("root child tag = %q, want html", htmlEl.Tag)
	}
	if len(htmlEl.Children) != 2 || htmlEl.Children[0].Tag != "head" || htmlEl.Children[1].Tag != "body" {
		t.Fatalf("html children = %+v, want [head body]", htmlEl.Children)
	}
	body := htmlEl.Children[1]
	ps := doc.FindAll("p")
	if len(ps) != 1 {
		t.Fatalf("got %d <p> elements, want 1", len(ps))
	}
	if ps[0].Parent != body {
		t.Fatalf("<p> parent = %+v, want body", ps[0].Parent)
	}
}

func TestParseMergesAttributesOntoImpliedHtml(t *testing.T) {
	doc := Parse(`<html lang="en"><body class="x"><p>hi</p></body></html>`)
	htmlEl := doc.Root.Children[0]
	if lang, ok := htmlEl.Attr("lang"); !ok || lang != "en" {
		t.Errorf("html lang = %q, ok=%v", lang, ok)
	}
	body := htmlEl.Children[1]
	if class, ok := body.Attr("class"); !ok || class != "x" {
		t.Errorf("body class = %q, ok=%v", class, ok)
	}
}

func TestParseNestsElementsAndText(t *testing.T) {
	doc := Parse("<div><p>hello <b>world</b></p></div>")
	div := doc.Find("div")
	if div == nil {
		t.Fatal("div not found")
	}
	p := doc.Find("p")
	if p == nil || p.Parent != div {
		t.Fatalf("p = %+v, parent mismatch", p)
	}
	if got := TextContent(div); got != "hello world" {
		t.Errorf("TextContent = %q, want %q", got, "hello world")
	}
}

func TestParseAutoClosesUnclosedP(t *testing.T) {
	doc := Parse("<p>one<p>two")
	ps := doc.FindAll("p")
	if len(ps) != 2 {
		t.Fatalf("got %d <p> elements, want 2", len(ps))
	}
	if TextContent(ps[0]) != "one" || TextContent(ps[1]) != "two" {
		t.Errorf("p contents = %q, %q", TextContent(ps[0]), TextContent(ps[1]))
	}
	// the second <p> must not be nested inside the first
	for _, c := range ps[0].Children {
		if c.Kind == NodeElement && c.Tag == "p" {
			t.Fatalf("second <p> nested inside first")
		}
	}
}

func TestParseAutoClosesPOnBlockOpen(t *testing.T) {
	doc := Parse("<p>text<div>block</div>")
	p := doc.Find("p")
	div := doc.Find("div")
	if div.Parent == p {
		t.Fatalf("<div> should not be nested inside the unclosed <p>")
	}
}

func TestParseAutoClosesPreviousLiInSameList(t *testing.T) {
	doc := Parse("<ul><li>a<li>b<li>c</ul>")
	lis := doc.FindAll("li")
	if len(lis) != 3 {
		t.Fatalf("got %d <li> elements, want 3", len(lis))
	}
	for i, li := range lis {
		for _, c := range li.Children {
			if c.Kind == NodeElement && c.Tag == "li" {
				t.Fatalf("li %d has nested li child", i)
			}
		}
	}
	if TextContent(lis[0]) != "a" || TextContent(lis[1]) != "b" || TextContent(lis[2]) != "c" {
		t.Errorf("li text = %q %q %q", TextContent(lis[0]), TextContent(lis[1]), TextContent(lis[2]))
	}
}

func TestParseSelfClosingVoidElement(t *testing.T) {
	doc := Parse("<p>line<br>next</p>")
	p := doc.Find("p")
	var tags []string
	for _, c := range p.Children {
		if c.Kind == NodeElement {
			tags = append(tags, c.Tag)
		}
	}
	if len(tags) != 1 || tags[0] != "br" {
		t.Errorf("p element children = %v, want [br]", tags)
	}
}

func TestParseDecodesAttributeEntities(t *testing.T) {
	doc := Parse(`<a href="/x?a=1&amp;b=2">link</a>`)
	a := doc.Find("a")
	href, ok := a.Attr("href")
	if !ok || href != "/x?a=1&b=2" {
		t.Errorf("href = %q, ok=%v", href, ok)
	}
}

func TestParseNeverPanicsOnMalformedMarkup(t *testing.T) {
	inputs := []string{
		"<",
		"<<<<",
		"<div",
		"</>",
		"<div></span></div>",
		"<script>var x = '<div>';</script><p>after",
		"",
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Parse(%q) panicked: %v", in, r)
				}
			}()
			Parse(in)
		}()
	}
}

func TestParseCommentsAndDoctypeDoNotBreakTree(t *testing.T) {
	doc := Parse("<!DOCTYPE html><!-- hi --><p>text</p>")
	p := doc.Find("p")
	if p == nil || TextContent(p) != "text" {
		t.Fatalf("p = %+v", p)
	}
}
