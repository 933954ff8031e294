// Package browser wires the loader, HTML/Gemini parsers, CSS cascade,
// layout engine, paint walker, and scroll controller into the synchronous
// fetch→parse→style→layout→paint pipeline Navigate runs per spec §2's data
// flow: URL → loader → bytes → (tokenizer→tree builder→DOM) or
// (gemini.Parse) → (cascade→styles) → (layout→box tree) → paint → backend.
package browser

import (
	"fmt"

	"github.com/AndrewAltimit/oasis-os-sub003/backend"
	"github.com/AndrewAltimit/oasis-os-sub003/browser/cache"
	"github.com/AndrewAltimit/oasis-os-sub003/browser/css"
	"github.com/AndrewAltimit/oasis-os-sub003/browser/gemini"
	"github.com/AndrewAltimit/oasis-os-sub003/browser/html"
	"github.com/AndrewAltimit/oasis-os-sub003/browser/layout"
	"github.com/AndrewAltimit/oasis-os-sub003/browser/loader"
	"github.com/AndrewAltimit/oasis-os-sub003/browser/paint"
	"github.com/AndrewAltimit/oasis-os-sub003/browser/scroll"
	"github.com/AndrewAltimit/oasis-os-sub003/browser/urlpkg"
	"github.com/AndrewAltimit/oasis-os-sub003/nettls"
	"github.com/AndrewAltimit/oasis-os-sub003/vfs"
)

// DefaultCacheBytes bounds the loader's response cache.
const DefaultCacheBytes = 4 * 1024 * 1024

// Page is the result of a successful Navigate: a styled, laid-out, and
// paintable document, plus its resolved URL and scroll state.
type Page struct {
	URL      urlpkg.URL
	HTML     *html.Document
	Gemini   *gemini.Document
	Sheet    css.Stylesheet
	Layout   *layout.Box
	Scroll   *scroll.State
	LinkMap  []paint.Link
}

// Browser is the top-level embedded browser: one loader, one layout
// engine bound to a backend, and the currently navigated Page (if any).
type Browser struct {
	Loader *loader.Loader
	Engine *layout.Engine
	Page   *Page
}

// New builds a Browser fetching through fs/tls (sandboxOnly forces every
// fetch through the VFS per spec §4.6), laying out against be at the given
// viewport width.
func New(fs *vfs.FS, tls nettls.Provider, sandboxOnly bool, be backend.Backend, viewportW int) *Browser {
	l := loader.New(fs, tls, sandboxOnly)
	l.Cache = cache.New(DefaultCacheBytes)
	return &Browser{Loader: l, Engine: layout.NewEngine(be, viewportW)}
}

// Navigate fetches raw, parses it per its detected content type, builds a
// styled layout tree, and replaces b.Page. Per spec §7's error-recovery
// contract, a fetch or parse failure never propagates as an error: Navigate
// instead synthesizes a minimal HTML error page and returns nil, so the
// caller's "outer Result is Ok" even on failure.
func (b *Browser) Navigate(raw string) error {
	resp, err := b.Loader.Fetch(raw)
	if err != nil {
		return b.navigateErrorPage(raw, err)
	}

	u, parseErr := urlpkg.Parse(raw, nil)
	if parseErr != nil {
		u = urlpkg.URL{}
	}

	page := &Page{URL: u, Scroll: &scroll.State{Smooth: true}}

	switch resp.ContentType {
	case loader.ContentGemini:
		doc := gemini.Parse(string(resp.Body))
		page.Gemini = &doc
		page.HTML = geminiToHTML(doc)
	default:
		page.HTML = html.Parse(string(resp.Body))
	}

	page.Sheet = collectStylesheet(page.HTML)
	page.Layout = b.Engine.Layout(page.HTML, page.Sheet, css.MatchContext{})
	page.Scroll.ContentHeight = float64(page.Layout.H)
	b.Page = page
	return nil
}

// navigateErrorPage replaces b.Page with a synthesized HTML error document
// describing err, matching spec §7: the outer operation still succeeds.
func (b *Browser) navigateErrorPage(raw string, err error) error {
	body := fmt.Sprintf("<html><body><h1>Could not load page</h1><p>%s</p><p>%s</p></body></html>", raw, err.Error())
	doc := html.Parse(body)
	page := &Page{HTML: doc, Scroll: &scroll.State{Smooth: true}}
	page.Sheet = collectStylesheet(doc)
	page.Layout = b.Engine.Layout(doc, page.Sheet, css.MatchContext{})
	page.Scroll.ContentHeight = float64(page.Layout.H)
	b.Page = page
	return nil
}

// collectStylesheet parses every <style> element's text content into one
// merged Stylesheet (author origin, document order preserved so the
// cascade's source-order tiebreak stays correct).
func collectStylesheet(doc *html.Document) css.Stylesheet {
	var sheet css.Stylesheet
	for _, styleEl := range doc.FindAll("style") {
		parsed := css.Parse(html.TextContent(styleEl))
		for _, r := range parsed.Rules {
			r.SourceOrder = len(sheet.Rules)
			sheet.Rules = append(sheet.Rules, r)
		}
	}
	return sheet
}

// geminiToHTML renders a gemtext document as an equivalent HTML tree so
// the rest of the pipeline (style/layout/paint) can treat both document
// formats uniformly.
func geminiToHTML(doc gemini.Document) *html.Document {
	var b []byte
	b = append(b, "<html><body>"...)
	for _, line := range doc.Lines {
		switch line.Kind {
		case gemini.LineHeading1:
			b = append(b, "<h1>"+escapeHTML(line.Text)+"</h1>"...)
		case gemini.LineHeading2:
			b = append(b, "<h2>"+escapeHTML(line.Text)+"</h2>"...)
		case gemini.LineHeading3:
			b = append(b, "<h3>"+escapeHTML(line.Text)+"</h3>"...)
		case gemini.LineLink:
			b = append(b, `<p><a href="`+escapeHTML(line.LinkURL)+`">`+escapeHTML(line.Text)+"</a></p>"...)
		case gemini.LineListItem:
			b = append(b, "<li>"+escapeHTML(line.Text)+"</li>"...)
		case gemini.LineQuote:
			b = append(b, "<blockquote>"+escapeHTML(line.Text)+"</blockquote>"...)
		case gemini.LinePreformatted:
			b = append(b, "<pre>"+escapeHTML(line.Text)+"</pre>"...)
		case gemini.LineEmpty:
			b = append(b, "<br>"...)
		default:
			b = append(b, "<p>"+escapeHTML(line.Text)+"</p>"...)
		}
	}
	b = append(b, "</body></html>"...)
	return html.Parse(string(b))
}

func escapeHTML(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		case '&':
			out = append(out, "&amp;"...)
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}
