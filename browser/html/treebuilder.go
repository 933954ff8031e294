package html

var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "header": true,
	"footer": true, "nav": true, "aside": true, "main": true, "ul": true,
	"ol": true, "li": true, "table": true, "blockquote": true, "pre": true,
	"form": true, "fieldset": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "hr": true,
}

// Parse tokenizes src and builds a Document, matching spec §4.7: an open-
// element stack with an implicit insertion mode sufficient for the
// "in body" subset, implied html/head/body, <p> auto-close on block open,
// <li> auto-close of a previous <li> in the same list, and a lookup-table
// fallback (blockElements) for unknown tags.
func Parse(src string) *Document {
	root := &Node{Kind: NodeDocument}
	htmlEl := &Node{Kind: NodeElement, Tag: "html"}
	head := &Node{Kind: NodeElement, Tag: "head"}
	body := &Node{Kind: NodeElement, Tag: "body"}
	root.appendChild(htmlEl)
	htmlEl.appendChild(head)
	htmlEl.appendChild(body)

	b := &builder{tok: NewTokenizer(src), stack: []*Node{body}, htmlEl: htmlEl, head: head, body: body}
	b.run()

	return &Document{Root: root}
}

type builder struct {
	tok       *Tokenizer
	stack     []*Node // open-element stack; stack[0] is always the implied body, with head pushed above it while in head
	listStack []*Node // currently open <ul>/<ol> ancestors, for <li> auto-close

	// the pre-created implied nodes; an explicit <html>/<head>/<body> start
	// tag merges onto these instead of creating a sibling duplicate.
	htmlEl, head, body *Node
}

func (b *builder) current() *Node { return b.stack[len(b.stack)-1] }

func (b *builder) push(n *Node) {
	b.current().appendChild(n)
	b.stack = append(b.stack, n)
}

func (b *builder) pop() {
	if len(b.stack) > 1 {
		b.stack = b.stack[:len(b.stack)-1]
	}
}

// popUntil pops the stack until (and including) the nearest open element
// named tag, if any is open; a no-op otherwise.
func (b *builder) popUntil(tag string) {
	for i := len(b.stack) - 1; i >= 1; i-- {
		if b.stack[i].Tag == tag {
			b.stack = b.stack[:i]
			return
		}
	}
}

func (b *builder) hasOpen(tag string) bool {
	for i := len(b.stack) - 1; i >= 1; i-- {
		if b.stack[i].Tag == tag {
			return true
		}
	}
	return false
}

func (b *builder) run() {
	const maxTokens = 10_000_000 // backstop: never loop forever regardless of input
	for i := 0; i < maxTokens; i++ {
		tok := b.tok.Next()
		switch tok.Kind {
		case TokenEOF:
			return
		case TokenText:
			b.current().appendChild(&Node{Kind: NodeText, Text: tok.Text})
		case TokenComment:
			b.current().appendChild(&Node{Kind: NodeComment, Text: tok.Text})
		case TokenDoctype:
			// Doctype carries no DOM representation in this subset.
		case TokenStartTag:
			b.startTag(tok)
		case TokenEndTag:
			b.endTag(tok)
		}
	}
}

// startTag dispatches an explicit <html>/<head>/<body> onto the pre-created
// implied nodes instead of creating a sibling duplicate (spec §8 scenario 2:
// "<html><head></head><body><p>hi</p></body></html>" must produce the same
// tree as the implied form, not a nested second html/body).
func (b *builder) startTag(tok Token) {
	switch tok.Name {
	case "html":
		mergeAttrs(b.htmlEl, tok.Attrs)
		return
	case "head":
		mergeAttrs(b.head, tok.Attrs)
		if !tok.SelfClosing {
			b.pushExisting(b.head)
		}
		return
	case "body":
		mergeAttrs(b.body, tok.Attrs)
		if !tok.SelfClosing {
			b.pushExisting(b.body)
		}
		return
	}

	if tok.Name == "p" {
		b.popUntil("p")
	}
	if tok.Name == "li" {
		b.popUntil("li")
	}
	if blockElements[tok.Name] && b.hasOpen("p") {
		b.popUntil("p")
	}

	attrs := make(map[string]string, len(tok.Attrs))
	for _, a := range tok.Attrs {
		attrs[a.Name] = a.Value
	}
	el := &Node{Kind: NodeElement, Tag: tok.Name, Attrs: attrs}

	if tok.SelfClosing {
		b.current().appendChild(el)
		return
	}
	b.push(el)
}

// pushExisting opens n as the current insertion point without reparenting
// it; used for html/head/body, which are already attached to the tree.
func (b *builder) pushExisting(n *Node) {
	b.stack = append(b.stack, n)
}

func mergeAttrs(n *Node, attrs []Attr) {
	if len(attrs) == 0 {
		return
	}
	if n.Attrs == nil {
		n.Attrs = make(map[string]string, len(attrs))
	}
	for _, a := range attrs {
		n.Attrs[a.Name] = a.Value
	}
}

func (b *builder) endTag(tok Token) {
	b.popUntil(tok.Name)
}
