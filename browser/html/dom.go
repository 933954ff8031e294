package html

// NodeKind discriminates a DOM Node.
type NodeKind uint8

const (
	NodeElement NodeKind = iota
	NodeText
	NodeComment
	NodeDocument
)

// Node is one DOM node (spec §3). Element nodes carry a tag name and
// attributes; text/comment nodes carry their content in Text.
type Node struct {
	Kind     NodeKind
	Tag      string
	Attrs    map[string]string
	Text     string
	Children []*Node
	Parent   *Node
}

// Attr returns the named attribute's value and whether it was present.
func (n *Node) Attr(name string) (string, bool) {
	if n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

func (n *Node) appendChild(c *Node) {
	c.Parent = n
	n.Children = append(n.Children, c)
}

// Document is the parsed HTML document: a root NodeDocument whose children
// are (implicitly inserted) html > head/body.
type Document struct {
	Root *Node
}

// Find returns the first descendant element with the given tag name, in
// document order, or nil.
func (d *Document) Find(tag string) *Node {
	return findFirst(d.Root, tag)
}

// FindAll returns every descendant element with the given tag name, in
// document order.
func (d *Document) FindAll(tag string) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Kind == NodeElement && n.Tag == tag {
			out = append(out, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(d.Root)
	return out
}

func findFirst(n *Node, tag string) *Node {
	if n.Kind == NodeElement && n.Tag == tag {
		return n
	}
	for _, c := range n.Children {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// TextContent concatenates all descendant text node content, in document
// order.
func TextContent(n *Node) string {
	if n.Kind == NodeText {
		return n.Text
	}
	var out string
	for _, c := range n.Children {
		out += TextContent(c)
	}
	return out
}
