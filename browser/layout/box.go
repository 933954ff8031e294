// Package layout builds and positions the box tree (spec §4.9): block and
// inline formatting contexts, floats, and a two-pass table column-width
// algorithm, all producing viewport-relative absolute boxes.
package layout

import (
	"github.com/AndrewAltimit/oasis-os-sub003/backend"
	"github.com/AndrewAltimit/oasis-os-sub003/browser/css"
	"github.com/AndrewAltimit/oasis-os-sub003/browser/html"
	"github.com/AndrewAltimit/oasis-os-sub003/types"
)

// BoxKind discriminates how a Box participates in layout.
type BoxKind uint8

const (
	BoxBlock BoxKind = iota
	BoxInline
	BoxInlineBlock
	BoxTable
	BoxTableRow
	BoxTableCell
	BoxAnonymous
)

// FloatSide records which side (if any) a box is floated to.
type FloatSide uint8

const (
	FloatNone FloatSide = iota
	FloatLeft
	FloatRight
)

// MaxImageDimension bounds the placeholder size painted for an <img> whose
// texture hasn't loaded yet.
const MaxImageDimension = 64

// Box is one node of the layout tree: a source DOM node plus its resolved
// geometry, in viewport-relative absolute pixels.
type Box struct {
	Node     *html.Node
	Style    *css.ComputedStyle
	Kind     BoxKind
	Float    FloatSide
	X, Y, W, H int

	Background  types.Color
	BorderWidth int
	BorderColor types.Color
	BorderRadius int

	Text      string // set on anonymous inline text boxes
	TextColor types.Color
	ImageTex  types.TextureId
	HasImage  bool

	Children []*Box
}

// activeFloat tracks one float still affecting line placement in its BFC.
type activeFloat struct {
	side   FloatSide
	right  int // x of the float's right edge (left floats) / left edge (right floats)
	bottom int
}

// bfc carries per-block-formatting-context float state down through
// recursive block layout.
type bfc struct {
	floats []activeFloat
}

// Engine lays out a styled DOM against a fixed viewport width, using
// backend for text metrics so layout stays consistent with paint (spec
// §4.9 step 3).
type Engine struct {
	Backend     backend.Backend
	ViewportW   int
	styles      map[*html.Node]*css.ComputedStyle
}

// NewEngine builds a layout engine bound to a backend for text metrics and
// a fixed viewport width.
func NewEngine(be backend.Backend, viewportW int) *Engine {
	return &Engine{Backend: be, ViewportW: viewportW}
}

// Layout builds and positions the box tree for doc under sheet. Returns a
// root Box with known content height; doesn't panic on an empty document,
// a zero-width viewport, or very tall content.
func (e *Engine) Layout(doc *html.Document, sheet css.Stylesheet, ctx css.MatchContext) *Box {
	e.styles = css.StyleTree(doc, sheet, ctx)

	body := findBody(doc.Root)
	root := &Box{Kind: BoxBlock, X: 0, Y: 0, W: e.ViewportW}
	if body == nil {
		return root
	}

	b := &bfc{}
	children, h := e.layoutBlockChildren(body, 0, 0, e.ViewportW, 16, b)
	root.Children = children
	root.H = h
	root.W = e.ViewportW
	return root
}

func findBody(root *html.Node) *html.Node {
	for _, htmlEl := range root.Children {
		if htmlEl.Kind == html.NodeElement && htmlEl.Tag == "html" {
			for _, c := range htmlEl.Children {
				if c.Kind == html.NodeElement && c.Tag == "body" {
					return c
				}
			}
		}
	}
	return nil
}

func (e *Engine) styleOf(n *html.Node) *css.ComputedStyle {
	if s, ok := e.styles[n]; ok {
		return s
	}
	return &css.ComputedStyle{Props: map[string]string{}, Inherited: map[string]string{}}
}

// layoutBlockChildren lays out n's children top-to-bottom inside a block
// formatting context at absolute origin (originX, startY) with containing
// width containingW, collapsing adjacent block margins (max of the two,
// per CSS 2.1) and tracking floats in b.
func (e *Engine) layoutBlockChildren(n *html.Node, originX, startY, containingW int, fontSizePx float64, b *bfc) ([]*Box, int) {
	var boxes []*Box
	y := startY
	prevMarginBottom := 0

	var inlineRun []*html.Node

	flushInline := func() {
		if len(inlineRun) == 0 {
			return
		}
		box, h := e.layoutInline(inlineRun, originX, y, containingW, fontSizePx, b)
		if box != nil {
			boxes = append(boxes, box)
			y += h
		}
		inlineRun = nil
	}

	for _, c := range n.Children {
		if c.Kind == html.NodeText {
			if isBlankText(c.Text) {
				continue
			}
			inlineRun = append(inlineRun, c)
			continue
		}
		if c.Kind != html.NodeElement {
			continue
		}
		style := e.styleOf(c)
		if style.Display == "none" {
			continue
		}

		if style.Display == "inline" {
			inlineRun = append(inlineRun, c)
			continue
		}
		flushInline()

		marginTop := int(css.ResolveLength(style.Get("margin"), float64(containingW), fontSizePx))
		collapsed := maxInt(marginTop, prevMarginBottom)
		if len(boxes) == 0 {
			collapsed = 0
		}
		y += collapsed

		switch style.Display {
		case "table":
			box := e.layoutTable(c, style, originX, y, containingW, fontSizePx)
			boxes = append(boxes, box)
			y += box.H
			prevMarginBottom = marginTop
		default:
			box := e.layoutBlockBox(c, style, originX, y, containingW, fontSizePx, b)
			boxes = append(boxes, box)
			y += box.H
			prevMarginBottom = marginTop
		}
	}
	flushInline()
	return boxes, y - startY
}

func isBlankText(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func (e *Engine) layoutBlockBox(n *html.Node, style *css.ComputedStyle, x, y, containingW int, fontSizePx float64, b *bfc) *Box {
	fontSizePx = css.ResolveLength(style.Get("font-size"), float64(containingW), fontSizePx)
	if fontSizePx <= 0 {
		fontSizePx = 16
	}

	w := containingW
	if wv := style.Get("width"); wv != "auto" && wv != "" {
		w = int(css.ResolveLength(wv, float64(containingW), fontSizePx))
	}

	box := &Box{Node: n, Style: style, Kind: BoxBlock, X: x, Y: y, W: w}
	box.Background = css.ResolveColor(style.Get("background-color"))
	box.BorderWidth = int(css.ResolveLength(style.Get("border-width"), float64(containingW), fontSizePx))
	box.BorderColor = css.ResolveColor(style.Get("border-color"))
	box.BorderRadius = int(css.ResolveLength(style.Get("border-radius"), float64(containingW), fontSizePx))

	if n.Tag == "img" {
		box.HasImage = true
		box.W, box.H = imageSize(style, w)
		return box
	}

	side := FloatNone
	switch style.Get("float") {
	case "left":
		side = FloatLeft
	case "right":
		side = FloatRight
	}
	box.Float = side

	children, h := e.layoutBlockChildren(n, x, y, w, fontSizePx, b)
	box.Children = children
	if hv := style.Get("height"); hv != "auto" && hv != "" {
		h = int(css.ResolveLength(hv, 0, fontSizePx))
	}
	box.H = h

	if side != FloatNone {
		placeFloat(box, b, x, containingW)
	}
	return box
}


func imageSize(style *css.ComputedStyle, containingW int) (int, int) {
	w := MaxImageDimension
	h := MaxImageDimension
	if wv := style.Get("width"); wv != "auto" && wv != "" {
		w = int(css.ResolveLength(wv, float64(containingW), 16))
	}
	if hv := style.Get("height"); hv != "auto" && hv != "" {
		h = int(css.ResolveLength(hv, float64(containingW), 16))
	}
	return w, h
}

// placeFloat positions box at the earliest y that doesn't overlap an
// existing float on the same side (spec §4.9 step 4), then records it.
func placeFloat(box *Box, b *bfc, containingX, containingW int) {
	oldX, oldY := box.X, box.Y
	defer func() {
		// children were laid out at the box's original position; move them with it
		var shift func(bs []*Box, dx, dy int)
		shift = func(bs []*Box, dx, dy int) {
			for _, c := range bs {
				c.X, c.Y = c.X+dx, c.Y+dy
				shift(c.Children, dx, dy)
			}
		}
		shift(box.Children, box.X-oldX, box.Y-oldY)
	}()
	y := box.Y
	for {
		overlap := false
		for _, f := range b.floats {
			if f.side != box.Float {
				continue
			}
			if y < f.bottom && y+box.H > 0 {
				overlap = true
				y = f.bottom
			}
		}
		if !overlap {
			break
		}
	}
	box.Y = y
	if box.Float == FloatLeft {
		box.X = containingX
		b.floats = append(b.floats, activeFloat{side: FloatLeft, right: box.X + box.W, bottom: y + box.H})
	} else {
		box.X = containingX + containingW - box.W
		b.floats = append(b.floats, activeFloat{side: FloatRight, right: box.X, bottom: y + box.H})
	}
}
