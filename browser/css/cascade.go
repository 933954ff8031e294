package css

import (
	"sort"
	"strconv"
	"strings"

	"github.com/AndrewAltimit/oasis-os-sub003/browser/html"
	"github.com/AndrewAltimit/oasis-os-sub003/types"
)

// Origin discriminates where a declaration came from, for cascade ordering.
type Origin uint8

const (
	OriginUA Origin = iota
	OriginAuthor
	OriginInline
)

// ElementState carries the dynamic pseudo-class state a matcher needs that
// can't be derived from DOM structure alone.
type ElementState struct {
	Hover   bool
	Visited bool
}

// MatchContext supplies per-element dynamic state lookups during matching.
type MatchContext struct {
	State func(n *html.Node) ElementState
}

func (c MatchContext) stateOf(n *html.Node) ElementState {
	if c.State == nil {
		return ElementState{}
	}
	return c.State(n)
}

// Specificity is the (id, class, type) triple CSS selectors compare by.
type Specificity struct {
	IDs, Classes, Types int
}

func (s Specificity) less(o Specificity) bool {
	if s.IDs != o.IDs {
		return s.IDs < o.IDs
	}
	if s.Classes != o.Classes {
		return s.Classes < o.Classes
	}
	return s.Types < o.Types
}

func specificityOf(sel Selector) Specificity {
	var s Specificity
	for _, comp := range sel {
		if comp.ID != "" {
			s.IDs++
		}
		s.Classes += len(comp.Classes) + len(comp.Attrs) + len(comp.Pseudo)
		if comp.Type != "" && comp.Type != "*" {
			s.Types++
		}
	}
	return s
}

// match reports whether sel matches n under ctx, walking the combinator
// chain against n's ancestors/preceding siblings.
func match(sel Selector, n *html.Node, ctx MatchContext) bool {
	if len(sel) == 0 {
		return false
	}
	i := len(sel) - 1
	if !matchCompound(sel[i], n, ctx) {
		return false
	}
	return matchAncestors(sel, i, n, ctx)
}

func matchAncestors(sel Selector, i int, n *html.Node, ctx MatchContext) bool {
	if i == 0 {
		return true
	}
	comp := sel[i]
	switch comp.Combinator {
	case CombinatorChild:
		p := n.Parent
		if p == nil || !matchCompound(sel[i-1], p, ctx) {
			return false
		}
		return matchAncestors(sel, i-1, p, ctx)
	case CombinatorDescendant:
		for p := n.Parent; p != nil; p = p.Parent {
			if matchCompound(sel[i-1], p, ctx) && matchAncestors(sel, i-1, p, ctx) {
				return true
			}
		}
		return false
	case CombinatorAdjacent:
		sib := prevElementSibling(n)
		if sib == nil || !matchCompound(sel[i-1], sib, ctx) {
			return false
		}
		return matchAncestors(sel, i-1, sib, ctx)
	case CombinatorSibling:
		for sib := prevElementSibling(n); sib != nil; sib = prevElementSibling(sib) {
			if matchCompound(sel[i-1], sib, ctx) && matchAncestors(sel, i-1, sib, ctx) {
				return true
			}
		}
		return false
	}
	return false
}

func prevElementSibling(n *html.Node) *html.Node {
	if n.Parent == nil {
		return nil
	}
	sibs := n.Parent.Children
	idx := -1
	for i, c := range sibs {
		if c == n {
			idx = i
			break
		}
	}
	for i := idx - 1; i >= 0; i-- {
		if sibs[i].Kind == html.NodeElement {
			return sibs[i]
		}
	}
	return nil
}

func elementSiblings(n *html.Node) []*html.Node {
	if n.Parent == nil {
		return nil
	}
	var out []*html.Node
	for _, c := range n.Parent.Children {
		if c.Kind == html.NodeElement {
			out = append(out, c)
		}
	}
	return out
}

func matchCompound(comp CompoundSelector, n *html.Node, ctx MatchContext) bool {
	if n.Kind != html.NodeElement {
		return false
	}
	if comp.Type != "" && comp.Type != "*" && !strings.EqualFold(comp.Type, n.Tag) {
		return false
	}
	if comp.ID != "" {
		id, _ := n.Attr("id")
		if id != comp.ID {
			return false
		}
	}
	if len(comp.Classes) > 0 {
		classAttr, _ := n.Attr("class")
		classes := strings.Fields(classAttr)
		for _, want := range comp.Classes {
			if !containsStr(classes, want) {
				return false
			}
		}
	}
	for _, a := range comp.Attrs {
		if !matchAttr(a, n) {
			return false
		}
	}
	for _, p := range comp.Pseudo {
		if !matchPseudo(p, comp.NthChild, n, ctx) {
			return false
		}
	}
	return true
}

func containsStr(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

func matchAttr(a AttrSelector, n *html.Node) bool {
	v, ok := n.Attr(a.Name)
	if a.Op == AttrExists {
		return ok
	}
	if !ok {
		return false
	}
	switch a.Op {
	case AttrEquals:
		return v == a.Value
	case AttrIncludes:
		return containsStr(strings.Fields(v), a.Value)
	case AttrDash:
		return v == a.Value || strings.HasPrefix(v, a.Value+"-")
	case AttrPrefix:
		return strings.HasPrefix(v, a.Value)
	case AttrSuffix:
		return strings.HasSuffix(v, a.Value)
	case AttrSubstring:
		return strings.Contains(v, a.Value)
	}
	return false
}

func matchPseudo(p string, nth *NthExpr, n *html.Node, ctx MatchContext) bool {
	switch p {
	case "hover":
		return ctx.stateOf(n).Hover
	case "link":
		return n.Tag == "a"
	case "visited":
		return n.Tag == "a" && ctx.stateOf(n).Visited
	case "first-child":
		sibs := elementSiblings(n)
		return len(sibs) > 0 && sibs[0] == n
	case "last-child":
		sibs := elementSiblings(n)
		return len(sibs) > 0 && sibs[len(sibs)-1] == n
	case "nth-child":
		if nth == nil {
			return false
		}
		sibs := elementSiblings(n)
		idx := -1
		for i, s := range sibs {
			if s == n {
				idx = i
				break
			}
		}
		if idx < 0 {
			return false
		}
		pos := idx + 1 // 1-indexed
		return nthMatches(*nth, pos)
	}
	return false
}

func nthMatches(e NthExpr, pos int) bool {
	if e.A == 0 {
		return pos == e.B
	}
	diff := pos - e.B
	if e.A > 0 {
		return diff >= 0 && diff%e.A == 0
	}
	return diff <= 0 && diff%e.A == 0
}

// matchedDecl pairs a declaration with the cascade-ordering keys needed to
// resolve conflicts.
type matchedDecl struct {
	decl        Declaration
	origin      Origin
	specificity Specificity
	source      int
}

// ComputedStyle is the resolved property map for one element, after
// cascade + inheritance + initial-value fallback.
type ComputedStyle struct {
	Display    string
	Props      map[string]string
	Inherited  map[string]string
}

var inheritedProps = map[string]bool{
	"color": true, "font-size": true, "text-align": true, "line-height": true,
	"visibility": true, "font-weight": true, "font-style": true,
}

var initialValues = map[string]string{
	"display":          "inline",
	"color":             "black",
	"background-color":  "transparent",
	"font-size":         "16px",
	"text-align":        "left",
	"border-width":      "0px",
	"border-radius":     "0px",
	"margin":            "0px",
	"padding":           "0px",
	"width":             "auto",
	"height":            "auto",
}

var defaultDisplay = map[string]string{
	"div": "block", "p": "block", "section": "block", "article": "block",
	"header": "block", "footer": "block", "nav": "block", "aside": "block",
	"main": "block", "ul": "block", "ol": "block", "li": "block",
	"h1": "block", "h2": "block", "h3": "block", "h4": "block", "h5": "block", "h6": "block",
	"blockquote": "block", "pre": "block", "form": "block", "fieldset": "block",
	"table": "table", "tr": "table-row", "td": "table-cell", "th": "table-cell",
	"img": "inline-block", "input": "inline-block", "button": "inline-block",
	"html": "block", "body": "block", "head": "none", "script": "none", "style": "none",
	"br": "none", "hr": "block",
}

// StyleTree computes ComputedStyle for every element node in doc, applying
// the cascade (UA < author < inline, by specificity then source order),
// inheritance, and initial values (spec §4.8 style_tree).
func StyleTree(doc *html.Document, sheet Stylesheet, ctx MatchContext) map[*html.Node]*ComputedStyle {
	out := make(map[*html.Node]*ComputedStyle)
	var walk func(n *html.Node, parent *ComputedStyle)
	walk = func(n *html.Node, parent *ComputedStyle) {
		if n.Kind == html.NodeElement {
			cs := computeStyle(n, sheet, ctx, parent)
			out[n] = cs
			for _, c := range n.Children {
				walk(c, cs)
			}
			return
		}
		for _, c := range n.Children {
			walk(c, parent)
		}
	}
	walk(doc.Root, nil)
	return out
}

func computeStyle(n *html.Node, sheet Stylesheet, ctx MatchContext, parent *ComputedStyle) *ComputedStyle {
	var matched []matchedDecl
	for _, rule := range sheet.Rules {
		for _, sel := range rule.Selectors {
			if match(sel, n, ctx) {
				spec := specificityOf(sel)
				for _, d := range rule.Declarations {
					matched = append(matched, matchedDecl{decl: d, origin: OriginAuthor, specificity: spec, source: rule.SourceOrder})
				}
			}
		}
	}
	if styleAttr, ok := n.Attr("style"); ok && styleAttr != "" {
		for _, d := range ParseDeclarations(styleAttr) {
			matched = append(matched, matchedDecl{decl: d, origin: OriginInline, specificity: Specificity{}, source: 1 << 30})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		ai := cascadeRank(a)
		bi := cascadeRank(b)
		if ai != bi {
			return ai < bi
		}
		if a.specificity != b.specificity {
			return a.specificity.less(b.specificity)
		}
		return a.source < b.source
	})

	props := make(map[string]string)
	for _, m := range matched {
		props[m.decl.Property] = m.decl.Value
	}

	cs := &ComputedStyle{Props: props, Inherited: make(map[string]string)}
	for prop := range inheritedProps {
		if v, ok := props[prop]; ok {
			cs.Inherited[prop] = v
		} else if parent != nil {
			if v, ok := parent.Inherited[prop]; ok {
				cs.Inherited[prop] = v
			} else if v, ok := parent.Props[prop]; ok {
				cs.Inherited[prop] = v
			}
		}
	}

	if d, ok := props["display"]; ok {
		cs.Display = d
	} else if d, ok := defaultDisplay[n.Tag]; ok {
		cs.Display = d
	} else {
		cs.Display = initialValues["display"]
	}
	return cs
}

// cascadeRank orders by origin and !important per spec §4.8: UA default <
// author non-important < inline non-important < author important < inline
// important.
func cascadeRank(m matchedDecl) int {
	switch {
	case m.origin == OriginUA && !m.decl.Important:
		return 0
	case m.origin == OriginAuthor && !m.decl.Important:
		return 1
	case m.origin == OriginInline && !m.decl.Important:
		return 2
	case m.origin == OriginAuthor && m.decl.Important:
		return 3
	case m.origin == OriginInline && m.decl.Important:
		return 4
	}
	return 1
}

// Get returns a computed property's raw value, falling through inherited
// and initial values.
func (cs *ComputedStyle) Get(prop string) string {
	if v, ok := cs.Props[prop]; ok {
		return v
	}
	if v, ok := cs.Inherited[prop]; ok {
		return v
	}
	if v, ok := initialValues[prop]; ok {
		return v
	}
	return ""
}

// ResolveLength converts a length/percentage value (px, em, rem, %) to
// pixels. Percentages resolve against containingPx; em/rem resolve against
// fontSizePx. Unparsable values resolve to 0 rather than erroring.
func ResolveLength(value string, containingPx, fontSizePx float64) float64 {
	value = strings.TrimSpace(value)
	switch {
	case strings.HasSuffix(value, "%"):
		n, _ := strconv.ParseFloat(strings.TrimSuffix(value, "%"), 64)
		return n / 100 * containingPx
	case strings.HasSuffix(value, "rem"):
		n, _ := strconv.ParseFloat(strings.TrimSuffix(value, "rem"), 64)
		return n * fontSizePx
	case strings.HasSuffix(value, "em"):
		n, _ := strconv.ParseFloat(strings.TrimSuffix(value, "em"), 64)
		return n * fontSizePx
	case strings.HasSuffix(value, "px"):
		n, _ := strconv.ParseFloat(strings.TrimSuffix(value, "px"), 64)
		return n
	default:
		n, _ := strconv.ParseFloat(value, 64)
		return n
	}
}

var namedColors = map[string]types.Color{
	"black":       {R: 0, G: 0, B: 0, A: 255},
	"white":       {R: 255, G: 255, B: 255, A: 255},
	"red":         {R: 255, G: 0, B: 0, A: 255},
	"green":       {R: 0, G: 128, B: 0, A: 255},
	"blue":        {R: 0, G: 0, B: 255, A: 255},
	"gray":        {R: 128, G: 128, B: 128, A: 255},
	"grey":        {R: 128, G: 128, B: 128, A: 255},
	"transparent": {R: 0, G: 0, B: 0, A: 0},
	"yellow":      {R: 255, G: 255, B: 0, A: 255},
	"orange":      {R: 255, G: 165, B: 0, A: 255},
}

// ResolveColor converts a keyword, #hex, rgb(), or rgba() color value to
// types.Color. Unrecognized input resolves to opaque black rather than
// erroring.
func ResolveColor(value string) types.Color {
	value = strings.TrimSpace(value)
	if c, ok := namedColors[strings.ToLower(value)]; ok {
		return c
	}
	if strings.HasPrefix(value, "#") {
		return parseHexColor(value[1:])
	}
	if strings.HasPrefix(value, "rgba(") || strings.HasPrefix(value, "rgb(") {
		return parseFuncColor(value)
	}
	return types.Color{R: 0, G: 0, B: 0, A: 255}
}

func parseHexColor(hex string) types.Color {
	expand := func(c byte) byte {
		n := hexVal(c)
		return n*16 + n
	}
	switch len(hex) {
	case 3:
		return types.Color{R: expand(hex[0]), G: expand(hex[1]), B: expand(hex[2]), A: 255}
	case 6:
		return types.Color{
			R: hexVal(hex[0])*16 + hexVal(hex[1]),
			G: hexVal(hex[2])*16 + hexVal(hex[3]),
			B: hexVal(hex[4])*16 + hexVal(hex[5]),
			A: 255,
		}
	case 8:
		return types.Color{
			R: hexVal(hex[0])*16 + hexVal(hex[1]),
			G: hexVal(hex[2])*16 + hexVal(hex[3]),
			B: hexVal(hex[4])*16 + hexVal(hex[5]),
			A: hexVal(hex[6])*16 + hexVal(hex[7]),
		}
	}
	return types.Color{A: 255}
}

func hexVal(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

func parseFuncColor(value string) types.Color {
	open := strings.IndexByte(value, '(')
	close := strings.LastIndexByte(value, ')')
	if open < 0 || close < 0 || close <= open {
		return types.Color{A: 255}
	}
	parts := strings.Split(value[open+1:close], ",")
	nums := make([]float64, 0, 4)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimSuffix(p, "%")
		n, _ := strconv.ParseFloat(p, 64)
		nums = append(nums, n)
	}
	c := types.Color{A: 255}
	if len(nums) > 0 {
		c.R = clampByte(nums[0])
	}
	if len(nums) > 1 {
		c.G = clampByte(nums[1])
	}
	if len(nums) > 2 {
		c.B = clampByte(nums[2])
	}
	if len(nums) > 3 {
		c.A = clampByte(nums[3] * 255)
	}
	return c
}

func clampByte(f float64) byte {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return byte(f)
}
