package layout

import (
	"strconv"
	"strings"

	"github.com/AndrewAltimit/oasis-os-sub003/browser/css"
	"github.com/AndrewAltimit/oasis-os-sub003/browser/html"
)

type tableCell struct {
	node    *html.Node
	style   *css.ComputedStyle
	colspan int
	rowspan int
	col     int // starting column
}

type tableRow struct {
	node  *html.Node
	cells []*tableCell
}

// layoutTable implements spec §4.9 step 5 with column widths via a two-pass
// "auto" algorithm (min-content, then distribute remaining width
// proportionally). colspan is honored. rowspan is read but does not reserve
// the spanned columns in later rows, and a cell's height counts toward its
// own row only.
func (e *Engine) layoutTable(n *html.Node, style *css.ComputedStyle, x, y, containingW int, fontSizePx float64) *Box {
	rows := e.collectRows(n)
	numCols := countColumns(rows)
	if numCols == 0 {
		return &Box{Node: n, Style: style, Kind: BoxTable, X: x, Y: y, W: containingW}
	}

	minWidths := make([]int, numCols)
	for _, r := range rows {
		for _, c := range r.cells {
			w := 0 // min-content: the widest single word
			for _, word := range strings.Fields(html.TextContent(c.node)) {
				if ww, _ := e.Backend.MeasureText(word, int(fontSizePx)); ww > w {
					w = ww
				}
			}
			w += 8 // cell padding allowance
			per := w / c.colspan
			for k := 0; k < c.colspan && c.col+k < numCols; k++ {
				if per > minWidths[c.col+k] {
					minWidths[c.col+k] = per
				}
			}
		}
	}

	total := 0
	for _, w := range minWidths {
		total += w
	}
	colWidths := make([]int, numCols)
	if total <= containingW && total > 0 {
		extra := containingW - total
		for i := range colWidths {
			colWidths[i] = minWidths[i] + extra*minWidths[i]/total
		}
	} else if total > 0 {
		for i := range colWidths {
			colWidths[i] = minWidths[i] * containingW / total
		}
	} else {
		for i := range colWidths {
			colWidths[i] = containingW / numCols
		}
	}

	colX := make([]int, numCols)
	acc := x
	for i, w := range colWidths {
		colX[i] = acc
		acc += w
	}

	table := &Box{Node: n, Style: style, Kind: BoxTable, X: x, Y: y, W: containingW}
	rowY := y
	rowspanBottoms := make([]int, numCols) // y at which a rowspan frees its column

	for _, r := range rows {
		rowHeight := 0
		rowBox := &Box{Node: r.node, Kind: BoxTableRow, X: x, Y: rowY, W: containingW}
		for _, c := range r.cells {
			cw := 0
			for k := 0; k < c.colspan && c.col+k < numCols; k++ {
				cw += colWidths[c.col+k]
			}
			cellFontSize := fontSizePx
			bfcState := &bfc{}
			children, h := e.layoutBlockChildren(c.node, colX[c.col], rowY, cw, cellFontSize, bfcState)
			cellBox := &Box{
				Node: c.node, Style: c.style, Kind: BoxTableCell,
				X: colX[c.col], Y: rowY, W: cw, H: h,
				Children: children,
			}
			cellBox.Background = css.ResolveColor(c.style.Get("background-color"))
			rowBox.Children = append(rowBox.Children, cellBox)
			if h > rowHeight {
				rowHeight = h
			}
			for k := 0; k < c.colspan && c.col+k < numCols; k++ {
				rowspanBottoms[c.col+k] = rowY + h*c.rowspan
			}
		}
		rowBox.H = rowHeight
		table.Children = append(table.Children, rowBox)
		rowY += rowHeight
	}
	table.H = rowY - y
	return table
}

func (e *Engine) collectRows(tableNode *html.Node) []tableRow {
	var rows []tableRow
	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		for _, c := range n.Children {
			if c.Kind != html.NodeElement {
				continue
			}
			if c.Tag == "tr" {
				rows = append(rows, e.buildRow(c))
				continue
			}
			// tbody/thead/tfoot wrappers: recurse
			if c.Tag == "tbody" || c.Tag == "thead" || c.Tag == "tfoot" {
				visit(c)
			}
		}
	}
	visit(tableNode)
	return rows
}

func (e *Engine) buildRow(rowNode *html.Node) tableRow {
	row := tableRow{node: rowNode}
	col := 0
	for _, c := range rowNode.Children {
		if c.Kind != html.NodeElement || (c.Tag != "td" && c.Tag != "th") {
			continue
		}
		cell := &tableCell{
			node:    c,
			style:   e.styleOf(c),
			colspan: attrIntOr(c, "colspan", 1),
			rowspan: attrIntOr(c, "rowspan", 1),
			col:     col,
		}
		row.cells = append(row.cells, cell)
		col += cell.colspan
	}
	return row
}

func attrIntOr(n *html.Node, attr string, def int) int {
	v, ok := n.Attr(attr)
	if !ok {
		return def
	}
	n2, err := strconv.Atoi(v)
	if err != nil || n2 < 1 {
		return def
	}
	return n2
}

func countColumns(rows []tableRow) int {
	max := 0
	for _, r := range rows {
		col := 0
		for _, c := range r.cells {
			col += c.colspan
		}
		if col > max {
			max = col
		}
	}
	return max
}
