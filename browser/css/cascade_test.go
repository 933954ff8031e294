package css

import (
	"testing"

	"github.com/AndrewAltimit/oasis-os-sub003/browser/html"
)

func TestStyleTreeCascadeWinsBySpecificity(t *testing.T) {
	doc := html.Parse(`<div id="x" class="card"><p>hi</p></div>`)
	sheet := Parse(`.card { color: red; } #x { color: blue; }`)
	styles := StyleTree(doc, sheet, MatchContext{})
	div := doc.Find("div")
	if got := styles[div].Get("color"); got != "blue" {
		t.Errorf("color = %q, want blue (id beats class)", got)
	}
}

func TestStyleTreeSourceOrderBreaksTie(t *testing.T) {
	doc := html.Parse(`<p class="a"></p>`)
	sheet := Parse(`.a { color: red; } .a { color: green; }`)
	styles := StyleTree(doc, sheet, MatchContext{})
	p := doc.Find("p")
	if got := styles[p].Get("color"); got != "green" {
		t.Errorf("color = %q, want green (later rule wins tie)", got)
	}
}

func TestStyleTreeImportantBeatsInline(t *testing.T) {
	doc := html.Parse(`<p class="a" style="color: blue"></p>`)
	sheet := Parse(`.a { color: red !important; }`)
	styles := StyleTree(doc, sheet, MatchContext{})
	p := doc.Find("p")
	if got := styles[p].Get("color"); got != "red" {
		t.Errorf("color = %q, want red (author !important beats inline)", got)
	}
}

func TestStyleTreeInheritance(t *testing.T) {
	doc := html.Parse(`<div class="x"><p>inner</p></div>`)
	sheet := Parse(`.x { color: green; }`)
	styles := StyleTree(doc, sheet, MatchContext{})
	p := doc.Find("p")
	if got := styles[p].Get("color"); got != "green" {
		t.Errorf("inherited color = %q, want green", got)
	}
}

func TestStyleTreeDefaultDisplay(t *testing.T) {
	doc := html.Parse(`<div><span>x</span></div>`)
	styles := StyleTree(doc, Stylesheet{}, MatchContext{})
	div := doc.Find("div")
	span := doc.Find("span")
	if styles[div].Display != "block" {
		t.Errorf("div display = %q, want block", styles[div].Display)
	}
	if styles[span].Display != "inline" {
		t.Errorf("span display = %q, want inline", styles[span].Display)
	}
}

func TestHoverPseudoUsesMatchContext(t *testing.T) {
	doc := html.Parse(`<a href="/x">link</a>`)
	a := doc.Find("a")
	sheet := Parse(`a:hover { color: red; }`)
	ctx := MatchContext{State: func(n *html.Node) ElementState {
		return ElementState{Hover: n == a}
	}}
	styles := StyleTree(doc, sheet, ctx)
	if got := styles[a].Get("color"); got != "red" {
		t.Errorf("hovered color = %q, want red", got)
	}
}

func TestNthChildMatchesOddPositions(t *testing.T) {
	doc := html.Parse(`<ul><li>a</li><li>b</li><li>c</li></ul>`)
	sheet := Parse(`li:nth-child(odd) { color: red; }`)
	styles := StyleTree(doc, sheet, MatchContext{})
	lis := doc.FindAll("li")
	if styles[lis[0]].Get("color") != "red" {
		t.Errorf("li[0] should match nth-child(odd)")
	}
	if styles[lis[1]].Get("color") == "red" {
		t.Errorf("li[1] should not match nth-child(odd)")
	}
	if styles[lis[2]].Get("color") != "red" {
		t.Errorf("li[2] should match nth-child(odd)")
	}
}

func TestResolveLengthUnits(t *testing.T) {
	if got := ResolveLength("50%", 200, 16); got != 100 {
		t.Errorf("50%% of 200 = %v, want 100", got)
	}
	if got := ResolveLength("2em", 0, 16); got != 32 {
		t.Errorf("2em @ 16px = %v, want 32", got)
	}
	if got := ResolveLength("10px", 0, 16); got != 10 {
		t.Errorf("10px = %v, want 10", got)
	}
}

func TestResolveColorFormats(t *testing.T) {
	cases := map[string][4]uint8{
		"#fff":                  {255, 255, 255, 255},
		"#ff0000":               {255, 0, 0, 255},
		"red":                   {255, 0, 0, 255},
		"rgb(0, 128, 255)":      {0, 128, 255, 255},
		"rgba(10, 20, 30, 0.5)": {10, 20, 30, 127},
	}
	for in, want := range cases {
		c := ResolveColor(in)
		if c.R != want[0] || c.G != want[1] || c.B != want[2] {
			t.Errorf("ResolveColor(%q) = %+v, want rgb %v", in, c, want)
		}
	}
}

func TestResolveColorNeverPanics(t *testing.T) {
	inputs := []string{"", "#", "#gg", "rgb(", "not-a-color", "rgba()"}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("ResolveColor(%q) panicked: %v", in, r)
				}
			}()
			ResolveColor(in)
		}()
	}
}
