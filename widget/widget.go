// Package widget implements the themed widget toolkit (spec §4.5): Panel,
// Button, Card, InputField, ListView, ScrollView, ProgressBar, TabBar,
// Toggle, Badge, Avatar, Divider, TextBlock, IconAtlas, and NinePatch.
// Every widget implements the same two-method contract (Widget) rather
// than an open inheritance hierarchy, matching how willow's own draw
// surfaces (Node, Camera) keep behavior in small composed structs instead
// of a class tree.
package widget

import (
	"github.com/AndrewAltimit/oasis-os-sub003/backend"
	"github.com/AndrewAltimit/oasis-os-sub003/theme"
	"github.com/AndrewAltimit/oasis-os-sub003/types"
)

// DrawContext bundles everything a widget needs to measure or draw itself:
// the backend to emit primitives through and the theme to pull colors,
// font sizes, and geometry from.
type DrawContext struct {
	Backend backend.Backend
	Theme   *theme.Theme
}

// Widget is the contract every toolkit element implements: a pure size
// query and an imperative draw. There is no base type or inheritance;
// composition (a Card embedding a Button, say) happens by a widget simply
// calling another widget's Measure/Draw.
type Widget interface {
	// Measure reports the widget's desired size given the available space.
	// It may query the backend's text metrics but emits no drawing.
	Measure(ctx *DrawContext, availW, availH int) (w, h int)
	// Draw emits backend primitives for the widget at (x,y,w,h).
	Draw(ctx *DrawContext, x, y, w, h int) error
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Divider is a thin horizontal or vertical rule in the theme's border
// color.
type Divider struct {
	Vertical bool
}

func (d Divider) Measure(ctx *DrawContext, availW, availH int) (int, int) {
	if d.Vertical {
		return 1, availH
	}
	return availW, 1
}

func (d Divider) Draw(ctx *DrawContext, x, y, w, h int) error {
	return ctx.Backend.FillRect(x, y, w, h, ctx.Theme.Border)
}

// Badge is a small filled, rounded label, typically used for counts or
// status markers.
type Badge struct {
	Text string
	Fill types.Color
}

func (b Badge) Measure(ctx *DrawContext, availW, availH int) (int, int) {
	tw, _ := ctx.Backend.MeasureText(b.Text, ctx.Theme.FontSize.XS)
	pad := ctx.Theme.Spacing.Small
	return tw + pad*2, ctx.Theme.FontSize.XS + pad
}

func (b Badge) Draw(ctx *DrawContext, x, y, w, h int) error {
	radius := h / 2
	if err := ctx.Backend.FillRoundedRect(x, y, w, h, radius, b.Fill); err != nil {
		return err
	}
	th, _ := ctx.Backend.MeasureTextHeight(ctx.Theme.FontSize.XS)
	tx := x + ctx.Theme.Spacing.Small
	ty := y + (h-th)/2
	return ctx.Backend.DrawText(b.Text, tx, ty, ctx.Theme.FontSize.XS, ctx.Theme.Text)
}

// Avatar renders either a loaded texture or, absent one, a colored
// initial letter.
type Avatar struct {
	Texture types.TextureId
	Initial string
	Fill    types.Color
}

func (a Avatar) Measure(ctx *DrawContext, availW, availH int) (int, int) {
	size := ctx.Theme.FontSize.LG * 2
	return size, size
}

func (a Avatar) Draw(ctx *DrawContext, x, y, w, h int) error {
	if a.Texture != types.NoTexture {
		return ctx.Backend.Blit(a.Texture, x, y, w, h)
	}
	radius := w / 2
	if h < w {
		radius = h / 2
	}
	if err := ctx.Backend.FillRoundedRect(x, y, w, h, radius, a.Fill); err != nil {
		return err
	}
	tw, _ := ctx.Backend.MeasureText(a.Initial, ctx.Theme.FontSize.MD)
	th, _ := ctx.Backend.MeasureTextHeight(ctx.Theme.FontSize.MD)
	return ctx.Backend.DrawText(a.Initial, x+(w-tw)/2, y+(h-th)/2, ctx.Theme.FontSize.MD, ctx.Theme.Text)
}

// TextBlock wraps multiline text to the available width, truncating at
// MaxLines (0 means unbounded).
type TextBlock struct {
	Content  string
	FontSize int
	Color    types.Color
	MaxLines int
}

func (t TextBlock) Measure(ctx *DrawContext, availW, availH int) (int, int) {
	lh, _ := ctx.Backend.MeasureTextHeight(t.FontSize)
	lh += 2
	lines := t.wrappedLineCount(ctx, availW)
	return availW, lines * lh
}

func (t TextBlock) wrappedLineCount(ctx *DrawContext, availW int) int {
	// MeasureText on the whole string approximates how many lines the
	// backend's own wrapping would produce; exact counts are backend-
	// specific, so this is an upper-bound estimate used only for layout.
	tw, _ := ctx.Backend.MeasureText(t.Content, t.FontSize)
	if tw == 0 || availW <= 0 {
		return 1
	}
	lines := (tw + availW - 1) / availW
	if lines < 1 {
		lines = 1
	}
	if t.MaxLines > 0 && lines > t.MaxLines {
		lines = t.MaxLines
	}
	return lines
}

// Draw emits the wrapped text. MaxLines bounds Measure's reported height;
// the backend's own wrapping call has no line-count cutoff, so a very long
// Content can still paint past h when Draw is called with a height smaller
// than Measure's.
func (t TextBlock) Draw(ctx *DrawContext, x, y, w, h int) error {
	lh, _ := ctx.Backend.MeasureTextHeight(t.FontSize)
	lh += 2
	return ctx.Backend.DrawTextWrapped(t.Content, x, y, t.FontSize, t.Color, w, lh)
}
