package widget

import "github.com/AndrewAltimit/oasis-os-sub003/types"

// ButtonVariant selects a button's palette source.
type ButtonVariant uint8

const (
	Primary ButtonVariant = iota
	SecondaryVariant
	Outline
	Ghost
)

// ButtonState selects a button's interaction-dependent shading.
type ButtonState uint8

const (
	Normal ButtonState = iota
	Hover
	Pressed
	Disabled
)

// Button is a clickable label in one of 4 variants x 4 states (spec §4.5).
// Button itself carries no click logic: the host decides state from
// pointer input and sets it here before drawing.
type Button struct {
	Label   string
	Variant ButtonVariant
	State   ButtonState
}

func (b Button) fillColor(ctx *DrawContext) (fill types.Color, hasFill bool, text types.Color) {
	th := ctx.Theme
	base := th.Primary
	if b.Variant == SecondaryVariant {
		base = th.Secondary
	}
	switch b.Variant {
	case Outline, Ghost:
		return types.Color{}, false, base
	}
	switch b.State {
	case Hover:
		base = lighten(base, 16)
	case Pressed:
		base = lighten(base, -16)
	case Disabled:
		base = th.SurfaceVariant
	}
	return base, true, th.Text
}

func lighten(c types.Color, delta int) types.Color {
	adj := func(v uint8) uint8 {
		n := int(v) + delta
		if n < 0 {
			return 0
		}
		if n > 255 {
			return 255
		}
		return uint8(n)
	}
	return types.Color{R: adj(c.R), G: adj(c.G), B: adj(c.B), A: c.A}
}

func (b Button) Measure(ctx *DrawContext, availW, availH int) (int, int) {
	tw, _ := ctx.Backend.MeasureText(b.Label, ctx.Theme.FontSize.MD)
	th, _ := ctx.Backend.MeasureTextHeight(ctx.Theme.FontSize.MD)
	pad := ctx.Theme.Spacing.Medium
	w := clampInt(tw+pad*2, 0, availW)
	h := clampInt(th+pad, 0, availH)
	return w, h
}

func (b Button) Draw(ctx *DrawContext, x, y, w, h int) error {
	fill, hasFill, textColor := b.fillColor(ctx)
	radius := ctx.Theme.CornerRadii.Small

	if hasFill {
		if err := ctx.Backend.FillRoundedRect(x, y, w, h, radius, fill); err != nil {
			return err
		}
	}
	if b.Variant == Outline {
		if err := ctx.Backend.StrokeRoundedRect(x, y, w, h, radius, 1, textColor); err != nil {
			return err
		}
	}
	if b.State == Disabled {
		textColor = ctx.Theme.DimText
	}

	tw, _ := ctx.Backend.MeasureText(b.Label, ctx.Theme.FontSize.MD)
	th, _ := ctx.Backend.MeasureTextHeight(ctx.Theme.FontSize.MD)
	tx := x + (w-tw)/2
	ty := y + (h-th)/2
	return ctx.Backend.DrawText(b.Label, tx, ty, ctx.Theme.FontSize.MD, textColor)
}
