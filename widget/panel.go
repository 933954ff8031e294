package widget

import "github.com/AndrewAltimit/oasis-os-sub003/types"

// Panel is a plain themed container: a filled, optionally bordered,
// optionally rounded rectangle. It draws no content of its own; callers
// place children at coordinates they derive themselves.
type Panel struct {
	Fill     *types.Color // nil means ctx.Theme.Surface
	Border   bool
	Radius   int
}

func (p Panel) Measure(ctx *DrawContext, availW, availH int) (int, int) {
	return availW, availH
}

func (p Panel) Draw(ctx *DrawContext, x, y, w, h int) error {
	fill := ctx.Theme.Surface
	if p.Fill != nil {
		fill = *p.Fill
	}
	if p.Radius > 0 {
		if err := ctx.Backend.FillRoundedRect(x, y, w, h, p.Radius, fill); err != nil {
			return err
		}
	} else if err := ctx.Backend.FillRect(x, y, w, h, fill); err != nil {
		return err
	}
	if p.Border {
		if p.Radius > 0 {
			return ctx.Backend.StrokeRoundedRect(x, y, w, h, p.Radius, 1, ctx.Theme.Border)
		}
		return ctx.Backend.StrokeRect(x, y, w, h, 1, ctx.Theme.Border)
	}
	return nil
}
