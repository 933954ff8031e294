package widget

import "github.com/AndrewAltimit/oasis-os-sub003/types"

// Card is a themed panel composed of an optional image, a title, a
// subtitle, and a body text block, stacked vertically.
type Card struct {
	Image    types.TextureId
	ImageH   int
	Title    string
	Subtitle string
	Body     string
}

func (c Card) Measure(ctx *DrawContext, availW, availH int) (int, int) {
	th := ctx.Theme
	h := th.Spacing.Medium * 2
	if c.Image != types.NoTexture {
		h += c.ImageH + th.Spacing.Small
	}
	lh, _ := ctx.Backend.MeasureTextHeight(th.FontSize.LG)
	h += lh + th.Spacing.Small
	lh2, _ := ctx.Backend.MeasureTextHeight(th.FontSize.SM)
	h += lh2 + th.Spacing.Small
	body := TextBlock{Content: c.Body, FontSize: th.FontSize.MD, MaxLines: 3}
	_, bodyH := body.Measure(ctx, availW-th.Spacing.Medium*2, availH)
	h += bodyH
	return availW, clampInt(h, 0, availH)
}

func (c Card) Draw(ctx *DrawContext, x, y, w, h int) error {
	th := ctx.Theme
	pad := th.Spacing.Medium
	if err := (Panel{Radius: th.CornerRadii.Medium, Border: true}).Draw(ctx, x, y, w, h); err != nil {
		return err
	}
	cy := y + pad
	cx := x + pad
	cw := w - pad*2

	if c.Image != types.NoTexture {
		if err := ctx.Backend.Blit(c.Image, cx, cy, cw, c.ImageH); err != nil {
			return err
		}
		cy += c.ImageH + th.Spacing.Small
	}

	titleH, _ := ctx.Backend.MeasureTextHeight(th.FontSize.LG)
	if err := ctx.Backend.DrawText(c.Title, cx, cy, th.FontSize.LG, th.Text); err != nil {
		return err
	}
	cy += titleH + th.Spacing.Small

	subH, _ := ctx.Backend.MeasureTextHeight(th.FontSize.SM)
	if err := ctx.Backend.DrawText(c.Subtitle, cx, cy, th.FontSize.SM, th.DimText); err != nil {
		return err
	}
	cy += subH + th.Spacing.Small

	body := TextBlock{Content: c.Body, FontSize: th.FontSize.MD, Color: th.Text, MaxLines: 3}
	return body.Draw(ctx, cx, cy, cw, y+h-cy)
}
