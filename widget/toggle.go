package widget

// Toggle is an animated on/off switch. Progress is the 0..1 animated
// position (spec §4.5's "animated 0<->1 progress"); the host advances it
// via an anim.Tween and writes the result back here each frame.
type Toggle struct {
	Progress float64 // 0 = off, 1 = on
}

func (t Toggle) Measure(ctx *DrawContext, availW, availH int) (int, int) {
	h, _ := ctx.Backend.MeasureTextHeight(ctx.Theme.FontSize.MD)
	h += ctx.Theme.Spacing.Small
	return h * 2, h
}

func (t Toggle) Draw(ctx *DrawContext, x, y, w, h int) error {
	th := ctx.Theme
	p := clampFloat(t.Progress, 0, 1)

	track := th.SurfaceVariant
	if p > 0.5 {
		track = th.Primary
	}
	if err := ctx.Backend.FillRoundedRect(x, y, w, h, h/2, track); err != nil {
		return err
	}

	knobR := h/2 - 2
	knobX := x + h/2 + int(p*float64(w-h))
	knobY := y + h/2
	return ctx.Backend.FillCircle(knobX, knobY, knobR, th.Text)
}
