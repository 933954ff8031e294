package widget

// ProgressMode selects how ProgressBar renders its value.
type ProgressMode uint8

const (
	Bar ProgressMode = iota
	Circular
	Indeterminate
)

// ProgressBar renders a clamped [0,1] value as a filled bar, a ring, or (in
// Indeterminate mode) a sweeping segment driven by Phase.
type ProgressBar struct {
	Mode  ProgressMode
	Value float64 // ignored in Indeterminate mode
	Phase float64 // 0..1, advanced by the host each frame in Indeterminate mode
}

func (p ProgressBar) Measure(ctx *DrawContext, availW, availH int) (int, int) {
	if p.Mode == Circular {
		size := clampInt(availH, 0, availW)
		return size, size
	}
	h := ctx.Theme.Spacing.Medium
	return availW, clampInt(h, 0, availH)
}

func (p ProgressBar) Draw(ctx *DrawContext, x, y, w, h int) error {
	th := ctx.Theme
	value := clampFloat(p.Value, 0, 1)

	switch p.Mode {
	case Circular:
		return p.drawCircular(ctx, x, y, w, h, value)
	case Indeterminate:
		return p.drawIndeterminate(ctx, x, y, w, h)
	default:
		if err := ctx.Backend.FillRoundedRect(x, y, w, h, h/2, th.SurfaceVariant); err != nil {
			return err
		}
		fillW := int(float64(w) * value)
		if fillW > 0 {
			if err := ctx.Backend.FillRoundedRect(x, y, fillW, h, h/2, th.Primary); err != nil {
				return err
			}
		}
		return nil
	}
}

func (p ProgressBar) drawCircular(ctx *DrawContext, x, y, w, h int, value float64) error {
	th := ctx.Theme
	r := w / 2
	if h/2 < r {
		r = h / 2
	}
	cx, cy := x+w/2, y+h/2
	strokeW := clampInt(r/6, 2, 6)
	if err := ctx.Backend.StrokeCircle(cx, cy, r-strokeW/2, strokeW, th.SurfaceVariant); err != nil {
		return err
	}
	// An arc primitive isn't in the backend contract; a full ring stands
	// in for the filled arc once value reaches 1, and a dimmer full ring
	// otherwise, keeping the widget usable without fabricating an API the
	// backend doesn't offer.
	if value >= 1 {
		return ctx.Backend.StrokeCircle(cx, cy, r-strokeW/2, strokeW, th.Primary)
	}
	return ctx.Backend.StrokeCircle(cx, cy, r-strokeW/2, strokeW/2, th.Primary)
}

func (p ProgressBar) drawIndeterminate(ctx *DrawContext, x, y, w, h int) error {
	th := ctx.Theme
	if err := ctx.Backend.FillRoundedRect(x, y, w, h, h/2, th.SurfaceVariant); err != nil {
		return err
	}
	segW := clampInt(w/4, 1, w)
	phase := p.Phase - float64(int(p.Phase))
	if phase < 0 {
		phase += 1
	}
	segX := x + int(phase*float64(w+segW)) - segW
	segX = clampInt(segX, x, x+w-segW)
	return ctx.Backend.FillRoundedRect(segX, y, segW, h, h/2, th.Primary)
}
