package widget

// ScrollbarStyle selects ScrollView's scrollbar thickness, or disables it.
type ScrollbarStyle uint8

const (
	NoScrollbar ScrollbarStyle = iota
	ThinScrollbar
	WideScrollbar
)

// ScrollView clips a child widget to a viewport and offsets it vertically,
// optionally drawing a scrollbar thumb sized to the visible fraction.
type ScrollView struct {
	Child          Widget
	ContentHeight  int
	ScrollOffset   int
	ScrollbarStyle ScrollbarStyle
}

func (s ScrollView) maxScroll(viewportH int) int {
	max := s.ContentHeight - viewportH
	if max < 0 {
		max = 0
	}
	return max
}

// ClampScroll clamps offset into [0, max(0, ContentHeight-viewportH)].
func (s ScrollView) ClampScroll(offset, viewportH int) int {
	return clampInt(offset, 0, s.maxScroll(viewportH))
}

func (s ScrollView) Measure(ctx *DrawContext, availW, availH int) (int, int) {
	return availW, availH
}

func (s ScrollView) scrollbarWidth() int {
	switch s.ScrollbarStyle {
	case ThinScrollbar:
		return 3
	case WideScrollbar:
		return 8
	default:
		return 0
	}
}

func (s ScrollView) Draw(ctx *DrawContext, x, y, w, h int) error {
	barW := s.scrollbarWidth()
	contentW := w - barW

	if err := ctx.Backend.SetClipRect(x, y, contentW, h); err != nil {
		return err
	}
	offset := s.ClampScroll(s.ScrollOffset, h)
	if s.Child != nil {
		if err := s.Child.Draw(ctx, x, y-offset, contentW, s.ContentHeight); err != nil {
			ctx.Backend.ResetClipRect()
			return err
		}
	}
	if err := ctx.Backend.ResetClipRect(); err != nil {
		return err
	}

	if barW == 0 || s.ContentHeight <= h {
		return nil
	}
	th := ctx.Theme
	trackX := x + contentW
	if err := ctx.Backend.FillRect(trackX, y, barW, h, th.SurfaceVariant); err != nil {
		return err
	}
	thumbH := clampInt(h*h/s.ContentHeight, 4, h)
	maxScroll := s.maxScroll(h)
	thumbY := y
	if maxScroll > 0 {
		thumbY = y + (h-thumbH)*offset/maxScroll
	}
	return ctx.Backend.FillRect(trackX, thumbY, barW, thumbH, th.Primary)
}
