package widget

// ListView is a virtualized, fixed-row-height list: only rows whose row
// rect intersects the viewport are measured or drawn (spec §4.5). Render
// is supplied by the caller so ListView stays agnostic to item type.
type ListView[T any] struct {
	Items        []T
	ItemHeight   int
	ScrollOffset int
	Render       func(item T, index int, ctx *DrawContext, x, y, w, h int) error
}

// MaxScroll returns the largest valid ScrollOffset for the given viewport
// height: content height minus viewport height, floored at 0.
func (l ListView[T]) MaxScroll(viewportH int) int {
	content := len(l.Items) * l.ItemHeight
	max := content - viewportH
	if max < 0 {
		max = 0
	}
	return max
}

// ClampScroll clamps offset into [0, MaxScroll(viewportH)].
func (l ListView[T]) ClampScroll(offset, viewportH int) int {
	return clampInt(offset, 0, l.MaxScroll(viewportH))
}

func (l ListView[T]) Measure(ctx *DrawContext, availW, availH int) (int, int) {
	return availW, clampInt(len(l.Items)*l.ItemHeight, 0, availH)
}

func (l ListView[T]) Draw(ctx *DrawContext, x, y, w, h int) error {
	if l.ItemHeight <= 0 || len(l.Items) == 0 {
		return nil
	}
	offset := l.ClampScroll(l.ScrollOffset, h)

	firstIdx := offset / l.ItemHeight
	if firstIdx < 0 {
		firstIdx = 0
	}

	if err := ctx.Backend.SetClipRect(x, y, w, h); err != nil {
		return err
	}
	defer ctx.Backend.ResetClipRect()

	for i := firstIdx; i < len(l.Items); i++ {
		rowTop := i*l.ItemHeight - offset
		if rowTop >= h {
			break
		}
		if rowTop+l.ItemHeight <= 0 {
			continue
		}
		if l.Render == nil {
			continue
		}
		if err := l.Render(l.Items[i], i, ctx, x, y+rowTop, w, l.ItemHeight); err != nil {
			return err
		}
	}
	return nil
}
