package widget

import "github.com/AndrewAltimit/oasis-os-sub003/types"

// NinePatch renders a texture as a 3x3 slice: the four corners draw at
// fixed size, the four edges stretch along one axis, and the center
// stretches along both (spec §4.5).
type NinePatch struct {
	Texture               types.TextureId
	SrcW, SrcH            int
	Left, Right, Top, Bot int // inset widths, in source texture pixels
}

func (n NinePatch) Measure(ctx *DrawContext, availW, availH int) (int, int) {
	return availW, availH
}

func (n NinePatch) Draw(ctx *DrawContext, x, y, w, h int) error {
	l, r, t, b := n.Left, n.Right, n.Top, n.Bot
	midSrcW := n.SrcW - l - r
	midSrcH := n.SrcH - t - b
	midDstW := w - l - r
	midDstH := h - t - b

	type slice struct{ srcX, srcY, srcW, srcH, dstX, dstY, dstW, dstH int }
	slices := []slice{
		// corners
		{0, 0, l, t, x, y, l, t},
		{n.SrcW - r, 0, r, t, x + w - r, y, r, t},
		{0, n.SrcH - b, l, b, x, y + h - b, l, b},
		{n.SrcW - r, n.SrcH - b, r, b, x + w - r, y + h - b, r, b},
		// edges
		{l, 0, midSrcW, t, x + l, y, midDstW, t},
		{l, n.SrcH - b, midSrcW, b, x + l, y + h - b, midDstW, b},
		{0, t, l, midSrcH, x, y + t, l, midDstH},
		{n.SrcW - r, t, r, midSrcH, x + w - r, y + t, r, midDstH},
		// center
		{l, t, midSrcW, midSrcH, x + l, y + t, midDstW, midDstH},
	}

	for _, s := range slices {
		if s.srcW <= 0 || s.srcH <= 0 || s.dstW <= 0 || s.dstH <= 0 {
			continue
		}
		if err := ctx.Backend.BlitSub(n.Texture, s.srcX, s.srcY, s.srcW, s.srcH, s.dstX, s.dstY, s.dstW, s.dstH); err != nil {
			return err
		}
	}
	return nil
}
