// Package paint walks a layout tree and rasterizes it through a
// backend.Backend (spec §4.10): background, border, image, text, then
// children in document order so later siblings paint above earlier ones.
package paint

import (
	"github.com/AndrewAltimit/oasis-os-sub003/backend"
	"github.com/AndrewAltimit/oasis-os-sub003/browser/layout"
	"github.com/AndrewAltimit/oasis-os-sub003/types"
)

// Link records a painted rectangle's hit area and its target URL, for hit
// testing against pointer input.
type Link struct {
	Rect types.Rect
	URL  string
}

// Viewport is the visible window a layout tree paints into, with a
// vertical scroll offset applied to every emitted coordinate.
type Viewport struct {
	X, Y, W, H int
	ScrollY    int
}

func (v Viewport) rect() types.Rect { return types.Rect{X: v.X, Y: v.Y, W: v.W, H: v.H} }

// Paint draws box (and its descendants) into be, culling boxes fully
// outside viewport and pushing a clip rect when overflow is hidden. It
// appends to linkMap every painted box whose source node is an <a href>.
func Paint(be backend.Backend, box *layout.Box, vp Viewport, linkMap *[]Link) error {
	return paintBox(be, box, vp, linkMap)
}

func paintBox(be backend.Backend, box *layout.Box, vp Viewport, linkMap *[]Link) error {
	if box == nil {
		return nil
	}
	absY := box.Y - vp.ScrollY
	boxRect := types.Rect{X: box.X, Y: absY, W: box.W, H: box.H}
	if _, overlaps := boxRect.Intersection(vp.rect()); !overlaps {
		return nil
	}

	clipHere := false
	if box.Style != nil && box.Style.Get("overflow") == "hidden" {
		if err := be.PushClipRect(box.X, absY, box.W, box.H); err != nil {
			return err
		}
		clipHere = true
	}

	if box.Background != (types.Color{}) {
		if box.BorderRadius > 0 {
			if err := be.FillRoundedRect(box.X, absY, box.W, box.H, box.BorderRadius, box.Background); err != nil {
				return popAndReturn(be, clipHere, err)
			}
		} else {
			if err := be.FillRect(box.X, absY, box.W, box.H, box.Background); err != nil {
				return popAndReturn(be, clipHere, err)
			}
		}
	}

	if box.BorderWidth > 0 {
		if err := be.StrokeRect(box.X, absY, box.W, box.H, box.BorderWidth, box.BorderColor); err != nil {
			return popAndReturn(be, clipHere, err)
		}
	}

	if box.HasImage {
		if box.ImageTex != types.NoTexture {
			if err := be.Blit(box.ImageTex, box.X, absY, box.W, box.H); err != nil {
				return popAndReturn(be, clipHere, err)
			}
		} else {
			// no texture loaded: draw the placeholder box boundary only,
			// sized per layout.MaxImageDimension (already applied at layout time).
			if err := be.StrokeRect(box.X, absY, box.W, box.H, 1, types.Color{R: 128, G: 128, B: 128, A: 255}); err != nil {
				return popAndReturn(be, clipHere, err)
			}
		}
	}

	if box.Text != "" {
		fontSize := 16
		if box.Style != nil {
			fontSize = int(fontSizeOf(box.Style))
		}
		if err := be.DrawText(box.Text, box.X, absY, fontSize, box.TextColor); err != nil {
			return popAndReturn(be, clipHere, err)
		}
	}

	if linkMap != nil && box.Node != nil && box.Node.Tag == "a" {
		if href, ok := box.Node.Attr("href"); ok {
			*linkMap = append(*linkMap, Link{Rect: boxRect, URL: href})
		}
	}

	for _, child := range box.Children {
		if err := paintBox(be, child, vp, linkMap); err != nil {
			return popAndReturn(be, clipHere, err)
		}
	}

	if clipHere {
		return be.PopClipRect()
	}
	return nil
}

func popAndReturn(be backend.Backend, clipHere bool, err error) error {
	if clipHere {
		be.PopClipRect()
	}
	return err
}

func fontSizeOf(style interface{ Get(string) string }) float64 {
	v := style.Get("font-size")
	n := 0.0
	for _, r := range v {
		if r >= '0' && r <= '9' {
			n = n*10 + float64(r-'0')
		} else {
			break
		}
	}
	if n == 0 {
		return 16
	}
	return n
}
