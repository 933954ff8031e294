package backend

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/AndrewAltimit/oasis-os-sub003/types"
)

// Ebiten is a desktop-host Backend built on Ebitengine, the teacher's own
// rendering dependency. It targets a host capable of a real GPU surface;
// Software remains the backend the browser engine and widget tests run
// against, since it needs no display.
//
// Text has no scalable font wired in by default (LoadTTFFont in the
// original willow teacher shows how to attach one via
// github.com/hajimehoshi/ebiten/v2/text/v2); until a font is attached, text
// falls back to the same fixed monospace glyph cell Software uses, so
// layout measured against either backend agrees.
type Ebiten struct {
	screen        *ebiten.Image
	width, height int
	textures      map[types.TextureId]*ebiten.Image
	nextTexID     types.TextureId
	clipStack     []clipFrame
	clipStyle     ClipStyle
}

// NewEbiten creates an uninitialized Ebiten backend. screen must be set via
// SetTarget before any draw call (typically once per frame, from the host
// application's ebiten.Game.Draw).
func NewEbiten() *Ebiten {
	return &Ebiten{textures: make(map[types.TextureId]*ebiten.Image)}
}

// SetTarget points subsequent draw calls at the given screen image. Called
// once per frame by the host's ebiten.Game.Draw before SDI.DrawAll.
func (e *Ebiten) SetTarget(screen *ebiten.Image) { e.screen = screen }

func (e *Ebiten) Init(width, height int) error {
	if e.width != 0 || e.height != 0 {
		return errf("Init", "already initialized")
	}
	e.width, e.height = width, height
	return nil
}

func (e *Ebiten) Clear(c types.Color) error {
	if e.screen != nil {
		e.screen.Fill(toNRGBA(c))
	}
	return nil
}

func (e *Ebiten) SwapBuffers() error { return nil } // ebiten owns the swap chain

func (e *Ebiten) Shutdown() error {
	for id := range e.textures {
		delete(e.textures, id)
	}
	return nil
}

func toNRGBA(c types.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func (e *Ebiten) currentClip() (types.Rect, bool) {
	if len(e.clipStack) == 0 {
		return types.Rect{}, false
	}
	top := e.clipStack[len(e.clipStack)-1]
	return types.Rect{X: top.x, Y: top.y, W: top.w, H: top.h}, true
}

// target returns the image draw calls should hit, honoring an active clip
// rect via SubImage.
func (e *Ebiten) target() *ebiten.Image {
	if e.screen == nil {
		return nil
	}
	if clip, ok := e.currentClip(); ok {
		sub := e.screen.SubImage(image.Rect(clip.X, clip.Y, clip.X+clip.W, clip.Y+clip.H))
		return sub.(*ebiten.Image)
	}
	return e.screen
}

func (e *Ebiten) FillRect(x, y, w, h int, c types.Color) error {
	if t := e.target(); t != nil {
		vector.DrawFilledRect(t, float32(x), float32(y), float32(w), float32(h), toNRGBA(c), false)
	}
	return nil
}

// FillRoundedRect approximates the rounded rect with a plain rect plus
// corner circles; a full arc-based path is unnecessary at the 480x272
// virtual screen's typical radii (a handful of pixels).
func (e *Ebiten) FillRoundedRect(x, y, w, h, radius int, c types.Color) error {
	t := e.target()
	if t == nil {
		return nil
	}
	col := toNRGBA(c)
	if radius <= 0 {
		vector.DrawFilledRect(t, float32(x), float32(y), float32(w), float32(h), col, false)
		return nil
	}
	r := float32(radius)
	vector.DrawFilledRect(t, float32(x+radius), float32(y), float32(w-2*radius), float32(h), col, false)
	vector.DrawFilledRect(t, float32(x), float32(y+radius), float32(w), float32(h-2*radius), col, false)
	corners := [4][2]int{{x + radius, y + radius}, {x + w - radius, y + radius}, {x + radius, y + h - radius}, {x + w - radius, y + h - radius}}
	for _, c0 := range corners {
		vector.DrawFilledCircle(t, float32(c0[0]), float32(c0[1]), r, col, false)
	}
	return nil
}

func (e *Ebiten) StrokeRect(x, y, w, h, width int, c types.Color) error {
	if t := e.target(); t != nil {
		vector.StrokeRect(t, float32(x), float32(y), float32(w), float32(h), float32(width), toNRGBA(c), false)
	}
	return nil
}

// StrokeRoundedRect falls back to a plain stroked rect; see FillRoundedRect.
func (e *Ebiten) StrokeRoundedRect(x, y, w, h, radius, width int, c types.Color) error {
	return e.StrokeRect(x, y, w, h, width, c)
}

func (e *Ebiten) FillCircle(cx, cy, r int, c types.Color) error {
	if t := e.target(); t != nil {
		vector.DrawFilledCircle(t, float32(cx), float32(cy), float32(r), toNRGBA(c), false)
	}
	return nil
}

func (e *Ebiten) StrokeCircle(cx, cy, r, width int, c types.Color) error {
	if t := e.target(); t != nil {
		vector.StrokeCircle(t, float32(cx), float32(cy), float32(r), float32(width), toNRGBA(c), false)
	}
	return nil
}

func (e *Ebiten) DrawLine(x0, y0, x1, y1, width int, c types.Color) error {
	if t := e.target(); t != nil {
		vector.StrokeLine(t, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), toNRGBA(c), false)
	}
	return nil
}

// --- Text (fixed glyph cell fallback; see type doc) ---

func (e *Ebiten) DrawText(text string, x, y, fontSize int, c types.Color) error {
	for i, r := range text {
		if r == ' ' || r == '\n' {
			continue
		}
		if err := e.FillRect(x+i*glyphWidth+1, y+1, glyphWidth-2, glyphHeight-2, c); err != nil {
			return err
		}
	}
	return nil
}

func (e *Ebiten) DrawTextWrapped(text string, x, y, fontSize int, c types.Color, maxWidth, lineHeight int) error {
	for i, line := range wrapLines(text, maxWidth) {
		if err := e.DrawText(line, x, y+i*lineHeight, fontSize, c); err != nil {
			return err
		}
	}
	return nil
}

func (e *Ebiten) DrawTextEllipsis(text string, x, y, fontSize int, c types.Color, maxWidth int) error {
	maxGlyphs := maxWidth / glyphWidth
	out := text
	runes := []rune(text)
	if len(runes)*glyphWidth > maxWidth && maxGlyphs > 1 {
		out = string(runes[:maxGlyphs-1]) + "…"
	}
	return e.DrawText(out, x, y, fontSize, c)
}

func (e *Ebiten) MeasureText(text string, fontSize int) (int, error) {
	return len([]rune(text)) * glyphWidth, nil
}

func (e *Ebiten) MeasureTextHeight(fontSize int) (int, error) {
	return glyphHeight, nil
}

// --- Textures ---

func (e *Ebiten) LoadTexture(w, h int, rgba []byte) (types.TextureId, error) {
	if len(rgba) != w*h*4 {
		return types.NoTexture, errf("LoadTexture", "size mismatch: want %d bytes, got %d", w*h*4, len(rgba))
	}
	img := ebiten.NewImage(w, h)
	img.WritePixels(rgba)
	e.nextTexID++
	e.textures[e.nextTexID] = img
	return e.nextTexID, nil
}

func (e *Ebiten) DestroyTexture(id types.TextureId) error {
	if img, ok := e.textures[id]; ok {
		img.Deallocate()
		delete(e.textures, id)
	}
	return nil
}

func (e *Ebiten) Blit(id types.TextureId, x, y, w, h int) error {
	img := e.textures[id]
	if img == nil {
		return nil
	}
	b := img.Bounds()
	return e.BlitSub(id, 0, 0, b.Dx(), b.Dy(), x, y, w, h)
}

func (e *Ebiten) BlitSub(id types.TextureId, srcX, srcY, srcW, srcH, dstX, dstY, dstW, dstH int) error {
	return e.blitSub(id, srcX, srcY, srcW, srcH, dstX, dstY, dstW, dstH, types.White)
}

func (e *Ebiten) BlitSubTinted(id types.TextureId, srcX, srcY, srcW, srcH, dstX, dstY, dstW, dstH int, tint types.Color) error {
	return e.blitSub(id, srcX, srcY, srcW, srcH, dstX, dstY, dstW, dstH, tint)
}

func (e *Ebiten) blitSub(id types.TextureId, srcX, srcY, srcW, srcH, dstX, dstY, dstW, dstH int, tint types.Color) error {
	t := e.target()
	img := e.textures[id]
	if t == nil || img == nil || srcW <= 0 || srcH <= 0 {
		return nil
	}
	sub := img.SubImage(image.Rect(srcX, srcY, srcX+srcW, srcY+srcH)).(*ebiten.Image)
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(dstW)/float64(srcW), float64(dstH)/float64(srcH))
	op.GeoM.Translate(float64(dstX), float64(dstY))
	if tint != types.White {
		op.ColorScale.ScaleWithColor(toNRGBA(tint))
	}
	t.DrawImage(sub, &op)
	return nil
}

// --- Clipping ---

func (e *Ebiten) SetClipRect(x, y, w, h int) error {
	if e.clipStyle == ClipStylePushPop {
		return errf("SetClipRect", "mixed clip styles: push/pop already in use")
	}
	e.clipStyle = ClipStyleSetReset
	e.clipStack = []clipFrame{{x, y, w, h}}
	return nil
}

func (e *Ebiten) ResetClipRect() error {
	e.clipStack = nil
	e.clipStyle = ClipStyleNone
	return nil
}

func (e *Ebiten) PushClipRect(x, y, w, h int) error {
	if e.clipStyle == ClipStyleSetReset {
		return errf("PushClipRect", "mixed clip styles: set/reset already in use")
	}
	e.clipStyle = ClipStylePushPop
	cur, ok := e.currentClip()
	if !ok {
		cur = types.Rect{X: 0, Y: 0, W: e.width, H: e.height}
	}
	next, intersects := cur.Intersection(types.Rect{X: x, Y: y, W: w, H: h})
	if !intersects {
		next = types.Rect{}
	}
	e.clipStack = append(e.clipStack, clipFrame{next.X, next.Y, next.W, next.H})
	return nil
}

func (e *Ebiten) PopClipRect() error {
	if len(e.clipStack) == 0 {
		return errf("PopClipRect", "clip stack empty")
	}
	e.clipStack = e.clipStack[:len(e.clipStack)-1]
	if len(e.clipStack) == 0 {
		e.clipStyle = ClipStyleNone
	}
	return nil
}

// --- Readback ---

func (e *Ebiten) ReadPixels(x, y, w, h int) ([]byte, error) {
	if e.screen == nil {
		return make([]byte, w*h*4), nil
	}
	sub := e.screen.SubImage(image.Rect(x, y, x+w, y+h)).(*ebiten.Image)
	out := make([]byte, w*h*4)
	sub.ReadPixels(out)
	return out, nil
}
