package backend

import (
	"strings"

	"github.com/AndrewAltimit/oasis-os-sub003/types"
)

// glyphWidth and glyphHeight are the fixed bitmap-font cell size used by
// Software, independent of the requested font size (spec §4.1: "text
// rendering uses a fixed bitmap font of one pixel size ... when no scalable
// font is available").
const (
	glyphWidth  = 6
	glyphHeight = 8
)

type clipFrame struct{ x, y, w, h int }

// Software is a dependency-free in-memory RGBA framebuffer. It satisfies
// the "bare-metal-ish backend with no OS services" half of spec §1 and is
// what the browser engine and widget tests render against, so they don't
// require a display.
type Software struct {
	width, height int
	pix           []byte // RGBA, width*height*4

	textures    map[types.TextureId]*swTexture
	nextTexID   types.TextureId
	clipStack   []clipFrame
	clipStyle   ClipStyle
	initialized bool
}

type swTexture struct {
	w, h int
	pix  []byte
}

// NewSoftware creates an uninitialized Software backend. Call Init before
// issuing draw calls.
func NewSoftware() *Software {
	return &Software{textures: make(map[types.TextureId]*swTexture)}
}

func (s *Software) Init(width, height int) error {
	if s.initialized {
		return errf("Init", "already initialized")
	}
	s.width, s.height = width, height
	s.pix = make([]byte, width*height*4)
	s.initialized = true
	return nil
}

func (s *Software) Clear(color types.Color) error {
	for i := 0; i < len(s.pix); i += 4 {
		s.pix[i], s.pix[i+1], s.pix[i+2], s.pix[i+3] = color.R, color.G, color.B, color.A
	}
	return nil
}

func (s *Software) SwapBuffers() error { return nil }

func (s *Software) Shutdown() error {
	s.pix = nil
	s.textures = map[types.TextureId]*swTexture{}
	s.initialized = false
	return nil
}

// currentClip returns the active clip rect (screen bounds if none pushed).
func (s *Software) currentClip() clipFrame {
	if len(s.clipStack) == 0 {
		return clipFrame{0, 0, s.width, s.height}
	}
	return s.clipStack[len(s.clipStack)-1]
}

func (s *Software) setPixel(x, y int, c types.Color) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	clip := s.currentClip()
	if x < clip.x || y < clip.y || x >= clip.x+clip.w || y >= clip.y+clip.h {
		return
	}
	i := (y*s.width + x) * 4
	if c.A == 255 {
		s.pix[i], s.pix[i+1], s.pix[i+2], s.pix[i+3] = c.R, c.G, c.B, c.A
		return
	}
	if c.A == 0 {
		return
	}
	// Straight alpha blend over the existing pixel.
	a := float64(c.A) / 255
	s.pix[i] = blendByte(s.pix[i], c.R, a)
	s.pix[i+1] = blendByte(s.pix[i+1], c.G, a)
	s.pix[i+2] = blendByte(s.pix[i+2], c.B, a)
	s.pix[i+3] = byte(min(255, int(s.pix[i+3])+int(float64(c.A)*(1-float64(s.pix[i+3])/255))))
}

func blendByte(dst, src byte, a float64) byte {
	return byte(float64(src)*a + float64(dst)*(1-a))
}

func (s *Software) FillRect(x, y, w, h int, color types.Color) error {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			s.setPixel(xx, yy, color)
		}
	}
	return nil
}

// inRoundedRect reports whether (px,py) lies inside a w×h rounded rect with
// the given corner radius, used by both fill and stroke.
func inRoundedRect(px, py, w, h, radius int) bool {
	if radius <= 0 {
		return px >= 0 && px < w && py >= 0 && py < h
	}
	if radius*2 > w {
		radius = w / 2
	}
	if radius*2 > h {
		radius = h / 2
	}
	cx, cy := px, py
	switch {
	case px < radius && py < radius:
		return withinCircle(cx, cy, radius, radius, radius)
	case px >= w-radius && py < radius:
		return withinCircle(cx, cy, w-radius-1, radius, radius)
	case px < radius && py >= h-radius:
		return withinCircle(cx, cy, radius, h-radius-1, radius)
	case px >= w-radius && py >= h-radius:
		return withinCircle(cx, cy, w-radius-1, h-radius-1, radius)
	default:
		return px >= 0 && px < w && py >= 0 && py < h
	}
}

func withinCircle(px, py, cx, cy, r int) bool {
	dx, dy := px-cx, py-cy
	return dx*dx+dy*dy <= r*r
}

func (s *Software) FillRoundedRect(x, y, w, h, radius int, color types.Color) error {
	for yy := 0; yy < h; yy++ {
		for xx := 0; xx < w; xx++ {
			if inRoundedRect(xx, yy, w, h, radius) {
				s.setPixel(x+xx, y+yy, color)
			}
		}
	}
	return nil
}

func (s *Software) StrokeRect(x, y, w, h, width int, color types.Color) error {
	s.strokeRectInternal(x, y, w, h, width, color)
	return nil
}

func (s *Software) strokeRectInternal(x, y, w, h, width int, color types.Color) {
	for i := 0; i < width; i++ {
		for xx := x; xx < x+w; xx++ {
			s.setPixel(xx, y+i, color)
			s.setPixel(xx, y+h-1-i, color)
		}
		for yy := y; yy < y+h; yy++ {
			s.setPixel(x+i, yy, color)
			s.setPixel(x+w-1-i, yy, color)
		}
	}
}

func (s *Software) StrokeRoundedRect(x, y, w, h, radius, width int, color types.Color) error {
	for yy := 0; yy < h; yy++ {
		for xx := 0; xx < w; xx++ {
			if !inRoundedRect(xx, yy, w, h, radius) {
				continue
			}
			// A pixel is on the stroke if within `width` of the boundary:
			// any neighbor within the stroke width fails the inside test.
			onEdge := false
			for d := 1; d <= width && !onEdge; d++ {
				if xx-d < 0 || !inRoundedRect(xx-d, yy, w, h, radius) ||
					xx+d >= w || !inRoundedRect(xx+d, yy, w, h, radius) ||
					yy-d < 0 || !inRoundedRect(xx, yy-d, w, h, radius) ||
					yy+d >= h || !inRoundedRect(xx, yy+d, w, h, radius) {
					onEdge = true
				}
			}
			if onEdge {
				s.setPixel(x+xx, y+yy, color)
			}
		}
	}
	return nil
}

func (s *Software) FillCircle(cx, cy, r int, color types.Color) error {
	for yy := -r; yy <= r; yy++ {
		for xx := -r; xx <= r; xx++ {
			if xx*xx+yy*yy <= r*r {
				s.setPixel(cx+xx, cy+yy, color)
			}
		}
	}
	return nil
}

func (s *Software) StrokeCircle(cx, cy, r, width int, color types.Color) error {
	inner := r - width
	for yy := -r; yy <= r; yy++ {
		for xx := -r; xx <= r; xx++ {
			d2 := xx*xx + yy*yy
			if d2 <= r*r && (inner < 0 || d2 >= inner*inner) {
				s.setPixel(cx+xx, cy+yy, color)
			}
		}
	}
	return nil
}

func (s *Software) DrawLine(x0, y0, x1, y1, width int, color types.Color) error {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	err := dx + dy
	x, y := x0, y0
	half := width / 2
	for {
		for oy := -half; oy <= half; oy++ {
			for ox := -half; ox <= half; ox++ {
				s.setPixel(x+ox, y+oy, color)
			}
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// --- Text: fixed bitmap font, monospace glyph width regardless of fontSize ---

func (s *Software) DrawText(text string, x, y, fontSize int, color types.Color) error {
	s.drawTextAt(text, x, y, color)
	return nil
}

func (s *Software) drawTextAt(text string, x, y int, color types.Color) {
	cx := x
	for _, r := range text {
		if r == '\n' {
			continue
		}
		s.drawGlyph(cx, y, r, color)
		cx += glyphWidth
	}
}

// drawGlyph renders a single glyph cell as a filled block — the
// Software backend has no real font rasterizer, only the fixed-size cell
// geometry spec §4.1 guarantees callers can measure against.
func (s *Software) drawGlyph(x, y int, r rune, color types.Color) {
	if r == ' ' {
		return
	}
	for yy := 1; yy < glyphHeight-1; yy++ {
		for xx := 1; xx < glyphWidth-1; xx++ {
			s.setPixel(x+xx, y+yy, color)
		}
	}
}

func (s *Software) DrawTextWrapped(text string, x, y, fontSize int, color types.Color, maxWidth, lineHeight int) error {
	lines := wrapLines(text, maxWidth)
	for i, line := range lines {
		s.drawTextAt(line, x, y+i*lineHeight, color)
	}
	return nil
}

func (s *Software) DrawTextEllipsis(text string, x, y, fontSize int, color types.Color, maxWidth int) error {
	maxGlyphs := maxWidth / glyphWidth
	out := text
	if len([]rune(text))*glyphWidth > maxWidth && maxGlyphs > 1 {
		runes := []rune(text)
		out = string(runes[:maxGlyphs-1]) + "…"
	}
	s.drawTextAt(out, x, y, color)
	return nil
}

// wrapLines breaks text into lines no wider than maxWidth (in pixels),
// trying each whitespace-delimited word and falling back to splitting a
// single overflowing word when the line is otherwise empty (spec §4.9).
func wrapLines(text string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{text}
	}
	maxGlyphs := maxWidth / glyphWidth
	if maxGlyphs < 1 {
		maxGlyphs = 1
	}
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := ""
		for _, w := range words {
			candidate := w
			if cur != "" {
				candidate = cur + " " + w
			}
			if len([]rune(candidate)) <= maxGlyphs {
				cur = candidate
				continue
			}
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			// word itself overflows: hard-split it
			runes := []rune(w)
			for len(runes) > maxGlyphs {
				lines = append(lines, string(runes[:maxGlyphs]))
				runes = runes[maxGlyphs:]
			}
			cur = string(runes)
		}
		if cur != "" {
			lines = append(lines, cur)
		}
	}
	return lines
}

func (s *Software) MeasureText(text string, fontSize int) (int, error) {
	return len([]rune(text)) * glyphWidth, nil
}

func (s *Software) MeasureTextHeight(fontSize int) (int, error) {
	return glyphHeight, nil
}

// --- Textures ---

func (s *Software) LoadTexture(w, h int, rgba []byte) (types.TextureId, error) {
	if len(rgba) != w*h*4 {
		return types.NoTexture, errf("LoadTexture", "size mismatch: want %d bytes, got %d", w*h*4, len(rgba))
	}
	s.nextTexID++
	id := s.nextTexID
	buf := make([]byte, len(rgba))
	copy(buf, rgba)
	s.textures[id] = &swTexture{w: w, h: h, pix: buf}
	return id, nil
}

func (s *Software) DestroyTexture(id types.TextureId) error {
	delete(s.textures, id)
	return nil
}

func (s *Software) Blit(id types.TextureId, x, y, w, h int) error {
	tex := s.textures[id]
	if tex == nil {
		return nil // silent no-op: destroyed/unknown handle
	}
	return s.BlitSub(id, 0, 0, tex.w, tex.h, x, y, w, h)
}

func (s *Software) BlitSub(id types.TextureId, srcX, srcY, srcW, srcH, dstX, dstY, dstW, dstH int) error {
	return s.blitSubTintedInternal(id, srcX, srcY, srcW, srcH, dstX, dstY, dstW, dstH, types.White)
}

func (s *Software) BlitSubTinted(id types.TextureId, srcX, srcY, srcW, srcH, dstX, dstY, dstW, dstH int, tint types.Color) error {
	return s.blitSubTintedInternal(id, srcX, srcY, srcW, srcH, dstX, dstY, dstW, dstH, tint)
}

func (s *Software) blitSubTintedInternal(id types.TextureId, srcX, srcY, srcW, srcH, dstX, dstY, dstW, dstH int, tint types.Color) error {
	tex := s.textures[id]
	if tex == nil || srcW <= 0 || srcH <= 0 || dstW <= 0 || dstH <= 0 {
		return nil
	}
	for dy := 0; dy < dstH; dy++ {
		sy := srcY + dy*srcH/dstH
		if sy < 0 || sy >= tex.h {
			continue
		}
		for dx := 0; dx < dstW; dx++ {
			sx := srcX + dx*srcW/dstW
			if sx < 0 || sx >= tex.w {
				continue
			}
			i := (sy*tex.w + sx) * 4
			c := types.Color{R: tex.pix[i], G: tex.pix[i+1], B: tex.pix[i+2], A: tex.pix[i+3]}
			c.R = byte(int(c.R) * int(tint.R) / 255)
			c.G = byte(int(c.G) * int(tint.G) / 255)
			c.B = byte(int(c.B) * int(tint.B) / 255)
			c.A = byte(int(c.A) * int(tint.A) / 255)
			s.setPixel(dstX+dx, dstY+dy, c)
		}
	}
	return nil
}

// --- Clipping ---

func (s *Software) SetClipRect(x, y, w, h int) error {
	if s.clipStyle == ClipStylePushPop {
		return errf("SetClipRect", "mixed clip styles: push/pop already in use")
	}
	s.clipStyle = ClipStyleSetReset
	s.clipStack = []clipFrame{{x, y, w, h}}
	return nil
}

func (s *Software) ResetClipRect() error {
	s.clipStack = nil
	s.clipStyle = ClipStyleNone
	return nil
}

func (s *Software) PushClipRect(x, y, w, h int) error {
	if s.clipStyle == ClipStyleSetReset {
		return errf("PushClipRect", "mixed clip styles: set/reset already in use")
	}
	s.clipStyle = ClipStylePushPop
	cur := s.currentClip()
	next, ok := types.Rect{X: cur.x, Y: cur.y, W: cur.w, H: cur.h}.Intersection(types.Rect{X: x, Y: y, W: w, H: h})
	if !ok {
		next = types.Rect{}
	}
	s.clipStack = append(s.clipStack, clipFrame{next.X, next.Y, next.W, next.H})
	return nil
}

func (s *Software) PopClipRect() error {
	if len(s.clipStack) == 0 {
		return errf("PopClipRect", "clip stack empty")
	}
	s.clipStack = s.clipStack[:len(s.clipStack)-1]
	if len(s.clipStack) == 0 {
		s.clipStyle = ClipStyleNone
	}
	return nil
}

// --- Readback ---

func (s *Software) ReadPixels(x, y, w, h int) ([]byte, error) {
	out := make([]byte, w*h*4)
	for yy := 0; yy < h; yy++ {
		for xx := 0; xx < w; xx++ {
			sx, sy := x+xx, y+yy
			di := (yy*w + xx) * 4
			if sx < 0 || sy < 0 || sx >= s.width || sy >= s.height {
				continue
			}
			si := (sy*s.width + sx) * 4
			copy(out[di:di+4], s.pix[si:si+4])
		}
	}
	return out, nil
}
