// Package backend defines the drawing backend contract (spec §4.1): the
// primitive rasterization interface every upstream subsystem (SDI, widgets,
// paint) draws through. Multiple implementations plug in here — see
// Software (a dependency-free in-memory framebuffer, suited to constrained
// targets and tests) and Ebiten (a desktop host backend).
package backend

import (
	"fmt"

	"github.com/AndrewAltimit/oasis-os-sub003/oasiserr"
	"github.com/AndrewAltimit/oasis-os-sub003/types"
)

// ClipStyle records which clip-rect discipline a call site is using, so a
// Backend that implements both styles can detect a caller mixing them
// (spec §4.1: "implementations must use only one style per call site").
type ClipStyle uint8

const (
	ClipStyleNone ClipStyle = iota
	ClipStyleSetReset
	ClipStylePushPop
)

// Backend is the primitive rasterization contract. Every operation that can
// fail returns an error wrapping oasiserr.Backend. Coordinates are clipped
// to the screen; out-of-bounds draws are silent no-ops rather than errors.
type Backend interface {
	// Init performs one-time setup. Calling Init again after a successful
	// call is a programming error (backends may choose to no-op or panic;
	// Software returns a Backend error).
	Init(width, height int) error
	Clear(color types.Color) error
	SwapBuffers() error

	FillRect(x, y, w, h int, color types.Color) error
	FillRoundedRect(x, y, w, h, radius int, color types.Color) error
	StrokeRect(x, y, w, h, width int, color types.Color) error
	StrokeRoundedRect(x, y, w, h, radius, width int, color types.Color) error
	FillCircle(cx, cy, r int, color types.Color) error
	StrokeCircle(cx, cy, r, width int, color types.Color) error
	DrawLine(x0, y0, x1, y1, width int, color types.Color) error

	DrawText(text string, x, y, fontSize int, color types.Color) error
	DrawTextWrapped(text string, x, y, fontSize int, color types.Color, maxWidth, lineHeight int) error
	DrawTextEllipsis(text string, x, y, fontSize int, color types.Color, maxWidth int) error
	MeasureText(text string, fontSize int) (width int, err error)
	MeasureTextHeight(fontSize int) (height int, err error)

	LoadTexture(w, h int, rgba []byte) (types.TextureId, error)
	DestroyTexture(id types.TextureId) error
	Blit(id types.TextureId, x, y, w, h int) error
	BlitSub(id types.TextureId, srcX, srcY, srcW, srcH, dstX, dstY, dstW, dstH int) error
	BlitSubTinted(id types.TextureId, srcX, srcY, srcW, srcH, dstX, dstY, dstW, dstH int, tint types.Color) error

	SetClipRect(x, y, w, h int) error
	ResetClipRect() error
	PushClipRect(x, y, w, h int) error
	PopClipRect() error

	ReadPixels(x, y, w, h int) ([]byte, error)

	Shutdown() error
}

// errf wraps a formatted message as an oasiserr.Backend error.
func errf(op, format string, args ...any) error {
	return oasiserr.Wrap(oasiserr.Backend, op, fmt.Errorf(format, args...))
}

// clipToScreen intersects (x,y,w,h) with the screen bounds, returning
// ok=false when the rect is entirely offscreen (a silent no-op per §4.1).
func clipToScreen(x, y, w, h, screenW, screenH int) (cx, cy, cw, ch int, ok bool) {
	r, okr := types.Rect{X: x, Y: y, W: w, H: h}.Intersection(types.Rect{X: 0, Y: 0, W: screenW, H: screenH})
	if !okr {
		return 0, 0, 0, 0, false
	}
	return r.X, r.Y, r.W, r.H, true
}
