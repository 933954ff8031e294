// Package types holds the value types shared across every OASIS subsystem:
// colors, vectors, rectangles, and the opaque handles a drawing backend
// hands back to its callers.
package types

// Color is an RGBA color with byte channels (0-255 per component).
// Never assumed premultiplied; backends premultiply at submission time if
// their compositing model requires it.
type Color struct {
	R, G, B, A uint8
}

// White is the default tint (no color modification).
var White = Color{255, 255, 255, 255}

// Black is fully opaque black.
var Black = Color{0, 0, 0, 255}

// Transparent is fully transparent black.
var Transparent = Color{0, 0, 0, 0}

// Vec2 is a 2D vector used for positions, offsets, and sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned integer-pixel rectangle with the origin at the
// top-left and Y increasing downward, matching the virtual screen's
// coordinate system (§6 of the spec).
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Intersects reports whether r and other overlap. Adjacent rectangles
// (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Intersection returns the overlapping rectangle of r and other, or the
// zero Rect with ok=false when they don't overlap.
func (r Rect) Intersection(other Rect) (Rect, bool) {
	x0, y0 := max(r.X, other.X), max(r.Y, other.Y)
	x1, y1 := min(r.X+r.W, other.X+other.W), min(r.Y+r.H, other.Y+other.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}, false
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}, true
}

// FRect is a float-pixel rectangle used by the layout engine, where geometry
// is computed with subpixel precision before being rounded at paint time.
type FRect struct {
	X, Y, W, H float64
}

// TextureId is an opaque handle to a texture allocated and owned by a
// Backend. Valid only for the backend instance that created it; invalidated
// when that backend's DestroyTexture is called on it.
type TextureId uint64

// NoTexture is the zero value, meaning "no texture attached".
const NoTexture TextureId = 0

// AudioTrackId is an opaque handle to an audio resource. Owned by an
// external audio collaborator (§1 out-of-scope); defined here only so that
// shared data structures (e.g. widget or skin descriptors) can reference an
// audio cue without depending on the audio subsystem.
type AudioTrackId uint64

// NoAudioTrack is the zero value, meaning "no audio track attached".
const NoAudioTrack AudioTrackId = 0
