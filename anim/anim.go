// Package anim provides the animation primitives every widget's hover,
// press, and focus transitions are built from (spec §4.5): Tween and
// ColorTween, advanced with tick(dt_ms) and queried with is_finished().
// Both wrap github.com/tanema/gween, the teacher's own tweening
// dependency (see willow's animation.go TweenGroup), adapted from willow's
// node-field animation to the spec's standalone start/end/duration values.
package anim

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/AndrewAltimit/oasis-os-sub003/types"
)

// Easing names the spec's easing catalog (§4.5), each mapped directly onto
// a github.com/tanema/gween/ease function.
type Easing uint8

const (
	Linear Easing = iota
	EaseInQuad
	EaseOutQuad
	EaseInOutQuad
	EaseOutCubic
	EaseInOutCubic
	EaseOutElastic
	EaseOutBounce
)

func (e Easing) fn() ease.TweenFunc {
	switch e {
	case Linear:
		return ease.Linear
	case EaseInQuad:
		return ease.InQuad
	case EaseOutQuad:
		return ease.OutQuad
	case EaseInOutQuad:
		return ease.InOutQuad
	case EaseOutCubic:
		return ease.OutCubic
	case EaseInOutCubic:
		return ease.InOutCubic
	case EaseOutElastic:
		return ease.OutElastic
	case EaseOutBounce:
		return ease.OutBounce
	default:
		return ease.Linear
	}
}

// Tween advances a single float64 value from start to end over duration_ms,
// using the given easing function. The zero value is not usable; use New.
type Tween struct {
	inner    *gween.Tween
	value    float64
	finished bool
}

// New creates a Tween from start to end over durationMs milliseconds.
func New(start, end float64, durationMs int, easing Easing) *Tween {
	durationSec := float32(durationMs) / 1000.0
	return &Tween{
		inner: gween.New(float32(start), float32(end), durationSec, easing.fn()),
		value: start,
	}
}

// Tick advances the tween by dtMs milliseconds and returns the new value.
func (t *Tween) Tick(dtMs int) float64 {
	if t.finished {
		return t.value
	}
	v, finished := t.inner.Update(float32(dtMs) / 1000.0)
	t.value = float64(v)
	t.finished = finished
	return t.value
}

// Value returns the tween's current value without advancing it.
func (t *Tween) Value() float64 { return t.value }

// IsFinished reports whether the tween has reached its end value.
func (t *Tween) IsFinished() bool { return t.finished }

// ColorTween interpolates RGBA component-wise (spec §4.5). Alpha is tweened
// alongside color so a fade-and-recolor can be expressed as one tween.
type ColorTween struct {
	r, g, b, a *Tween
}

// NewColor creates a ColorTween from start to end over durationMs
// milliseconds.
func NewColor(start, end types.Color, durationMs int, easing Easing) *ColorTween {
	return &ColorTween{
		r: New(float64(start.R), float64(end.R), durationMs, easing),
		g: New(float64(start.G), float64(end.G), durationMs, easing),
		b: New(float64(start.B), float64(end.B), durationMs, easing),
		a: New(float64(start.A), float64(end.A), durationMs, easing),
	}
}

// Tick advances every channel by dtMs milliseconds and returns the
// resulting color.
func (c *ColorTween) Tick(dtMs int) types.Color {
	c.r.Tick(dtMs)
	c.g.Tick(dtMs)
	c.b.Tick(dtMs)
	c.a.Tick(dtMs)
	return c.Value()
}

// Value returns the tween's current color without advancing it.
func (c *ColorTween) Value() types.Color {
	return types.Color{
		R: clampByte(c.r.Value()),
		G: clampByte(c.g.Value()),
		B: clampByte(c.b.Value()),
		A: clampByte(c.a.Value()),
	}
}

// IsFinished reports whether every channel has reached its end value.
func (c *ColorTween) IsFinished() bool {
	return c.r.IsFinished() && c.g.IsFinished() && c.b.IsFinished() && c.a.IsFinished()
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
