// Package sdi implements the Scene Description Index: a retained-mode,
// name-keyed scene graph of positioned drawing primitives (spec §3, §4.3).
// Unlike willow's Node tree, the SDI has no parent/child hierarchy — every
// object is flat, addressed by a unique string name, and re-set every frame
// by whichever widget or window owns it ("diff-free set every frame").
package sdi

import (
	"sort"

	"github.com/AndrewAltimit/oasis-os-sub003/backend"
	"github.com/AndrewAltimit/oasis-os-sub003/oasiserr"
	"github.com/AndrewAltimit/oasis-os-sub003/types"
)

// ShadowSpec describes a drop shadow rendered behind an object's fill.
type ShadowSpec struct {
	OffsetX, OffsetY int
	Blur             int
	Color            types.Color
}

// StrokeSpec describes an object's outline.
type StrokeSpec struct {
	Width int
	Color types.Color
}

// TextSpec describes an object's text content.
type TextSpec struct {
	Content  string
	FontSize int
	Color    types.Color
	MaxWidth int // 0 means unbounded
}

// Object is a single named, positioned drawing primitive owned by the SDI
// registry. Create it via Registry.Create and mutate the returned pointer
// directly; there is no separate setter API, matching willow's Node, whose
// fields are public and mutated in place.
type Object struct {
	Name string

	X, Y, W, H int
	Z          int // signed Z-order; ties broken by insertion order
	Visible    bool

	Texture types.TextureId
	Fill    *types.Color // nil means no fill
	Radius  int          // border radius, fill/stroke rounded when > 0
	Stroke  *StrokeSpec  // nil means no stroke
	Text    *TextSpec    // nil means no text
	Overlay bool         // forces this object to render after all non-overlay objects
	Shadow  *ShadowSpec  // nil means no shadow
	Clip    *types.Rect  // nil means no clipping

	insertSeq uint64
}

// Registry owns every currently-visible SDI object.
type Registry struct {
	objects map[string]*Object
	seq     uint64
	drawBuf []*Object // reused sort buffer
}

// NewRegistry creates an empty SDI registry.
func NewRegistry() *Registry {
	return &Registry{objects: make(map[string]*Object)}
}

// Create inserts a default-initialized object under name, or returns the
// existing object if name is already present (idempotent upsert), matching
// spec §4.3's "create(name) -> &mut Object ... if name exists, returns the
// existing object".
func (r *Registry) Create(name string) *Object {
	if obj, ok := r.objects[name]; ok {
		return obj
	}
	r.seq++
	obj := &Object{
		Name:      name,
		Visible:   true,
		insertSeq: r.seq,
	}
	r.objects[name] = obj
	return obj
}

// Get returns the object registered under name.
func (r *Registry) Get(name string) (*Object, error) {
	obj, ok := r.objects[name]
	if !ok {
		return nil, oasiserr.New(oasiserr.Sdi, "Get: "+name+" not found")
	}
	return obj, nil
}

// GetMut is an alias for Get: Object fields are already mutable through the
// returned pointer, so there is no separate read/write accessor pair.
func (r *Registry) GetMut(name string) (*Object, error) { return r.Get(name) }

// Destroy removes and returns the object registered under name. Missing
// names are a no-op (returns nil).
func (r *Registry) Destroy(name string) *Object {
	obj, ok := r.objects[name]
	if !ok {
		return nil
	}
	delete(r.objects, name)
	return obj
}

// Contains reports whether name is currently registered.
func (r *Registry) Contains(name string) bool {
	_, ok := r.objects[name]
	return ok
}

// MoveToTop bumps the named object's Z above every other object's current Z.
// No-op if name is missing.
func (r *Registry) MoveToTop(name string) {
	obj, ok := r.objects[name]
	if !ok {
		return
	}
	maxZ := obj.Z
	for _, o := range r.objects {
		if o != obj && o.Z > maxZ {
			maxZ = o.Z
		}
	}
	obj.Z = maxZ + 1
}

// Len returns the number of registered objects.
func (r *Registry) Len() int { return len(r.objects) }

// Iter calls fn once for each registered object, in unspecified order.
// Use DrawAll's internal ordering when draw order matters.
func (r *Registry) Iter(fn func(*Object)) {
	for _, o := range r.objects {
		fn(o)
	}
}

// drawOrder returns every visible object sorted per spec §4.3: stable sort
// by (Z ascending, insertion order), with Overlay-flagged objects forced to
// the end regardless of Z.
func (r *Registry) drawOrder() []*Object {
	r.drawBuf = r.drawBuf[:0]
	for _, o := range r.objects {
		if o.Visible {
			r.drawBuf = append(r.drawBuf, o)
		}
	}
	sort.SliceStable(r.drawBuf, func(i, j int) bool {
		a, b := r.drawBuf[i], r.drawBuf[j]
		if a.Overlay != b.Overlay {
			return !a.Overlay // non-overlay first
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.insertSeq < b.insertSeq
	})
	return r.drawBuf
}

// DrawAll renders every visible object to backend in Z-then-insertion order,
// honoring the Overlay flag and each object's per-object draw order: shadow
// -> fill -> stroke -> texture/image -> text (spec §4.3).
func (r *Registry) DrawAll(b backend.Backend) error {
	for _, obj := range r.drawOrder() {
		if err := drawObject(b, obj); err != nil {
			return err
		}
	}
	return nil
}

func drawObject(b backend.Backend, obj *Object) error {
	if obj.Clip != nil {
		if err := b.SetClipRect(obj.Clip.X, obj.Clip.Y, obj.Clip.W, obj.Clip.H); err != nil {
			return err
		}
		defer b.ResetClipRect()
	}

	if obj.Shadow != nil {
		sc := obj.Shadow.Color
		sx, sy := obj.X+obj.Shadow.OffsetX, obj.Y+obj.Shadow.OffsetY
		if obj.Radius > 0 {
			if err := b.FillRoundedRect(sx, sy, obj.W, obj.H, obj.Radius, sc); err != nil {
				return err
			}
		} else if err := b.FillRect(sx, sy, obj.W, obj.H, sc); err != nil {
			return err
		}
	}

	if obj.Fill != nil {
		if obj.Radius > 0 {
			if err := b.FillRoundedRect(obj.X, obj.Y, obj.W, obj.H, obj.Radius, *obj.Fill); err != nil {
				return err
			}
		} else if err := b.FillRect(obj.X, obj.Y, obj.W, obj.H, *obj.Fill); err != nil {
			return err
		}
	}

	if obj.Stroke != nil {
		if obj.Radius > 0 {
			if err := b.StrokeRoundedRect(obj.X, obj.Y, obj.W, obj.H, obj.Radius, obj.Stroke.Width, obj.Stroke.Color); err != nil {
				return err
			}
		} else if err := b.StrokeRect(obj.X, obj.Y, obj.W, obj.H, obj.Stroke.Width, obj.Stroke.Color); err != nil {
			return err
		}
	}

	if obj.Texture != types.NoTexture {
		if err := b.Blit(obj.Texture, obj.X, obj.Y, obj.W, obj.H); err != nil {
			return err
		}
	}

	if obj.Text != nil {
		t := obj.Text
		if t.MaxWidth > 0 {
			if err := b.DrawTextWrapped(t.Content, obj.X, obj.Y, t.FontSize, t.Color, t.MaxWidth, t.FontSize+2); err != nil {
				return err
			}
		} else if err := b.DrawText(t.Content, obj.X, obj.Y, t.FontSize, t.Color); err != nil {
			return err
		}
	}
	return nil
}
