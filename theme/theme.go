// Package theme defines the Skin theme: the 9-color palette, font sizes,
// corner radii, and spacing units every widget and window draws with
// (spec §3 Skin theme, §4.5). Themes are plain values, swappable wholesale
// at frame boundaries by the WM and widget layer.
package theme

import "github.com/AndrewAltimit/oasis-os-sub003/types"

// FontSizes holds the xs/sm/md/lg/xl point-size scale.
type FontSizes struct {
	XS, SM, MD, LG, XL int
}

// Spacing holds the theme's base spacing unit and common multiples,
// matching how willow's layout helpers reference a handful of named
// gaps rather than an open-ended scale.
type Spacing struct {
	Unit   int
	Small  int
	Medium int
	Large  int
}

// CornerRadii holds the corner radii used by rounded widgets.
type CornerRadii struct {
	Small, Medium, Large int
}

// Theme is the full palette plus typography/geometry scale. The palette is
// the 9 base colors named by spec §3: Background, Surface, SurfaceVariant,
// Primary, Secondary, Accent, Text, DimText, Border.
type Theme struct {
	Name string

	Background     types.Color
	Surface        types.Color
	SurfaceVariant types.Color
	Primary        types.Color
	Secondary      types.Color
	Accent         types.Color
	Text           types.Color
	DimText        types.Color
	Border         types.Color

	FontSize    FontSizes
	CornerRadii CornerRadii
	Spacing     Spacing

	// Overrides holds per-subsystem palette/geometry overrides, keyed by
	// subsystem name ("wm", "browser", ...). A missing key means the
	// subsystem uses the base Theme unmodified.
	Overrides map[string]*Theme
}

// For returns the effective theme for the named subsystem: its override if
// one is registered, else t itself.
func (t *Theme) For(subsystem string) *Theme {
	if t.Overrides != nil {
		if o, ok := t.Overrides[subsystem]; ok {
			return o
		}
	}
	return t
}

// Override registers subsystem to use th instead of the base theme.
func (t *Theme) Override(subsystem string, th *Theme) {
	if t.Overrides == nil {
		t.Overrides = make(map[string]*Theme)
	}
	t.Overrides[subsystem] = th
}

// Default returns the built-in dark theme. Nothing in this module builds a
// Theme from skin.toml: netcfg.LoadSkinManifest reads only the manifest.
func Default() *Theme {
	return &Theme{
		Name:           "default",
		Background:     types.Color{R: 0x12, G: 0x12, B: 0x16, A: 0xff},
		Surface:        types.Color{R: 0x1e, G: 0x1e, B: 0x24, A: 0xff},
		SurfaceVariant: types.Color{R: 0x2a, G: 0x2a, B: 0x32, A: 0xff},
		Primary:        types.Color{R: 0x4a, G: 0x7c, B: 0xf0, A: 0xff},
		Secondary:      types.Color{R: 0x6c, G: 0x5c, B: 0xd8, A: 0xff},
		Accent:         types.Color{R: 0xf0, G: 0x8a, B: 0x3c, A: 0xff},
		Text:           types.Color{R: 0xf0, G: 0xf0, B: 0xf4, A: 0xff},
		DimText:        types.Color{R: 0x9a, G: 0x9a, B: 0xa6, A: 0xff},
		Border:         types.Color{R: 0x38, G: 0x38, B: 0x42, A: 0xff},

		FontSize:    FontSizes{XS: 8, SM: 10, MD: 12, LG: 16, XL: 20},
		CornerRadii: CornerRadii{Small: 2, Medium: 4, Large: 8},
		Spacing:     Spacing{Unit: 4, Small: 4, Medium: 8, Large: 16},
	}
}
