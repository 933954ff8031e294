// Package wm implements the window manager: Z-ordered floating windows
// whose lifecycle drives SDI object creation and destruction (spec §4.4,
// §3 Window).
package wm

import (
	"fmt"

	"github.com/AndrewAltimit/oasis-os-sub003/oasiserr"
	"github.com/AndrewAltimit/oasis-os-sub003/sdi"
	"github.com/AndrewAltimit/oasis-os-sub003/theme"
)

// Kind distinguishes a window's Z-tier.
type Kind uint8

const (
	AppWindow Kind = iota
	Dialog
	Popup
)

// ScreenW and ScreenH are the virtual screen dimensions every window's
// bounds are clamped against (spec §3: "the 480x272 display surface").
const (
	ScreenW = 480
	ScreenH = 272
)

// tierBase spaces each kind's Z values far enough apart that no amount of
// in-tier focus churn can cross into the next tier. Popups always render
// above app windows and dialogs, matching spec §4.4's Z-ordering policy.
const tierBase = 10000

func tierOf(k Kind) int {
	switch k {
	case Popup:
		return 2 * tierBase
	case Dialog:
		return tierBase
	default:
		return 0
	}
}

// Config describes a window to create.
type Config struct {
	Title      string
	X, Y, W, H int
	Kind       Kind
}

// Window is a single floating window tracked by the WM.
type Window struct {
	ID         string
	Title      string
	X, Y, W, H int
	Kind       Kind
	Focused    bool

	z int
}

// sdiPrefix is the deterministic namespace every SDI object owned by this
// window is created under (spec §3: "a prefix derived from the window id").
func (w *Window) sdiPrefix() string { return "window." + w.ID }

func (w *Window) titlebarName() string { return w.sdiPrefix() + ".titlebar" }
func (w *Window) bodyName() string     { return w.sdiPrefix() + ".body" }
func (w *Window) closeName() string    { return w.sdiPrefix() + ".close" }

const titlebarHeight = 20
const closeButtonSize = 14

// WM owns every live window and the Z/focus bookkeeping over them. It is
// never a process-global singleton: each host (or test) owns its own
// instance (spec Design Notes §9).
type WM struct {
	windows map[string]*Window
	order   []string // creation order, for iter_windows and tie-break
	seq     int
	theme   *theme.Theme
}

// New creates an empty WM themed with th.
func New(th *theme.Theme) *WM {
	return &WM{windows: make(map[string]*Window), theme: th}
}

func clampBounds(x, y, w, h int) (int, int, int, int) {
	if w > ScreenW {
		w = ScreenW
	}
	if h > ScreenH {
		h = ScreenH
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x+w > ScreenW {
		x = ScreenW - w
	}
	if y+h > ScreenH {
		y = ScreenH - h
	}
	return x, y, w, h
}

// CreateWindow registers a new window and its SDI objects (titlebar, body,
// close button). Fails with oasiserr.Wm if id already exists.
func (m *WM) CreateWindow(id string, cfg Config, reg *sdi.Registry) (*Window, error) {
	if _, ok := m.windows[id]; ok {
		return nil, oasiserr.New(oasiserr.Wm, fmt.Sprintf("CreateWindow: %q already exists", id))
	}
	x, y, w, h := clampBounds(cfg.X, cfg.Y, cfg.W, cfg.H)
	m.seq++
	win := &Window{ID: id, Title: cfg.Title, X: x, Y: y, W: w, H: h, Kind: cfg.Kind, z: tierOf(cfg.Kind) + m.seq}
	m.windows[id] = win
	m.order = append(m.order, id)

	m.syncSdi(win, reg)
	m.Focus(id, reg)
	return win, nil
}

// syncSdi rewrites win's titlebar/body/close SDI objects from its current
// geometry and the WM's current theme. Called on create and after any
// geometry/focus change.
func (m *WM) syncSdi(win *Window, reg *sdi.Registry) {
	th := m.theme

	body := reg.Create(win.bodyName())
	body.X, body.Y = win.X, win.Y+titlebarHeight
	body.W, body.H = win.W, win.H-titlebarHeight
	body.Z = win.z
	bg := th.Surface
	body.Fill = &bg
	body.Radius = th.CornerRadii.Small

	tb := reg.Create(win.titlebarName())
	tb.X, tb.Y, tb.W, tb.H = win.X, win.Y, win.W, titlebarHeight
	tb.Z = win.z
	titlebarColor := th.SurfaceVariant
	if win.Focused {
		titlebarColor = th.Primary
	}
	tb.Fill = &titlebarColor
	tb.Radius = th.CornerRadii.Small
	tb.Text = &sdi.TextSpec{Content: win.Title, FontSize: th.FontSize.SM, Color: th.Text, MaxWidth: win.W - closeButtonSize - 4}

	closeBtn := reg.Create(win.closeName())
	closeBtn.X = win.X + win.W - closeButtonSize - 2
	closeBtn.Y = win.Y + 2
	closeBtn.W, closeBtn.H = closeButtonSize, closeButtonSize
	closeBtn.Z = win.z
	closeColor := th.Accent
	closeBtn.Fill = &closeColor
	closeBtn.Radius = closeButtonSize / 2
}

// DestroyWindow removes id and atomically destroys all of its SDI objects.
func (m *WM) DestroyWindow(id string, reg *sdi.Registry) error {
	win, ok := m.windows[id]
	if !ok {
		return oasiserr.New(oasiserr.Wm, fmt.Sprintf("DestroyWindow: %q not found", id))
	}
	reg.Destroy(win.titlebarName())
	reg.Destroy(win.bodyName())
	reg.Destroy(win.closeName())
	delete(m.windows, id)
	for i, wid := range m.order {
		if wid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Focus gives id the highest Z within its tier and clears every other
// window's Focused flag; no other window's Z is renumbered (spec §4.4).
func (m *WM) Focus(id string, reg *sdi.Registry) error {
	win, ok := m.windows[id]
	if !ok {
		return oasiserr.New(oasiserr.Wm, fmt.Sprintf("Focus: %q not found", id))
	}
	maxZ := tierOf(win.Kind)
	for _, o := range m.windows {
		if o.Kind == win.Kind && o != win && o.z > maxZ {
			maxZ = o.z
		}
	}
	win.z = maxZ + 1
	for _, o := range m.windows {
		wasFocused := o.Focused
		o.Focused = o == win
		if wasFocused && o != win {
			m.syncSdi(o, reg)
		}
	}
	m.syncSdi(win, reg)
	return nil
}

// MoveWindow shifts id by (dx,dy), clamped to stay within the virtual
// screen, and updates its SDI objects.
func (m *WM) MoveWindow(id string, dx, dy int, reg *sdi.Registry) error {
	win, ok := m.windows[id]
	if !ok {
		return oasiserr.New(oasiserr.Wm, fmt.Sprintf("MoveWindow: %q not found", id))
	}
	x, y, w, h := clampBounds(win.X+dx, win.Y+dy, win.W, win.H)
	win.X, win.Y, win.W, win.H = x, y, w, h
	m.syncSdi(win, reg)
	return nil
}

// ResizeWindow sets id's size to (w,h), clamped to the virtual screen, and
// updates its SDI objects.
func (m *WM) ResizeWindow(id string, w, h int, reg *sdi.Registry) error {
	win, ok := m.windows[id]
	if !ok {
		return oasiserr.New(oasiserr.Wm, fmt.Sprintf("ResizeWindow: %q not found", id))
	}
	x, y, cw, ch := clampBounds(win.X, win.Y, w, h)
	win.X, win.Y, win.W, win.H = x, y, cw, ch
	m.syncSdi(win, reg)
	return nil
}

// GetWindow returns the window registered under id.
func (m *WM) GetWindow(id string) (*Window, error) {
	win, ok := m.windows[id]
	if !ok {
		return nil, oasiserr.New(oasiserr.Wm, fmt.Sprintf("GetWindow: %q not found", id))
	}
	return win, nil
}

// IterWindows calls fn once per window, in creation order.
func (m *WM) IterWindows(fn func(*Window)) {
	for _, id := range m.order {
		fn(m.windows[id])
	}
}

// SetTheme swaps the WM's theme and re-syncs every live window's SDI
// objects against it. Themes may be swapped atomically at frame
// boundaries (spec §4.5).
func (m *WM) SetTheme(th *theme.Theme, reg *sdi.Registry) {
	m.theme = th
	for _, id := range m.order {
		m.syncSdi(m.windows[id], reg)
	}
}
