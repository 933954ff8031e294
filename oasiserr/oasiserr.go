// Package oasiserr defines the error-kind taxonomy shared by every OASIS
// subsystem (spec §7). Every error that crosses a subsystem boundary is
// wrapped in an *Error carrying one of these kinds; "Unknown" is never used.
package oasiserr

import "fmt"

// Kind categorizes an error by the subsystem that raised it.
type Kind uint8

const (
	// Sdi is an object-name error from the scene graph (not found, etc.).
	Sdi Kind = iota
	// Backend is anything the drawing backend signals: init failure,
	// texture allocation failure, TLS setup failure surfaced through a
	// backend, and so on.
	Backend
	// Config is a malformed manifest, hosts file, or plugin INI file.
	Config
	// Vfs is a virtual-filesystem path error.
	Vfs
	// Command is a bad argument at the command-interpreter boundary.
	Command
	// Platform is a time/power/USB/on-screen-keyboard query failing on an
	// unsupported backend.
	Platform
	// Wm is a window-manager error: window id not found or already exists.
	Wm
	// Plugin is a plugin load failure.
	Plugin
	// Io is a transport read/write failure.
	Io
	// TomlParse is a malformed TOML configuration document.
	TomlParse
	// JsonParse is a malformed JSON configuration document.
	JsonParse
	// HtmlParse exists for completeness of the taxonomy but is never
	// constructed: the HTML tokenizer and tree builder are total functions
	// that always produce a best-effort Document instead of failing.
	HtmlParse
	// CssParse exists for completeness of the taxonomy but is never
	// constructed, for the same reason as HtmlParse: malformed CSS yields
	// an empty or partial stylesheet, never an error.
	CssParse
)

// String names the kind for log lines and error messages.
func (k Kind) String() string {
	switch k {
	case Sdi:
		return "sdi"
	case Backend:
		return "backend"
	case Config:
		return "config"
	case Vfs:
		return "vfs"
	case Command:
		return "command"
	case Platform:
		return "platform"
	case Wm:
		return "wm"
	case Plugin:
		return "plugin"
	case Io:
		return "io"
	case TomlParse:
		return "toml_parse"
	case JsonParse:
		return "json_parse"
	case HtmlParse:
		return "html_parse"
	case CssParse:
		return "css_parse"
	default:
		return "unknown"
	}
}

// Error is the wrapped error type propagated across subsystem boundaries.
// The browser's HTML/CSS tokenizers and parsers never construct one of
// these: spec §7 specifies them as total, returning a best-effort result
// rather than an error.
type Error struct {
	Kind Kind
	Op   string // the operation that failed, e.g. "vfs.Write"
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Op)
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an *Error with no underlying cause.
func New(kind Kind, op string) *Error {
	return &Error{Kind: kind, Op: op}
}

// Wrap constructs an *Error wrapping an underlying cause. Returns nil if err
// is nil, so callers can write `return oasiserr.Wrap(Vfs, "vfs.Read", err)`
// unconditionally.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ae, ok := err.(*Error); ok {
			e = ae
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
