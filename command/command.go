// Package command defines the Environment contract passed to every
// external command and the Output variant types commands return (spec §6).
// The command interpreter itself is a host application concern and out of
// scope here (spec §1 Non-goals); this package only fixes the boundary
// types the interpreter and host must agree on.
package command

import (
	"time"

	"github.com/AndrewAltimit/oasis-os-sub003/nettls"
	"github.com/AndrewAltimit/oasis-os-sub003/vfs"
)

// PowerService reports host power state for commands that query it.
type PowerService interface {
	BatteryPercent() (int, error)
	IsCharging() (bool, error)
}

// TimeService reports host wall-clock time.
type TimeService interface {
	Now() time.Time
}

// UsbService reports host USB mass-storage connectivity.
type UsbService interface {
	Connected() bool
}

// NetworkService exposes raw TCP dialing for commands that need it
// directly (most network access instead goes through the browser loader).
type NetworkService interface {
	Dial(address string, port int) (nettls.Stream, error)
}

// Stdin is a line-oriented input source for commands that prompt
// interactively.
type Stdin interface {
	ReadLine() (string, error)
}

// Environment is passed to every command invocation. Cwd is mutable: a
// command that changes directory mutates it in place. The optional
// services are nil when the host doesn't support them; commands that need
// one must check for nil and fail gracefully rather than assume presence.
type Environment struct {
	Cwd string
	Vfs *vfs.FS

	Power   PowerService
	Time    TimeService
	Usb     UsbService
	Network NetworkService
	Tls     nettls.Provider
	Stdin   Stdin
}

// Output is the result of running a command. Exactly one field-group is
// meaningful per Kind; see the OutputKind constants.
type Output struct {
	Kind OutputKind

	Text string // Kind == OutputText

	TableHeaders []string   // Kind == OutputTable
	TableRows    [][]string // Kind == OutputTable

	ListenPort int // Kind == OutputListenToggle

	RemoteAddress string // Kind == OutputRemoteConnect
	RemotePort    int
	RemotePsk     string

	BrowserSandbox bool // Kind == OutputBrowserSandbox

	SkinName string // Kind == OutputSkinSwap
}

// OutputKind discriminates Output's variant (spec §6's Command output
// enumeration: Text/Table/Clear/None/ListenToggle/RemoteConnect/
// BrowserSandbox/SkinSwap).
type OutputKind uint8

const (
	OutputNone OutputKind = iota
	OutputText
	OutputTable
	OutputClear
	OutputListenToggle
	OutputRemoteConnect
	OutputBrowserSandbox
	OutputSkinSwap
)

// Text builds a Text output.
func Text(s string) Output { return Output{Kind: OutputText, Text: s} }

// Table builds a Table output.
func Table(headers []string, rows [][]string) Output {
	return Output{Kind: OutputTable, TableHeaders: headers, TableRows: rows}
}

// Clear builds a Clear output.
func Clear() Output { return Output{Kind: OutputClear} }

// None builds a None output.
func None() Output { return Output{Kind: OutputNone} }

// ListenToggle builds a ListenToggle output.
func ListenToggle(port int) Output { return Output{Kind: OutputListenToggle, ListenPort: port} }

// RemoteConnect builds a RemoteConnect output.
func RemoteConnect(address string, port int, psk string) Output {
	return Output{Kind: OutputRemoteConnect, RemoteAddress: address, RemotePort: port, RemotePsk: psk}
}

// BrowserSandbox builds a BrowserSandbox output. The core consumes this
// variant directly (spec §6): it toggles the loader's sandbox_only mode.
func BrowserSandbox(enabled bool) Output {
	return Output{Kind: OutputBrowserSandbox, BrowserSandbox: enabled}
}

// SkinSwap builds a SkinSwap output. The core consumes this variant
// directly (spec §6): it loads and applies the named skin.
func SkinSwap(name string) Output { return Output{Kind: OutputSkinSwap, SkinName: name} }

// Command is anything the interpreter can invoke by name.
type Command interface {
	Run(env *Environment, args []string) (Output, error)
}
