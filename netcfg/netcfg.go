// Package netcfg loads the TOML-described configuration surfaces named in
// spec §6: the skin manifest bundle (skin.toml/layout.toml/features.toml)
// and the hosts file, plus a hand-rolled reader for the plugin INI format
// (no pack example imports a general INI library, and the grammar is a
// four bespoke keys, so stdlib scanning is justified here — see
// DESIGN.md). TOML decoding uses github.com/BurntSushi/toml, grounded on
// iota-uz-iota-sdk's use of the same library.
package netcfg

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/AndrewAltimit/oasis-os-sub003/oasiserr"
)

// SkinManifest is the decoded skin.toml.
type SkinManifest struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// LayoutTemplate is one named SDI object template from layout.toml.
type LayoutTemplate struct {
	Name   string `toml:"name"`
	X      int    `toml:"x"`
	Y      int    `toml:"y"`
	W      int    `toml:"w"`
	H      int    `toml:"h"`
	Z      int    `toml:"z"`
	Fill   string `toml:"fill"` // hex color, e.g. "#112233"; empty means none
	Radius int    `toml:"radius"`
}

// LayoutFile is the decoded layout.toml: a set of named templates.
type LayoutFile struct {
	Templates []LayoutTemplate `toml:"template"`
}

// FeaturesFile is the decoded features.toml: flat boolean feature flags.
type FeaturesFile struct {
	Browser map[string]bool `toml:"browser"`
	Wm      map[string]bool `toml:"wm"`
}

// LoadSkinManifest parses skin.toml bytes.
func LoadSkinManifest(data []byte) (SkinManifest, error) {
	var m SkinManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return SkinManifest{}, oasiserr.Wrap(oasiserr.TomlParse, "LoadSkinManifest", err)
	}
	return m, nil
}

// LoadLayout parses layout.toml bytes.
func LoadLayout(data []byte) (LayoutFile, error) {
	var l LayoutFile
	if err := toml.Unmarshal(data, &l); err != nil {
		return LayoutFile{}, oasiserr.Wrap(oasiserr.TomlParse, "LoadLayout", err)
	}
	return l, nil
}

// LoadFeatures parses features.toml bytes.
func LoadFeatures(data []byte) (FeaturesFile, error) {
	var f FeaturesFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return FeaturesFile{}, oasiserr.Wrap(oasiserr.TomlParse, "LoadFeatures", err)
	}
	return f, nil
}

// Host is one `[[host]]` entry from the hosts file.
type Host struct {
	Name     string `toml:"name"`
	Address  string `toml:"address"`
	Port     int    `toml:"port"`
	Protocol string `toml:"protocol"`
	Psk      string `toml:"psk"`
}

// HostsFile is the decoded hosts.toml.
type HostsFile struct {
	Hosts []Host `toml:"host"`
}

const (
	defaultHostPort     = 9000
	defaultHostProtocol = "oasis-terminal"
)

// LoadHosts parses hosts.toml bytes, applying the documented defaults
// (port=9000, protocol="oasis-terminal") to entries that omit them.
func LoadHosts(data []byte) (HostsFile, error) {
	var h HostsFile
	if err := toml.Unmarshal(data, &h); err != nil {
		return HostsFile{}, oasiserr.Wrap(oasiserr.TomlParse, "LoadHosts", err)
	}
	for i := range h.Hosts {
		if h.Hosts[i].Port == 0 {
			h.Hosts[i].Port = defaultHostPort
		}
		if h.Hosts[i].Protocol == "" {
			h.Hosts[i].Protocol = defaultHostProtocol
		}
	}
	return h, nil
}

// PluginTrigger selects what arms a plugin's autoplay behavior.
type PluginTrigger uint8

const (
	TriggerNote PluginTrigger = iota
	TriggerScreen
)

// PluginConfig is the decoded plugin INI (spec §6).
type PluginConfig struct {
	Trigger  PluginTrigger
	MusicDir string
	Opacity  int
	Autoplay bool
}

// DefaultPluginConfig returns the documented defaults.
func DefaultPluginConfig() PluginConfig {
	return PluginConfig{
		Trigger:  TriggerNote,
		MusicDir: "ms0:/MUSIC/",
		Opacity:  180,
		Autoplay: false,
	}
}

// LoadPluginConfig parses the plugin INI format: `key = value` lines,
// `#`-prefixed comments, case-insensitive keys, unknown keys ignored.
func LoadPluginConfig(data []byte) (PluginConfig, error) {
	cfg := DefaultPluginConfig()
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		val = strings.TrimSpace(val)

		switch key {
		case "trigger":
			switch strings.ToLower(val) {
			case "note":
				cfg.Trigger = TriggerNote
			case "screen":
				cfg.Trigger = TriggerScreen
			}
		case "music_dir":
			cfg.MusicDir = val
		case "opacity":
			n, err := strconv.Atoi(val)
			if err != nil {
				return cfg, oasiserr.Wrap(oasiserr.Config, "LoadPluginConfig", fmt.Errorf("opacity: %w", err))
			}
			if n < 0 {
				n = 0
			}
			if n > 255 {
				n = 255
			}
			cfg.Opacity = n
		case "autoplay":
			cfg.Autoplay = strings.EqualFold(val, "true")
		}
	}
	if err := scanner.Err(); err != nil {
		return cfg, oasiserr.Wrap(oasiserr.Config, "LoadPluginConfig", err)
	}
	return cfg, nil
}
