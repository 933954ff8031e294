package netcfg

import "testing"

func TestLoadPluginConfigDefaults(t *testing.T) {
	cfg, err := LoadPluginConfig([]byte(""))
	if err != nil {
		t.Fatalf("LoadPluginConfig: %v", err)
	}
	want := DefaultPluginConfig()
	if cfg != want {
		t.Errorf("LoadPluginConfig(empty) = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoadPluginConfigParsesAndClampsOpacity(t *testing.T) {
	src := []byte(`
# a comment
TRIGGER = screen
music_dir = ms0:/SONGS/
opacity = 999
autoplay = true
unknown_key = ignored
`)
	cfg, err := LoadPluginConfig(src)
	if err != nil {
		t.Fatalf("LoadPluginConfig: %v", err)
	}
	if cfg.Trigger != TriggerScreen {
		t.Errorf("Trigger = %v, want TriggerScreen", cfg.Trigger)
	}
	if cfg.MusicDir != "ms0:/SONGS/" {
		t.Errorf("MusicDir = %q", cfg.MusicDir)
	}
	if cfg.Opacity != 255 {
		t.Errorf("Opacity = %d, want clamped to 255", cfg.Opacity)
	}
	if !cfg.Autoplay {
		t.Error("expected Autoplay = true")
	}
}

func TestLoadHostsAppliesDefaults(t *testing.T) {
	src := []byte(`
[[host]]
name = "home"
address = "10.0.0.5"

[[host]]
name = "lab"
address = "10.0.0.6"
port = 1234
protocol = "custom"
`)
	hosts, err := LoadHosts(src)
	if err != nil {
		t.Fatalf("LoadHosts: %v", err)
	}
	if len(hosts.Hosts) != 2 {
		t.Fatalf("len(Hosts) = %d, want 2", len(hosts.Hosts))
	}
	if hosts.Hosts[0].Port != 9000 || hosts.Hosts[0].Protocol != "oasis-terminal" {
		t.Errorf("host[0] defaults not applied: %+v", hosts.Hosts[0])
	}
	if hosts.Hosts[1].Port != 1234 || hosts.Hosts[1].Protocol != "custom" {
		t.Errorf("host[1] explicit values not preserved: %+v", hosts.Hosts[1])
	}
}

func TestLoadSkinManifest(t *testing.T) {
	m, err := LoadSkinManifest([]byte(`name = "dark"` + "\n" + `version = "1.0"`))
	if err != nil {
		t.Fatalf("LoadSkinManifest: %v", err)
	}
	if m.Name != "dark" || m.Version != "1.0" {
		t.Errorf("LoadSkinManifest = %+v", m)
	}
}
