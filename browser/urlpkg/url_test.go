package urlpkg

import "testing"

func TestParseAbsolute(t *testing.T) {
	u, err := Parse("https://example.com/a/b?x=1#frag", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if u.Scheme != "https" || u.Host != "example.com" || u.Path != "/a/b" || u.Query != "x=1" || u.Fragment != "frag" {
		t.Errorf("Parse = %+v", u)
	}
	if u.Port != 443 {
		t.Errorf("Port = %d, want 443", u.Port)
	}
}

func TestParseVfs(t *testing.T) {
	u, err := Parse("vfs://sites/example.com/index.html", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if u.Scheme != "vfs" || u.Host != "sites" || u.Path != "/example.com/index.html" {
		t.Errorf("Parse = %+v", u)
	}
}

func TestParseRelativeNeedsBase(t *testing.T) {
	if _, err := Parse("/a/b", nil); err == nil {
		t.Fatal("expected error resolving a relative URL without a base")
	}
}

func TestResolveRelativeAgainstBase(t *testing.T) {
	base, _ := Parse("https://example.com/dir/page.html", nil)
	u, err := Parse("other.html", &base)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if u.Path != "/dir/other.html" {
		t.Errorf("Path = %q, want /dir/other.html", u.Path)
	}
	if u.Host != "example.com" {
		t.Errorf("Host = %q, want example.com", u.Host)
	}
}

func TestResolveAbsolutePathAgainstBase(t *testing.T) {
	base, _ := Parse("https://example.com/dir/page.html", nil)
	u, err := Parse("/other/page.html", &base)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if u.Path != "/other/page.html" {
		t.Errorf("Path = %q", u.Path)
	}
}

func TestResolveFragmentOnly(t *testing.T) {
	base, _ := Parse("https://example.com/dir/page.html", nil)
	u, err := Parse("#section2", &base)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if u.Path != "/dir/page.html" || u.Fragment != "section2" {
		t.Errorf("Parse = %+v", u)
	}
}

func TestGeminiDefaultPort(t *testing.T) {
	u, err := Parse("gemini://example.com/", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if u.Port != 1965 {
		t.Errorf("Port = %d, want 1965", u.Port)
	}
}
