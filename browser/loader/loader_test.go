package loader

import (
	"testing"

	"github.com/AndrewAltimit/oasis-os-sub003/browser/urlpkg"
	"github.com/AndrewAltimit/oasis-os-sub003/vfs"
)

func mustParse(t *testing.T, raw string) urlpkg.URL {
	t.Helper()
	u, err := urlpkg.Parse(raw, nil)
	if err != nil {
		t.Fatalf("Parse(%q): %v", raw, err)
	}
	return u
}

func TestMapSandboxPathHTTPDirectory(t *testing.T) {
	u := mustParse(t, "http://example.com/blog/")
	got, err := MapSandboxPath(u)
	if err != nil {
		t.Fatalf("MapSandboxPath: %v", err)
	}
	if got != "/sites/example.com/blog/index.html" {
		t.Errorf("MapSandboxPath = %q", got)
	}
}

func TestMapSandboxPathHTTPNoExtension(t *testing.T) {
	u := mustParse(t, "http://example.com/blog/post")
	got, err := MapSandboxPath(u)
	if err != nil {
		t.Fatalf("MapSandboxPath: %v", err)
	}
	if got != "/sites/example.com/blog/post/index.html" {
		t.Errorf("MapSandboxPath = %q", got)
	}
}

func TestMapSandboxPathHTTPWithExtensionNotTreatedAsDirectory(t *testing.T) {
	u := mustParse(t, "http://example.com/archive.tar.gz")
	got, err := MapSandboxPath(u)
	if err != nil {
		t.Fatalf("MapSandboxPath: %v", err)
	}
	if got != "/sites/example.com/archive.tar.gz" {
		t.Errorf("MapSandboxPath = %q, want no index.html appended (dotted last segment)", got)
	}
}

func TestMapSandboxPathVfsScheme(t *testing.T) {
	u := mustParse(t, "vfs://host/a/b.txt")
	got, err := MapSandboxPath(u)
	if err != nil {
		t.Fatalf("MapSandboxPath: %v", err)
	}
	if got != "/host/a/b.txt" {
		t.Errorf("MapSandboxPath = %q", got)
	}
}

func TestMapSandboxPathRejectsDotDotTraversal(t *testing.T) {
	u := mustParse(t, "http://evil.example/../../sites/other.example/secret")
	if _, err := MapSandboxPath(u); err == nil {
		t.Fatal("expected an error for a \"..\" path segment")
	}
}

func TestMapSandboxPathRejectsDotDotVfsScheme(t *testing.T) {
	u := mustParse(t, "vfs://host/a/../b.txt")
	if _, err := MapSandboxPath(u); err == nil {
		t.Fatal("expected an error for a \"..\" path segment")
	}
}

func TestDetectContentTypeByExtension(t *testing.T) {
	cases := map[string]ContentType{
		"/a/b.html": ContentHTML,
		"/a/b.css":  ContentCSS,
		"/a/b.gmi":  ContentGemini,
		"/a/b.png":  ContentImage,
		"/a/b.txt":  ContentText,
		"/a/b.xyz":  ContentOther,
	}
	for p, want := range cases {
		if got := DetectContentType(p, "http"); got != want {
			t.Errorf("DetectContentType(%q) = %v, want %v", p, got, want)
		}
	}
}

func TestDetectContentTypeFallsBackToScheme(t *testing.T) {
	if got := DetectContentType("/noext", "gemini"); got != ContentGemini {
		t.Errorf("DetectContentType fallback = %v, want ContentGemini", got)
	}
	if got := DetectContentType("/noext", "http"); got != ContentHTML {
		t.Errorf("DetectContentType fallback = %v, want ContentHTML", got)
	}
}

func TestFetchVfsSandboxOnly(t *testing.T) {
	fs := vfs.New()
	if err := fs.Mkdir("/sites"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := fs.Mkdir("/sites/example.com"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := fs.Write("/sites/example.com/index.html", []byte("<p>hi</p>")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	l := New(fs, nil, true)
	resp, err := l.Fetch("http://example.com/")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(resp.Body) != "<p>hi</p>" || resp.ContentType != ContentHTML {
		t.Errorf("resp = %+v", resp)
	}
}

func TestFetchVfsMissingFileFails(t *testing.T) {
	l := New(vfs.New(), nil, true)
	if _, err := l.Fetch("http://example.com/missing"); err == nil {
		t.Fatal("expected an error for a missing VFS resource")
	}
}

func TestFetchRejectsDotDotTraversal(t *testing.T) {
	fs := vfs.New()
	if err := fs.Mkdir("/sites"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := fs.Mkdir("/sites/other.example"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := fs.Write("/sites/other.example/secret", []byte("top secret")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	l := New(fs, nil, true)
	if _, err := l.Fetch("http://evil.example/../../sites/other.example/secret"); err == nil {
		t.Fatal("expected Fetch to reject a \"..\" path segment instead of escaping the sandbox")
	}
}
