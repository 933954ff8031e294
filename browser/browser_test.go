package browser

import (
	"testing"

	"github.com/AndrewAltimit/oasis-os-sub003/backend"
	"github.com/AndrewAltimit/oasis-os-sub003/vfs"
)

func newTestBrowser(t *testing.T) *Browser {
	t.Helper()
	be := backend.NewSoftware()
	if err := be.Init(480, 2000); err != nil {
		t.Fatalf("Init: %v", err)
	}
	fs := vfs.New()
	return New(fs, nil, true, be, 480)
}

func TestNavigateSandboxVfsHTML(t *testing.T) {
	b := newTestBrowser(t)
	if err := b.Loader.Vfs.Mkdir("/sites"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := b.Loader.Vfs.Mkdir("/sites/example.com"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := b.Loader.Vfs.Write("/sites/example.com/index.html", []byte("<div class=\"x\"><p>hello</p></div>")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if err := b.Navigate("http://example.com/"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if b.Page == nil || b.Page.Layout == nil {
		t.Fatal("Navigate produced no page/layout")
	}
	if b.Page.HTML.Find("p") == nil {
		t.Error("expected <p> in parsed document")
	}
}

func TestNavigateMissingResourceSynthesizesErrorPage(t *testing.T) {
	b := newTestBrowser(t)
	if err := b.Navigate("http://nowhere.example/"); err != nil {
		t.Fatalf("Navigate should not return an error even on fetch failure: %v", err)
	}
	if b.Page == nil || b.Page.HTML == nil {
		t.Fatal("Navigate should synthesize an error page")
	}
	if b.Page.HTML.Find("h1") == nil {
		t.Error("expected a synthesized error heading")
	}
}

func TestNavigateGeminiScheme(t *testing.T) {
	b := newTestBrowser(t)
	if err := b.Loader.Vfs.Mkdir("/sites"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := b.Loader.Vfs.Mkdir("/sites/gem.example"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := b.Loader.Vfs.Write("/sites/gem.example/index.html", []byte("# Welcome\nhello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	// Sandbox mode always routes through VFS regardless of scheme, so a
	// gemini:// URL is served the same way; content-type detection falls
	// back to the .html extension here since sandbox storage is HTML-shaped.
	if err := b.Navigate("gemini://gem.example/"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if b.Page == nil {
		t.Fatal("Navigate produced no page")
	}
}

func TestCollectStylesheetFromStyleElement(t *testing.T) {
	b := newTestBrowser(t)
	if err := b.Loader.Vfs.Mkdir("/sites"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := b.Loader.Vfs.Mkdir("/sites/s.example"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	page := "<html><head><style>.x { color: red; }</style></head><body><p class=\"x\">hi</p></body></html>"
	if err := b.Loader.Vfs.Write("/sites/s.example/index.html", []byte(page)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := b.Navigate("http://s.example/"); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	if len(b.Page.Sheet.Rules) != 1 {
		t.Fatalf("got %d stylesheet rules, want 1", len(b.Page.Sheet.Rules))
	}
}
