package vfs

import "testing"

func TestWriteReadRoundTrip(t *testing.T) {
	fs := New()
	if err := fs.Mkdir("/docs"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := fs.Write("/docs/a.txt", []byte("hello")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := fs.Read("/docs/a.txt")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "hello" {
		t.Errorf("Read = %q, want %q", got, "hello")
	}
}

func TestWriteWithoutParentFails(t *testing.T) {
	fs := New()
	if err := fs.Write("/missing/a.txt", []byte("x")); err == nil {
		t.Fatal("expected error writing under a missing parent")
	}
}

func TestRejectsTraversal(t *testing.T) {
	fs := New()
	for _, p := range []string{"relative/path", "/a/../b", "/a/./b", ""} {
		if err := fs.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for path %q", p)
		}
	}
}

func TestReaddirSorted(t *testing.T) {
	fs := New()
	fs.Mkdir("/d")
	fs.Write("/d/b.txt", []byte("1"))
	fs.Write("/d/a.txt", []byte("2"))
	fs.Mkdir("/d/c")
	names, err := fs.Readdir("/d")
	if err != nil {
		t.Fatalf("Readdir: %v", err)
	}
	want := []string{"a.txt", "b.txt", "c"}
	if len(names) != len(want) {
		t.Fatalf("Readdir = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Readdir[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	fs := New()
	if err := fs.Remove("/nope"); err != nil {
		t.Errorf("Remove of missing path should be a no-op, got %v", err)
	}
	if err := fs.Remove("/missing/parent/x"); err != nil {
		t.Errorf("Remove under missing parent should be a no-op, got %v", err)
	}
}

func TestExists(t *testing.T) {
	fs := New()
	fs.Write("/f", []byte("x"))
	if !fs.Exists("/f") {
		t.Error("expected /f to exist")
	}
	if !fs.Exists("/") {
		t.Error("expected root to always exist")
	}
	if fs.Exists("/nope") {
		t.Error("expected /nope to not exist")
	}
}

func TestMkdirIdempotent(t *testing.T) {
	fs := New()
	if err := fs.Mkdir("/d"); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}
	if err := fs.Mkdir("/d"); err != nil {
		t.Errorf("second Mkdir should be idempotent, got %v", err)
	}
	fs.Write("/f", []byte("x"))
	if err := fs.Mkdir("/f"); err == nil {
		t.Error("expected error making a dir over an existing file")
	}
}
