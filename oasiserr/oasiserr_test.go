package oasiserr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestWrapNilReturnsNil(t *testing.T) {
	if err := Wrap(Vfs, "op", nil); err != nil {
		t.Errorf("Wrap(nil) = %v, want nil", err)
	}
}

func TestIsMatchesDirectAndWrapped(t *testing.T) {
	base := New(Wm, "CreateWindow")
	if !Is(base, Wm) {
		t.Error("expected Is to match a direct *Error")
	}
	wrapped := fmt.Errorf("context: %w", base)
	if !Is(wrapped, Wm) {
		t.Error("expected Is to unwrap through a %w-wrapped error")
	}
	if Is(wrapped, Sdi) {
		t.Error("expected Is to not match a different kind")
	}
}

func TestIsFalseForPlainError(t *testing.T) {
	if Is(errors.New("plain"), Vfs) {
		t.Error("expected Is to be false for a non-oasiserr error")
	}
}

func TestErrorStringIncludesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(Io, "Write", cause)
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("error string %q does not include the cause", err.Error())
	}
}
