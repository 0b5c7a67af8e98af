package engine

import (
	"runtime"
	"testing"
	"unsafe"
)

func cptr(buf []byte) uintptr {
	return uintptr(unsafe.Pointer(&buf[0]))
}

func TestGoStringOK(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want string
	}{
		{"ascii", []byte("hello\x00"), "hello"},
		{"stops at nul", []byte("ok\x00trailing"), "ok"},
		{"utf8", []byte("héllo wörld ☃\x00"), "héllo wörld ☃"},
		{"empty", []byte("\x00"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := goStringOK(cptr(tt.buf))
			runtime.KeepAlive(tt.buf)
			if !ok {
				t.Fatal("non-null pointer reported as absent")
			}
			if got != tt.want {
				t.Errorf("goStringOK = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGoStringOK_Null(t *testing.T) {
	s, ok := goStringOK(0)
	if ok {
		t.Error("null pointer must report absent")
	}
	if s != "" {
		t.Errorf("null pointer must yield empty string, got %q", s)
	}
}

func TestGoString_NullIsEmpty(t *testing.T) {
	if got := goString(0); got != "" {
		t.Errorf("goString(0) = %q, want empty", got)
	}
}

func TestGoString_CopiesOut(t *testing.T) {
	buf := []byte("before\x00")
	got := goString(cptr(buf))
	runtime.KeepAlive(buf)

	// Mutating the source after the call must not affect the result;
	// the returned string owns its bytes.
	copy(buf, "mutate\x00")
	if got != "before" {
		t.Errorf("string aliases native memory: %q", got)
	}
}
