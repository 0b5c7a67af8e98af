package engine

import "unsafe"

// goString copies a NUL-terminated C string into Go-owned memory. The
// native engine only guarantees the pointed-to memory for the duration of
// the accessor call, so the copy must happen before the caller returns.
// A null pointer maps to the empty string; use goStringOK where absence
// must stay distinguishable.
func goString(ptr uintptr) string {
	s, _ := goStringOK(ptr)
	return s
}

// goStringOK is goString with an explicit presence flag: (_, false) for a
// null pointer, ("", true) for a present-but-empty string.
func goStringOK(ptr uintptr) (string, bool) {
	if ptr == 0 {
		return "", false
	}

	n := 0
	for *(*byte)(unsafe.Pointer(ptr + uintptr(n))) != 0 {
		n++
	}
	if n == 0 {
		return "", true
	}

	// string(...) copies; the returned value does not alias native memory.
	return string(unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n)), true
}
