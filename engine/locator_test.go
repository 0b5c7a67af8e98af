package engine

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	crerr "github.com/crestlabs/crest-go/errors"
)

func TestLibraryName(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"windows", "crest.dll"},
		{"darwin", "libcrest.dylib"},
		{"linux", "libcrest.so"},
		{"freebsd", "libcrest.so"},
	}

	for _, tt := range tests {
		if got := libraryName(tt.goos); got != tt.want {
			t.Errorf("libraryName(%q) = %q, want %q", tt.goos, got, tt.want)
		}
	}
}

func TestCandidatePaths_Order(t *testing.T) {
	paths := candidatePaths("/opt/crest", "linux")

	want := []string{
		filepath.Join("/opt/crest", "build", "libcrest.so"),
		filepath.Join("/opt/crest", "build", "Release", "libcrest.so"),
		filepath.Join("/opt/crest", "build", "Debug", "libcrest.so"),
		"/usr/local/lib/libcrest.so",
		"/usr/lib/libcrest.so",
		"libcrest.so",
	}

	if len(paths) != len(want) {
		t.Fatalf("got %d candidates, want %d: %v", len(paths), len(want), paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("candidate[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestCandidatePaths_BuildBeforeSystem(t *testing.T) {
	paths := candidatePaths("/work", "darwin")

	buildIdx, systemIdx := -1, -1
	for i, p := range paths {
		if strings.Contains(p, filepath.Join("/work", "build")) && buildIdx == -1 {
			buildIdx = i
		}
		if strings.HasPrefix(p, "/usr/") && systemIdx == -1 {
			systemIdx = i
		}
	}

	if buildIdx == -1 || systemIdx == -1 {
		t.Fatalf("expected both build and system candidates, got %v", paths)
	}
	if buildIdx > systemIdx {
		t.Errorf("build candidates must precede system candidates: %v", paths)
	}
	if last := paths[len(paths)-1]; last != "libcrest.dylib" {
		t.Errorf("bare-name fallback must come last, got %q", last)
	}
}

func TestCandidatePaths_Windows(t *testing.T) {
	paths := candidatePaths(`C:\work`, "windows")

	if last := paths[len(paths)-1]; last != "crest.dll" {
		t.Errorf("bare-name fallback = %q, want crest.dll", last)
	}
	foundProgramFiles := false
	for _, p := range paths {
		if strings.Contains(p, "crest") && strings.Contains(p, "bin") {
			foundProgramFiles = true
		}
	}
	if !foundProgramFiles {
		t.Errorf("expected a program-files candidate, got %v", paths)
	}
}

func TestLocate_AggregatesAttempts(t *testing.T) {
	dir := t.TempDir()

	_, _, err := locate(Options{
		SearchPath: []string{dir, filepath.Join(dir, "missing")},
	})
	if err == nil {
		t.Skip("a system-installed crest library was found; nothing to assert")
	}

	var notFound *crerr.LibraryNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected LibraryNotFoundError, got %T: %v", err, err)
	}

	// One attempt per directory plus the bare-name fallback.
	if len(notFound.Attempts) != 3 {
		t.Fatalf("expected 3 attempts, got %d: %v", len(notFound.Attempts), notFound.Attempts)
	}
	if !strings.Contains(notFound.Attempts[0].Path, dir) {
		t.Errorf("first attempt should be under %s, got %s", dir, notFound.Attempts[0].Path)
	}
}

func TestLocate_ExplicitPathOnly(t *testing.T) {
	bogus := filepath.Join(t.TempDir(), "nope", libraryName("linux"))

	_, _, err := locate(Options{Path: bogus})
	if err == nil {
		t.Fatal("expected error for nonexistent explicit path")
	}

	var notFound *crerr.LibraryNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected LibraryNotFoundError, got %T", err)
	}
	if len(notFound.Attempts) != 1 {
		t.Fatalf("explicit path must not trigger a search, got attempts %v", notFound.Attempts)
	}
}
