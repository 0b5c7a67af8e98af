package engine

import (
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"

	crerr "github.com/crestlabs/crest-go/errors"
)

// libraryName returns the platform artifact name for an OS family.
func libraryName(goos string) string {
	switch goos {
	case "windows":
		return "crest.dll"
	case "darwin":
		return "libcrest.dylib"
	default:
		return "libcrest.so"
	}
}

// searchRoot is the base directory for local build candidates: $CREST_HOME
// when set, otherwise the working directory.
func searchRoot() string {
	if home := os.Getenv("CREST_HOME"); home != "" {
		return home
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// systemDirs returns the platform's installation directories, searched after
// local build output so a fresh build always wins over an installed copy.
func systemDirs(goos string) []string {
	if goos == "windows" {
		programFiles := os.Getenv("ProgramFiles")
		if programFiles == "" {
			programFiles = `C:\Program Files`
		}
		return []string{filepath.Join(programFiles, "crest", "bin")}
	}
	return []string{"/usr/local/lib", "/usr/lib"}
}

// candidatePaths builds the ordered candidate list for one search root.
// The final entry is the bare artifact name, which delegates resolution to
// the OS loader's own search path.
func candidatePaths(root, goos string) []string {
	name := libraryName(goos)

	paths := []string{
		filepath.Join(root, "build", name),
		filepath.Join(root, "build", "Release", name),
		filepath.Join(root, "build", "Debug", name),
	}
	for _, dir := range systemDirs(goos) {
		paths = append(paths, filepath.Join(dir, name))
	}
	return append(paths, name)
}

// locate opens the first loadable candidate. Absent files and files that
// fail to load (wrong architecture, truncated artifact) both continue the
// scan; only total failure is fatal.
func locate(opts Options) (lib uintptr, path string, err error) {
	log := Logger()

	var paths []string
	if opts.Path != "" {
		paths = []string{opts.Path}
	} else if len(opts.SearchPath) > 0 {
		name := libraryName(runtime.GOOS)
		for _, dir := range opts.SearchPath {
			paths = append(paths, filepath.Join(dir, name))
		}
		paths = append(paths, name)
	} else {
		paths = candidatePaths(searchRoot(), runtime.GOOS)
	}

	var attempts []crerr.Attempt
	for _, p := range paths {
		if filepath.Base(p) != p {
			if _, statErr := os.Stat(p); statErr != nil {
				attempts = append(attempts, crerr.Attempt{Path: p, Err: statErr})
				continue
			}
		}

		handle, openErr := openLibrary(p)
		if openErr != nil {
			log.Debug("candidate failed to load",
				zap.String("path", p),
				zap.Error(openErr))
			attempts = append(attempts, crerr.Attempt{Path: p, Err: openErr})
			continue
		}

		log.Info("loaded native engine", zap.String("path", p))
		return handle, p, nil
	}

	return 0, "", &crerr.LibraryNotFoundError{
		Name:     libraryName(runtime.GOOS),
		Attempts: attempts,
	}
}
