// Package engine binds the Crest native shared library.
//
// It has two responsibilities: locating and loading the platform artifact,
// and binding the fixed C ABI against the loaded library. The result is a
// Native value implementing the crest.Engine seam that the runtime package
// builds on.
//
// # Loading
//
// Load resolves the artifact with a deterministic search order:
//
//  1. Local build output: <root>/build, <root>/build/Release, <root>/build/Debug,
//     where <root> is $CREST_HOME or the working directory.
//  2. System installation directories (/usr/local/lib and /usr/lib, or
//     %ProgramFiles%\crest\bin on Windows).
//  3. The bare artifact name, delegating to the OS loader's own search path.
//
// A candidate that is absent or fails to load does not stop the search; a
// stale artifact in one location never blocks a valid one elsewhere. If
// every candidate fails, Load returns a LibraryNotFoundError listing each
// attempt.
//
// # Binding
//
// Every required symbol is resolved eagerly at bind time. A build missing
// any of them fails immediately with a BindingError naming the gaps, rather
// than crashing mid-request on first use. A small set of optional symbols
// (graceful stop, dashboard metadata, native log toggles) is bound when
// present and degrades gracefully when not.
//
// # Callbacks
//
// Handler callbacks are minted with purego.NewCallback. Minted callbacks
// are process-lifetime: they are never reclaimed, which is exactly the
// reachability the native engine requires, but it also means the process
// shares one finite callback budget. Register routes once at startup, not
// per request.
//
// The loaded library handle is process-wide and never unloaded.
package engine
