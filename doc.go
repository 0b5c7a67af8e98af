// Package crest provides Go bindings for the Crest native HTTP engine.
//
// Crest is a separately-compiled shared library that performs socket I/O,
// HTTP parsing, routing and dashboard rendering. This module is the binding
// bridge: it locates and loads the platform artifact, binds its C ABI,
// manages the lifetime of one application handle, and marshals request and
// response data across the language boundary.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	crest-go/            Root package with the shared ABI vocabulary
//	├── engine/          Library location, dlopen, symbol binding, trampolines
//	├── runtime/         High-level API: App lifecycle, routes, handler views
//	├── errors/          Structured error types for diagnosability
//	├── enginetest/      In-process fake engine for tests and examples
//	└── cmd/crest-run/   Demo server CLI
//
// # Quick Start
//
// Load the native library and serve a route:
//
//	eng, err := engine.Load(engine.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	app := runtime.New(eng)
//	if err := app.Create(); err != nil {
//	    log.Fatal(err)
//	}
//	defer app.Destroy()
//
//	app.Get("/health", func(req *runtime.Request, res *runtime.Response) {
//	    res.Status(200)
//	    res.Send("ok")
//	}, "Health check")
//
//	if err := app.Run("127.0.0.1", 8080); err != nil {
//	    log.Fatal(err)
//	}
//
// # Ownership Model
//
// The native engine owns every request and response handle; they are valid
// only for the duration of a single handler invocation. All accessors copy
// data into Go-owned memory before returning, so values obtained from a
// Request remain valid after the handler returns, while the Request itself
// does not.
//
// Handler callbacks registered with the engine are retained by the route
// registry until the owning App is destroyed. The registry, not the caller,
// keeps them reachable; dropping all user references to a handler after
// registration is safe.
//
// # Thread Safety
//
// The native engine may invoke handlers from any of its worker threads,
// including concurrently for distinct requests. Handlers and the trampolines
// wrapping them are safe for concurrent invocation. App lifecycle methods
// (Create, Run, Destroy, route registration) must not be called concurrently
// with each other; registration must complete before Run.
package crest
