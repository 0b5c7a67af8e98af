// Package runtime provides the high-level API for driving the Crest
// native HTTP engine.
//
// An App owns exactly one native application handle at a time and walks it
// through a fixed lifecycle:
//
//	Uninitialized → Created → Running → Destroyed
//
// Configuration (dashboard, metadata, route registration) is permitted only
// in Created, before Run: the native engine reads its configuration once at
// startup. Run blocks the calling goroutine until the native serve loop
// exits; Stop (on engine builds that support it) requests a graceful exit
// from another goroutine. Destroy is tracked so the native destroy call is
// issued at most once, and every operation after Destroy fails with a
// use-after-destroy error instead of reaching native code.
//
// Handlers receive Request and Response views over borrowed native
// handles. The views are valid only for the duration of the invocation;
// every string they return is already copied into Go memory and outlives
// the view. A panic inside a handler is caught at the dispatch seam,
// logged, and converted into a 500 response; it never unwinds into the
// native engine, which has no way to handle it.
package runtime
