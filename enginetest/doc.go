// Package enginetest provides an in-process fake of the crest.Engine seam.
//
// The fake stands in for the native shared library: it records
// registrations and configuration, hands out integer handles from a table
// the way the native engine does, and lets a test simulate a dispatch with
// Invoke. Request and response handles are valid only for the duration of
// one Invoke, mirroring the native per-invocation ownership rules, and the
// response mimics the native single-send flag.
//
// It exists so the runtime package, examples and downstream applications
// can be exercised without a compiled engine artifact on the machine.
package enginetest
