package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in the bridge the error occurred
type Phase string

const (
	PhaseLocate    Phase = "locate"    // library search and dlopen
	PhaseBind      Phase = "bind"      // symbol resolution
	PhaseCreate    Phase = "create"    // app instance creation
	PhaseLifecycle Phase = "lifecycle" // app state machine
	PhaseRun       Phase = "run"       // serve loop
	PhaseRegister  Phase = "register"  // route registration
	PhaseDispatch  Phase = "dispatch"  // handler invocation
	PhaseMarshal   Phase = "marshal"   // boundary data conversion
)

// Kind categorizes the error
type Kind string

const (
	KindLibraryNotFound Kind = "library_not_found"
	KindMissingSymbol   Kind = "missing_symbol"
	KindNullHandle      Kind = "null_handle"
	KindRunFailed       Kind = "run_failed"
	KindUnknownMethod   Kind = "unknown_method"
	KindUseAfterDestroy Kind = "use_after_destroy"
	KindAlreadyCreated  Kind = "already_created"
	KindInvalidState    Kind = "invalid_state"
	KindUnsupported     Kind = "unsupported"
	KindInvalidInput    Kind = "invalid_input"
)

// Error is the structured error type used throughout the bridge
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Op     string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Convenience constructors for the bridge's error taxonomy

// NullHandle is returned when the native create call produced a null
// application handle.
func NullHandle() *Error {
	return &Error{
		Phase:  PhaseCreate,
		Kind:   KindNullHandle,
		Detail: "native create returned a null handle",
	}
}

// RunFailed wraps a non-zero exit status from the native serve loop.
func RunFailed(status int) *Error {
	return &Error{
		Phase:  PhaseRun,
		Kind:   KindRunFailed,
		Detail: fmt.Sprintf("native run exited with status %d", status),
	}
}

// UnknownMethod is returned for registration with an unsupported HTTP method.
func UnknownMethod(method string) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindUnknownMethod,
		Detail: fmt.Sprintf("unsupported HTTP method %q", method),
	}
}

// UseAfterDestroy is returned for any operation attempted on a destroyed app.
func UseAfterDestroy(op string) *Error {
	return &Error{
		Phase:  PhaseLifecycle,
		Kind:   KindUseAfterDestroy,
		Op:     op,
		Detail: "app handle already destroyed",
	}
}

// AlreadyCreated is returned when Create is called while a live handle exists.
func AlreadyCreated() *Error {
	return &Error{
		Phase:  PhaseLifecycle,
		Kind:   KindAlreadyCreated,
		Detail: "app already holds a live native handle",
	}
}

// InvalidState is returned when an operation is attempted outside the state
// it is legal in, for example registering a route while the app is running.
func InvalidState(op, state string) *Error {
	return &Error{
		Phase:  PhaseLifecycle,
		Kind:   KindInvalidState,
		Op:     op,
		Detail: fmt.Sprintf("not permitted in state %s", state),
	}
}

// Unsupported is returned when an optional native entry point is absent
// from the loaded artifact.
func Unsupported(symbol string) *Error {
	return &Error{
		Phase:  PhaseBind,
		Kind:   KindUnsupported,
		Detail: fmt.Sprintf("engine build does not export %s", symbol),
	}
}

// InvalidInput is returned for malformed arguments caught before any
// native call.
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Attempt records one candidate path the locator tried and why it failed.
type Attempt struct {
	Path string
	Err  error
}

// LibraryNotFoundError is returned when no candidate artifact could be
// loaded. It aggregates every attempted path so a misplaced or
// wrong-architecture build is diagnosable from the message alone.
type LibraryNotFoundError struct {
	Name     string // platform artifact name, e.g. "libcrest.so"
	Attempts []Attempt
}

func (e *LibraryNotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "could not load %s; attempted %d location(s):", e.Name, len(e.Attempts))
	for _, a := range e.Attempts {
		b.WriteString("\n  - ")
		b.WriteString(a.Path)
		if a.Err != nil {
			b.WriteString(": ")
			b.WriteString(a.Err.Error())
		}
	}
	b.WriteString("\nensure the engine is built and installed, or set CREST_HOME")
	return b.String()
}

// Is reports whether target matches this error type
func (e *LibraryNotFoundError) Is(target error) bool {
	_, ok := target.(*LibraryNotFoundError)
	return ok
}

// BindingError is returned when a loaded artifact lacks required symbols.
// Detection is eager at bind time: a mismatched build fails immediately
// instead of crashing mid-request on first use.
type BindingError struct {
	Path    string
	Missing []string
}

func (e *BindingError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "artifact %s is missing %d required symbol(s):", e.Path, len(e.Missing))
	for _, s := range e.Missing {
		b.WriteString("\n  - ")
		b.WriteString(s)
	}
	return b.String()
}

// Is reports whether target matches this error type
func (e *BindingError) Is(target error) bool {
	_, ok := target.(*BindingError)
	return ok
}
