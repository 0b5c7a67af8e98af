package crest

// AppHandle identifies one native application instance. It is opaque:
// the value is produced by the native engine and never dereferenced here.
type AppHandle uintptr

// RequestHandle identifies a native request object. It is owned by the
// native engine and valid only for the duration of a single handler
// invocation.
type RequestHandle uintptr

// ResponseHandle identifies a native response object. Same ownership and
// validity rules as RequestHandle.
type ResponseHandle uintptr

// Method is an HTTP method supported by the native router.
//
// The numeric values index directly into the native registration function
// table and must not be reordered.
type Method int

const (
	MethodGet Method = iota
	MethodPost
	MethodPut
	MethodDelete
	MethodPatch

	methodCount
)

var methodNames = [methodCount]string{
	MethodGet:    "GET",
	MethodPost:   "POST",
	MethodPut:    "PUT",
	MethodDelete: "DELETE",
	MethodPatch:  "PATCH",
}

// String returns the canonical upper-case method name.
func (m Method) String() string {
	if m < 0 || m >= methodCount {
		return "INVALID"
	}
	return methodNames[m]
}

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	return m >= 0 && m < methodCount
}

// ParseMethod maps a method name to its Method value. Matching is exact and
// case-sensitive: the native table knows only the canonical upper-case names.
func ParseMethod(s string) (Method, bool) {
	for m, name := range methodNames {
		if s == name {
			return Method(m), true
		}
	}
	return 0, false
}

// HandlerFunc is the raw trampoline shape invoked by the engine for each
// matching request. It receives borrowed native handles; implementations
// must copy out any data they need before returning and must not panic.
//
// Most users never implement this directly; the runtime package wraps
// user handlers into HandlerFuncs that enforce both rules.
type HandlerFunc func(req RequestHandle, res ResponseHandle)

// Engine is the seam between the high-level runtime API and the native
// ABI. The engine package implements it over the loaded shared library;
// enginetest provides an in-process fake.
//
// Methods mirror the native calls one to one and carry the native failure
// conventions: CreateApp returns 0 on failure, RunApp returns the native
// status code. Policy (error types, state checking) lives above this seam.
type Engine interface {
	// CreateApp creates a native application instance. Returns 0 on failure.
	CreateApp() AppHandle

	// DestroyApp releases an application instance. Calling it twice for the
	// same handle is undefined on the native side; callers must guard.
	DestroyApp(app AppHandle)

	// RunApp runs the blocking serve loop and returns the native exit status.
	RunApp(app AppHandle, host string, port int) int

	// StopApp requests a graceful stop of a running serve loop. Not every
	// engine build exports the stop entry point; unsupported builds return
	// an error and leave the loop running.
	StopApp(app AppHandle) error

	// EnableDashboard toggles the built-in dashboard. Read by the native
	// engine once at startup.
	EnableDashboard(app AppHandle, enabled bool)

	// SetTitle and SetDescription set dashboard metadata. No-ops on engine
	// builds that do not export them.
	SetTitle(app AppHandle, title string)
	SetDescription(app AppHandle, description string)

	// AddRoute registers fn for (method, path). The engine converts fn into
	// a native-callable callback; the callback is never reclaimed, so the
	// registration is valid for the rest of the process lifetime.
	AddRoute(app AppHandle, method Method, path string, fn HandlerFunc, description string) error

	// Request accessors. Method, path and body are always present; the
	// native engine guarantees non-null pointers for them. Param, query and
	// header lookups distinguish absent (false) from present-but-empty.
	// Every returned string is copied out of native memory before return.
	RequestMethod(req RequestHandle) string
	RequestPath(req RequestHandle) string
	RequestBody(req RequestHandle) string
	RequestParam(req RequestHandle, name string) (string, bool)
	RequestQuery(req RequestHandle, name string) (string, bool)
	RequestHeader(req RequestHandle, name string) (string, bool)

	// Response mutators. Send and SendJSON are terminal for a response.
	SetStatus(res ResponseHandle, code int)
	SetHeader(res ResponseHandle, name, value string)
	Send(res ResponseHandle, body string)
	SendJSON(res ResponseHandle, body string)
}
