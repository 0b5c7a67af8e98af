package engine

import (
	"sync"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"

	crest "github.com/crestlabs/crest-go"
	crerr "github.com/crestlabs/crest-go/errors"
)

// Options configures library loading.
type Options struct {
	// Path loads exactly this artifact, bypassing the search order.
	Path string

	// SearchPath overrides the candidate directories. The platform artifact
	// name is appended to each entry; a final bare-name attempt is kept.
	SearchPath []string

	// Logger replaces the package logger for this load and the returned
	// engine. Nil keeps the current package logger.
	Logger *zap.Logger
}

// abiFuncs holds the bound native entry points. Signatures mirror the C
// declarations; C strings returned by accessors arrive as raw pointers so
// null stays distinguishable from empty.
type abiFuncs struct {
	create          func() crest.AppHandle
	destroy         func(crest.AppHandle)
	run             func(crest.AppHandle, string, int32) int32
	enableDashboard func(crest.AppHandle, int32)

	// Indexed by crest.Method ordinal.
	route [5]func(crest.AppHandle, string, uintptr, string)

	requestMethod func(crest.RequestHandle) uintptr
	requestPath   func(crest.RequestHandle) uintptr
	requestBody   func(crest.RequestHandle) uintptr
	requestParam  func(crest.RequestHandle, string) uintptr
	requestQuery  func(crest.RequestHandle, string) uintptr
	requestHeader func(crest.RequestHandle, string) uintptr

	responseStatus func(crest.ResponseHandle, int32)
	responseHeader func(crest.ResponseHandle, string, string)
	responseSend   func(crest.ResponseHandle, string)
	responseJSON   func(crest.ResponseHandle, string)

	// Optional entry points; nil when the build does not export them.
	stop            func(crest.AppHandle)
	setTitle        func(crest.AppHandle, string)
	setDescription  func(crest.AppHandle, string)
	logSetEnabled   func(int32)
	logSetTimestamp func(int32)
}

// Native implements crest.Engine over the loaded shared library.
type Native struct {
	path string
	lib  uintptr
	log  *zap.Logger
	fns  abiFuncs
}

var (
	defaultOnce   sync.Once
	defaultEngine *Native
	defaultErr    error
)

// Default loads the engine with default options exactly once per process
// and caches the result. The library is never reloaded, even if later
// operations against it fail.
func Default() (*Native, error) {
	defaultOnce.Do(func() {
		defaultEngine, defaultErr = Load(Options{})
	})
	return defaultEngine, defaultErr
}

// Load locates the artifact, opens it, and binds the full ABI. Each call
// returns an independent binding instance, which is what tests want; most
// programs should use Default.
func Load(opts Options) (*Native, error) {
	if opts.Logger != nil {
		SetLogger(opts.Logger)
	}

	lib, path, err := locate(opts)
	if err != nil {
		return nil, err
	}

	n := &Native{
		path: path,
		lib:  lib,
		log:  Logger(),
	}
	if err := n.bind(); err != nil {
		return nil, err
	}
	return n, nil
}

// Path returns the artifact path the locator settled on.
func (n *Native) Path() string {
	return n.path
}

// bind resolves every required symbol eagerly, then registers the typed
// function values. Resolution and registration are separate passes so a
// mismatched build reports all gaps at once instead of panicking on the
// first one.
func (n *Native) bind() error {
	var missing []string
	for _, sym := range requiredSymbols {
		if _, err := loadSymbol(n.lib, sym); err != nil {
			missing = append(missing, sym)
		}
	}
	if len(missing) > 0 {
		return &crerr.BindingError{Path: n.path, Missing: missing}
	}

	purego.RegisterLibFunc(&n.fns.create, n.lib, symCreate)
	purego.RegisterLibFunc(&n.fns.destroy, n.lib, symDestroy)
	purego.RegisterLibFunc(&n.fns.run, n.lib, symRun)
	purego.RegisterLibFunc(&n.fns.enableDashboard, n.lib, symEnableDashboard)

	for i := range routeSymbols {
		purego.RegisterLibFunc(&n.fns.route[i], n.lib, routeSymbols[i])
	}

	purego.RegisterLibFunc(&n.fns.requestMethod, n.lib, symRequestMethod)
	purego.RegisterLibFunc(&n.fns.requestPath, n.lib, symRequestPath)
	purego.RegisterLibFunc(&n.fns.requestBody, n.lib, symRequestBody)
	purego.RegisterLibFunc(&n.fns.requestParam, n.lib, symRequestParam)
	purego.RegisterLibFunc(&n.fns.requestQuery, n.lib, symRequestQuery)
	purego.RegisterLibFunc(&n.fns.requestHeader, n.lib, symRequestHeader)

	purego.RegisterLibFunc(&n.fns.responseStatus, n.lib, symResponseStatus)
	purego.RegisterLibFunc(&n.fns.responseHeader, n.lib, symResponseHeader)
	purego.RegisterLibFunc(&n.fns.responseSend, n.lib, symResponseSend)
	purego.RegisterLibFunc(&n.fns.responseJSON, n.lib, symResponseJSON)

	n.bindOptional()
	return nil
}

func (n *Native) bindOptional() {
	if _, err := loadSymbol(n.lib, symStop); err == nil {
		purego.RegisterLibFunc(&n.fns.stop, n.lib, symStop)
	}
	if _, err := loadSymbol(n.lib, symSetTitle); err == nil {
		purego.RegisterLibFunc(&n.fns.setTitle, n.lib, symSetTitle)
	}
	if _, err := loadSymbol(n.lib, symSetDescription); err == nil {
		purego.RegisterLibFunc(&n.fns.setDescription, n.lib, symSetDescription)
	}
	if _, err := loadSymbol(n.lib, symLogSetEnabled); err == nil {
		purego.RegisterLibFunc(&n.fns.logSetEnabled, n.lib, symLogSetEnabled)
	}
	if _, err := loadSymbol(n.lib, symLogSetTimestamp); err == nil {
		purego.RegisterLibFunc(&n.fns.logSetTimestamp, n.lib, symLogSetTimestamp)
	}
}

func (n *Native) CreateApp() crest.AppHandle {
	return n.fns.create()
}

func (n *Native) DestroyApp(app crest.AppHandle) {
	n.fns.destroy(app)
}

func (n *Native) RunApp(app crest.AppHandle, host string, port int) int {
	return int(n.fns.run(app, host, int32(port)))
}

func (n *Native) StopApp(app crest.AppHandle) error {
	if n.fns.stop == nil {
		return crerr.Unsupported(symStop)
	}
	n.fns.stop(app)
	return nil
}

func (n *Native) EnableDashboard(app crest.AppHandle, enabled bool) {
	n.fns.enableDashboard(app, boolToInt32(enabled))
}

func (n *Native) SetTitle(app crest.AppHandle, title string) {
	if n.fns.setTitle == nil {
		n.log.Debug("engine build lacks symbol, ignoring", zap.String("symbol", symSetTitle))
		return
	}
	n.fns.setTitle(app, title)
}

func (n *Native) SetDescription(app crest.AppHandle, description string) {
	if n.fns.setDescription == nil {
		n.log.Debug("engine build lacks symbol, ignoring", zap.String("symbol", symSetDescription))
		return
	}
	n.fns.setDescription(app, description)
}

// SetConsoleLogging toggles the engine's own request logging. Only in
// builds that export the log symbols; absent symbols are ignored.
func (n *Native) SetConsoleLogging(enabled, timestamps bool) {
	if n.fns.logSetEnabled != nil {
		n.fns.logSetEnabled(boolToInt32(enabled))
	}
	if n.fns.logSetTimestamp != nil {
		n.fns.logSetTimestamp(boolToInt32(timestamps))
	}
}

// AddRoute mints a native-callable trampoline around fn and registers it
// through the method's registration function. The trampoline holds fn
// alive for the rest of the process; purego callbacks are a finite
// process-wide resource, so routes are registered once at startup.
func (n *Native) AddRoute(app crest.AppHandle, method crest.Method, path string, fn crest.HandlerFunc, description string) error {
	if !method.Valid() {
		return crerr.UnknownMethod(method.String())
	}

	cb := purego.NewCallback(func(req, res uintptr) {
		fn(crest.RequestHandle(req), crest.ResponseHandle(res))
	})

	n.fns.route[method](app, path, cb, description)
	n.log.Debug("route registered",
		zap.String("method", method.String()),
		zap.String("path", path))
	return nil
}

func (n *Native) RequestMethod(req crest.RequestHandle) string {
	return goString(n.fns.requestMethod(req))
}

func (n *Native) RequestPath(req crest.RequestHandle) string {
	return goString(n.fns.requestPath(req))
}

func (n *Native) RequestBody(req crest.RequestHandle) string {
	return goString(n.fns.requestBody(req))
}

func (n *Native) RequestParam(req crest.RequestHandle, name string) (string, bool) {
	return goStringOK(n.fns.requestParam(req, name))
}

func (n *Native) RequestQuery(req crest.RequestHandle, name string) (string, bool) {
	return goStringOK(n.fns.requestQuery(req, name))
}

func (n *Native) RequestHeader(req crest.RequestHandle, name string) (string, bool) {
	return goStringOK(n.fns.requestHeader(req, name))
}

func (n *Native) SetStatus(res crest.ResponseHandle, code int) {
	n.fns.responseStatus(res, int32(code))
}

func (n *Native) SetHeader(res crest.ResponseHandle, name, value string) {
	n.fns.responseHeader(res, name, value)
}

func (n *Native) Send(res crest.ResponseHandle, body string) {
	n.fns.responseSend(res, body)
}

func (n *Native) SendJSON(res crest.ResponseHandle, body string) {
	n.fns.responseJSON(res, body)
}

func boolToInt32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

var _ crest.Engine = (*Native)(nil)
