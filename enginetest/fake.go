package enginetest

import (
	"fmt"
	"sync"

	crest "github.com/crestlabs/crest-go"
	crerr "github.com/crestlabs/crest-go/errors"
)

// Request specifies a simulated incoming request. Params carries what the
// native router would have extracted from the path pattern; the fake does
// not parse patterns itself, routing is the real engine's business.
type Request struct {
	Method  crest.Method
	Path    string
	Body    string
	Params  map[string]string
	Query   map[string]string
	Headers map[string]string
}

// Response is the observable state a handler left on a fake response
// handle. StatusCode starts at 200, like the native default.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
	IsJSON     bool
	sent       bool
}

// Sent reports whether a body was sent.
func (r *Response) Sent() bool {
	return r.sent
}

// Route records one registration the fake received.
type Route struct {
	Method      crest.Method
	Path        string
	Description string
	fn          crest.HandlerFunc
}

type appState struct {
	routes      []Route
	dashboard   bool
	title       string
	description string
	host        string
	port        int
	running     bool
	stop        chan struct{}
}

// Fake implements crest.Engine in-process.
//
// Failure switches make the native failure conventions reachable from
// tests: FailCreate makes CreateApp return a null handle, RunStatus makes
// RunApp exit immediately with that status, NoStop simulates an engine
// build without the optional stop entry point.
type Fake struct {
	FailCreate bool
	RunStatus  int
	NoStop     bool

	mu        sync.Mutex
	next      uintptr
	apps      map[crest.AppHandle]*appState
	created   []crest.AppHandle
	requests  map[crest.RequestHandle]*Request
	responses map[crest.ResponseHandle]*Response
	destroys  map[crest.AppHandle]int
}

// New returns an empty fake engine.
func New() *Fake {
	return &Fake{
		next:      0x1000,
		apps:      make(map[crest.AppHandle]*appState),
		requests:  make(map[crest.RequestHandle]*Request),
		responses: make(map[crest.ResponseHandle]*Response),
		destroys:  make(map[crest.AppHandle]int),
	}
}

func (f *Fake) nextHandle() uintptr {
	f.next++
	return f.next
}

func (f *Fake) CreateApp() crest.AppHandle {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.FailCreate {
		return 0
	}

	h := crest.AppHandle(f.nextHandle())
	f.apps[h] = &appState{stop: make(chan struct{}, 1)}
	f.created = append(f.created, h)
	return h
}

// LastApp returns the most recently created app handle, destroyed or not.
// Tests use it to reach fake state for handles the bridge keeps private.
func (f *Fake) LastApp() crest.AppHandle {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.created) == 0 {
		return 0
	}
	return f.created[len(f.created)-1]
}

func (f *Fake) DestroyApp(app crest.AppHandle) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.destroys[app]++
	delete(f.apps, app)
}

// DestroyCount returns how many times DestroyApp was called for app. The
// bridge must keep this at one no matter how often Destroy is called.
func (f *Fake) DestroyCount(app crest.AppHandle) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.destroys[app]
}

func (f *Fake) RunApp(app crest.AppHandle, host string, port int) int {
	f.mu.Lock()
	st, ok := f.apps[app]
	if !ok {
		f.mu.Unlock()
		return 1
	}
	if f.RunStatus != 0 {
		status := f.RunStatus
		f.mu.Unlock()
		return status
	}
	st.host = host
	st.port = port
	st.running = true
	stop := st.stop
	f.mu.Unlock()

	<-stop

	f.mu.Lock()
	st.running = false
	f.mu.Unlock()
	return 0
}

func (f *Fake) StopApp(app crest.AppHandle) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.NoStop {
		return crerr.Unsupported("crest_stop")
	}
	st, ok := f.apps[app]
	if !ok {
		return fmt.Errorf("enginetest: unknown app handle %#x", uintptr(app))
	}
	select {
	case st.stop <- struct{}{}:
	default:
	}
	return nil
}

// Running reports whether the app's serve loop is inside RunApp.
func (f *Fake) Running(app crest.AppHandle) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.apps[app]; ok {
		return st.running
	}
	return false
}

// Addr returns the host and port the last RunApp received.
func (f *Fake) Addr(app crest.AppHandle) (string, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.apps[app]; ok {
		return st.host, st.port
	}
	return "", 0
}

func (f *Fake) EnableDashboard(app crest.AppHandle, enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.apps[app]; ok {
		st.dashboard = enabled
	}
}

// Dashboard reports the dashboard flag for app.
func (f *Fake) Dashboard(app crest.AppHandle) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.apps[app]; ok {
		return st.dashboard
	}
	return false
}

func (f *Fake) SetTitle(app crest.AppHandle, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.apps[app]; ok {
		st.title = title
	}
}

func (f *Fake) SetDescription(app crest.AppHandle, description string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.apps[app]; ok {
		st.description = description
	}
}

// Title returns the title last set for app.
func (f *Fake) Title(app crest.AppHandle) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.apps[app]; ok {
		return st.title
	}
	return ""
}

func (f *Fake) AddRoute(app crest.AppHandle, method crest.Method, path string, fn crest.HandlerFunc, description string) error {
	if !method.Valid() {
		return crerr.UnknownMethod(method.String())
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	st, ok := f.apps[app]
	if !ok {
		return fmt.Errorf("enginetest: unknown app handle %#x", uintptr(app))
	}
	st.routes = append(st.routes, Route{
		Method:      method,
		Path:        path,
		Description: description,
		fn:          fn,
	})
	return nil
}

// Routes returns the registrations recorded for app.
func (f *Fake) Routes(app crest.AppHandle) []Route {
	f.mu.Lock()
	defer f.mu.Unlock()
	if st, ok := f.apps[app]; ok {
		return append([]Route(nil), st.routes...)
	}
	return nil
}

// Invoke simulates the native engine dispatching req against the routes
// registered for app. Matching is exact on method and path. The request
// and response handles exist only for the duration of the call, like the
// native per-invocation ownership; the returned Response is a Go-side copy
// the caller may keep.
func (f *Fake) Invoke(app crest.AppHandle, req *Request) (*Response, error) {
	f.mu.Lock()
	st, ok := f.apps[app]
	if !ok {
		f.mu.Unlock()
		return nil, fmt.Errorf("enginetest: unknown app handle %#x", uintptr(app))
	}

	var fn crest.HandlerFunc
	for _, rt := range st.routes {
		if rt.Method == req.Method && rt.Path == req.Path {
			fn = rt.fn
			break
		}
	}
	if fn == nil {
		f.mu.Unlock()
		return nil, fmt.Errorf("enginetest: no route for %s %s", req.Method, req.Path)
	}

	reqH := crest.RequestHandle(f.nextHandle())
	resH := crest.ResponseHandle(f.nextHandle())
	res := &Response{
		StatusCode: 200,
		Headers:    make(map[string]string),
	}
	f.requests[reqH] = req
	f.responses[resH] = res
	f.mu.Unlock()

	fn(reqH, resH)

	f.mu.Lock()
	delete(f.requests, reqH)
	delete(f.responses, resH)
	f.mu.Unlock()

	return res, nil
}

func (f *Fake) request(h crest.RequestHandle) *Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[h]
}

func (f *Fake) RequestMethod(h crest.RequestHandle) string {
	if req := f.request(h); req != nil {
		return req.Method.String()
	}
	return ""
}

func (f *Fake) RequestPath(h crest.RequestHandle) string {
	if req := f.request(h); req != nil {
		return req.Path
	}
	return ""
}

func (f *Fake) RequestBody(h crest.RequestHandle) string {
	if req := f.request(h); req != nil {
		return req.Body
	}
	return ""
}

func (f *Fake) RequestParam(h crest.RequestHandle, name string) (string, bool) {
	if req := f.request(h); req != nil {
		v, ok := req.Params[name]
		return v, ok
	}
	return "", false
}

func (f *Fake) RequestQuery(h crest.RequestHandle, name string) (string, bool) {
	if req := f.request(h); req != nil {
		v, ok := req.Query[name]
		return v, ok
	}
	return "", false
}

func (f *Fake) RequestHeader(h crest.RequestHandle, name string) (string, bool) {
	if req := f.request(h); req != nil {
		v, ok := req.Headers[name]
		return v, ok
	}
	return "", false
}

func (f *Fake) response(h crest.ResponseHandle) *Response {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.responses[h]
}

func (f *Fake) SetStatus(h crest.ResponseHandle, code int) {
	if res := f.response(h); res != nil {
		res.StatusCode = code
	}
}

func (f *Fake) SetHeader(h crest.ResponseHandle, name, value string) {
	if res := f.response(h); res != nil {
		res.Headers[name] = value
	}
}

func (f *Fake) Send(h crest.ResponseHandle, body string) {
	res := f.response(h)
	if res == nil || res.sent {
		// The native engine ignores a second send.
		return
	}
	res.Body = body
	res.sent = true
}

func (f *Fake) SendJSON(h crest.ResponseHandle, body string) {
	res := f.response(h)
	if res == nil || res.sent {
		return
	}
	res.Body = body
	res.IsJSON = true
	res.Headers["Content-Type"] = "application/json"
	res.sent = true
}

var _ crest.Engine = (*Fake)(nil)
