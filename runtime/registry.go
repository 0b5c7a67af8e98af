package runtime

import (
	"go.uber.org/zap"

	crest "github.com/crestlabs/crest-go"
	crerr "github.com/crestlabs/crest-go/errors"
)

// Handler processes one request. The views are valid only until the
// handler returns; strings obtained from them remain valid afterwards.
type Handler func(req *Request, res *Response)

// RouteInfo describes one registered route.
type RouteInfo struct {
	Method      crest.Method
	Path        string
	Description string
}

// registry owns every trampoline handed to the native engine. The engine
// may invoke a trampoline at any time between registration and destroy, so
// entries are never released individually; reset drops them all when the
// owning handle goes away.
type registry struct {
	entries []routeEntry
}

type routeEntry struct {
	method      crest.Method
	path        string
	description string
	fn          crest.HandlerFunc
}

func (r *registry) add(e routeEntry) {
	r.entries = append(r.entries, e)
}

func (r *registry) has(method crest.Method, path string) bool {
	for _, e := range r.entries {
		if e.method == method && e.path == path {
			return true
		}
	}
	return false
}

func (r *registry) reset() {
	r.entries = nil
}

// Get registers handler for GET requests on path.
func (a *App) Get(path string, handler Handler, description string) error {
	return a.register(crest.MethodGet, path, handler, description)
}

// Post registers handler for POST requests on path.
func (a *App) Post(path string, handler Handler, description string) error {
	return a.register(crest.MethodPost, path, handler, description)
}

// Put registers handler for PUT requests on path.
func (a *App) Put(path string, handler Handler, description string) error {
	return a.register(crest.MethodPut, path, handler, description)
}

// Delete registers handler for DELETE requests on path.
func (a *App) Delete(path string, handler Handler, description string) error {
	return a.register(crest.MethodDelete, path, handler, description)
}

// Patch registers handler for PATCH requests on path.
func (a *App) Patch(path string, handler Handler, description string) error {
	return a.register(crest.MethodPatch, path, handler, description)
}

// Route registers handler for a method given by name. The name must be one
// of the five canonical upper-case method names; anything else fails before
// any native call is made.
func (a *App) Route(method, path string, handler Handler, description string) error {
	m, ok := crest.ParseMethod(method)
	if !ok {
		return crerr.UnknownMethod(method)
	}
	return a.register(m, path, handler, description)
}

// Routes returns metadata for every registered route, in registration order.
func (a *App) Routes() []RouteInfo {
	a.mu.Lock()
	defer a.mu.Unlock()

	infos := make([]RouteInfo, 0, len(a.routes.entries))
	for _, e := range a.routes.entries {
		infos = append(infos, RouteInfo{
			Method:      e.method,
			Path:        e.path,
			Description: e.description,
		})
	}
	return infos
}

func (a *App) register(method crest.Method, path string, handler Handler, description string) error {
	if handler == nil {
		return crerr.InvalidInput(crerr.PhaseRegister, "handler must not be nil")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.requireCreated("register"); err != nil {
		return err
	}

	if a.routes.has(method, path) {
		// The native router may keep either entry; match behavior for
		// duplicates is its business, not assumed here.
		a.log.Warn("duplicate route registration",
			zap.String("method", method.String()),
			zap.String("path", path))
	}

	fn := a.trampoline(method, path, handler)
	if err := a.eng.AddRoute(a.handle, method, path, fn, description); err != nil {
		return err
	}

	a.routes.add(routeEntry{
		method:      method,
		path:        path,
		description: description,
		fn:          fn,
	})
	return nil
}

// trampoline wraps a Handler into the raw callback shape. The native
// engine may call it from any of its worker threads, concurrently for
// distinct requests, so the closure touches no shared mutable state. A
// panic is contained here: native code has no mechanism to handle an
// unwinding host failure.
func (a *App) trampoline(method crest.Method, path string, handler Handler) crest.HandlerFunc {
	eng := a.eng
	log := a.log

	return func(reqH crest.RequestHandle, resH crest.ResponseHandle) {
		req := &Request{eng: eng, h: reqH}
		res := &Response{eng: eng, h: resH}

		defer func() {
			if r := recover(); r != nil {
				log.Error("handler panic",
					zap.String("method", method.String()),
					zap.String("path", path),
					zap.Any("panic", r))
				if !res.Sent() {
					res.Status(500)
					res.SendJSON(`{"error":"internal server error"}`)
				}
			}
		}()

		handler(req, res)
	}
}
