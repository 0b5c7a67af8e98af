package runtime

import crest "github.com/crestlabs/crest-go"

// Request is a read-only view over a native request handle. It is valid
// only for the duration of the handler invocation it was created for; the
// native engine reclaims the underlying memory as soon as the handler
// returns. Every accessor copies its result into Go memory, so returned
// strings may be kept.
type Request struct {
	eng crest.Engine
	h   crest.RequestHandle
}

// Method returns the request's HTTP method name.
func (r *Request) Method() string {
	return r.eng.RequestMethod(r.h)
}

// Path returns the request path.
func (r *Request) Path() string {
	return r.eng.RequestPath(r.h)
}

// Body returns the request body, empty for bodyless requests.
func (r *Request) Body() string {
	return r.eng.RequestBody(r.h)
}

// Param returns the named path parameter. The second result is false when
// the route pattern has no such parameter; a parameter present with an
// empty value returns ("", true).
func (r *Request) Param(name string) (string, bool) {
	return r.eng.RequestParam(r.h, name)
}

// Query returns the named query parameter, distinguishing absent from
// present-but-empty the same way Param does.
func (r *Request) Query(name string) (string, bool) {
	return r.eng.RequestQuery(r.h, name)
}

// Header returns the named request header.
func (r *Request) Header(name string) (string, bool) {
	return r.eng.RequestHeader(r.h, name)
}
