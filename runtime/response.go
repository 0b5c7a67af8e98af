package runtime

import (
	"encoding/json"

	crest "github.com/crestlabs/crest-go"
)

// Response is a write-only view over a native response handle, valid only
// for the duration of the handler invocation. Status and headers must be
// set before the body is sent; Send and SendJSON are terminal, and calling
// more than one of them on the same response is undefined on the native
// side. A Response is not safe for concurrent use.
type Response struct {
	eng  crest.Engine
	h    crest.ResponseHandle
	sent bool
}

// Status sets the HTTP status code.
func (r *Response) Status(code int) {
	r.eng.SetStatus(r.h, code)
}

// Header sets a response header. Values cross the boundary as UTF-8 and
// are delivered byte-identical.
func (r *Response) Header(name, value string) {
	r.eng.SetHeader(r.h, name, value)
}

// Send writes body as the response payload.
func (r *Response) Send(body string) {
	r.sent = true
	r.eng.Send(r.h, body)
}

// SendJSON writes an already-encoded JSON document as the payload with a
// JSON content type.
func (r *Response) SendJSON(raw string) {
	r.sent = true
	r.eng.SendJSON(r.h, raw)
}

// JSON encodes v and sends it as the JSON payload. The response is left
// untouched when encoding fails, so the handler can still send an error
// body.
func (r *Response) JSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	r.SendJSON(string(data))
	return nil
}

// Sent reports whether a body has been sent through this view.
func (r *Response) Sent() bool {
	return r.sent
}
