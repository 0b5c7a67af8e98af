package runtime

import (
	"testing"

	crest "github.com/crestlabs/crest-go"
	"github.com/crestlabs/crest-go/enginetest"
)

func TestResponse_JSON(t *testing.T) {
	app, f := newCreatedApp(t)

	type user struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}

	err := app.Get("/user", func(req *Request, res *Response) {
		res.Status(200)
		if err := res.JSON(user{Name: "ada", Age: 36}); err != nil {
			t.Errorf("JSON: %v", err)
		}
	}, "")
	if err != nil {
		t.Fatal(err)
	}

	res, err := f.Invoke(f.LastApp(), &enginetest.Request{
		Method: crest.MethodGet,
		Path:   "/user",
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.Body != `{"name":"ada","age":36}` {
		t.Errorf("body = %q", res.Body)
	}
	if !res.IsJSON {
		t.Error("payload should have gone through the JSON send")
	}
	if res.Headers["Content-Type"] != "application/json" {
		t.Errorf("content type = %q", res.Headers["Content-Type"])
	}
}

func TestResponse_JSONEncodeFailureLeavesResponseOpen(t *testing.T) {
	app, f := newCreatedApp(t)

	err := app.Get("/bad", func(req *Request, res *Response) {
		// Channels are not encodable; the response must stay usable.
		if err := res.JSON(make(chan int)); err == nil {
			t.Error("expected encode error")
		}
		if res.Sent() {
			t.Error("failed encode must not mark the response sent")
		}
		res.Status(500)
		res.Send("encode failed")
	}, "")
	if err != nil {
		t.Fatal(err)
	}

	res, err := f.Invoke(f.LastApp(), &enginetest.Request{
		Method: crest.MethodGet,
		Path:   "/bad",
	})
	if err != nil {
		t.Fatal(err)
	}

	if res.StatusCode != 500 || res.Body != "encode failed" {
		t.Errorf("got status=%d body=%q", res.StatusCode, res.Body)
	}
}

func TestResponse_SentFlag(t *testing.T) {
	app, f := newCreatedApp(t)

	err := app.Get("/s", func(req *Request, res *Response) {
		if res.Sent() {
			t.Error("fresh response reports sent")
		}
		res.Send("x")
		if !res.Sent() {
			t.Error("response not marked sent after Send")
		}
	}, "")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.Invoke(f.LastApp(), &enginetest.Request{Method: crest.MethodGet, Path: "/s"}); err != nil {
		t.Fatal(err)
	}
}
