package runtime

import (
	"errors"
	"testing"
	"time"

	crest "github.com/crestlabs/crest-go"
	"github.com/crestlabs/crest-go/enginetest"
	crerr "github.com/crestlabs/crest-go/errors"
)

func waitForRunning(t *testing.T, f *enginetest.Fake) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for !f.Running(f.LastApp()) {
		select {
		case <-deadline:
			t.Fatal("serve loop never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

func newCreatedApp(t *testing.T) (*App, *enginetest.Fake) {
	t.Helper()
	f := enginetest.New()
	app := New(f)
	if err := app.Create(); err != nil {
		t.Fatal(err)
	}
	return app, f
}

func TestRegister_AllMethods(t *testing.T) {
	app, f := newCreatedApp(t)
	noop := func(*Request, *Response) {}

	registrations := []struct {
		register func() error
		want     crest.Method
	}{
		{func() error { return app.Get("/r", noop, "get") }, crest.MethodGet},
		{func() error { return app.Post("/r", noop, "post") }, crest.MethodPost},
		{func() error { return app.Put("/r", noop, "put") }, crest.MethodPut},
		{func() error { return app.Delete("/r", noop, "delete") }, crest.MethodDelete},
		{func() error { return app.Patch("/r", noop, "patch") }, crest.MethodPatch},
	}

	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			t.Fatalf("%s: %v", reg.want, err)
		}
	}

	routes := f.Routes(f.LastApp())
	if len(routes) != len(registrations) {
		t.Fatalf("engine recorded %d routes, want %d", len(routes), len(registrations))
	}
	for i, reg := range registrations {
		if routes[i].Method != reg.want {
			t.Errorf("route[%d].Method = %v, want %v", i, routes[i].Method, reg.want)
		}
		if routes[i].Path != "/r" {
			t.Errorf("route[%d].Path = %q", i, routes[i].Path)
		}
	}
}

func TestRegister_ByName(t *testing.T) {
	app, f := newCreatedApp(t)

	if err := app.Route("PATCH", "/p", func(*Request, *Response) {}, "d"); err != nil {
		t.Fatal(err)
	}

	routes := f.Routes(f.LastApp())
	if len(routes) != 1 || routes[0].Method != crest.MethodPatch {
		t.Fatalf("unexpected routes: %+v", routes)
	}
	if routes[0].Description != "d" {
		t.Errorf("description = %q", routes[0].Description)
	}
}

func TestRegister_UnknownMethod(t *testing.T) {
	app, f := newCreatedApp(t)

	for _, method := range []string{"TRACE", "OPTIONS", "get", ""} {
		err := app.Route(method, "/x", func(*Request, *Response) {}, "")
		if !errors.Is(err, crerr.UnknownMethod("")) {
			t.Errorf("Route(%q): got %v, want unknown method", method, err)
		}
	}

	// No native registration may have happened.
	if routes := f.Routes(f.LastApp()); len(routes) != 0 {
		t.Errorf("engine recorded %d routes for invalid methods", len(routes))
	}
}

func TestRegister_NilHandler(t *testing.T) {
	app, _ := newCreatedApp(t)

	if err := app.Get("/x", nil, ""); err == nil {
		t.Fatal("nil handler must be rejected")
	}
}

func TestRegister_WhileRunningFails(t *testing.T) {
	app, f := newCreatedApp(t)

	done := make(chan error, 1)
	go func() {
		done <- app.Run("127.0.0.1", 0)
	}()
	defer func() {
		app.Stop()
		<-done
	}()

	waitForRunning(t, f)

	err := app.Get("/late", func(*Request, *Response) {}, "")
	if !errors.Is(err, crerr.InvalidState("", "")) {
		t.Errorf("registration while running: got %v, want invalid state", err)
	}
}

func TestRegister_DuplicateKeepsBoth(t *testing.T) {
	app, f := newCreatedApp(t)
	noop := func(*Request, *Response) {}

	if err := app.Get("/dup", noop, "first"); err != nil {
		t.Fatal(err)
	}
	if err := app.Get("/dup", noop, "second"); err != nil {
		t.Fatal(err)
	}

	// Which entry the native router matches is its business; the bridge
	// must keep both callbacks alive since the engine holds both pointers.
	if routes := f.Routes(f.LastApp()); len(routes) != 2 {
		t.Fatalf("engine holds %d registrations, want 2", len(routes))
	}
	if infos := app.Routes(); len(infos) != 2 {
		t.Fatalf("registry holds %d entries, want 2", len(infos))
	}
}

func TestRoutes_Metadata(t *testing.T) {
	app, _ := newCreatedApp(t)

	if err := app.Get("/health", func(*Request, *Response) {}, "Health check"); err != nil {
		t.Fatal(err)
	}
	if err := app.Post("/users", func(*Request, *Response) {}, "Create user"); err != nil {
		t.Fatal(err)
	}

	infos := app.Routes()
	want := []RouteInfo{
		{Method: crest.MethodGet, Path: "/health", Description: "Health check"},
		{Method: crest.MethodPost, Path: "/users", Description: "Create user"},
	}
	if len(infos) != len(want) {
		t.Fatalf("got %d routes, want %d", len(infos), len(want))
	}
	for i := range want {
		if infos[i] != want[i] {
			t.Errorf("route[%d] = %+v, want %+v", i, infos[i], want[i])
		}
	}
}

func TestRegistry_DiscardedOnDestroy(t *testing.T) {
	app, _ := newCreatedApp(t)

	if err := app.Get("/x", func(*Request, *Response) {}, ""); err != nil {
		t.Fatal(err)
	}
	if err := app.Destroy(); err != nil {
		t.Fatal(err)
	}

	if infos := app.Routes(); len(infos) != 0 {
		t.Errorf("registrations must be discarded on destroy, found %d", len(infos))
	}
}
