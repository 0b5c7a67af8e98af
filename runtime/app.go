package runtime

import (
	"sync"

	"go.uber.org/zap"

	crest "github.com/crestlabs/crest-go"
	crerr "github.com/crestlabs/crest-go/errors"
)

// State is the lifecycle state of an App.
type State int

const (
	StateUninitialized State = iota
	StateCreated
	StateRunning
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateCreated:
		return "Created"
	case StateRunning:
		return "Running"
	case StateDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// App manages one native application instance. It owns at most one live
// native handle at a time and is the only component allowed to destroy it.
//
// Lifecycle methods must not be called concurrently with each other; the
// one exception is Stop, which is meant to be called while Run blocks.
type App struct {
	eng    crest.Engine
	log    *zap.Logger
	mu     sync.Mutex
	state  State
	handle crest.AppHandle
	routes registry
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the app's logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.log = l
	}
}

// New returns an App bound to eng, in state Uninitialized.
func New(eng crest.Engine, opts ...Option) *App {
	a := &App{
		eng: eng,
		log: Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns the current lifecycle state.
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Create allocates the native application instance. Valid from
// Uninitialized or Destroyed; a second Create without an intervening
// Destroy fails rather than leaking the live handle.
func (a *App) Create() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch a.state {
	case StateCreated, StateRunning:
		return crerr.AlreadyCreated()
	}

	h := a.eng.CreateApp()
	if h == 0 {
		return crerr.NullHandle()
	}

	a.handle = h
	a.routes.reset()
	a.state = StateCreated
	a.log.Debug("app created")
	return nil
}

// requireCreated guards the configuration operations, which the native
// engine only reads before its serve loop starts.
func (a *App) requireCreated(op string) error {
	switch a.state {
	case StateCreated:
		return nil
	case StateDestroyed:
		return crerr.UseAfterDestroy(op)
	default:
		return crerr.InvalidState(op, a.state.String())
	}
}

// EnableDashboard toggles the engine's built-in dashboard.
func (a *App) EnableDashboard(enabled bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.requireCreated("EnableDashboard"); err != nil {
		return err
	}
	a.eng.EnableDashboard(a.handle, enabled)
	return nil
}

// SetTitle sets the dashboard title. Ignored by engine builds without the
// metadata entry points.
func (a *App) SetTitle(title string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.requireCreated("SetTitle"); err != nil {
		return err
	}
	a.eng.SetTitle(a.handle, title)
	return nil
}

// SetDescription sets the dashboard description.
func (a *App) SetDescription(description string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.requireCreated("SetDescription"); err != nil {
		return err
	}
	a.eng.SetDescription(a.handle, description)
	return nil
}

// Run enters the native serve loop and blocks until it exits. A non-zero
// native status (port bind failure, listener error) maps to a run error;
// zero means a clean shutdown via Stop or a natively handled signal.
func (a *App) Run(host string, port int) error {
	a.mu.Lock()
	switch a.state {
	case StateDestroyed:
		a.mu.Unlock()
		return crerr.UseAfterDestroy("Run")
	case StateCreated:
	default:
		st := a.state
		a.mu.Unlock()
		return crerr.InvalidState("Run", st.String())
	}
	a.state = StateRunning
	h := a.handle
	a.mu.Unlock()

	a.log.Info("serving", zap.String("host", host), zap.Int("port", port))
	status := a.eng.RunApp(h, host, port)

	a.mu.Lock()
	if a.state == StateRunning {
		a.state = StateCreated
	}
	a.mu.Unlock()

	if status != 0 {
		return crerr.RunFailed(status)
	}
	return nil
}

// Stop requests a graceful exit of a blocked Run. Safe to call from
// another goroutine while Run blocks; fails on engine builds without the
// stop entry point.
func (a *App) Stop() error {
	a.mu.Lock()
	switch a.state {
	case StateDestroyed:
		a.mu.Unlock()
		return crerr.UseAfterDestroy("Stop")
	case StateUninitialized:
		a.mu.Unlock()
		return crerr.InvalidState("Stop", StateUninitialized.String())
	}
	h := a.handle
	a.mu.Unlock()

	return a.eng.StopApp(h)
}

// Destroy releases the native instance and discards all registrations.
// The native destroy call is issued at most once: destroying twice is
// undefined on the native side, so the second and later calls are no-ops
// at the bridge layer.
func (a *App) Destroy() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch a.state {
	case StateDestroyed:
		return nil
	case StateUninitialized:
		a.state = StateDestroyed
		return nil
	}

	a.eng.DestroyApp(a.handle)
	a.handle = 0
	a.routes.reset()
	a.state = StateDestroyed
	a.log.Debug("app destroyed")
	return nil
}
