// Package assets implements the asynchronous asset-loading state machine.
// Every asset type (textures, shaders, audio, prefabs) shares one model: a
// request yields a Handle immediately, the underlying cell moves from
// Loading to exactly one of Loaded or Error, and consumers poll the cell
// instead of blocking. GPU residency is a separate, deferred step tracked
// per handle by the manager.
package assets

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// State of an asset cell. Loading is the only non-terminal state.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Handle is an opaque, stable identifier for a requested asset. Handles
// compare equal only when they refer to the same request.
type Handle struct {
	id uuid.UUID
}

// NilHandle is the zero Handle; the manager never issues it.
var NilHandle = Handle{}

func newHandle() Handle {
	return Handle{id: uuid.New()}
}

func (h Handle) String() string {
	return h.id.String()
}

// Asset is the shared cell a loader resolves and every holder of the
// handle observes. Loaders may complete it from a background goroutine
// while the game loop polls it, so access is synchronized. Transitions
// are one-way and happen exactly once; completing or failing a cell twice
// is a bug in the loader and panics.
type Asset[T any] struct {
	mu    sync.Mutex
	state State
	value T
	err   error
}

// NewLoading returns a cell in the Loading state.
func NewLoading[T any]() *Asset[T] {
	return &Asset[T]{state: StateLoading}
}

// Complete moves the cell to Loaded.
func (a *Asset[T]) Complete(value T) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateLoading {
		panic(fmt.Sprintf("asset: Complete on a %s cell", a.state))
	}
	a.value = value
	a.state = StateLoaded
}

// Fail moves the cell to Error, preserving the cause.
func (a *Asset[T]) Fail(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateLoading {
		panic(fmt.Sprintf("asset: Fail on a %s cell", a.state))
	}
	a.err = err
	a.state = StateError
}

// State returns the current state without blocking on resolution.
func (a *Asset[T]) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Asset[T]) IsLoaded() bool {
	return a.State() == StateLoaded
}

func (a *Asset[T]) IsError() bool {
	return a.State() == StateError
}

// Get returns the loaded value. The second return is false unless the
// cell is Loaded.
func (a *Asset[T]) Get() (T, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state != StateLoaded {
		var zero T
		return zero, false
	}
	return a.value, true
}

// Err returns the failure cause, or nil unless the cell is Error.
func (a *Asset[T]) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}
