package assets

import (
	"github.com/mirafall/strafe/engine/jobs"
)

// Loader resolves a key into an asset cell. Load must return immediately
// with a cell in the Loading state; whether resolution happened
// synchronously before the return or continues on a background worker is
// the loader's business. Callers only ever poll the cell.
type Loader[K comparable, T any] interface {
	Load(key K) *Asset[T]
}

// ResolveFunc produces the CPU-side value for a key. It is the piece a
// concrete loader supplies; SyncLoader and AsyncLoader wrap it into the
// cell protocol.
type ResolveFunc[K comparable, T any] func(key K) (T, error)

// SyncLoader resolves on the calling goroutine. The returned cell is
// already terminal.
type SyncLoader[K comparable, T any] struct {
	Resolve ResolveFunc[K, T]
}

func (l *SyncLoader[K, T]) Load(key K) *Asset[T] {
	a := NewLoading[T]()
	value, err := l.Resolve(key)
	if err != nil {
		a.Fail(err)
		return a
	}
	a.Complete(value)
	return a
}

// AsyncLoader resolves on a worker pool. The returned cell completes
// later; poll it.
type AsyncLoader[K comparable, T any] struct {
	Pool    *jobs.Pool
	Resolve ResolveFunc[K, T]
}

func (l *AsyncLoader[K, T]) Load(key K) *Asset[T] {
	a := NewLoading[T]()
	l.Pool.Submit(jobs.Task{
		Run: func() error {
			value, err := l.Resolve(key)
			if err != nil {
				return err
			}
			a.Complete(value)
			return nil
		},
		OnFailure: func(err error) {
			a.Fail(err)
		},
	})
	return a
}

// Indexed is implemented by loaders that can answer key membership
// without performing the load, e.g. a packed-asset loader with an
// in-memory table of contents.
type Indexed[K comparable] interface {
	Has(key K) bool
}

// Chain delegates to Fallback when the Primary loader's index misses the
// key. Loader composition replaces inheritance here: a packed-asset
// source backed by loose files on disk is just Chain{packed, disk}.
type Chain[K comparable, T any] struct {
	Primary interface {
		Loader[K, T]
		Indexed[K]
	}
	Fallback Loader[K, T]
}

func (c *Chain[K, T]) Load(key K) *Asset[T] {
	if !c.Primary.Has(key) {
		return c.Fallback.Load(key)
	}
	return c.Primary.Load(key)
}
