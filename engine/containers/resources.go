package containers

import (
	"fmt"
	"reflect"
)

// ResourceContainer stores at most one value per concrete type, keyed by
// type identity. Access goes through borrow-checked guards: any number of
// concurrent shared readers, or exactly one exclusive writer. Violations
// are logic bugs in calling code and panic immediately rather than block.
//
// The container is built for a single-threaded game loop. The borrow
// bookkeeping detects overlapping guard lifetimes within that thread; it
// is not a substitute for a mutex across goroutines.
type ResourceContainer struct {
	cells map[reflect.Type]*cell
}

type cell struct {
	value   any
	readers int
	writer  bool
}

func NewResourceContainer() *ResourceContainer {
	return &ResourceContainer{
		cells: make(map[reflect.Type]*cell),
	}
}

// Len returns the number of distinct resource types stored.
func (rc *ResourceContainer) Len() int {
	return len(rc.cells)
}

// Insert stores the single instance of type T, silently replacing any
// previous one. Replacing a resource whose guards are still live panics:
// a live guard would keep handing out the stale value.
func Insert[T any](rc *ResourceContainer, value T) {
	t := reflect.TypeFor[T]()
	if c, ok := rc.cells[t]; ok {
		if c.readers > 0 || c.writer {
			panic(fmt.Sprintf("resource %v replaced while borrowed", t))
		}
		c.value = value
		return
	}
	rc.cells[t] = &cell{value: value}
}

// Fetch acquires a shared borrow of the T resource. The second return is
// false only when no T was ever inserted; an exclusive borrow being live
// is a programming error and panics.
func Fetch[T any](rc *ResourceContainer) (*ReadGuard[T], bool) {
	t := reflect.TypeFor[T]()
	c, ok := rc.cells[t]
	if !ok {
		return nil, false
	}
	if c.writer {
		panic(fmt.Sprintf("resource %v fetched while exclusively borrowed", t))
	}
	c.readers++
	v := c.value.(T)
	return &ReadGuard[T]{cell: c, value: v}, true
}

// FetchMut acquires the exclusive borrow of the T resource. Panics if any
// borrow, shared or exclusive, is live.
func FetchMut[T any](rc *ResourceContainer) (*WriteGuard[T], bool) {
	t := reflect.TypeFor[T]()
	c, ok := rc.cells[t]
	if !ok {
		return nil, false
	}
	if c.writer {
		panic(fmt.Sprintf("resource %v fetched mutably while exclusively borrowed", t))
	}
	if c.readers > 0 {
		panic(fmt.Sprintf("resource %v fetched mutably while %d shared borrows are live", t, c.readers))
	}
	c.writer = true
	v := c.value.(T)
	return &WriteGuard[T]{cell: c, value: v}, true
}

// ReadGuard is a scoped shared borrow. Release it on every exit path,
// typically with defer.
type ReadGuard[T any] struct {
	cell     *cell
	value    T
	released bool
}

// Get returns the borrowed value.
func (g *ReadGuard[T]) Get() T {
	if g.released {
		panic("read guard used after release")
	}
	return g.value
}

// Release returns the shared borrow. Releasing twice panics.
func (g *ReadGuard[T]) Release() {
	if g.released {
		panic("read guard released twice")
	}
	g.released = true
	g.cell.readers--
}

// WriteGuard is a scoped exclusive borrow. Mutations made through Set (or
// through the pointer when T is a pointer type) are visible to later
// fetches once the guard is released.
type WriteGuard[T any] struct {
	cell     *cell
	value    T
	released bool
}

func (g *WriteGuard[T]) Get() T {
	if g.released {
		panic("write guard used after release")
	}
	return g.value
}

// Set replaces the stored value while the exclusive borrow is held.
func (g *WriteGuard[T]) Set(value T) {
	if g.released {
		panic("write guard used after release")
	}
	g.value = value
	g.cell.value = value
}

// Release returns the exclusive borrow. Releasing twice panics.
func (g *WriteGuard[T]) Release() {
	if g.released {
		panic("write guard released twice")
	}
	g.released = true
	g.cell.writer = false
}
