package assets

import (
	"fmt"

	"github.com/mirafall/strafe/engine/core"
)

// Uploader moves a loaded CPU-side value to GPU residency, typically
// turning raw pixels into a backend texture handle stored back into the
// value. Implementations carry their own backend reference. Upload is
// called at most once per asset; the manager enforces that through the
// needs-upload flag, not the uploader.
type Uploader[T any] interface {
	UploadToGPU(value T) error
}

// Manager owns the key-to-handle table and the asset cells for one asset
// type. Load deduplicates: at most one in-flight load per key, the loader
// is invoked at most once, and every caller gets the same handle.
//
// The manager itself is main-loop-only; the cells it hands out are safe
// to complete from loader goroutines.
type Manager[K comparable, T any] struct {
	loader      Loader[K, T]
	uploader    Uploader[T]
	byKey       map[K]Handle
	keys        map[Handle]K
	cells       map[Handle]*Asset[T]
	needsUpload map[Handle]bool
	uploadErrs  map[Handle]error
}

// NewManager builds a manager around a loader. uploader may be nil for
// asset types with no GPU residency step (audio, prefabs).
func NewManager[K comparable, T any](loader Loader[K, T], uploader Uploader[T]) *Manager[K, T] {
	return &Manager[K, T]{
		loader:      loader,
		uploader:    uploader,
		byKey:       make(map[K]Handle),
		keys:        make(map[Handle]K),
		cells:       make(map[Handle]*Asset[T]),
		needsUpload: make(map[Handle]bool),
		uploadErrs:  make(map[Handle]error),
	}
}

// Load requests the asset for key, returning the existing handle if the
// key was requested before, whatever state its cell is in.
func (m *Manager[K, T]) Load(key K) Handle {
	if h, ok := m.byKey[key]; ok {
		return h
	}
	h := newHandle()
	m.byKey[key] = h
	m.keys[h] = key
	m.cells[h] = m.loader.Load(key)
	if m.uploader != nil {
		m.needsUpload[h] = true
	}
	return h
}

// Get returns the cell behind a handle.
func (m *Manager[K, T]) Get(h Handle) (*Asset[T], bool) {
	a, ok := m.cells[h]
	return a, ok
}

// HandleFor looks up the handle a key resolved to, if it was requested.
func (m *Manager[K, T]) HandleFor(key K) (Handle, bool) {
	h, ok := m.byKey[key]
	return h, ok
}

func (m *Manager[K, T]) IsLoaded(h Handle) bool {
	a, ok := m.cells[h]
	return ok && a.IsLoaded()
}

func (m *Manager[K, T]) IsError(h Handle) bool {
	a, ok := m.cells[h]
	return ok && a.IsError()
}

// Len returns the number of requested assets.
func (m *Manager[K, T]) Len() int {
	return len(m.cells)
}

// AllSettled reports whether every requested asset has left the Loading
// state. Loading scenes poll this.
func (m *Manager[K, T]) AllSettled() bool {
	for _, a := range m.cells {
		if a.State() == StateLoading {
			return false
		}
	}
	return true
}

// Errors returns the keys whose cells failed, with their causes.
func (m *Manager[K, T]) Errors() map[K]error {
	out := make(map[K]error)
	for h, a := range m.cells {
		if err := a.Err(); err != nil {
			out[m.keys[h]] = err
		}
	}
	return out
}

// Upload performs the GPU-residency step for one handle. Calling it for a
// handle that is not flagged or whose cell is not Loaded is programmer
// misuse and panics; ProcessUploads is the safe driver.
func (m *Manager[K, T]) Upload(h Handle) error {
	if m.uploader == nil {
		panic("assets: Upload on a manager without an uploader")
	}
	if !m.needsUpload[h] {
		panic(fmt.Sprintf("assets: Upload called twice for handle %s", h))
	}
	a, ok := m.cells[h]
	if !ok {
		panic(fmt.Sprintf("assets: Upload for unknown handle %s", h))
	}
	value, loaded := a.Get()
	if !loaded {
		panic(fmt.Sprintf("assets: Upload for a %s asset", a.State()))
	}
	delete(m.needsUpload, h)
	if err := m.uploader.UploadToGPU(value); err != nil {
		m.uploadErrs[h] = err
		return err
	}
	return nil
}

// ProcessUploads uploads every Loaded asset still flagged as needing GPU
// residency. Assets still Loading stay flagged for a later frame; failed
// loads are unflagged since they will never have anything to upload.
// Upload failures abort that asset's readiness, not the process.
func (m *Manager[K, T]) ProcessUploads() {
	if m.uploader == nil {
		return
	}
	for h := range m.needsUpload {
		a := m.cells[h]
		switch a.State() {
		case StateLoading:
			continue
		case StateError:
			delete(m.needsUpload, h)
		case StateLoaded:
			if err := m.Upload(h); err != nil {
				core.LogError("gpu upload failed for %v: %s", m.keys[h], err.Error())
			}
		}
	}
}

// UploadErr returns the GPU-upload failure for a handle, if any.
func (m *Manager[K, T]) UploadErr(h Handle) error {
	return m.uploadErrs[h]
}

// Reload re-resolves a key through the loader under its existing handle.
// The old cell is discarded, never reverted, so holders polling it keep a
// consistent terminal state; holders asking the manager see the new cell.
// Used by the hot-reload watcher during development.
func (m *Manager[K, T]) Reload(key K) {
	h, ok := m.byKey[key]
	if !ok {
		return
	}
	m.cells[h] = m.loader.Load(key)
	delete(m.uploadErrs, h)
	if m.uploader != nil {
		m.needsUpload[h] = true
	}
}
