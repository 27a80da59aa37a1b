package assets

import (
	"errors"
	"testing"
)

// stubLoader hands out cells it keeps, so tests control resolution.
type stubLoader struct {
	loads int
	cells map[string]*Asset[string]
}

func newStubLoader() *stubLoader {
	return &stubLoader{cells: make(map[string]*Asset[string])}
}

func (l *stubLoader) Load(key string) *Asset[string] {
	l.loads++
	a := NewLoading[string]()
	l.cells[key] = a
	return a
}

func TestStateMonotonicity(t *testing.T) {
	a := NewLoading[string]()
	if a.State() != StateLoading {
		t.Fatalf("fresh cell should be Loading, got %s", a.State())
	}
	if _, ok := a.Get(); ok {
		t.Error("Get on a Loading cell should report not ok")
	}

	a.Complete("pixels")
	if !a.IsLoaded() || a.IsError() {
		t.Error("cell should be Loaded and not Error")
	}
	v, ok := a.Get()
	if !ok || v != "pixels" {
		t.Errorf("expected loaded value, got %q ok=%v", v, ok)
	}

	// Terminal states never transition again.
	mustPanicAsset(t, "Complete twice", func() { a.Complete("again") })
	mustPanicAsset(t, "Fail after Complete", func() { a.Fail(errors.New("nope")) })

	b := NewLoading[string]()
	b.Fail(errors.New("missing file"))
	if !b.IsError() || b.IsLoaded() {
		t.Error("cell should be Error and not Loaded")
	}
	if b.Err() == nil {
		t.Error("Err should preserve the cause")
	}
	mustPanicAsset(t, "Complete after Fail", func() { b.Complete("late") })
}

func mustPanicAsset(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestManagerDeduplicatesLoads(t *testing.T) {
	loader := newStubLoader()
	m := NewManager[string, string](loader, nil)

	h1 := m.Load("ship.png")
	h2 := m.Load("ship.png")
	if h1 != h2 {
		t.Error("same key must yield the same handle")
	}
	if loader.loads != 1 {
		t.Errorf("loader invoked %d times, want 1", loader.loads)
	}

	h3 := m.Load("enemy.png")
	if h3 == h1 {
		t.Error("distinct keys must yield distinct handles")
	}
	if m.Len() != 2 {
		t.Errorf("expected 2 requested assets, got %d", m.Len())
	}
}

func TestManagerPollsWithoutBlocking(t *testing.T) {
	loader := newStubLoader()
	m := NewManager[string, string](loader, nil)

	h := m.Load("ship.png")
	if m.IsLoaded(h) || m.IsError(h) {
		t.Error("unresolved asset should be neither loaded nor errored")
	}
	if m.AllSettled() {
		t.Error("manager should report pending loads")
	}

	loader.cells["ship.png"].Complete("pixels")
	if !m.IsLoaded(h) {
		t.Error("asset should be loaded after the cell completes")
	}
	if !m.AllSettled() {
		t.Error("manager should report all settled")
	}

	a, ok := m.Get(h)
	if !ok {
		t.Fatal("cell should be retrievable by handle")
	}
	if v, _ := a.Get(); v != "pixels" {
		t.Errorf("expected pixels, got %q", v)
	}
}

func TestManagerErrorsSurfaceCauses(t *testing.T) {
	loader := newStubLoader()
	m := NewManager[string, string](loader, nil)

	h := m.Load("gone.png")
	cause := errors.New("no such file")
	loader.cells["gone.png"].Fail(cause)

	if !m.IsError(h) {
		t.Error("asset should report error")
	}
	errs := m.Errors()
	if !errors.Is(errs["gone.png"], cause) {
		t.Errorf("expected preserved cause, got %v", errs["gone.png"])
	}
}

func TestSyncLoaderResolvesBeforeReturn(t *testing.T) {
	l := &SyncLoader[string, int]{
		Resolve: func(key string) (int, error) {
			if key == "bad" {
				return 0, errors.New("malformed")
			}
			return len(key), nil
		},
	}

	a := l.Load("four")
	if v, ok := a.Get(); !ok || v != 4 {
		t.Errorf("expected 4, got %d ok=%v", v, ok)
	}
	if b := l.Load("bad"); !b.IsError() {
		t.Error("expected error cell")
	}
}

type mapLoader struct {
	values map[string]string
	loads  int
}

func (l *mapLoader) Has(key string) bool {
	_, ok := l.values[key]
	return ok
}

func (l *mapLoader) Load(key string) *Asset[string] {
	l.loads++
	a := NewLoading[string]()
	v, ok := l.values[key]
	if !ok {
		a.Fail(errors.New("not in pack"))
		return a
	}
	a.Complete(v)
	return a
}

func TestChainFallsBackOnIndexMiss(t *testing.T) {
	primary := &mapLoader{values: map[string]string{"a.png": "packed-a"}}
	fallback := &mapLoader{values: map[string]string{"a.png": "disk-a", "x.png": "disk-x"}}
	chain := &Chain[string, string]{Primary: primary, Fallback: fallback}

	a := chain.Load("x.png")
	if v, ok := a.Get(); !ok || v != "disk-x" {
		t.Errorf("expected fallback resolution, got %q ok=%v", v, ok)
	}

	b := chain.Load("a.png")
	if v, _ := b.Get(); v != "packed-a" {
		t.Errorf("primary hit should not fall back, got %q", v)
	}
	if fallback.loads != 1 {
		t.Errorf("fallback invoked %d times, want 1", fallback.loads)
	}
}

type recordingUploader struct {
	uploads []string
	fail    bool
}

func (u *recordingUploader) UploadToGPU(v string) error {
	if u.fail {
		return errors.New("gpu says no")
	}
	u.uploads = append(u.uploads, v)
	return nil
}

func TestUploadsRunOncePerAsset(t *testing.T) {
	loader := newStubLoader()
	up := &recordingUploader{}
	m := NewManager[string, string](loader, up)

	h := m.Load("ship.png")

	// Still loading: nothing to upload yet, the flag stays set.
	m.ProcessUploads()
	if len(up.uploads) != 0 {
		t.Fatal("upload must wait for Loaded")
	}

	loader.cells["ship.png"].Complete("pixels")
	m.ProcessUploads()
	if len(up.uploads) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(up.uploads))
	}

	// Flag cleared: another pass is a no-op, and a manual second upload
	// is programmer misuse.
	m.ProcessUploads()
	if len(up.uploads) != 1 {
		t.Error("upload ran twice for one asset")
	}
	mustPanicAsset(t, "manual double upload", func() { m.Upload(h) })
}

func TestUploadFailureDoesNotKillTheAsset(t *testing.T) {
	loader := newStubLoader()
	up := &recordingUploader{fail: true}
	m := NewManager[string, string](loader, up)

	h := m.Load("ship.png")
	loader.cells["ship.png"].Complete("pixels")
	m.ProcessUploads()

	if m.UploadErr(h) == nil {
		t.Error("upload failure should be recorded")
	}
	// Load state is monotonic; the upload failure is orthogonal.
	if !m.IsLoaded(h) {
		t.Error("asset should remain Loaded")
	}
}

func TestErroredLoadsAreUnflagged(t *testing.T) {
	loader := newStubLoader()
	up := &recordingUploader{}
	m := NewManager[string, string](loader, up)

	m.Load("gone.png")
	loader.cells["gone.png"].Fail(errors.New("missing"))

	m.ProcessUploads()
	if len(m.needsUpload) != 0 {
		t.Error("failed loads must not stay flagged for upload")
	}
}
