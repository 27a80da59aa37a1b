// Package loaders holds the concrete asset loaders: loose textures with
// JSON sampler metadata, a packed binary texture source, shader source
// pairs, WAV audio, JSON prefabs and bitmap fonts. Each loader supplies a
// resolve function; the assets package wraps it into the sync or async
// cell protocol.
package loaders

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"

	"github.com/mirafall/strafe/engine/assets"
	"github.com/mirafall/strafe/engine/core"
	"github.com/mirafall/strafe/engine/jobs"
	"github.com/mirafall/strafe/engine/renderer"
)

// Sampler carries the wrap/filter settings stored next to a texture in a
// ".json" sidecar. A missing or malformed sidecar degrades to defaults
// rather than failing the texture.
type Sampler struct {
	WrapU  string `json:"wrap_u"`
	WrapV  string `json:"wrap_v"`
	Filter string `json:"filter"`
}

func DefaultSampler() Sampler {
	return Sampler{WrapU: "clamp", WrapV: "clamp", Filter: "nearest"}
}

// TextureData is the CPU-side representation of a sprite texture: RGBA
// pixels plus sampler settings. GPU is filled by the uploader.
type TextureData struct {
	Width, Height uint32
	Pixels        []byte
	Sampler       Sampler
	GPU           renderer.TextureHandle
}

// NewTextureLoader resolves loose texture files under base on the worker
// pool.
func NewTextureLoader(base string, pool *jobs.Pool) assets.Loader[string, *TextureData] {
	return &assets.AsyncLoader[string, *TextureData]{
		Pool:    pool,
		Resolve: func(key string) (*TextureData, error) { return ResolveTexture(base, key) },
	}
}

// NewSyncTextureLoader resolves on the calling goroutine; used as the
// fallback behind the packed source and in tests.
func NewSyncTextureLoader(base string) assets.Loader[string, *TextureData] {
	return &assets.SyncLoader[string, *TextureData]{
		Resolve: func(key string) (*TextureData, error) { return ResolveTexture(base, key) },
	}
}

// ResolveTexture decodes base/key into RGBA pixels and reads the sampler
// sidecar.
func ResolveTexture(base, key string) (*TextureData, error) {
	path := filepath.Join(base, filepath.FromSlash(key))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", key, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture %s: decoding: %w", key, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Copy(rgba, image.Point{}, img, bounds, xdraw.Src, nil)

	return &TextureData{
		Width:   uint32(bounds.Dx()),
		Height:  uint32(bounds.Dy()),
		Pixels:  rgba.Pix,
		Sampler: loadSampler(path + ".json"),
	}, nil
}

func loadSampler(path string) Sampler {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultSampler()
	}
	s := DefaultSampler()
	if err := json.Unmarshal(data, &s); err != nil {
		core.LogWarn("malformed sampler sidecar %s, using defaults: %s", path, err.Error())
		return DefaultSampler()
	}
	return s
}

// TextureUploader turns resolved pixels into a backend texture handle.
type TextureUploader struct {
	Backend renderer.Backend
}

func (u *TextureUploader) UploadToGPU(t *TextureData) error {
	h, err := u.Backend.CreateTexture(t.Width, t.Height, t.Pixels)
	if err != nil {
		return err
	}
	t.GPU = h
	return nil
}
