// Package renderer defines the boundary to the drawing backend. The
// engine core treats rendering as an external collaborator: it hands the
// backend CPU-side pixel data and draw calls and never sees an API
// binding. Real backends live behind the Backend interface; the Headless
// backend serves tests and server-side runs.
package renderer

import (
	"errors"
	"fmt"
)

// TextureHandle identifies a GPU-resident texture. Zero is never issued.
type TextureHandle uint32

// ProgramHandle identifies a compiled shader program. Zero is never issued.
type ProgramHandle uint32

var ErrBackendDown = errors.New("renderer backend is not running")

// SpriteDraw is one quad submitted for the current frame.
type SpriteDraw struct {
	Texture       TextureHandle
	X, Y          float32
	Width, Height float32
	Rotation      float32
}

type Backend interface {
	Startup(name string, width, height uint32) error
	Shutdown() error

	// BeginFrame opens a frame; a non-nil error aborts the tick and, if
	// persistent, the run.
	BeginFrame(dt float64) error
	EndFrame() error
	Resized(width, height uint32)

	CreateTexture(width, height uint32, pixels []byte) (TextureHandle, error)
	DestroyTexture(h TextureHandle) error
	CreateProgram(vertex, fragment []byte) (ProgramHandle, error)

	DrawSprite(d SpriteDraw)
}

// Headless is a backend that validates and counts submissions without
// drawing. It backs tests and the loading of GPU-flagged assets when no
// window exists.
type Headless struct {
	running      bool
	nextTexture  TextureHandle
	nextProgram  ProgramHandle
	textures     map[TextureHandle]struct{}
	frameSprites []SpriteDraw
	frames       uint64
}

func NewHeadless() *Headless {
	return &Headless{
		textures: make(map[TextureHandle]struct{}),
	}
}

func (b *Headless) Startup(name string, width, height uint32) error {
	b.running = true
	return nil
}

func (b *Headless) Shutdown() error {
	b.running = false
	return nil
}

func (b *Headless) BeginFrame(dt float64) error {
	if !b.running {
		return ErrBackendDown
	}
	b.frameSprites = b.frameSprites[:0]
	return nil
}

func (b *Headless) EndFrame() error {
	if !b.running {
		return ErrBackendDown
	}
	b.frames++
	return nil
}

func (b *Headless) Resized(width, height uint32) {}

func (b *Headless) CreateTexture(width, height uint32, pixels []byte) (TextureHandle, error) {
	if !b.running {
		return 0, ErrBackendDown
	}
	if want := int(width) * int(height) * 4; len(pixels) != want {
		return 0, fmt.Errorf("texture %dx%d needs %d bytes of RGBA, got %d", width, height, want, len(pixels))
	}
	b.nextTexture++
	b.textures[b.nextTexture] = struct{}{}
	return b.nextTexture, nil
}

func (b *Headless) DestroyTexture(h TextureHandle) error {
	if _, ok := b.textures[h]; !ok {
		return fmt.Errorf("destroy of unknown texture %d", h)
	}
	delete(b.textures, h)
	return nil
}

func (b *Headless) CreateProgram(vertex, fragment []byte) (ProgramHandle, error) {
	if !b.running {
		return 0, ErrBackendDown
	}
	if len(vertex) == 0 || len(fragment) == 0 {
		return 0, errors.New("empty shader stage source")
	}
	b.nextProgram++
	return b.nextProgram, nil
}

func (b *Headless) DrawSprite(d SpriteDraw) {
	b.frameSprites = append(b.frameSprites, d)
}

// SpriteCount returns the number of sprites submitted this frame.
func (b *Headless) SpriteCount() int {
	return len(b.frameSprites)
}

// Frames returns the number of completed frames.
func (b *Headless) Frames() uint64 {
	return b.frames
}

// TextureCount returns the number of live textures.
func (b *Headless) TextureCount() int {
	return len(b.textures)
}
