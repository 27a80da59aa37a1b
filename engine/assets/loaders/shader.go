package loaders

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mirafall/strafe/engine/assets"
	"github.com/mirafall/strafe/engine/renderer"
)

// ShaderKey addresses a program by its two stage files.
type ShaderKey struct {
	Vertex   string
	Fragment string
}

func (k ShaderKey) String() string {
	return k.Vertex + "|" + k.Fragment
}

// ShaderProgram holds both stage sources; GPU is filled by the uploader.
type ShaderProgram struct {
	Key            ShaderKey
	VertexSource   []byte
	FragmentSource []byte
	GPU            renderer.ProgramHandle
}

// NewShaderLoader reads both stage files under base synchronously;
// shader sources are small enough that deferring buys nothing.
func NewShaderLoader(base string) assets.Loader[ShaderKey, *ShaderProgram] {
	return &assets.SyncLoader[ShaderKey, *ShaderProgram]{
		Resolve: func(key ShaderKey) (*ShaderProgram, error) {
			vert, err := os.ReadFile(filepath.Join(base, filepath.FromSlash(key.Vertex)))
			if err != nil {
				return nil, fmt.Errorf("vertex stage %s: %w", key.Vertex, err)
			}
			frag, err := os.ReadFile(filepath.Join(base, filepath.FromSlash(key.Fragment)))
			if err != nil {
				return nil, fmt.Errorf("fragment stage %s: %w", key.Fragment, err)
			}
			return &ShaderProgram{Key: key, VertexSource: vert, FragmentSource: frag}, nil
		},
	}
}

// ShaderUploader compiles stage sources into a backend program.
type ShaderUploader struct {
	Backend renderer.Backend
}

func (u *ShaderUploader) UploadToGPU(p *ShaderProgram) error {
	h, err := u.Backend.CreateProgram(p.VertexSource, p.FragmentSource)
	if err != nil {
		return err
	}
	p.GPU = h
	return nil
}
