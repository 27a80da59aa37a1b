package loaders

import (
	"fmt"
	"path/filepath"

	"github.com/fzipp/bmfont"

	"github.com/mirafall/strafe/engine/assets"
)

// FontGlyph is the atlas placement for one codepoint.
type FontGlyph struct {
	X, Y             uint16
	Width, Height    uint16
	XOffset, YOffset int16
	XAdvance         int16
	Page             uint8
}

// FontData describes a bitmap font: glyph atlas placements plus the page
// texture keys for the HUD to load.
type FontData struct {
	Face       string
	Size       uint32
	LineHeight int32
	Baseline   int32
	Glyphs     map[rune]FontGlyph
	PageFiles  []string
}

// NewFontLoader parses AngelCode .fnt descriptors under base.
func NewFontLoader(base string) assets.Loader[string, *FontData] {
	return &assets.SyncLoader[string, *FontData]{
		Resolve: func(key string) (*FontData, error) { return ResolveFont(base, key) },
	}
}

// ResolveFont parses the .fnt descriptor only. Page textures go through
// the texture manager like any other image.
func ResolveFont(base, key string) (*FontData, error) {
	desc, err := bmfont.LoadDescriptor(filepath.Join(base, filepath.FromSlash(key)))
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", key, err)
	}

	out := &FontData{
		Face:       desc.Info.Face,
		Size:       uint32(desc.Info.Size),
		LineHeight: int32(desc.Common.LineHeight),
		Baseline:   int32(desc.Common.Base),
		Glyphs:     make(map[rune]FontGlyph, len(desc.Chars)),
		PageFiles:  make([]string, 0, len(desc.Pages)),
	}
	for _, p := range desc.Pages {
		out.PageFiles = append(out.PageFiles, p.File)
	}
	for _, g := range desc.Chars {
		out.Glyphs[g.ID] = FontGlyph{
			X:        uint16(g.X),
			Y:        uint16(g.Y),
			Width:    uint16(g.Width),
			Height:   uint16(g.Height),
			XOffset:  int16(g.XOffset),
			YOffset:  int16(g.YOffset),
			XAdvance: int16(g.XAdvance),
			Page:     uint8(g.Page),
		}
	}
	return out, nil
}
