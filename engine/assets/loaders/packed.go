package loaders

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/mirafall/strafe/engine/assets"
)

// Packed texture file layout, little endian:
//
//	magic "SPKT", u16 version, u32 entry count, then per entry:
//	u16 key length, key bytes, u32 width, u32 height,
//	u8 wrapU, u8 wrapV, u8 filter, u32 pixel length, RGBA pixels.
//
// The pack is consumed as one monolithic blob, typically embedded in the
// binary for release builds.

var packMagic = [4]byte{'S', 'P', 'K', 'T'}

const packVersion uint16 = 1

var samplerModes = []string{"clamp", "repeat", "mirror"}
var filterModes = []string{"nearest", "linear"}

func modeIndex(modes []string, name string) uint8 {
	for i, m := range modes {
		if m == name {
			return uint8(i)
		}
	}
	return 0
}

func modeName(modes []string, i uint8) string {
	if int(i) < len(modes) {
		return modes[i]
	}
	return modes[0]
}

// WritePack serializes entries in deterministic key order.
func WritePack(w io.Writer, entries map[string]*TextureData) error {
	if err := binary.Write(w, binary.LittleEndian, packMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, packVersion); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(entries))); err != nil {
		return err
	}

	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		t := entries[key]
		if err := binary.Write(w, binary.LittleEndian, uint16(len(key))); err != nil {
			return err
		}
		if _, err := w.Write([]byte(key)); err != nil {
			return err
		}
		hdr := []any{
			t.Width, t.Height,
			modeIndex(samplerModes, t.Sampler.WrapU),
			modeIndex(samplerModes, t.Sampler.WrapV),
			modeIndex(filterModes, t.Sampler.Filter),
			uint32(len(t.Pixels)),
		}
		for _, v := range hdr {
			if err := binary.Write(w, binary.LittleEndian, v); err != nil {
				return err
			}
		}
		if _, err := w.Write(t.Pixels); err != nil {
			return err
		}
	}
	return nil
}

// ParsePack reads a pack blob back into keyed texture data.
func ParsePack(blob []byte) (map[string]*TextureData, error) {
	r := bytes.NewReader(blob)

	var magic [4]byte
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, fmt.Errorf("pack header: %w", err)
	}
	if magic != packMagic {
		return nil, fmt.Errorf("not a texture pack (magic %q)", magic)
	}
	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("pack header: %w", err)
	}
	if version != packVersion {
		return nil, fmt.Errorf("unsupported pack version %d", version)
	}
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("pack header: %w", err)
	}

	entries := make(map[string]*TextureData, count)
	for i := uint32(0); i < count; i++ {
		var keyLen uint16
		if err := binary.Read(r, binary.LittleEndian, &keyLen); err != nil {
			return nil, fmt.Errorf("pack entry %d: %w", i, err)
		}
		key := make([]byte, keyLen)
		if _, err := io.ReadFull(r, key); err != nil {
			return nil, fmt.Errorf("pack entry %d: %w", i, err)
		}

		var width, height uint32
		var wrapU, wrapV, filter uint8
		var pixLen uint32
		for _, dst := range []any{&width, &height, &wrapU, &wrapV, &filter, &pixLen} {
			if err := binary.Read(r, binary.LittleEndian, dst); err != nil {
				return nil, fmt.Errorf("pack entry %q: %w", key, err)
			}
		}
		pixels := make([]byte, pixLen)
		if _, err := io.ReadFull(r, pixels); err != nil {
			return nil, fmt.Errorf("pack entry %q pixels: %w", key, err)
		}

		entries[string(key)] = &TextureData{
			Width:  width,
			Height: height,
			Pixels: pixels,
			Sampler: Sampler{
				WrapU:  modeName(samplerModes, wrapU),
				WrapV:  modeName(samplerModes, wrapV),
				Filter: modeName(filterModes, filter),
			},
		}
	}
	return entries, nil
}

// PackedTextureLoader serves textures out of a parsed pack. It resolves
// synchronously (the pack is already in memory) and exposes its table of
// contents through Has so it can sit in front of a fallback loader.
type PackedTextureLoader struct {
	entries map[string]*TextureData
}

func NewPackedTextureLoader(blob []byte) (*PackedTextureLoader, error) {
	entries, err := ParsePack(blob)
	if err != nil {
		return nil, err
	}
	return &PackedTextureLoader{entries: entries}, nil
}

func (l *PackedTextureLoader) Has(key string) bool {
	_, ok := l.entries[key]
	return ok
}

func (l *PackedTextureLoader) Load(key string) *assets.Asset[*TextureData] {
	a := assets.NewLoading[*TextureData]()
	t, ok := l.entries[key]
	if !ok {
		a.Fail(fmt.Errorf("texture %q not in pack", key))
		return a
	}
	a.Complete(t)
	return a
}
