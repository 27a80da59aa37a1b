package loaders

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/mirafall/strafe/engine/assets"
	"github.com/mirafall/strafe/engine/jobs"
)

// SoundData is a fully decoded, replayable sound. Buffering up front
// trades memory for allocation-free playback of short arcade effects.
type SoundData struct {
	Buffer *beep.Buffer
	Format beep.Format
}

// Streamer returns a fresh streamer over the whole sound; each PlaySound
// event gets its own.
func (s *SoundData) Streamer() beep.StreamSeeker {
	return s.Buffer.Streamer(0, s.Buffer.Len())
}

// NewAudioLoader decodes WAV files under base on the worker pool. Audio
// has no GPU step; the cell is ready as soon as decoding finishes.
func NewAudioLoader(base string, pool *jobs.Pool) assets.Loader[string, *SoundData] {
	return &assets.AsyncLoader[string, *SoundData]{
		Pool:    pool,
		Resolve: func(key string) (*SoundData, error) { return ResolveSound(base, key) },
	}
}

// ResolveSound decodes base/key into a buffered sound.
func ResolveSound(base, key string) (*SoundData, error) {
	f, err := os.Open(filepath.Join(base, filepath.FromSlash(key)))
	if err != nil {
		return nil, fmt.Errorf("sound %s: %w", key, err)
	}
	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("sound %s: decoding: %w", key, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)

	return &SoundData{Buffer: buffer, Format: format}, nil
}
