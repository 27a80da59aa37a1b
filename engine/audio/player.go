// Package audio plays buffered sound effects through a single mixer. The
// engine drains PlaySound events into it once per frame; gameplay never
// touches the speaker directly.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/mirafall/strafe/engine/assets"
	"github.com/mirafall/strafe/engine/assets/loaders"
	"github.com/mirafall/strafe/engine/core"
)

const sampleRate = beep.SampleRate(48000)

// Player owns the speaker and a mixer all effects play through. It lives
// in the resource container.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	sounds      *assets.Manager[string, *loaders.SoundData]
	initialized bool
}

func NewPlayer(sounds *assets.Manager[string, *loaders.SoundData]) *Player {
	return &Player{
		mixer:  &beep.Mixer{},
		sounds: sounds,
	}
}

// Initialize opens the speaker. Safe to call once at startup; failure
// leaves the player silent but functional.
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play fires a one-shot effect by asset key. Sounds still loading or
// failed are skipped, never waited on.
func (p *Player) Play(key string) {
	h, ok := p.sounds.HandleFor(key)
	if !ok {
		h = p.sounds.Load(key)
	}
	cell, _ := p.sounds.Get(h)
	sound, loaded := cell.Get()
	if !loaded {
		if cell.IsError() {
			core.LogWarn("sound %s unavailable: %s", key, cell.Err().Error())
		}
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	streamer := sound.Streamer()
	resampled := beep.Resample(4, sound.Format.SampleRate, sampleRate, streamer)
	speaker.Lock()
	p.mixer.Add(resampled)
	speaker.Unlock()
}

// Shutdown closes the speaker.
func (p *Player) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
