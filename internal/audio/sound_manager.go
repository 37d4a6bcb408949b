// Package audio synthesizes the game's sound cues with beep.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/typestrike/internal/config"
	"github.com/vovakirdan/typestrike/internal/core"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// SoundManager plays effect cues and per-key notes through the speaker.
// Until Initialize succeeds every call is a no-op, so a host without an
// audio device keeps running muted.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	notes       bool
	enabled     bool
	initialized bool
}

// NewSoundManager creates a sound manager from the audio settings.
func NewSoundManager(cfg config.AudioConfig) *SoundManager {
	return &SoundManager{
		mixer:   &beep.Mixer{},
		volume:  cfg.Volume,
		notes:   cfg.Notes,
		enabled: cfg.Enabled,
	}
}

// Initialize sets up the audio system. Disabled managers stay muted.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.enabled {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// Active reports whether sounds reach the speaker.
func (sm *SoundManager) Active() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// PlayEffect plays the cue for e. Unknown effects are silent.
func (sm *SoundManager) PlayEffect(e core.Effect) {
	sm.play(effectTones[e])
}

// PlayNote plays the scale note for a typed key.
func (sm *SoundManager) PlayNote(c rune) {
	if !sm.notes {
		return
	}
	sm.play([]tone{noteTone(c)})
}

func (sm *SoundManager) play(tones []tone) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	s := render(tones, sm.volume, sampleRate)
	if s == nil {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
