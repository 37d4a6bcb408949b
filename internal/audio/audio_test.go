package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/vovakirdan/typestrike/internal/config"
	"github.com/vovakirdan/typestrike/internal/core"
)

func TestNoteFrequency(t *testing.T) {
	tests := []struct {
		key      rune
		expected float64
	}{
		{'A', 261.63},
		{'a', 261.63},
		{'S', 293.66},
		{'D', 329.63},
		{'F', 349.23},
		{'J', 392.00},
		{'K', 440.00},
		{'L', 493.88},
		{';', 523.25},
		{'R', 587.33},
		{'U', 659.25},
		{'E', 293.66},
		{'I', 440.00},
		{'Q', 440.00},
		{'7', 440.00},
	}

	for _, tt := range tests {
		if got := NoteFrequency(tt.key); got != tt.expected {
			t.Errorf("NoteFrequency(%q) = %v, expected %v", tt.key, got, tt.expected)
		}
	}
}

func TestEveryEffectHasTones(t *testing.T) {
	for _, e := range core.AllEffects() {
		if len(effectTones[e]) == 0 {
			t.Errorf("effect %q has no tones", e)
		}
		if effectLength(e) <= 0 {
			t.Errorf("effectLength(%q) = %v, expected > 0", e, effectLength(e))
		}
	}
	if effectLength("unknown") != 0 {
		t.Error("unknown effect should have zero length")
	}
}

func TestEffectLengths(t *testing.T) {
	tests := []struct {
		effect   core.Effect
		expected time.Duration
	}{
		{core.EffectLetterHit, 100 * time.Millisecond},
		{core.EffectWrongLetter, 150 * time.Millisecond},
		{core.EffectComboMilestone, 500 * time.Millisecond},
		{core.EffectLevelComplete, 900 * time.Millisecond},
		{core.EffectGameOver, 500 * time.Millisecond},
		{core.EffectAchievementUnlock, 650 * time.Millisecond},
		{core.EffectLifeLost, 300 * time.Millisecond},
		{core.EffectPowerUp, 200 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := effectLength(tt.effect); got != tt.expected {
			t.Errorf("effectLength(%q) = %v, expected %v", tt.effect, got, tt.expected)
		}
	}
}

func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok || n == 0 {
			return total, peak
		}
	}
}

func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(44100)
	waves := []WaveType{WaveSine, WaveSquare, WaveSaw, WaveTriangle, WaveNoise}

	for _, w := range waves {
		osc := NewOscillator(440, 100*time.Millisecond, w, rate)
		total, peak := drain(osc)
		if total != rate.N(100*time.Millisecond) {
			t.Errorf("wave %d streamed %d samples, expected %d", w, total, rate.N(100*time.Millisecond))
		}
		if peak > 1.0 {
			t.Errorf("wave %d peak %f out of range", w, peak)
		}
		if osc.Err() != nil {
			t.Errorf("wave %d error: %v", w, osc.Err())
		}
	}
}

func TestSweepReachesEndFrequency(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := NewSweep(400, 100, time.Second, WaveSine, rate).(*oscillator)
	drain(s)

	// After N samples the frequency is start*ratio^N; one step past the end.
	if math.Abs(s.freq-100*s.ratio) > 0.01 {
		t.Errorf("final freq = %f, expected ~%f", s.freq, 100*s.ratio)
	}
}

func TestEnvelopeDecays(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := NewOscillator(0, time.Second, WaveSquare, rate) // constant +1
	env := NewEnvelope(osc, time.Second, 0, 0.5, rate)

	buf := make([][2]float64, 1000)
	n, _ := env.Stream(buf)
	if n != 1000 {
		t.Fatalf("streamed %d, expected 1000", n)
	}
	if buf[0][0] != 0.5 {
		t.Errorf("first sample = %f, expected 0.5", buf[0][0])
	}
	if buf[999][0] >= 0.01 {
		t.Errorf("last sample = %f, expected < 0.01", buf[999][0])
	}
	for i := 1; i < n; i++ {
		if buf[i][0] > buf[i-1][0] {
			t.Fatalf("envelope rose at sample %d", i)
		}
	}
}

func TestRenderHonoursOffsets(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := render(effectTones[core.EffectLevelComplete], 0, rate)
	total, peak := drain(s)
	if total != rate.N(900*time.Millisecond) {
		t.Errorf("rendered %d samples, expected %d", total, rate.N(900*time.Millisecond))
	}
	if peak == 0 {
		t.Error("rendered silence")
	}
	if render(nil, 0, rate) != nil {
		t.Error("render(nil) should be nil")
	}
}

func TestUninitializedManagerIsSilent(t *testing.T) {
	sm := NewSoundManager(config.AudioConfig{Enabled: false, Notes: true})
	if err := sm.Initialize(); err != nil {
		t.Fatalf("Initialize() on disabled manager failed: %v", err)
	}
	if sm.Active() {
		t.Error("disabled manager should not be active")
	}

	// Must not touch the speaker.
	sm.PlayEffect(core.EffectLetterHit)
	sm.PlayNote('A')
	sm.Cleanup()

	if sm.mixer.Len() != 0 {
		t.Errorf("mixer has %d streamers, expected 0", sm.mixer.Len())
	}
}
