package audio

import (
	"time"
	"unicode"

	"github.com/vovakirdan/typestrike/internal/core"
)

// tone is one oscillator voice inside an effect.
// A non-zero EndFreq sweeps exponentially from Freq to EndFreq.
type tone struct {
	Freq     float64
	EndFreq  float64
	Offset   time.Duration
	Duration time.Duration
	Wave     WaveType
	Gain     float64
}

// noteFrequencies maps keys onto a C major scale.
var noteFrequencies = map[rune]float64{
	'A': 261.63, // C4
	'S': 293.66, // D4
	'D': 329.63, // E4
	'F': 349.23, // F4
	'J': 392.00, // G4
	'K': 440.00, // A4
	'L': 493.88, // B4
	';': 523.25, // C5
	'R': 587.33, // D5
	'U': 659.25, // E5
	'E': 293.66, // D4
	'I': 440.00, // A4
}

const defaultNoteFreq = 440.0

// NoteFrequency returns the pitch played for a typed key.
func NoteFrequency(c rune) float64 {
	if f, ok := noteFrequencies[unicode.ToUpper(c)]; ok {
		return f
	}
	return defaultNoteFreq
}

func noteTone(c rune) tone {
	return tone{Freq: NoteFrequency(c), Duration: 300 * time.Millisecond, Wave: WaveSine, Gain: 0.3}
}

func arpeggio(freqs []float64, step, length time.Duration, wave WaveType, gain float64) []tone {
	out := make([]tone, len(freqs))
	for i, f := range freqs {
		out[i] = tone{Freq: f, Offset: time.Duration(i) * step, Duration: length, Wave: wave, Gain: gain}
	}
	return out
}

// effectTones describes every effect cue.
var effectTones = map[core.Effect][]tone{
	core.EffectLetterHit: {
		{Freq: 150, EndFreq: 50, Duration: 100 * time.Millisecond, Wave: WaveSaw, Gain: 0.2},
	},
	core.EffectWordHit: {
		{Freq: 200, EndFreq: 60, Duration: 150 * time.Millisecond, Wave: WaveSaw, Gain: 0.25},
		{Freq: 0, Duration: 120 * time.Millisecond, Wave: WaveNoise, Gain: 0.1},
	},
	core.EffectWrongLetter: {
		{Freq: 100, Duration: 150 * time.Millisecond, Wave: WaveSquare, Gain: 0.1},
	},
	core.EffectComboMilestone: arpeggio(
		[]float64{523.25, 659.25, 783.99},
		100*time.Millisecond, 300*time.Millisecond, WaveSine, 0.2),
	core.EffectLevelComplete: {
		{Freq: 523.25, Duration: 400 * time.Millisecond, Wave: WaveTriangle, Gain: 0.3},
		{Freq: 659.25, Offset: 150 * time.Millisecond, Duration: 400 * time.Millisecond, Wave: WaveTriangle, Gain: 0.3},
		{Freq: 783.99, Offset: 300 * time.Millisecond, Duration: 400 * time.Millisecond, Wave: WaveTriangle, Gain: 0.3},
		{Freq: 1046.5, Offset: 500 * time.Millisecond, Duration: 400 * time.Millisecond, Wave: WaveTriangle, Gain: 0.3},
	},
	core.EffectGameOver: {
		{Freq: 400, EndFreq: 100, Duration: 500 * time.Millisecond, Wave: WaveSaw, Gain: 0.3},
	},
	core.EffectAchievementUnlock: {
		{Freq: 659.25, Duration: 300 * time.Millisecond, Wave: WaveSine, Gain: 0.25},
		{Freq: 783.99, Offset: 100 * time.Millisecond, Duration: 300 * time.Millisecond, Wave: WaveSine, Gain: 0.25},
		{Freq: 1046.5, Offset: 200 * time.Millisecond, Duration: 300 * time.Millisecond, Wave: WaveSine, Gain: 0.25},
		{Freq: 1318.5, Offset: 350 * time.Millisecond, Duration: 300 * time.Millisecond, Wave: WaveSine, Gain: 0.25},
	},
	core.EffectLifeLost: {
		{Freq: 800, Duration: 100 * time.Millisecond, Wave: WaveSquare, Gain: 0.2},
		{Freq: 800, Offset: 200 * time.Millisecond, Duration: 100 * time.Millisecond, Wave: WaveSquare, Gain: 0.2},
	},
	core.EffectPowerUp: {
		{Freq: 200, EndFreq: 800, Duration: 200 * time.Millisecond, Wave: WaveTriangle, Gain: 0.3},
	},
}

// effectLength is how long the cue for e lasts, zero when unknown.
func effectLength(e core.Effect) time.Duration {
	var longest time.Duration
	for _, t := range effectTones[e] {
		if end := t.Offset + t.Duration; end > longest {
			longest = end
		}
	}
	return longest
}
