package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveTriangle
	WaveNoise
)

// oscillator generates a raw wave, optionally sweeping its pitch.
type oscillator struct {
	freq     float64
	ratio    float64 // per-sample frequency multiplier, 1 for a flat tone
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a flat-pitch oscillator.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator whose pitch glides exponentially
// from start to end over the duration.
func NewSweep(start, end float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(duration)
	ratio := 1.0
	if start > 0 && end > 0 && end != start && samples > 1 {
		ratio = math.Pow(end/start, 1/float64(samples-1))
	}
	return &oscillator{
		freq:     start,
		ratio:    ratio,
		duration: samples,
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(samples) ^ int64(start))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.freq *= o.ratio
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and an exponential release.
type envelope struct {
	streamer      beep.Streamer
	position      int
	attackSamples int
	totalSamples  int
	gain          float64
}

// NewEnvelope shapes s so it starts at gain and decays to 1% of it
// by the end of duration.
func NewEnvelope(s beep.Streamer, duration, attack time.Duration, gain float64, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:      s,
		attackSamples: rate.N(attack),
		totalSamples:  rate.N(duration),
		gain:          gain,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		progress := float64(e.position) / float64(e.totalSamples)
		vol := e.gain * math.Pow(0.01, progress)
		if e.position < e.attackSamples {
			vol *= float64(e.position) / float64(e.attackSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

const attackTime = 5 * time.Millisecond

// voice renders one tone, delayed by its offset.
func voice(t tone, rate beep.SampleRate) beep.Streamer {
	end := t.EndFreq
	if end == 0 {
		end = t.Freq
	}
	osc := NewSweep(t.Freq, end, t.Duration, t.Wave, rate)
	shaped := NewEnvelope(osc, t.Duration, attackTime, t.Gain, rate)
	if t.Offset <= 0 {
		return shaped
	}
	return beep.Seq(beep.Silence(rate.N(t.Offset)), shaped)
}

// render mixes tones into a single streamer at the given volume.
func render(tones []tone, volume float64, rate beep.SampleRate) beep.Streamer {
	if len(tones) == 0 {
		return nil
	}
	voices := make([]beep.Streamer, len(tones))
	for i, t := range tones {
		voices[i] = voice(t, rate)
	}
	var mixed beep.Streamer = beep.Mix(voices...)
	if len(voices) == 1 {
		mixed = voices[0]
	}
	return &effects.Volume{Streamer: mixed, Base: 2, Volume: volume}
}
