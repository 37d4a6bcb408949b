package core

import "time"

// RuntimeConfig contains configuration passed to the game host at startup.
// The simulation itself works in canvas units; the host uses the screen
// size to project the canvas onto terminal cells.
type RuntimeConfig struct {
	ScreenW  int           // Screen width in characters
	ScreenH  int           // Screen height in characters
	TickRate int           // Frames per second requested from the host (default 60)
	MaxDelta time.Duration // Upper bound for a single frame delta, 0 = unbounded
	Seed     int64         // RNG seed for deterministic spawns
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		MaxDelta: 250 * time.Millisecond,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// FrameInterval returns the wall-clock interval between frames.
func (c RuntimeConfig) FrameInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// BoundDelta applies MaxDelta to a measured frame delta.
// Negative deltas (clock adjustments) become zero.
func (c RuntimeConfig) BoundDelta(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	if c.MaxDelta > 0 && d > c.MaxDelta {
		return c.MaxDelta
	}
	return d
}
