package typestrike

import (
	"math"
	"math/rand"
)

// Particle counts per hit kind.
const (
	letterParticles = 15
	wordParticles   = 30
)

const particleGravity = 300.0

// Particle is a short-lived spark spawned on hits. Presentation only.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // Seconds remaining
	Size   float64
}

// burst spawns count particles at (x, y) flying in random directions.
func burst(ps []Particle, x, y float64, count int, rng *rand.Rand) []Particle {
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		speed := 100 + rng.Float64()*200
		ps = append(ps, Particle{
			X:    x,
			Y:    y,
			VX:   math.Cos(angle) * speed,
			VY:   math.Sin(angle) * speed,
			Life: 1.0,
			Size: 3 + rng.Float64()*5,
		})
	}
	return ps
}

// updateParticles moves particles, applies gravity and drops dead ones.
func updateParticles(ps []Particle, dt float64) []Particle {
	alive := ps[:0]
	for _, p := range ps {
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.VY += particleGravity * dt
		p.Life -= dt
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	return alive
}
