package synapse

import "github.com/chewxy/math32"

// Particle is a transient visual traveling along one connection curve.
// Only the assignment is persistent; positions are pure functions of the
// clock, so nothing about a particle needs saving between frames.
type Particle struct {
	// Connection indexes Topology.Connections. Fixed at spawn.
	Connection int

	// Speed is the traversal rate in cycles per second.
	Speed float32

	// Offset phase-shifts the particle so a shared clock doesn't bunch
	// them all at the curve start.
	Offset float32

	// Size is the particle's instance scale.
	Size float32
}

// particleSeedBase keeps particle spawn samples disjoint from the seed
// ranges topology generation draws from.
const particleSeedBase = 7000

// spawnParticles deterministically assigns count particles to
// connections. With no connections the slice is empty and the frame
// driver has nothing to update.
func spawnParticles(count, connections int) []Particle {
	if connections <= 0 || count <= 0 {
		return nil
	}
	particles := make([]Particle, count)
	for i := range particles {
		seed := float32(particleSeedBase + i*4)
		particles[i] = Particle{
			Connection: int(Sample(seed) * float32(connections)),
			Speed:      0.2 + Sample(seed+1)*0.5,
			Offset:     Sample(seed + 2),
			Size:       0.06 + Sample(seed+3)*0.08,
		}
	}
	return particles
}

// PathParam returns the particle's interpolation parameter along its
// connection at the given clock time: a sawtooth of time, speed, and
// phase offset that wraps seamlessly in [0,1). The traversal restarts
// rather than ping-pongs, and the rate is constant across the wrap.
func (p Particle) PathParam(time float32) float32 {
	v := time*p.Speed + p.Offset
	return v - math32.Floor(v)
}
