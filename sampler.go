package synapse

import "github.com/chewxy/math32"

// samplerScale is the classic shader-noise magnification constant.
// The fractional part of sin(seed)*samplerScale is visually uniform
// over [0,1) while staying a pure function of the seed.
const samplerScale = 43758.5453

// Sample returns a deterministic pseudo-random value in [0,1) for the
// given seed. The same seed always yields the same value, which is what
// keeps regenerated topologies bit-identical without persisting them.
//
// The construction is the fractional part of sin(seed+1)*samplerScale.
// The +1 keeps seed 0 away from sin(0)=0, which would otherwise pin the
// first sample of every sequence to exactly 0.
func Sample(seed float32) float32 {
	v := math32.Sin(seed+1) * samplerScale
	f := v - math32.Floor(v)
	// Floating point can round the fraction up to exactly 1.
	if f >= 1 {
		f = 0
	}
	return f
}

// nodeSeed derives the sampler seed for the depth jitter of node i in
// layer l. The coefficients only need to spread distinct (l, i) pairs
// onto distinct seeds.
func nodeSeed(l, i int) float32 {
	return float32(l)*12.9898 + float32(i)*78.233
}

// connSeed derives the sampler seed for the connection between node i of
// layer l and node j of layer l+1. The coefficients keep distinct pairs
// on distinct seeds for any layer narrower than 31 nodes.
func connSeed(l, i, j int) float32 {
	return float32(l)*1000 + float32(i)*31 + float32(j)
}
