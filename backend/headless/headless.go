// Package headless provides an in-memory synapse.Backend.
//
// It records every transform, uniform, and camera write so tests and
// tooling can inspect exactly what a frame produced, without a GPU.
package headless

import (
	"fmt"

	"github.com/gogpu/synapse"
)

// Backend records scene writes in memory. It implements synapse.Backend.
//
// Backend is not safe for concurrent use; like the scene itself it is
// meant to live on the render loop's goroutine.
type Backend struct {
	groups   map[synapse.Group][]synapse.Mat4
	uniforms map[synapse.Material]map[string]float32

	cameraPos    synapse.Vec3
	cameraTarget synapse.Vec3

	// Write counters for asserting frame behavior.
	transformWrites map[synapse.Group]int
	uniformWrites   int
	flushes         int
}

// New creates an empty recording backend.
func New() *Backend {
	return &Backend{
		groups:          make(map[synapse.Group][]synapse.Mat4),
		uniforms:        make(map[synapse.Material]map[string]float32),
		transformWrites: make(map[synapse.Group]int),
	}
}

// EnsureGroup sizes an instance group. Growing an existing group keeps
// previously written transforms.
func (b *Backend) EnsureGroup(g synapse.Group, capacity int) error {
	if capacity < 0 {
		return fmt.Errorf("headless: negative capacity %d for group %s", capacity, g)
	}
	cur := b.groups[g]
	if capacity <= len(cur) {
		return nil
	}
	grown := make([]synapse.Mat4, capacity)
	copy(grown, cur)
	b.groups[g] = grown
	return nil
}

// SetInstanceTransform records one instance transform. Writes outside
// the ensured capacity are dropped, mirroring how a GPU backend would
// refuse to write past its buffer.
func (b *Backend) SetInstanceTransform(g synapse.Group, index int, m synapse.Mat4) {
	store := b.groups[g]
	if index < 0 || index >= len(store) {
		return
	}
	store[index] = m
	b.transformWrites[g]++
}

// SetUniform records one named uniform scalar.
func (b *Backend) SetUniform(m synapse.Material, name string, value float32) {
	set := b.uniforms[m]
	if set == nil {
		set = make(map[string]float32)
		b.uniforms[m] = set
	}
	set[name] = value
	b.uniformWrites++
}

// SetCamera records the camera pose.
func (b *Backend) SetCamera(position, target synapse.Vec3) {
	b.cameraPos = position
	b.cameraTarget = target
}

// Flush counts frame boundaries. It never fails.
func (b *Backend) Flush() error {
	b.flushes++
	return nil
}

// Transform returns the recorded transform for (group, index).
func (b *Backend) Transform(g synapse.Group, index int) synapse.Mat4 {
	store := b.groups[g]
	if index < 0 || index >= len(store) {
		return synapse.Mat4{}
	}
	return store[index]
}

// GroupLen returns the ensured capacity of a group.
func (b *Backend) GroupLen(g synapse.Group) int {
	return len(b.groups[g])
}

// Uniform returns a material's recorded uniform value and whether it has
// been written.
func (b *Backend) Uniform(m synapse.Material, name string) (float32, bool) {
	set, ok := b.uniforms[m]
	if !ok {
		return 0, false
	}
	v, ok := set[name]
	return v, ok
}

// Camera returns the recorded camera pose.
func (b *Backend) Camera() (position, target synapse.Vec3) {
	return b.cameraPos, b.cameraTarget
}

// TransformWrites returns how many transform writes a group received.
func (b *Backend) TransformWrites(g synapse.Group) int {
	return b.transformWrites[g]
}

// UniformWrites returns the total number of uniform writes.
func (b *Backend) UniformWrites() int {
	return b.uniformWrites
}

// Flushes returns how many times Flush was called.
func (b *Backend) Flushes() int {
	return b.flushes
}
