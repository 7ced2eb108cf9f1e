// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/synapse"
)

// Backend errors.
var (
	// ErrNilDevice is returned when creating a backend without a device.
	ErrNilDevice = errors.New("wgpu: device is nil")

	// ErrNilQueue is returned when creating a backend without a queue.
	ErrNilQueue = errors.New("wgpu: queue is nil")

	// ErrDestroyed is returned when operating on a destroyed backend.
	ErrDestroyed = errors.New("wgpu: backend has been destroyed")

	// ErrNoHAL is returned when a device provider does not expose
	// wgpu/hal handles.
	ErrNoHAL = errors.New("wgpu: provider does not expose HAL types")
)

// instanceStride is the byte size of one instance transform
// (mat4x4<f32>).
const instanceStride = 64

// uniformBlockSize is the byte size of one material's uniform block:
// scroll, time, focus, opacity. Kept at 16 bytes, the WebGPU minimum
// uniform alignment.
const uniformBlockSize = 16

// uniformOffsets maps the scene's uniform names onto block offsets.
// Unknown names are dropped with a debug log rather than corrupting the
// block.
var uniformOffsets = map[string]int{
	synapse.UniformScroll:  0,
	synapse.UniformTime:    4,
	synapse.UniformFocus:   8,
	synapse.UniformOpacity: 12,
}

// instanceGroup is the CPU staging and GPU buffer for one scene group.
type instanceGroup struct {
	buf      hal.Buffer
	staging  []byte
	capacity int

	// Dirty instance index range, hi exclusive. lo > hi means clean.
	dirtyLo, dirtyHi int
}

func (g *instanceGroup) markClean() {
	g.dirtyLo = g.capacity + 1
	g.dirtyHi = 0
}

func (g *instanceGroup) dirty() bool {
	return g.dirtyLo <= g.dirtyHi
}

// materialUniforms is the staging block and GPU buffer for one material.
type materialUniforms struct {
	buf     hal.Buffer
	staging [uniformBlockSize]byte
	dirty   bool
}

// Backend implements synapse.Backend on gogpu/wgpu HAL handles.
//
// Backend is safe for concurrent use; all operations are protected by a
// mutex. In practice the scene drives it from a single goroutine.
type Backend struct {
	mu     sync.Mutex
	device hal.Device
	queue  hal.Queue

	groups    map[synapse.Group]*instanceGroup
	materials map[synapse.Material]*materialUniforms

	cameraBuf     hal.Buffer
	cameraStaging [instanceStride]byte
	cameraDirty   bool

	shaders *ShaderModules

	destroyed bool
}

// New creates a backend on an existing HAL device and queue and compiles
// the embedded shaders.
func New(device hal.Device, queue hal.Queue) (*Backend, error) {
	if device == nil {
		return nil, ErrNilDevice
	}
	if queue == nil {
		return nil, ErrNilQueue
	}

	shaders, err := compileShaders(device)
	if err != nil {
		return nil, fmt.Errorf("wgpu: shader compilation failed: %w", err)
	}

	b := &Backend{
		device:    device,
		queue:     queue,
		groups:    make(map[synapse.Group]*instanceGroup),
		materials: make(map[synapse.Material]*materialUniforms),
		shaders:   shaders,
	}

	synapse.Logger().Info("wgpu backend ready")
	return b, nil
}

// NewFromProvider creates a backend from a gogpu device provider.
// The provider must also expose raw HAL handles through HalDevice() and
// HalQueue(), which gogpu's application context does.
func NewFromProvider(provider gpucontext.DeviceProvider) (*Backend, error) {
	if provider == nil {
		return nil, ErrNilDevice
	}
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return New(device, queue)
}

// EnsureGroup creates or grows the instance buffer for a scene group.
func (b *Backend) EnsureGroup(g synapse.Group, capacity int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return ErrDestroyed
	}
	if capacity < 0 {
		return fmt.Errorf("wgpu: negative capacity %d for group %s", capacity, g)
	}

	cur := b.groups[g]
	if cur != nil && capacity <= cur.capacity {
		return nil
	}

	// Zero-capacity groups keep a nil buffer; writes no-op.
	grown := &instanceGroup{capacity: capacity}
	grown.markClean()
	if capacity > 0 {
		buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
			Label: fmt.Sprintf("synapse-%s-instances", g),
			Size:  uint64(capacity) * instanceStride,
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("wgpu: instance buffer for %s: %w", g, err)
		}
		grown.buf = buf
		grown.staging = make([]byte, capacity*instanceStride)
	}

	if cur != nil {
		copy(grown.staging, cur.staging)
		if cur.buf != nil {
			b.device.DestroyBuffer(cur.buf)
		}
		// Re-upload everything carried over.
		grown.dirtyLo, grown.dirtyHi = 0, cur.capacity
	}
	b.groups[g] = grown

	synapse.Logger().Debug("instance group sized", "group", g.String(), "capacity", capacity)
	return nil
}

// SetInstanceTransform stages one instance transform and widens the
// group's dirty range. Out-of-range indexes are dropped; the scene
// treats that as a skipped instance, never an error.
func (b *Backend) SetInstanceTransform(g synapse.Group, index int, m synapse.Mat4) {
	b.mu.Lock()
	defer b.mu.Unlock()

	grp := b.groups[g]
	if b.destroyed || grp == nil || index < 0 || index >= grp.capacity {
		return
	}

	putMat4(grp.staging[index*instanceStride:], m)
	if index < grp.dirtyLo || !grp.dirty() {
		grp.dirtyLo = index
	}
	if index+1 > grp.dirtyHi {
		grp.dirtyHi = index + 1
	}
}

// SetUniform stages one named scalar into the material's uniform block.
func (b *Backend) SetUniform(m synapse.Material, name string, value float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return
	}
	off, ok := uniformOffsets[name]
	if !ok {
		synapse.Logger().Debug("unknown uniform dropped", "material", m.String(), "name", name)
		return
	}

	mat := b.materials[m]
	if mat == nil {
		mat = &materialUniforms{}
		b.materials[m] = mat
	}
	binary.LittleEndian.PutUint32(mat.staging[off:], math.Float32bits(value))
	mat.dirty = true
}

// SetCamera stages the view matrix derived from the pose.
func (b *Backend) SetCamera(position, target synapse.Vec3) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return
	}
	view := synapse.LookAt(position, target, synapse.V3(0, 1, 0))
	putMat4(b.cameraStaging[:], view)
	b.cameraDirty = true
}

// Flush uploads every dirty staging span to the GPU. Uniform and camera
// uploads happen before the frame's draws consume them; the scene calls
// Flush exactly once per tick.
func (b *Backend) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return ErrDestroyed
	}

	for g, grp := range b.groups {
		if grp.buf == nil || !grp.dirty() {
			continue
		}
		lo, hi := grp.dirtyLo, grp.dirtyHi
		b.queue.WriteBuffer(grp.buf, uint64(lo)*instanceStride, grp.staging[lo*instanceStride:hi*instanceStride])
		synapse.Logger().Debug("instances uploaded",
			"group", g.String(), "first", lo, "count", hi-lo)
		grp.markClean()
	}

	for m, mat := range b.materials {
		if !mat.dirty {
			continue
		}
		if mat.buf == nil {
			buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
				Label: fmt.Sprintf("synapse-%s-uniforms", m),
				Size:  uniformBlockSize,
				Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
			})
			if err != nil {
				return fmt.Errorf("wgpu: uniform buffer for %s: %w", m, err)
			}
			mat.buf = buf
		}
		b.queue.WriteBuffer(mat.buf, 0, mat.staging[:])
		mat.dirty = false
	}

	if b.cameraDirty {
		if b.cameraBuf == nil {
			buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
				Label: "synapse-camera",
				Size:  instanceStride,
				Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
			})
			if err != nil {
				return fmt.Errorf("wgpu: camera buffer: %w", err)
			}
			b.cameraBuf = buf
		}
		b.queue.WriteBuffer(b.cameraBuf, 0, b.cameraStaging[:])
		b.cameraDirty = false
	}

	return nil
}

// InstanceBuffer returns the HAL buffer backing a group, for callers
// wiring up render pipelines. Returns nil for unsized groups.
func (b *Backend) InstanceBuffer(g synapse.Group) hal.Buffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	if grp := b.groups[g]; grp != nil {
		return grp.buf
	}
	return nil
}

// Shaders returns the compiled shader modules.
func (b *Backend) Shaders() *ShaderModules {
	return b.shaders
}

// Destroy releases all GPU buffers. The backend must not be used
// afterwards. Destroy is idempotent.
func (b *Backend) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.destroyed {
		return
	}
	b.destroyed = true

	for _, grp := range b.groups {
		if grp.buf != nil {
			b.device.DestroyBuffer(grp.buf)
			grp.buf = nil
		}
	}
	for _, mat := range b.materials {
		if mat.buf != nil {
			b.device.DestroyBuffer(mat.buf)
			mat.buf = nil
		}
	}
	if b.cameraBuf != nil {
		b.device.DestroyBuffer(b.cameraBuf)
		b.cameraBuf = nil
	}
	b.shaders.destroy(b.device)
}

// putMat4 writes a column-major matrix into little-endian bytes.
func putMat4(dst []byte, m synapse.Mat4) {
	for i, v := range m {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
}
