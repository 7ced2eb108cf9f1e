// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Embedded WGSL shader sources, compiled at backend creation.

//go:embed shaders/network.wgsl
var networkShaderSource string

//go:embed shaders/sprites.wgsl
var spritesShaderSource string

// ShaderModules holds the compiled shader modules for the scene.
type ShaderModules struct {
	// Network renders nodes and connection lines with the activation
	// heatmap.
	Network hal.ShaderModule

	// Sprites renders the billboarded particles, dust, and glow.
	Sprites hal.ShaderModule
}

// compileShaders compiles the embedded WGSL through naga and creates the
// HAL shader modules.
func compileShaders(device hal.Device) (*ShaderModules, error) {
	network, err := compileModule(device, "synapse-network", networkShaderSource)
	if err != nil {
		return nil, err
	}
	sprites, err := compileModule(device, "synapse-sprites", spritesShaderSource)
	if err != nil {
		if network != nil {
			device.DestroyShaderModule(network)
		}
		return nil, err
	}
	return &ShaderModules{Network: network, Sprites: sprites}, nil
}

// compileModule compiles one WGSL source to SPIR-V and wraps it in a
// shader module.
func compileModule(device hal.Device, label, source string) (hal.ShaderModule, error) {
	if source == "" {
		return nil, fmt.Errorf("%s: shader source is empty", label)
	}

	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}

	// SPIR-V words are little-endian 32-bit.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}

	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label: label,
		Source: hal.ShaderSource{
			SPIRV: code,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%s: create module: %w", label, err)
	}
	return module, nil
}

// destroy releases the modules.
func (s *ShaderModules) destroy(device hal.Device) {
	if s == nil {
		return
	}
	if s.Network != nil {
		device.DestroyShaderModule(s.Network)
		s.Network = nil
	}
	if s.Sprites != nil {
		device.DestroyShaderModule(s.Sprites)
		s.Sprites = nil
	}
}

// NetworkShaderSource returns the WGSL source for the network shader.
func NetworkShaderSource() string { return networkShaderSource }

// SpritesShaderSource returns the WGSL source for the sprites shader.
func SpritesShaderSource() string { return spritesShaderSource }
