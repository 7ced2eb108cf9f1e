// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package wgpu provides a GPU synapse.Backend using gogpu/wgpu.
//
// The backend owns one vertex buffer of 4x4 instance transforms per
// scene group, one small uniform buffer per material, and a camera
// view-matrix buffer. Writes from the scene land in CPU staging with
// dirty-range tracking; Flush uploads only the touched spans through
// hal.Queue.WriteBuffer, so a frame that moves sixty particles does not
// re-upload three hundred dust motes.
//
// WGSL shader sources are embedded and compiled to SPIR-V through
// gogpu/naga at backend creation. The heatmap ramp in the shaders must
// stay identical to synapse.HeatmapColor; the stop thresholds 0.33 and
// 0.66 are a correctness requirement shared between the two.
package wgpu
