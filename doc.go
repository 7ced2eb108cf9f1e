// Package synapse is a scroll-driven neural-network scene engine.
//
// # Overview
//
// synapse maps a single normalized scroll position to every animated
// parameter of a fixed 3D scene: a procedurally generated layered network
// of nodes and curved connections, a keyframed camera path, traveling
// particles, and the shader uniforms that light the network up as the
// user scrolls.
//
// The engine is deterministic. Topology generation is driven by a seeded
// sampler, so rebuilding a scene from the same Config reproduces identical
// node positions, connection sets, and vertex buffers without persisting
// anything.
//
// # Lifecycle
//
// Lifecycle is two-phase: New performs all one-time work (topology
// generation, static instance placement), and Tick is called once per
// rendered frame with the current scroll progress and clock time. Tick
// never blocks, never fails, and recomputes everything from its inputs,
// so a bad frame self-corrects on the next one.
//
//	backend := headless.New()
//	scene, err := synapse.New(synapse.DefaultConfig(), backend)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// per display refresh:
//	scene.Tick(synapse.FrameContext{Progress: scroll, Time: elapsed})
//
// # Backends
//
// Rendering is delegated to a Backend. backend/headless records writes in
// memory (tests, tooling); backend/wgpu pushes instance transforms and
// uniforms into GPU buffers via gogpu/wgpu.
package synapse
