package synapse

import (
	"errors"

	"github.com/chewxy/math32"
)

// Scene construction errors.
var (
	// ErrNilBackend is returned when New is called without a backend.
	ErrNilBackend = errors.New("synapse: backend is nil")
)

// Instance scales for the static placements. Appearance (color, opacity,
// glow) animates in the shaders; these sizes never change after New.
const (
	nodeScale = 0.18
	dustScale = 0.035
)

// dustSeedBase keeps ambient scatter samples disjoint from topology and
// particle seed ranges.
const dustSeedBase = 40000

// FrameContext carries the per-frame inputs into Tick. Passing them
// explicitly keeps the update a transform of (state, context) rather
// than a closure over mutable scroll state.
type FrameContext struct {
	// Progress is the normalized scroll position. Clamped to [0,1].
	Progress float32

	// Time is the free-running clock in seconds. Negative values are
	// treated as 0.
	Time float32
}

// Scene owns the generated topology, the camera smoothing state, and the
// per-frame update that pushes derived values into the backend.
//
// Scene is single-threaded by design: it is driven by the host render
// loop's frame callback and never blocks or spawns goroutines.
type Scene struct {
	cfg       Config
	topo      *Topology
	particles []Particle
	backend   Backend

	// Exponential camera smoothing accumulators. The only cross-frame
	// state besides the frame counter.
	smoothPos    Vec3
	smoothTarget Vec3

	frame uint64
}

// New validates the configuration, generates the topology, and performs
// all one-time instance placement. After New returns, the host calls
// Tick once per rendered frame; no further initialization happens on the
// frame path.
func New(cfg Config, backend Backend) (*Scene, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	topo := Generate(&cfg)
	s := &Scene{
		cfg:       cfg,
		topo:      topo,
		particles: spawnParticles(cfg.ParticleCount, len(topo.Connections)),
		backend:   backend,
	}

	if err := s.place(); err != nil {
		return nil, err
	}

	// Seed the smoothing accumulators at the path start so the first
	// frames glide from the authored opening pose instead of the origin.
	s.smoothPos, s.smoothTarget = cfg.Keyframes.Evaluate(0)

	Logger().Info("scene initialized",
		"nodes", len(topo.Nodes),
		"connections", len(topo.Connections),
		"particles", len(s.particles),
		"dust", cfg.AmbientCount)

	return s, nil
}

// place sizes the instance groups and writes every static transform:
// node positions, ambient dust scatter, and the glow's starting pose.
// Placement is deterministic and never revisited by Tick.
func (s *Scene) place() error {
	groups := []struct {
		g   Group
		cap int
	}{
		{GroupNodes, len(s.topo.Nodes)},
		{GroupParticles, len(s.particles)},
		{GroupDust, s.cfg.AmbientCount},
		{GroupGlow, 1},
	}
	for _, gr := range groups {
		if err := s.backend.EnsureGroup(gr.g, gr.cap); err != nil {
			return err
		}
	}

	for i, n := range s.topo.Nodes {
		s.backend.SetInstanceTransform(GroupNodes, i, TranslateScale(n.Position, nodeScale))
	}

	b := s.cfg.AmbientBounds
	for i := 0; i < s.cfg.AmbientCount; i++ {
		seed := float32(dustSeedBase + i*3)
		p := V3(
			(Sample(seed)-0.5)*2*b.X,
			(Sample(seed+1)-0.5)*2*b.Y,
			(Sample(seed+2)-0.5)*2*b.Z,
		)
		s.backend.SetInstanceTransform(GroupDust, i, TranslateScale(p, dustScale))
	}

	if out := s.topo.OutputNode(); out >= 0 {
		pos := s.topo.Nodes[out].Position
		s.backend.SetInstanceTransform(GroupGlow, 0, TranslateScale(pos, 0))
	}

	return nil
}

// Tick runs one frame. Everything it writes is recomputed from the
// context, so ticks are idempotent per (progress, time) except for the
// camera smoothing accumulators and the particle throttle counter.
//
// Tick never fails: backend flush errors degrade to a log line and the
// next frame rewrites everything anyway.
func (s *Scene) Tick(fc FrameContext) {
	progress := clamp01(fc.Progress)
	time := fc.Time
	if time < 0 {
		time = 0
	}
	focus := Focus(progress)

	// Uniforms first: within a frame they must land before the backend
	// consumes them for draws, which Flush guarantees at the end.
	for m := Material(0); m < numMaterials; m++ {
		s.backend.SetUniform(m, UniformScroll, progress)
		s.backend.SetUniform(m, UniformTime, time)
		s.backend.SetUniform(m, UniformFocus, focus)
	}

	// Focus suppresses every non-output visual; the glow's own opacity
	// is driven in tickGlow.
	s.backend.SetUniform(MaterialParticles, UniformOpacity, 0.9*(1-focus))
	s.backend.SetUniform(MaterialDust, UniformOpacity, 0.35*(1-focus))

	// Traveling particles update on alternating frames to bound cost.
	if s.frame%2 == 0 {
		s.tickParticles(progress, time)
	}

	s.tickGlow(focus, time)
	s.tickCamera(progress)

	if err := s.backend.Flush(); err != nil {
		Logger().Warn("backend flush failed", "err", err)
	}
	s.frame++
}

// tickParticles repositions every traveling particle along its assigned
// connection. Below the scroll threshold the particles collapse to zero
// scale so the idle scene starts out quiet.
func (s *Scene) tickParticles(progress, time float32) {
	scaleOn := progress >= s.cfg.ParticleScrollThreshold
	for i, p := range s.particles {
		if p.Connection < 0 || p.Connection >= len(s.topo.Connections) {
			// Unreachable given spawn invariants; skip rather than
			// take the frame down.
			continue
		}
		conn := s.topo.Connections[p.Connection]
		pos := conn.Start.Lerp(conn.End, p.PathParam(time))

		scale := p.Size
		if !scaleOn {
			scale = 0
		}
		s.backend.SetInstanceTransform(GroupParticles, i, TranslateScale(pos, scale))
	}
}

// tickGlow drives the output-node glow from the focus ramp and a
// sinusoidal pulse. Purely derived; no state beyond the clock.
func (s *Scene) tickGlow(focus, time float32) {
	out := s.topo.OutputNode()
	if out < 0 {
		return
	}

	pulse := 0.85 + 0.15*math32.Sin(time*2.4)
	scale := focus * 1.6 * pulse
	s.backend.SetInstanceTransform(GroupGlow, 0, TranslateScale(s.topo.Nodes[out].Position, scale))
	s.backend.SetUniform(MaterialGlow, UniformOpacity, focus*pulse)
}

// tickCamera evaluates the keyframe path and eases the actual pose
// toward it with a single-pole exponential smoother, decoupling raw
// scroll jumps from the rendered camera motion.
func (s *Scene) tickCamera(progress float32) {
	pos, target := s.cfg.Keyframes.Evaluate(progress)
	s.smoothPos = s.smoothPos.Lerp(pos, s.cfg.CameraSmoothing)
	s.smoothTarget = s.smoothTarget.Lerp(target, s.cfg.CameraSmoothing)
	s.backend.SetCamera(s.smoothPos, s.smoothTarget)
}

// SectionOpacities evaluates every configured overlay fade window at the
// given progress. The overlay layer consumes these; the scene itself
// does not render text.
func (s *Scene) SectionOpacities(progress float32) []float32 {
	progress = clamp01(progress)
	out := make([]float32, len(s.cfg.FadeWindows))
	for i, w := range s.cfg.FadeWindows {
		out[i] = w.Opacity(progress)
	}
	return out
}

// Topology returns the generated network. Read-only: the topology is
// immutable after New.
func (s *Scene) Topology() *Topology {
	return s.topo
}

// Camera returns the current smoothed camera pose.
func (s *Scene) Camera() (position, target Vec3) {
	return s.smoothPos, s.smoothTarget
}
