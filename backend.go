package synapse

// Group identifies an instance-transform store in the rendering backend.
// The scene addresses instances by (group, index); backends own whatever
// buffer representation sits behind that.
type Group int

// Instance groups written by the frame driver.
const (
	// GroupNodes holds one instance per network node. Written once.
	GroupNodes Group = iota

	// GroupParticles holds the traveling particles. Written every
	// other frame.
	GroupParticles

	// GroupDust holds the ambient decorative particles. Written once.
	GroupDust

	// GroupGlow holds the single output-node glow instance.
	GroupGlow

	numGroups
)

// String returns the group name for logging.
func (g Group) String() string {
	switch g {
	case GroupNodes:
		return "nodes"
	case GroupParticles:
		return "particles"
	case GroupDust:
		return "dust"
	case GroupGlow:
		return "glow"
	default:
		return "unknown"
	}
}

// Material identifies a shader uniform set. Every material receives the
// shared scroll/time/focus uniforms each frame; some carry extras.
type Material int

// Materials addressed by the frame driver.
const (
	MaterialNodes Material = iota
	MaterialConnections
	MaterialParticles
	MaterialDust
	MaterialGlow

	numMaterials
)

// String returns the material name for logging.
func (m Material) String() string {
	switch m {
	case MaterialNodes:
		return "nodes"
	case MaterialConnections:
		return "connections"
	case MaterialParticles:
		return "particles"
	case MaterialDust:
		return "dust"
	case MaterialGlow:
		return "glow"
	default:
		return "unknown"
	}
}

// Uniform names pushed by the frame driver. Backends map these onto
// their shading pipeline's uniform slots.
const (
	// UniformScroll is the clamped scroll progress, in [0,1].
	UniformScroll = "scroll"

	// UniformTime is the free-running clock in seconds, >= 0.
	UniformTime = "time"

	// UniformFocus is the output-node focus ramp, in [0,1].
	UniformFocus = "focus"

	// UniformOpacity is a material's overall opacity, in [0,1]. Driven
	// per frame on the particle, dust, and glow materials.
	UniformOpacity = "opacity"
)

// Backend is the rendering side of the scene: an instanced-mesh store,
// per-material uniform slots, and a camera. The scene only ever writes;
// it never reads back, and it addresses instances by index rather than
// shared references, so backends are free to keep GPU-side copies.
//
// Implementations must tolerate writes in any order within a frame.
// Flush is called last in every Tick and marks the point where that
// frame's uniforms must be visible to its draw calls.
type Backend interface {
	// EnsureGroup sizes an instance group before first use. Called
	// during scene construction, never per frame.
	EnsureGroup(g Group, capacity int) error

	// SetInstanceTransform writes one instance's transform.
	SetInstanceTransform(g Group, index int, m Mat4)

	// SetUniform writes one named scalar into a material's uniform set.
	SetUniform(m Material, name string, value float32)

	// SetCamera writes the camera pose as position + look-at target.
	SetCamera(position, target Vec3)

	// Flush makes all writes since the previous Flush visible to the
	// current frame's draws.
	Flush() error
}
