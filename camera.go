package synapse

// Keyframe anchors the camera at a scroll progress value.
type Keyframe struct {
	// T is the scroll progress this keyframe is authored at, in [0,1].
	T float32 `yaml:"t"`

	// Position is the camera position in scene units.
	Position Vec3 `yaml:"position"`

	// Target is the look-at point in scene units.
	Target Vec3 `yaml:"target"`
}

// Path is an ordered camera keyframe sequence: strictly increasing T,
// first keyframe at 0, last at 1 (enforced by Config.Validate).
//
// Evaluation is piecewise: each segment eases independently with a
// smoothstep, so the pacing of every scroll beat can be authored on its
// own rather than being coupled through a global spline.
type Path []Keyframe

// Evaluate returns the camera position and look-at target for the given
// scroll progress. Progress outside [0,1] clamps to the path endpoints.
func (p Path) Evaluate(progress float32) (position, target Vec3) {
	if len(p) == 0 {
		return Vec3{}, Vec3{}
	}
	if len(p) == 1 || progress <= p[0].T {
		return p[0].Position, p[0].Target
	}
	last := p[len(p)-1]
	if progress >= last.T {
		return last.Position, last.Target
	}

	// Bracketing interval. Paths are a handful of keyframes, a linear
	// scan beats anything fancier.
	a, b := p[0], p[1]
	for i := 1; i < len(p); i++ {
		if progress <= p[i].T {
			a, b = p[i-1], p[i]
			break
		}
	}

	width := b.T - a.T
	var s float32
	if width > 0 {
		s = (progress - a.T) / width
	}
	s = smoothstep(s)

	return a.Position.Lerp(b.Position, s), a.Target.Lerp(b.Target, s)
}

// smoothstep applies the cubic easing 3s^2 - 2s^3 on [0,1].
func smoothstep(s float32) float32 {
	return s * s * (3 - 2*s)
}
