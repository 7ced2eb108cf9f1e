package synapse

// Mat4 represents a 4x4 transformation matrix in column-major order,
// matching the layout GPU instance buffers and WGSL mat4x4<f32> expect.
// Element (row r, column c) is stored at index c*4+r.
type Mat4 [16]float32

// Identity4 returns the identity transformation matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// TranslateScale composes a translation and a uniform scale.
// This is the only transform shape the scene writes per instance:
// placement never rotates, only position and size animate.
func TranslateScale(p Vec3, s float32) Mat4 {
	return Mat4{
		s, 0, 0, 0,
		0, s, 0, 0,
		0, 0, s, 0,
		p.X, p.Y, p.Z, 1,
	}
}

// LookAt builds a right-handed view matrix from an eye position, a target
// point, and an up direction. Falls back to the identity matrix when eye
// and target coincide, so a degenerate camera never produces NaNs.
func LookAt(eye, target, up Vec3) Mat4 {
	forward := target.Sub(eye)
	if forward.Length() == 0 {
		return Identity4()
	}
	f := forward.Normalize()
	r := f.Cross(up).Normalize()
	u := r.Cross(f)

	return Mat4{
		r.X, u.X, -f.X, 0,
		r.Y, u.Y, -f.Y, 0,
		r.Z, u.Z, -f.Z, 0,
		-r.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}

// Translation returns the translation component of the matrix.
func (m Mat4) Translation() Vec3 {
	return Vec3{X: m[12], Y: m[13], Z: m[14]}
}
