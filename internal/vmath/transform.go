package vmath

import "github.com/chewxy/math32"

// Transform is a rigid placement: an orthonormal basis plus a translation.
// It carries a mesh's world placement onto derived geometry (curve points)
// without a full 4x4 matrix.
type Transform struct {
	Right, Up, Forward Vec3 // basis columns
	Origin             Vec3
}

// IdentityTransform returns the no-op placement.
func IdentityTransform() Transform {
	return Transform{Right: AxisX, Up: AxisY, Forward: AxisZ}
}

// RotateXTransform returns a placement rotated by angle radians around X,
// translated to origin. Used to tilt the torus ring out of the XZ plane.
func RotateXTransform(angle float32, origin Vec3) Transform {
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	return Transform{
		Right:   AxisX,
		Up:      Vec3{0, c, s},
		Forward: Vec3{0, -s, c},
		Origin:  origin,
	}
}

// ApplyPoint maps a local point into world space.
func (t Transform) ApplyPoint(p Vec3) Vec3 {
	return Add(t.Origin, t.ApplyDir(p))
}

// InvPoint maps a world point back into local space. Valid because the
// basis is orthonormal (inverse is the transpose).
func (t Transform) InvPoint(p Vec3) Vec3 {
	d := Sub(p, t.Origin)
	return Vec3{Dot(t.Right, d), Dot(t.Up, d), Dot(t.Forward, d)}
}

// ApplyDir maps a local direction into world space (no translation).
func (t Transform) ApplyDir(d Vec3) Vec3 {
	return Vec3{
		t.Right.X*d.X + t.Up.X*d.Y + t.Forward.X*d.Z,
		t.Right.Y*d.X + t.Up.Y*d.Y + t.Forward.Y*d.Z,
		t.Right.Z*d.X + t.Up.Z*d.Y + t.Forward.Z*d.Z,
	}
}
