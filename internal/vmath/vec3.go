package vmath

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Vec3 is a float32 3D vector. float32 keeps the geometry hot path in the
// same precision raylib consumes, so conversion at the render boundary is free.
type Vec3 struct {
	X, Y, Z float32
}

// Axis fallbacks used when a derived direction degenerates to zero length.
var (
	AxisX = Vec3{1, 0, 0}
	AxisY = Vec3{0, 1, 0}
	AxisZ = Vec3{0, 0, 1}
)

func Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func Scale(v Vec3, s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func Dot(a, b Vec3) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func Cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func LengthSq(v Vec3) float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func Length(v Vec3) float32 {
	return math32.Sqrt(LengthSq(v))
}

// Normalize returns v scaled to unit length, or the zero vector when v has
// zero length. Callers that need a guaranteed direction use NormalizeOr.
func Normalize(v Vec3) Vec3 {
	mag := Length(v)
	if mag == 0 {
		return Vec3{}
	}
	inv := 1.0 / mag
	return Vec3{v.X * inv, v.Y * inv, v.Z * inv}
}

// NormalizeOr returns v normalized, or fallback when v is shorter than eps.
func NormalizeOr(v Vec3, fallback Vec3, eps float32) Vec3 {
	if LengthSq(v) <= eps*eps {
		return fallback
	}
	return Normalize(v)
}

// Lerp interpolates component-wise; t is not clamped.
func Lerp(a, b Vec3, t float32) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

func Distance(a, b Vec3) float32 {
	return Length(Sub(a, b))
}

// IsFinite reports whether all components are finite (no NaN or Inf).
func IsFinite(v Vec3) bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// ToRL converts to a raylib vector at the render boundary.
func ToRL(v Vec3) rl.Vector3 {
	return rl.NewVector3(v.X, v.Y, v.Z)
}

// FromRL converts a raylib vector into the core representation.
func FromRL(v rl.Vector3) Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}
