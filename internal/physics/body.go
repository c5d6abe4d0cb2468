package physics

import "wormhole/internal/vmath"

// Body is a 3D rigid body with position, velocity, and an AABB derived from
// Scale. Static bodies never move. Kinematic bodies are positioned by their
// owner (the drone follows the path, not the integrator) but still collide.
type Body struct {
	Position vmath.Vec3
	Velocity vmath.Vec3
	Scale    vmath.Vec3

	Mass        float32
	Restitution float32
	Friction    float32

	Static    bool
	Kinematic bool
}

// NewBody returns a body with the given position and scale and zero
// velocity. mass <= 0 defaults to 1.
func NewBody(position, scale vmath.Vec3, mass float32, static bool) *Body {
	if mass <= 0 {
		mass = 1
	}
	return &Body{
		Position:    position,
		Scale:       scale,
		Mass:        mass,
		Restitution: 0.3,
		Friction:    0.8,
		Static:      static,
	}
}

// NewKinematicBody returns a body moved by its owner each frame. It takes
// part in overlap queries but is never integrated.
func NewKinematicBody(position, scale vmath.Vec3) *Body {
	b := NewBody(position, scale, 1, false)
	b.Kinematic = true
	return b
}

// aabb is an axis-aligned box as min/max corners.
type aabb struct {
	min, max vmath.Vec3
}

// bounds returns the body's AABB. Zero scale components default to 1 so a
// body with an unset scale still has volume.
func (b *Body) bounds() aabb {
	s := b.Scale
	if s.X == 0 {
		s.X = 1
	}
	if s.Y == 0 {
		s.Y = 1
	}
	if s.Z == 0 {
		s.Z = 1
	}
	half := vmath.Scale(s, 0.5)
	return aabb{
		min: vmath.Sub(b.Position, half),
		max: vmath.Add(b.Position, half),
	}
}

func (a aabb) overlaps(o aabb) bool {
	return a.min.X < o.max.X && a.max.X > o.min.X &&
		a.min.Y < o.max.Y && a.max.Y > o.min.Y &&
		a.min.Z < o.max.Z && a.max.Z > o.min.Z
}
