package physics

import "wormhole/internal/vmath"

// World holds a set of bodies and runs a simple 3D step: gravity,
// integration, AABB collision resolution. The tunnel scene uses it for
// knocked-loose obstacles; the drone itself is kinematic.
type World struct {
	Gravity vmath.Vec3
	Bodies  []*Body
}

// NewWorld returns a physics world with default gravity (0, -9.8, 0).
func NewWorld() *World {
	return &World{Gravity: vmath.Vec3{Y: -9.8}}
}

// SetGravity sets the gravity vector.
func (w *World) SetGravity(g vmath.Vec3) {
	w.Gravity = g
}

// AddBody appends a body to the world. Order is preserved for syncing with
// scene objects.
func (w *World) AddBody(b *Body) {
	if b == nil {
		return
	}
	w.Bodies = append(w.Bodies, b)
}

// RemoveBody detaches a body from the world (e.g. a pruned obstacle).
func (w *World) RemoveBody(b *Body) {
	for i, cur := range w.Bodies {
		if cur == b {
			w.Bodies = append(w.Bodies[:i], w.Bodies[i+1:]...)
			return
		}
	}
}

// Overlapping returns all bodies whose AABB overlaps b's. b itself and nil
// entries are skipped. Used for drone-vs-obstacle hit detection.
func (w *World) Overlapping(b *Body) []*Body {
	if b == nil {
		return nil
	}
	box := b.bounds()
	var hits []*Body
	for _, other := range w.Bodies {
		if other == nil || other == b {
			continue
		}
		if box.overlaps(other.bounds()) {
			hits = append(hits, other)
		}
	}
	return hits
}

// integrable reports whether the integrator moves the body.
func integrable(b *Body) bool {
	return !b.Static && !b.Kinematic
}

// penetrationAxis returns the overlap amount and axis index (0=X, 1=Y, 2=Z)
// for the minimum penetration. If no overlap, returns (0, -1).
func penetrationAxis(a, b aabb) (depth float32, axis int) {
	overlapX := min(a.max.X, b.max.X) - max(a.min.X, b.min.X)
	overlapY := min(a.max.Y, b.max.Y) - max(a.min.Y, b.min.Y)
	overlapZ := min(a.max.Z, b.max.Z) - max(a.min.Z, b.min.Z)
	if overlapX <= 0 || overlapY <= 0 || overlapZ <= 0 {
		return 0, -1
	}
	depth = overlapX
	axis = 0
	if overlapY < depth {
		depth = overlapY
		axis = 1
	}
	if overlapZ < depth {
		depth = overlapZ
		axis = 2
	}
	return depth, axis
}

// axisGet/axisSet avoid per-axis switch duplication in the resolver.
func axisGet(v vmath.Vec3, axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func axisAdd(v *vmath.Vec3, axis int, delta float32) {
	switch axis {
	case 0:
		v.X += delta
	case 1:
		v.Y += delta
	default:
		v.Z += delta
	}
}

// Step advances the simulation by dt seconds: apply gravity, integrate, then
// resolve AABB overlaps along the minimum penetration axis. Velocity along
// the resolved axis is reflected by restitution and the remaining velocity
// is damped by friction, so knocked-loose obstacles settle instead of
// jittering forever.
func (w *World) Step(dt float32) {
	for _, b := range w.Bodies {
		if b == nil || !integrable(b) {
			continue
		}
		b.Velocity = vmath.Add(b.Velocity, vmath.Scale(w.Gravity, dt))
		b.Position = vmath.Add(b.Position, vmath.Scale(b.Velocity, dt))
	}

	for i := 0; i < len(w.Bodies); i++ {
		bi := w.Bodies[i]
		if bi == nil {
			continue
		}
		boxI := bi.bounds()
		for j := i + 1; j < len(w.Bodies); j++ {
			bj := w.Bodies[j]
			if bj == nil {
				continue
			}
			boxJ := bj.bounds()
			depth, axis := penetrationAxis(boxI, boxJ)
			if axis < 0 {
				continue
			}
			resolvePair(bi, bj, depth, axis)
			boxI = bi.bounds() // update for next pair
		}
	}
}

// resolvePair pushes two overlapping bodies apart along axis. Non-integrable
// bodies (static, kinematic) do not move; they act as walls.
func resolvePair(bi, bj *Body, depth float32, axis int) {
	moveI := float32(0)
	moveJ := float32(0)
	switch {
	case !integrable(bi) && !integrable(bj):
		return
	case !integrable(bi):
		moveJ = depth
	case !integrable(bj):
		moveI = -depth
	default:
		total := bi.Mass + bj.Mass
		moveI = -depth * (bj.Mass / total)
		moveJ = depth * (bi.Mass / total)
	}
	if axisGet(bj.Position, axis) < axisGet(bi.Position, axis) {
		moveI, moveJ = -moveI, -moveJ
	}
	axisAdd(&bi.Position, axis, moveI)
	axisAdd(&bj.Position, axis, moveJ)
	bounce(bi, axis)
	bounce(bj, axis)
}

// bounce reflects the body's velocity along axis by its restitution and
// applies friction to the rest.
func bounce(b *Body, axis int) {
	if !integrable(b) {
		return
	}
	v := b.Velocity
	switch axis {
	case 0:
		v.X = -v.X * b.Restitution
		v.Y *= b.Friction
		v.Z *= b.Friction
	case 1:
		v.Y = -v.Y * b.Restitution
		v.X *= b.Friction
		v.Z *= b.Friction
	default:
		v.Z = -v.Z * b.Restitution
		v.X *= b.Friction
		v.Y *= b.Friction
	}
	b.Velocity = v
}
