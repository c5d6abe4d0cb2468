package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wormhole/internal/vmath"
)

func TestStep_GravityIntegration(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	w.SetGravity(vmath.Vec3{Y: -10})
	b := NewBody(vmath.Vec3{Y: 100}, vmath.Vec3{X: 1, Y: 1, Z: 1}, 1, false)
	w.AddBody(b)

	w.Step(1)
	assert.InDelta(t, -10, b.Velocity.Y, 1e-5)
	assert.InDelta(t, 90, b.Position.Y, 1e-5)
}

func TestStep_StaticAndKinematicNotIntegrated(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	static := NewBody(vmath.Vec3{Y: 5}, vmath.Vec3{X: 1, Y: 1, Z: 1}, 1, true)
	kin := NewKinematicBody(vmath.Vec3{Y: 8}, vmath.Vec3{X: 1, Y: 1, Z: 1})
	w.AddBody(static)
	w.AddBody(kin)

	w.Step(1)
	assert.Equal(t, float32(5), static.Position.Y)
	assert.Equal(t, float32(8), kin.Position.Y)
	assert.Equal(t, vmath.Vec3{}, kin.Velocity)
}

func TestStep_ResolvesOverlapAgainstStatic(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	w.SetGravity(vmath.Vec3{}) // isolate the resolver
	floor := NewBody(vmath.Vec3{}, vmath.Vec3{X: 10, Y: 1, Z: 10}, 1, true)
	box := NewBody(vmath.Vec3{Y: 0.6}, vmath.Vec3{X: 1, Y: 1, Z: 1}, 1, false)
	w.AddBody(floor)
	w.AddBody(box)

	w.Step(0.016)
	// Box pushed up and out of the floor; the static floor never moves.
	assert.GreaterOrEqual(t, box.Position.Y, float32(1))
	assert.Equal(t, vmath.Vec3{}, floor.Position)
}

func TestStep_MassRatioSplitsSeparation(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	w.SetGravity(vmath.Vec3{})
	light := NewBody(vmath.Vec3{X: -0.4}, vmath.Vec3{X: 1, Y: 1, Z: 1}, 1, false)
	heavy := NewBody(vmath.Vec3{X: 0.4}, vmath.Vec3{X: 1, Y: 1, Z: 1}, 3, false)
	w.AddBody(light)
	w.AddBody(heavy)

	w.Step(0.016)
	// Separated along X, with the light body moving farther.
	gap := heavy.Position.X - light.Position.X
	assert.GreaterOrEqual(t, gap, float32(1)-1e-4)
	assert.Greater(t, -light.Position.X, heavy.Position.X)
}

func TestOverlapping(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	a := NewBody(vmath.Vec3{}, vmath.Vec3{X: 2, Y: 2, Z: 2}, 1, false)
	near := NewBody(vmath.Vec3{X: 1.5}, vmath.Vec3{X: 2, Y: 2, Z: 2}, 1, true)
	far := NewBody(vmath.Vec3{X: 10}, vmath.Vec3{X: 2, Y: 2, Z: 2}, 1, true)
	w.AddBody(a)
	w.AddBody(near)
	w.AddBody(far)

	hits := w.Overlapping(a)
	require.Len(t, hits, 1)
	assert.Same(t, near, hits[0])

	// A body never overlaps itself; nil queries return nothing.
	assert.Empty(t, w.Overlapping(far))
	assert.Nil(t, w.Overlapping(nil))
}

func TestRemoveBody(t *testing.T) {
	t.Parallel()

	w := NewWorld()
	a := NewBody(vmath.Vec3{}, vmath.Vec3{X: 1, Y: 1, Z: 1}, 1, false)
	b := NewBody(vmath.Vec3{X: 5}, vmath.Vec3{X: 1, Y: 1, Z: 1}, 1, false)
	w.AddBody(a)
	w.AddBody(b)

	w.RemoveBody(a)
	require.Len(t, w.Bodies, 1)
	assert.Same(t, b, w.Bodies[0])

	// Removing an unknown body is a no-op.
	w.RemoveBody(a)
	assert.Len(t, w.Bodies, 1)
}

func TestNewBody_Defaults(t *testing.T) {
	t.Parallel()

	b := NewBody(vmath.Vec3{}, vmath.Vec3{}, -1, false)
	assert.Equal(t, float32(1), b.Mass)
	assert.False(t, b.Kinematic)

	k := NewKinematicBody(vmath.Vec3{}, vmath.Vec3{})
	assert.True(t, k.Kinematic)
	assert.False(t, k.Static)
}
