package path

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wormhole/internal/vmath"
)

func TestSignedDistance(t *testing.T) {
	t.Parallel()

	tube := NewTube(TunnelParams{MajorRadius: 100, TubeRadius: 23, Samples: 128, Placement: vmath.IdentityTransform()})

	// Centerline point: full tube radius inside.
	assert.InDelta(t, -23, tube.SignedDistance(vmath.Vec3{X: 100}), 1e-3)
	// On the outer wall.
	assert.InDelta(t, 0, tube.SignedDistance(vmath.Vec3{X: 123}), 1e-3)
	// Outside.
	assert.InDelta(t, 7, tube.SignedDistance(vmath.Vec3{X: 130}), 1e-3)
	// Torus hole center is far outside the tube volume.
	assert.InDelta(t, 100-23, tube.SignedDistance(vmath.Vec3{}), 1e-3)
}

func TestClampInside(t *testing.T) {
	t.Parallel()

	tube := NewTube(TunnelParams{MajorRadius: 100, TubeRadius: 23, Samples: 128, Placement: vmath.IdentityTransform()})
	const margin = 2

	// Outside the wall: projected to margin depth inside.
	got := tube.ClampInside(vmath.Vec3{X: 130}, margin)
	assert.InDelta(t, 121, got.X, 1e-3)
	assert.LessOrEqual(t, tube.SignedDistance(got), float32(-margin)+1e-3)

	// Inside but hugging the wall: pulled back to the margin.
	got = tube.ClampInside(vmath.Vec3{X: 122.5}, margin)
	assert.InDelta(t, 121, got.X, 1e-3)

	// Comfortably inside: untouched.
	p := vmath.Vec3{X: 105, Y: 3}
	assert.Equal(t, p, tube.ClampInside(p, margin))

	// Degenerate: point on the torus axis projects onto the ring.
	got = tube.ClampInside(vmath.Vec3{}, margin)
	assert.LessOrEqual(t, tube.SignedDistance(got), float32(0))
}

func TestNewTube_InvalidParamsFallBack(t *testing.T) {
	t.Parallel()

	tube := NewTube(TunnelParams{})
	// Defaults applied: centerline of the default tunnel is inside.
	assert.Less(t, tube.SignedDistance(vmath.Vec3{X: 100}), float32(0))
}
