package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wormhole/internal/vmath"
)

func TestBuild_PointCountAndClosure(t *testing.T) {
	t.Parallel()

	params := DefaultTunnelParams()
	c := Build(params)

	require.Len(t, c.Points, params.Samples+1)
	require.Len(t, c.Tangents, len(c.Points))
	require.Len(t, c.Normals, len(c.Points))

	// Full revolution: first and last points coincide.
	assert.InDelta(t, 0, vmath.Distance(c.Points[0], c.Points[len(c.Points)-1]), 1e-3)
}

func TestBuild_DegenerateInputs(t *testing.T) {
	t.Parallel()

	cases := []TunnelParams{
		{MajorRadius: 100, Samples: 1},
		{MajorRadius: 0, Samples: 128},
		{MajorRadius: -5, Samples: 128},
		{},
	}
	for _, params := range cases {
		c := Build(params)
		require.Len(t, c.Points, 2)
		assert.Equal(t, vmath.Vec3{}, c.Points[0])
		assert.Equal(t, vmath.AxisZ, c.Tangents[0])
		assert.Equal(t, vmath.AxisY, c.Normals[0])
	}
}

func TestBuild_UnitFrames(t *testing.T) {
	t.Parallel()

	params := DefaultTunnelParams()
	params.SpiralTurns = 6
	params.SpiralRadius = 12
	params.Samples = 256
	c := Build(params)

	for i := range c.Points {
		assert.InDelta(t, 1, vmath.Length(c.Tangents[i]), 1e-4, "tangent %d", i)
		assert.InDelta(t, 1, vmath.Length(c.Normals[i]), 1e-4, "normal %d", i)
	}
}

func TestBuild_SpiralStaysInsideTube(t *testing.T) {
	t.Parallel()

	params := DefaultTunnelParams()
	params.SpiralTurns = 6
	params.SpiralRadius = 12
	c := Build(params)
	tube := NewTube(params)

	for i, p := range c.Points {
		assert.LessOrEqual(t, tube.SignedDistance(p), float32(0), "point %d outside tube", i)
	}
}

func TestSampleAt_DiametricallyOpposite(t *testing.T) {
	t.Parallel()

	c := Build(TunnelParams{MajorRadius: 100, TubeRadius: 23, Samples: 128, Placement: vmath.IdentityTransform()})

	a := c.SampleAt(0).Position
	b := c.SampleAt(0.5).Position
	assert.InDelta(t, 200, vmath.Distance(a, b), 0.5)
}

func TestSampleAt_WrapSemantics(t *testing.T) {
	t.Parallel()

	c := Build(DefaultTunnelParams())

	// Closed loop: 0 and 1 are the same point, and any out-of-range
	// progress wraps rather than clamps.
	assert.Equal(t, c.SampleAt(0), c.SampleAt(1))
	assert.Equal(t, c.SampleAt(0.25), c.SampleAt(1.25))
	assert.Equal(t, c.SampleAt(0.75), c.SampleAt(-0.25))
}

func TestSampleAt_ConvexHullBound(t *testing.T) {
	t.Parallel()

	c := Build(DefaultTunnelParams())
	n := len(c.Points)

	for _, progress := range []float32{0.1, 0.337, 0.5, 0.662, 0.9, 0.999} {
		s := c.SampleAt(progress)

		f := progress * float32(n-1)
		i0 := int(f)
		i1 := (i0 + 1) % n
		lo := c.Points[i0]
		hi := c.Points[i1]

		const eps = 1e-3
		assert.GreaterOrEqual(t, s.Position.X, min(lo.X, hi.X)-eps)
		assert.LessOrEqual(t, s.Position.X, max(lo.X, hi.X)+eps)
		assert.GreaterOrEqual(t, s.Position.Y, min(lo.Y, hi.Y)-eps)
		assert.LessOrEqual(t, s.Position.Y, max(lo.Y, hi.Y)+eps)
		assert.GreaterOrEqual(t, s.Position.Z, min(lo.Z, hi.Z)-eps)
		assert.LessOrEqual(t, s.Position.Z, max(lo.Z, hi.Z)+eps)
	}
}

func TestSampleAt_UnitInterpolatedFrames(t *testing.T) {
	t.Parallel()

	c := Build(DefaultTunnelParams())
	for _, progress := range []float32{0, 0.123, 0.5, 0.87, 1, 2.4, -0.3} {
		s := c.SampleAt(progress)
		assert.InDelta(t, 1, vmath.Length(s.Tangent), 1e-4, "progress %v", progress)
		assert.InDelta(t, 1, vmath.Length(s.Normal), 1e-4, "progress %v", progress)
	}
}

func TestSampleAt_EmptyAndSinglePoint(t *testing.T) {
	t.Parallel()

	var nilCurve *Curve
	s := nilCurve.SampleAt(0.5)
	assert.Equal(t, vmath.Vec3{}, s.Position)
	assert.Equal(t, vmath.AxisZ, s.Tangent)
	assert.Equal(t, vmath.AxisY, s.Normal)

	empty := &Curve{}
	s = empty.SampleAt(0.5)
	assert.Equal(t, vmath.AxisZ, s.Tangent)
	assert.Equal(t, vmath.AxisY, s.Normal)

	single := &Curve{Points: []vmath.Vec3{{X: 3, Y: 4, Z: 5}}}
	s = single.SampleAt(0.9)
	assert.Equal(t, vmath.Vec3{X: 3, Y: 4, Z: 5}, s.Position)
	assert.Equal(t, vmath.AxisZ, s.Tangent)
	assert.Equal(t, vmath.AxisY, s.Normal)
}

func TestSampleAt_PlanarCircleFrame(t *testing.T) {
	t.Parallel()

	c := Build(TunnelParams{MajorRadius: 100, TubeRadius: 23, Samples: 128, Placement: vmath.IdentityTransform()})

	s := c.SampleAt(0)
	// At u=0 the circle point is (R,0,0) and travel is along +Z.
	assert.InDelta(t, 100, s.Position.X, 1e-3)
	assert.InDelta(t, 0, s.Position.Y, 1e-3)
	assert.InDelta(t, 0, s.Position.Z, 1e-3)
	assert.InDelta(t, 1, s.Tangent.Z, 1e-4)
	assert.Equal(t, vmath.AxisY, s.Normal)
}

func TestBuild_PlacementTransform(t *testing.T) {
	t.Parallel()

	params := DefaultTunnelParams()
	params.Placement = vmath.IdentityTransform()
	params.Placement.Origin = vmath.Vec3{X: 10, Y: 20, Z: 30}
	c := Build(params)

	s := c.SampleAt(0)
	assert.InDelta(t, 110, s.Position.X, 1e-3)
	assert.InDelta(t, 20, s.Position.Y, 1e-3)
	assert.InDelta(t, 30, s.Position.Z, 1e-3)
}
