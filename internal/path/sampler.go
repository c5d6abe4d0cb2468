package path

import (
	"github.com/chewxy/math32"

	"wormhole/internal/vmath"
)

// TunnelParams describes the torus tunnel the centerline is derived from.
// MajorRadius is the ring radius, TubeRadius the tube cross-section radius.
// Samples is the number of segments for one revolution (the built curve has
// Samples+1 points, first and last coincident for a closed loop).
// SpiralTurns and SpiralRadius make the sampled curve wind inside the tube
// instead of tracing the centerline circle; SpiralRadius 0 gives the plain
// circle. Placement carries the tunnel mesh's world transform onto the curve.
type TunnelParams struct {
	MajorRadius  float32 `yaml:"major_radius"`
	TubeRadius   float32 `yaml:"tube_radius"`
	Samples      int     `yaml:"samples"`
	SpiralTurns  float32 `yaml:"spiral_turns"`
	SpiralRadius float32 `yaml:"spiral_radius"`

	Placement vmath.Transform `yaml:"-"`
}

// DefaultTunnelParams returns the classic tunnel: ring radius 100, tube
// radius 23, 128 samples, no spiral.
func DefaultTunnelParams() TunnelParams {
	return TunnelParams{
		MajorRadius: 100,
		TubeRadius:  23,
		Samples:     128,
		Placement:   vmath.IdentityTransform(),
	}
}

// Curve is an immutable closed centerline: positions with per-point unit
// tangents and normals, aligned by index. Built once at world init and shared
// read-only by the agent and camera afterwards.
type Curve struct {
	Points   []vmath.Vec3
	Tangents []vmath.Vec3
	Normals  []vmath.Vec3

	params TunnelParams
}

// Sample is one point on the curve with its local frame.
type Sample struct {
	Position vmath.Vec3
	Tangent  vmath.Vec3
	Normal   vmath.Vec3
}

// degenerateEps guards renormalization of interpolated unit vectors.
const degenerateEps = 1e-4

// Build derives the centerline curve from tunnel parameters. It never fails:
// invalid inputs (Samples < 2, MajorRadius <= 0) produce a minimal two-point
// curve at the origin with default axes, so downstream consumers always have
// a curve to sample.
func Build(params TunnelParams) *Curve {
	if params.Samples < 2 || params.MajorRadius <= 0 {
		return degenerateCurve(params)
	}
	zeroBasis := params.Placement.Right == (vmath.Vec3{}) &&
		params.Placement.Up == (vmath.Vec3{}) &&
		params.Placement.Forward == (vmath.Vec3{})
	if zeroBasis {
		params.Placement = vmath.IdentityTransform()
	}

	n := params.Samples + 1
	c := &Curve{
		Points:   make([]vmath.Vec3, n),
		Tangents: make([]vmath.Vec3, n),
		Normals:  make([]vmath.Vec3, n),
		params:   params,
	}
	for i := 0; i < n; i++ {
		u := 2 * math32.Pi * float32(i) / float32(params.Samples)
		local, dLocal := evalSpiral(params, u)
		c.Points[i] = params.Placement.ApplyPoint(local)
		tangent := params.Placement.ApplyDir(dLocal)
		c.Tangents[i] = vmath.NormalizeOr(tangent, vmath.AxisZ, degenerateEps)
		c.Normals[i] = frameUp(c.Tangents[i])
	}
	return c
}

// evalSpiral returns the local-space curve point and its derivative w.r.t. u.
// With SpiralRadius s and SpiralTurns k the curve is
//
//	x = (R + s·cos(k·u))·cos(u)
//	y = s·sin(k·u)
//	z = (R + s·cos(k·u))·sin(u)
//
// which reduces to the centerline circle of radius R when s == 0.
func evalSpiral(params TunnelParams, u float32) (p, dp vmath.Vec3) {
	R := params.MajorRadius
	s := params.SpiralRadius
	k := params.SpiralTurns
	if s > params.TubeRadius {
		s = params.TubeRadius
	}

	cu, su := math32.Cos(u), math32.Sin(u)
	ck, sk := math32.Cos(k*u), math32.Sin(k*u)

	ring := R + s*ck
	p = vmath.Vec3{X: ring * cu, Y: s * sk, Z: ring * su}

	dRing := -s * k * sk
	dp = vmath.Vec3{
		X: dRing*cu - ring*su,
		Y: s * k * ck,
		Z: dRing*su + ring*cu,
	}
	return p, dp
}

// frameUp is the local "up" of the parametric frame: world up with the
// tangent component removed, so a planar centerline gets exactly +Y. Falls
// back to +Y when the tangent is (near) vertical.
func frameUp(tangent vmath.Vec3) vmath.Vec3 {
	up := vmath.Sub(vmath.AxisY, vmath.Scale(tangent, vmath.Dot(vmath.AxisY, tangent)))
	return vmath.NormalizeOr(up, vmath.AxisY, degenerateEps)
}

func degenerateCurve(params TunnelParams) *Curve {
	return &Curve{
		Points:   []vmath.Vec3{{}, {}},
		Tangents: []vmath.Vec3{vmath.AxisZ, vmath.AxisZ},
		Normals:  []vmath.Vec3{vmath.AxisY, vmath.AxisY},
		params:   params,
	}
}

// Params returns the tunnel parameters the curve was built from.
func (c *Curve) Params() TunnelParams {
	return c.params
}

// wrapProgress folds an arbitrary progress value into [0,1). The curve is a
// closed loop, so out-of-range progress wraps rather than clamps.
func wrapProgress(progress float32) float32 {
	p := progress - math32.Floor(progress)
	if p < 0 || p >= 1 {
		return 0
	}
	return p
}

// SampleAt returns the interpolated position and local frame at the given
// normalized progress. Progress wraps modulo 1 for continuous looping.
// Interpolated tangents and normals are renormalized (straight lerp of unit
// vectors is not unit length) with axis fallbacks if the result degenerates.
func (c *Curve) SampleAt(progress float32) Sample {
	if c == nil || len(c.Points) == 0 {
		return Sample{Tangent: vmath.AxisZ, Normal: vmath.AxisY}
	}
	n := len(c.Points)
	if n == 1 {
		return Sample{Position: c.Points[0], Tangent: vmath.AxisZ, Normal: vmath.AxisY}
	}

	f := wrapProgress(progress) * float32(n-1)
	i0 := int(f)
	if i0 >= n-1 {
		i0 = n - 2
	}
	t := f - float32(i0)
	i1 := (i0 + 1) % n

	return Sample{
		Position: vmath.Lerp(c.Points[i0], c.Points[i1], t),
		Tangent:  vmath.NormalizeOr(vmath.Lerp(c.Tangents[i0], c.Tangents[i1], t), vmath.AxisZ, degenerateEps),
		Normal:   vmath.NormalizeOr(vmath.Lerp(c.Normals[i0], c.Normals[i1], t), vmath.AxisY, degenerateEps),
	}
}
