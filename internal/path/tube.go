package path

import (
	"github.com/chewxy/math32"

	"wormhole/internal/vmath"
)

// Tube is the solid torus volume of the tunnel, used to keep spawned
// geometry inside the walls. All queries work in world space and account for
// the tunnel placement.
type Tube struct {
	params TunnelParams
}

// NewTube returns the tube volume for the given tunnel. Invalid parameters
// fall back to the defaults so distance queries stay well defined.
func NewTube(params TunnelParams) Tube {
	if params.MajorRadius <= 0 || params.TubeRadius <= 0 {
		def := DefaultTunnelParams()
		def.Placement = params.Placement
		params = def
	}
	zeroBasis := params.Placement.Right == (vmath.Vec3{}) &&
		params.Placement.Up == (vmath.Vec3{}) &&
		params.Placement.Forward == (vmath.Vec3{})
	if zeroBasis {
		params.Placement = vmath.IdentityTransform()
	}
	return Tube{params: params}
}

// SignedDistance returns the distance from p to the tube surface: negative
// inside the tunnel volume, positive outside.
func (t Tube) SignedDistance(p vmath.Vec3) float32 {
	local := t.params.Placement.InvPoint(p)
	ringDist := math32.Hypot(local.X, local.Z) - t.params.MajorRadius
	return math32.Hypot(ringDist, local.Y) - t.params.TubeRadius
}

// ringPoint returns the nearest centerline-circle point to the given local
// point, falling back to +X on the ring when the point sits on the torus axis.
func (t Tube) ringPoint(local vmath.Vec3) vmath.Vec3 {
	planar := vmath.Vec3{X: local.X, Z: local.Z}
	dir := vmath.NormalizeOr(planar, vmath.AxisX, degenerateEps)
	return vmath.Scale(dir, t.params.MajorRadius)
}

// ClampInside returns p moved to stay at least margin away from the tube
// wall: points outside are projected to the nearest interior point, points
// inside but near the wall are pulled radially toward the centerline. Points
// already clear of the wall are returned unchanged.
func (t Tube) ClampInside(p vmath.Vec3, margin float32) vmath.Vec3 {
	if margin < 0 {
		margin = 0
	}
	maxRadial := t.params.TubeRadius - margin
	if maxRadial <= 0 {
		maxRadial = t.params.TubeRadius * 0.5
	}

	local := t.params.Placement.InvPoint(p)
	ring := t.ringPoint(local)
	radial := vmath.Sub(local, ring)
	dist := vmath.Length(radial)
	if dist <= maxRadial {
		return p
	}
	dir := vmath.NormalizeOr(radial, vmath.AxisY, degenerateEps)
	clamped := vmath.Add(ring, vmath.Scale(dir, maxRadial))
	return t.params.Placement.ApplyPoint(clamped)
}
