package chasecam

import (
	"wormhole/internal/vmath"
)

// Options configures the follow pose relative to the tracked agent.
// FollowDistance places the camera along the agent's forward axis; Behind
// flips that placement for a classic chase view. FollowHeight lifts the
// camera along the re-orthogonalized up axis and ShoulderOffset shifts it
// laterally. LookAhead sets how far past the agent the camera aims.
// Smoothing in (0,1] blends the previous pose toward the target pose each
// frame; 1 means no smoothing.
type Options struct {
	FollowDistance float32
	FollowHeight   float32
	ShoulderOffset float32
	LookAhead      float32
	Behind         bool
	Smoothing      float32
}

// DefaultOptions returns the tuning used by the tunnel scene.
func DefaultOptions() Options {
	return Options{
		FollowDistance: 2,
		FollowHeight:   1.2,
		ShoulderOffset: 0.4,
		LookAhead:      10,
		Behind:         true,
		Smoothing:      0.15,
	}
}

// Pose is a camera position and look target, derived fresh each frame.
type Pose struct {
	Position vmath.Vec3
	Target   vmath.Vec3
}

const degenerateEps = 1e-4

// Compute derives the camera pose from the agent's position and local path
// frame. The input up need not be perpendicular to forward: the frame is
// re-orthogonalized (right = up x forward, realUp = forward x right) so the
// output never contains NaN. Parallel forward/up fall back to the world up,
// and to +Z when forward itself is vertical.
func Compute(agentPos, forward, up vmath.Vec3, opts Options) Pose {
	fwd := vmath.NormalizeOr(forward, vmath.AxisZ, degenerateEps)
	right := vmath.Cross(up, fwd)
	if vmath.LengthSq(right) <= degenerateEps*degenerateEps {
		right = vmath.Cross(vmath.AxisY, fwd)
		if vmath.LengthSq(right) <= degenerateEps*degenerateEps {
			right = vmath.Cross(vmath.AxisZ, fwd)
		}
	}
	right = vmath.NormalizeOr(right, vmath.AxisX, degenerateEps)
	realUp := vmath.NormalizeOr(vmath.Cross(fwd, right), vmath.AxisY, degenerateEps)

	along := opts.FollowDistance
	if opts.Behind {
		along = -along
	}
	pos := vmath.Add(agentPos, vmath.Scale(fwd, along))
	pos = vmath.Add(pos, vmath.Scale(realUp, opts.FollowHeight))
	pos = vmath.Add(pos, vmath.Scale(right, opts.ShoulderOffset))

	return Pose{
		Position: pos,
		Target:   vmath.Add(agentPos, vmath.Scale(fwd, opts.LookAhead)),
	}
}

// Rig smooths Compute output over frames. The first Update snaps to the
// target pose so the camera never sweeps in from the zero pose.
type Rig struct {
	Opts   Options
	pose   Pose
	primed bool
}

// NewRig returns a rig with the given options.
func NewRig(opts Options) *Rig {
	if opts.Smoothing <= 0 || opts.Smoothing > 1 {
		opts.Smoothing = 1
	}
	return &Rig{Opts: opts}
}

// Update recomputes the target pose for this frame and blends the rig's pose
// toward it. Returns the smoothed pose.
func (r *Rig) Update(agentPos, forward, up vmath.Vec3) Pose {
	target := Compute(agentPos, forward, up, r.Opts)
	if !r.primed {
		r.pose = target
		r.primed = true
		return r.pose
	}
	t := r.Opts.Smoothing
	r.pose.Position = vmath.Lerp(r.pose.Position, target.Position, t)
	r.pose.Target = vmath.Lerp(r.pose.Target, target.Target, t)
	return r.pose
}

// Pose returns the last smoothed pose without recomputing.
func (r *Rig) Pose() Pose { return r.pose }

// Reset clears the smoothing history; the next Update snaps.
func (r *Rig) Reset() { r.primed = false }
