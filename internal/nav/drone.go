package nav

import (
	"github.com/chewxy/math32"

	"wormhole/internal/path"
	"wormhole/internal/vmath"
)

// offsetPhase is the manual-offset state: a nudge holds the offset at its
// injected value for a while, then the offset decays back to zero.
type offsetPhase int

const (
	offsetIdle offsetPhase = iota
	offsetHeld
	offsetDecaying
)

const (
	// offsetFadeWindowMs is the decay window: each update moves the offset
	// toward zero by dt/fadeWindow of the remaining distance.
	offsetFadeWindowMs = 400.0
	// offsetSnapEpsSq: below this squared length the offset snaps to zero
	// so floating noise does not keep the decay alive forever.
	offsetSnapEpsSq = 1e-4
)

// Drone follows the tunnel centerline. Progress advances by Speed once per
// Update call (frame-tied, matching the render loop; apparent speed varies
// with frame rate) and wraps modulo 1 on the closed curve. Nudges displace
// the drone off the path transiently; the displacement is held for the
// requested duration and then decays back to zero.
type Drone struct {
	curve *path.Curve

	progress float32
	speed    float32
	active   bool

	phase         offsetPhase
	manualOffset  vmath.Vec3
	holdRemaining float32 // ms

	position vmath.Vec3
	forward  vmath.Vec3
	up       vmath.Vec3
}

// NewDrone returns an active drone at progress 0 on the given curve.
func NewDrone(curve *path.Curve, speed float32) *Drone {
	d := &Drone{
		curve:   curve,
		speed:   speed,
		active:  true,
		forward: vmath.AxisZ,
		up:      vmath.AxisY,
	}
	s := curve.SampleAt(0)
	d.position = s.Position
	d.forward = s.Tangent
	d.up = s.Normal
	return d
}

// Update advances the drone by one frame. When inactive, no state changes
// and the drone stays rendered at its last pose.
func (d *Drone) Update(dtMs float32) {
	if !d.active {
		return
	}
	if dtMs < 0 {
		dtMs = 0
	}

	d.progress += d.speed
	d.progress -= math32.Floor(d.progress)
	if d.progress < 0 || d.progress >= 1 {
		d.progress = 0
	}

	d.updateOffset(dtMs)

	s := d.curve.SampleAt(d.progress)
	d.position = vmath.Add(s.Position, d.manualOffset)
	if vmath.LengthSq(s.Tangent) > 0 {
		d.forward = s.Tangent
	}
	d.up = s.Normal
}

func (d *Drone) updateOffset(dtMs float32) {
	switch d.phase {
	case offsetHeld:
		d.holdRemaining -= dtMs
		if d.holdRemaining <= 0 {
			d.holdRemaining = 0
			d.phase = offsetDecaying
		}
	case offsetDecaying:
		t := dtMs / offsetFadeWindowMs
		if t > 1 {
			t = 1
		}
		d.manualOffset = vmath.Lerp(d.manualOffset, vmath.Vec3{}, t)
		if vmath.LengthSq(d.manualOffset) < offsetSnapEpsSq {
			d.manualOffset = vmath.Vec3{}
			d.phase = offsetIdle
		}
	}
}

// Nudge displaces the drone by offset immediately and holds the displacement
// for holdMs before it starts decaying. A nudge during decay restarts the
// hold with the new offset.
func (d *Drone) Nudge(offset vmath.Vec3, holdMs float32) {
	d.manualOffset = offset
	d.holdRemaining = holdMs
	if holdMs > 0 {
		d.phase = offsetHeld
	} else {
		d.phase = offsetDecaying
	}
}

// Start resumes progress advancement. Progress and any pending offset are
// kept as-is.
func (d *Drone) Start() { d.active = true }

// Stop halts progress advancement without resetting progress or offset.
func (d *Drone) Stop() { d.active = false }

// Active reports whether the drone advances on Update.
func (d *Drone) Active() bool { return d.active }

func (d *Drone) SetSpeed(speed float32) { d.speed = speed }

func (d *Drone) Speed() float32 { return d.speed }

// Progress returns the normalized position along the curve, always in [0,1).
func (d *Drone) Progress() float32 { return d.progress }

// SetProgress places the drone at the given progress (wrapped) without
// touching speed or offset. The pose refreshes on the next Update.
func (d *Drone) SetProgress(progress float32) {
	d.progress = progress - math32.Floor(progress)
	if d.progress < 0 || d.progress >= 1 {
		d.progress = 0
	}
}

// Position returns the drone's world position including the manual offset.
func (d *Drone) Position() vmath.Vec3 { return d.position }

// Forward returns the path tangent at the drone's progress. The tangent of
// the un-offset path point, not the displaced position. Without curve data
// it falls back to the analytic tangent of a circular centerline.
func (d *Drone) Forward() vmath.Vec3 {
	if d.curve == nil || len(d.curve.Points) == 0 {
		u := 2 * math32.Pi * d.progress
		return vmath.Vec3{X: -math32.Sin(u), Z: math32.Cos(u)}
	}
	return d.forward
}

// Up returns the path normal at the drone's progress.
func (d *Drone) Up() vmath.Vec3 { return d.up }

// ManualOffset returns the current transient displacement.
func (d *Drone) ManualOffset() vmath.Vec3 { return d.manualOffset }
