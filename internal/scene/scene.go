package scene

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"wormhole/internal/chasecam"
	"wormhole/internal/engineconfig"
	"wormhole/internal/input"
	"wormhole/internal/logger"
	"wormhole/internal/material"
	"wormhole/internal/nav"
	"wormhole/internal/obstacle"
	"wormhole/internal/path"
	"wormhole/internal/physics"
	"wormhole/internal/primitives"
	"wormhole/internal/vmath"
)

const (
	tunnelSides   = 48
	tunnelRadSegs = 24

	// nudgeFraction of the tube radius per directional key tap.
	nudgeFraction = 0.2
	nudgeHoldMs   = 150

	// Obstacles spawn this far ahead of the drone along its forward vector.
	spawnAheadDistance = 60

	// Prune tuning: behind-camera slack, max age, max distance.
	pruneMinDistance = 5
	pruneMaxAge      = 30 * time.Second
	pruneMaxDistance = 400

	// Impulse given to an obstacle the drone clips.
	hitImpulse = 25
)

// Scene is the explicit context object owning every component of the tunnel
// world: the path curve, the drone, the chase camera, the obstacle field,
// the physics world, and the primitive/mesh resources. Components receive
// what they need from here; there are no package-level registries. Update
// mutates, Draw only reads, Unload tears down GPU state.
type Scene struct {
	Camera rl.Camera3D

	log   *logger.Logger
	prefs engineconfig.EnginePrefs

	curve *path.Curve
	tube  path.Tube
	drone *nav.Drone
	rig   *chasecam.Rig
	field *obstacle.Field
	world *physics.World

	droneBody *physics.Body

	queue    input.Queue
	keyboard *input.Keyboard

	registry    *primitives.Registry
	droneMtl    material.Material
	obstacleMtl material.Material
	tunnelMtl   material.Material

	tunnelMesh   rl.Mesh
	tunnelModel  rl.Model
	tunnelLoaded bool

	sky skybox

	GridVisible bool

	spawnIntervalMs float32
	spawnClockMs    float32
}

// New builds the tunnel world from a preset. The curve is built once here
// and shared read-only with the drone and camera afterwards.
func New(preset engineconfig.ScenePreset, prefs engineconfig.EnginePrefs, log *logger.Logger) *Scene {
	params := preset.Tunnel
	if params.Placement == (vmath.Transform{}) {
		params.Placement = vmath.IdentityTransform()
	}

	curve := path.Build(params)
	tube := path.NewTube(params)
	world := physics.NewWorld()

	fieldCfg := obstacle.DefaultConfig()
	fieldCfg.MaxActive = preset.PoolSize
	fieldCfg.BaseScale = params.TubeRadius * 0.13

	s := &Scene{
		log:             log,
		prefs:           prefs,
		curve:           curve,
		tube:            tube,
		drone:           nav.NewDrone(curve, input.SpeedPresets[1]),
		rig:             newRig(prefs),
		field:           obstacle.NewField(fieldCfg, tube, world),
		world:           world,
		registry:        primitives.NewRegistry(),
		droneMtl:        material.NewStandard(rl.NewColor(230, 230, 240, 255)),
		obstacleMtl:     material.NewPBR(rl.NewColor(200, 60, 60, 255), 0.1, 0.7),
		tunnelMtl:       material.NewStandard(rl.NewColor(60, 120, 200, 255)),
		GridVisible:     prefs.GridVisible,
		spawnIntervalMs: float32(preset.SpawnIntervalMs),
	}
	s.tunnelMtl.SetWireframe(true)

	s.droneBody = physics.NewKinematicBody(s.drone.Position(), vmath.Vec3{X: 2, Y: 2, Z: 3.5})
	world.AddBody(s.droneBody)

	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = 60
	s.Camera.Projection = rl.CameraPerspective
	s.syncCamera(s.rig.Update(s.drone.Position(), s.drone.Forward(), s.drone.Up()))

	s.keyboard = input.NewKeyboard(&s.queue)
	s.sky.find()
	return s
}

func newRig(prefs engineconfig.EnginePrefs) *chasecam.Rig {
	opts := chasecam.DefaultOptions()
	opts.Behind = prefs.ChaseBehind
	// Scale follow offsets with the tunnel dimensions used by the presets.
	opts.FollowDistance = 12
	opts.FollowHeight = 4
	opts.ShoulderOffset = 2
	opts.LookAhead = 30
	return chasecam.NewRig(opts)
}

// Drone exposes the navigation agent (read-only use outside Update).
func (s *Scene) Drone() *nav.Drone { return s.drone }

// Field exposes the obstacle field (read-only use outside Update).
func (s *Scene) Field() *obstacle.Field { return s.field }

// frameEvents collects intent effects the scene does not own (the debug
// overlay belongs to the caller).
type frameEvents struct {
	overlayToggled bool
}

// Update advances the world by one frame. Queued input intents are applied
// here, inside the frame callback, never from the event source directly.
// Returns true when the debug overlay toggle was requested this frame.
func (s *Scene) Update(dtMs float32) (overlayToggled bool) {
	s.keyboard.Poll()
	var ev frameEvents
	for _, intent := range s.queue.Drain() {
		s.applyIntent(intent, &ev)
	}

	s.drone.Update(dtMs)
	s.droneBody.Position = s.drone.Position()

	pose := s.rig.Update(s.drone.Position(), s.drone.Forward(), s.drone.Up())
	s.syncCamera(pose)

	s.updateObstacles(dtMs)
	s.world.Step(dtMs / 1000)
	s.resolveHits()

	return ev.overlayToggled
}

func (s *Scene) applyIntent(intent input.Intent, ev *frameEvents) {
	switch intent.Kind {
	case input.KindNudge:
		s.drone.Nudge(s.nudgeVector(intent.Direction), nudgeHoldMs)
	case input.KindCycleSpeed:
		s.drone.SetSpeed(input.NextSpeed(s.drone.Speed()))
	case input.KindTogglePause:
		if s.drone.Active() {
			s.drone.Stop()
		} else {
			s.drone.Start()
		}
	case input.KindToggleGrid:
		s.GridVisible = !s.GridVisible
	case input.KindToggleOverlay:
		ev.overlayToggled = true
	}
}

// nudgeVector maps a direction key to a displacement in the drone's local
// path frame, sized relative to the tube radius.
func (s *Scene) nudgeVector(dir input.Direction) vmath.Vec3 {
	fwd := s.drone.Forward()
	up := s.drone.Up()
	right := vmath.NormalizeOr(vmath.Cross(up, fwd), vmath.AxisX, 1e-4)
	mag := s.curve.Params().TubeRadius * nudgeFraction
	switch dir {
	case input.DirUp:
		return vmath.Scale(up, mag)
	case input.DirDown:
		return vmath.Scale(up, -mag)
	case input.DirLeft:
		return vmath.Scale(right, -mag)
	default:
		return vmath.Scale(right, mag)
	}
}

func (s *Scene) updateObstacles(dtMs float32) {
	if s.spawnIntervalMs > 0 && s.drone.Active() {
		s.spawnClockMs += dtMs
		for s.spawnClockMs >= s.spawnIntervalMs {
			s.spawnClockMs -= s.spawnIntervalMs
			s.field.SpawnAheadOf(s.drone.Position(), s.drone.Forward(), spawnAheadDistance)
		}
	}

	camPos := vmath.FromRL(s.Camera.Position)
	camFwd := vmath.Sub(vmath.FromRL(s.Camera.Target), camPos)
	s.field.Prune(camPos, camFwd, pruneMinDistance, pruneMaxAge, pruneMaxDistance)
}

// resolveHits knocks loose any obstacle the drone's body overlaps, giving
// it the drone's forward momentum. The drone itself is kinematic and flies on.
func (s *Scene) resolveHits() {
	hits := s.world.Overlapping(s.droneBody)
	if len(hits) == 0 {
		return
	}
	impulse := vmath.Scale(s.drone.Forward(), hitImpulse)
	s.field.ForEach(func(o *obstacle.Obstacle) {
		for _, h := range hits {
			if o.Body == h && o.Body.Static {
				s.field.Release(o, impulse)
			}
		}
	})
}

func (s *Scene) syncCamera(pose chasecam.Pose) {
	s.Camera.Position = vmath.ToRL(pose.Position)
	s.Camera.Target = vmath.ToRL(pose.Target)
	up := s.drone.Up()
	if vmath.LengthSq(up) > 0 {
		s.Camera.Up = vmath.ToRL(up)
	}
}
