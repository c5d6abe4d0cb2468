package obstacle

import (
	"time"

	"wormhole/internal/path"
	"wormhole/internal/physics"
	"wormhole/internal/vmath"
)

// KindObstacle tags pool entries as collidable markers. External readers
// (collision checks) only query tagged instances.
const KindObstacle = "obstacle"

// wallMargin keeps spawned obstacles this far inside the tunnel wall.
const wallMargin = 2.0

// Obstacle is one collidable marker in the tunnel. Owned exclusively by the
// Field; the physics body is attached to the world while the entry is live.
type Obstacle struct {
	Position  vmath.Vec3
	SpawnTime time.Time
	Kind      string
	Body      *physics.Body
	Scale     vmath.Vec3
}

// Config tunes the pool and spawn geometry.
type Config struct {
	MaxActive int
	// Seed drives deterministic per-spawn size and lateral jitter.
	Seed int64
	// BaseScale is the nominal obstacle size; jitter scales it 0.6x-1.4x.
	BaseScale float32
}

// DefaultConfig returns the tuning used by the tunnel scene.
func DefaultConfig() Config {
	return Config{MaxActive: 60, Seed: 1, BaseScale: 3}
}

// Field owns a bounded pool of obstacles placed relative to the path or the
// camera's forward ray. At capacity the oldest entry is repositioned instead
// of allocating: the pool is a fixed ring with a head index, so eviction is
// O(1). All mutation happens inside the frame callback; the field is not
// safe for concurrent use.
type Field struct {
	cfg   Config
	tube  path.Tube
	world *physics.World

	ring  []*Obstacle
	head  int
	count int

	spawned uint64 // total spawn calls, drives jitter

	now func() time.Time // injectable clock
}

// NewField returns an empty field. world may be nil (no collision bodies,
// markers only). The tube clamps spawn positions inside the tunnel.
func NewField(cfg Config, tube path.Tube, world *physics.World) *Field {
	if cfg.MaxActive <= 0 {
		cfg.MaxActive = DefaultConfig().MaxActive
	}
	if cfg.BaseScale <= 0 {
		cfg.BaseScale = DefaultConfig().BaseScale
	}
	return &Field{
		cfg:   cfg,
		tube:  tube,
		world: world,
		ring:  make([]*Obstacle, cfg.MaxActive),
		now:   time.Now,
	}
}

// SetClock overrides the field's time source.
func (f *Field) SetClock(now func() time.Time) {
	if now != nil {
		f.now = now
	}
}

// Count returns the number of live obstacles. Never exceeds MaxActive.
func (f *Field) Count() int { return f.count }

// slot returns the ring index of the i-th live obstacle, oldest first.
func (f *Field) slot(i int) int {
	return (f.head + i) % len(f.ring)
}

// ForEach visits live obstacles oldest-first. Nil entries are skipped.
func (f *Field) ForEach(fn func(*Obstacle)) {
	for i := 0; i < f.count; i++ {
		if o := f.ring[f.slot(i)]; o != nil {
			fn(o)
		}
	}
}

// SpawnAheadOf places an obstacle at origin + forward*distance, clamped to
// stay a safety margin inside the tunnel wall. At capacity the oldest entry
// is reused (repositioned) rather than allocated.
func (f *Field) SpawnAheadOf(origin, forward vmath.Vec3, distance float32) *Obstacle {
	dir := vmath.NormalizeOr(forward, vmath.AxisZ, 1e-4)
	pos := vmath.Add(origin, vmath.Scale(dir, distance))
	pos = vmath.Add(pos, f.lateralJitter(dir))
	pos = f.tube.ClampInside(pos, wallMargin)

	size := f.cfg.BaseScale * sizeJitter(f.cfg.Seed, f.spawned)
	scale := vmath.Vec3{X: size, Y: size, Z: size}
	f.spawned++

	var o *Obstacle
	if f.count < len(f.ring) {
		o = &Obstacle{Kind: KindObstacle}
		f.ring[f.slot(f.count)] = o
		f.count++
	} else {
		// Reuse the oldest; rotating the head makes it the newest.
		o = f.ring[f.head]
		f.head = (f.head + 1) % len(f.ring)
		if o == nil {
			o = &Obstacle{Kind: KindObstacle}
			f.ring[(f.head+f.count-1)%len(f.ring)] = o
		}
	}

	o.Position = pos
	o.SpawnTime = f.now()
	o.Scale = scale
	f.attachBody(o)
	return o
}

// lateralJitter offsets the spawn point perpendicular to the spawn ray so
// obstacles do not line up on the centerline. Deterministic for a fixed seed.
func (f *Field) lateralJitter(dir vmath.Vec3) vmath.Vec3 {
	right := vmath.NormalizeOr(vmath.Cross(vmath.AxisY, dir), vmath.AxisX, 1e-4)
	up := vmath.NormalizeOr(vmath.Cross(dir, right), vmath.AxisY, 1e-4)
	r := f.cfg.BaseScale * 2
	a := (offsetJitter(f.cfg.Seed, f.spawned, 0)*2 - 1) * r
	b := (offsetJitter(f.cfg.Seed, f.spawned, 1)*2 - 1) * r
	return vmath.Add(vmath.Scale(right, a), vmath.Scale(up, b))
}

// attachBody keeps the obstacle's physics body in sync with its position,
// creating or re-adding it as needed. Reused entries keep their body.
func (f *Field) attachBody(o *Obstacle) {
	if f.world == nil {
		return
	}
	if o.Body == nil {
		o.Body = physics.NewBody(o.Position, o.Scale, 2, true)
		o.Body.Restitution = 0.4
		f.world.AddBody(o.Body)
		return
	}
	o.Body.Position = o.Position
	o.Body.Scale = o.Scale
	o.Body.Velocity = vmath.Vec3{}
	o.Body.Static = true
}

// Release knocks an obstacle loose: its body goes dynamic with the given
// impulse and gravity takes over. The entry stays pooled until pruned.
func (f *Field) Release(o *Obstacle, impulse vmath.Vec3) {
	if o == nil || o.Body == nil {
		return
	}
	o.Body.Static = false
	o.Body.Velocity = impulse
}

// Prune removes obstacles that are behind the camera by more than
// minDistance, older than maxAge, or farther than maxDistance. Entries with
// non-finite positions are retained. A zero or negative criterion disables
// that check. Never panics.
func (f *Field) Prune(cameraPos, cameraForward vmath.Vec3, minDistance float32, maxAge time.Duration, maxDistance float32) {
	if f.count == 0 {
		return
	}
	fwd := vmath.NormalizeOr(cameraForward, vmath.AxisZ, 1e-4)
	cutoff := f.now().Add(-maxAge)

	kept := make([]*Obstacle, 0, f.count)
	for i := 0; i < f.count; i++ {
		o := f.ring[f.slot(i)]
		if o == nil {
			continue
		}
		if f.shouldPrune(o, cameraPos, fwd, minDistance, maxAge, cutoff, maxDistance) {
			f.detachBody(o)
			continue
		}
		kept = append(kept, o)
	}

	for i := range f.ring {
		f.ring[i] = nil
	}
	copy(f.ring, kept)
	f.head = 0
	f.count = len(kept)
}

func (f *Field) shouldPrune(o *Obstacle, cameraPos, fwd vmath.Vec3, minDistance float32, maxAge time.Duration, cutoff time.Time, maxDistance float32) bool {
	toObstacle := vmath.Sub(o.Position, cameraPos)
	if !vmath.IsFinite(toObstacle) {
		return false // malformed entry, retain
	}
	if minDistance > 0 && vmath.Dot(toObstacle, fwd) < -minDistance {
		return true
	}
	if maxAge > 0 && o.SpawnTime.Before(cutoff) {
		return true
	}
	if maxDistance > 0 && vmath.Length(toObstacle) > maxDistance {
		return true
	}
	return false
}

// Clear drops every obstacle and detaches their bodies. Used on teardown.
func (f *Field) Clear() {
	for i := 0; i < f.count; i++ {
		if o := f.ring[f.slot(i)]; o != nil {
			f.detachBody(o)
		}
	}
	for i := range f.ring {
		f.ring[i] = nil
	}
	f.head = 0
	f.count = 0
}

func (f *Field) detachBody(o *Obstacle) {
	if f.world != nil && o.Body != nil {
		f.world.RemoveBody(o.Body)
	}
	o.Body = nil
}
