package obstacle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wormhole/internal/path"
	"wormhole/internal/physics"
	"wormhole/internal/vmath"
)

func testTube(t *testing.T) path.Tube {
	t.Helper()
	return path.NewTube(path.DefaultTunnelParams())
}

// fakeClock is a manually advanced time source for age-based pruning tests.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestSpawn_PoolBound(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.MaxActive = 5
	f := NewField(cfg, testTube(t), nil)

	origin := vmath.Vec3{X: 100}
	for i := 0; i < 40; i++ {
		require.NotNil(t, f.SpawnAheadOf(origin, vmath.AxisZ, 10))
		assert.LessOrEqual(t, f.Count(), 5)
	}
	assert.Equal(t, 5, f.Count())
}

func TestSpawn_ReusesOldestAtCapacity(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.MaxActive = 3
	f := NewField(cfg, testTube(t), nil)
	clock := newFakeClock()
	f.SetClock(clock.Now)

	origin := vmath.Vec3{X: 100}
	var spawned []*Obstacle
	for i := 0; i < 3; i++ {
		spawned = append(spawned, f.SpawnAheadOf(origin, vmath.AxisZ, float32(i)))
		clock.Advance(time.Second)
	}

	// Fourth spawn reuses the first (oldest) entry, no allocation.
	reused := f.SpawnAheadOf(origin, vmath.AxisZ, 30)
	assert.Same(t, spawned[0], reused)
	assert.Equal(t, 3, f.Count())

	// Oldest-first iteration now starts at the second spawn.
	var order []*Obstacle
	f.ForEach(func(o *Obstacle) { order = append(order, o) })
	require.Len(t, order, 3)
	assert.Same(t, spawned[1], order[0])
	assert.Same(t, reused, order[2])
}

func TestSpawn_ClampedInsideTube(t *testing.T) {
	t.Parallel()

	params := path.DefaultTunnelParams()
	tube := path.NewTube(params)
	f := NewField(DefaultConfig(), tube, nil)

	// Spawn ray pointing straight out of the tunnel wall.
	origin := vmath.Vec3{X: params.MajorRadius}
	for i := 0; i < 20; i++ {
		o := f.SpawnAheadOf(origin, vmath.AxisX, 100)
		assert.LessOrEqual(t, tube.SignedDistance(o.Position), float32(0),
			"obstacle %d outside the tunnel", i)
	}
}

func TestSpawn_AttachesPhysicsBody(t *testing.T) {
	t.Parallel()

	world := physics.NewWorld()
	f := NewField(DefaultConfig(), testTube(t), world)

	o := f.SpawnAheadOf(vmath.Vec3{X: 100}, vmath.AxisZ, 10)
	require.NotNil(t, o.Body)
	assert.True(t, o.Body.Static)
	assert.Equal(t, o.Position, o.Body.Position)
	assert.Len(t, world.Bodies, 1)
}

func TestRelease_BodyGoesDynamic(t *testing.T) {
	t.Parallel()

	world := physics.NewWorld()
	f := NewField(DefaultConfig(), testTube(t), world)
	o := f.SpawnAheadOf(vmath.Vec3{X: 100}, vmath.AxisZ, 10)

	impulse := vmath.Vec3{Z: 25}
	f.Release(o, impulse)
	assert.False(t, o.Body.Static)
	assert.Equal(t, impulse, o.Body.Velocity)

	// Release of a nil or body-less obstacle is a no-op.
	f.Release(nil, impulse)
	f.Release(&Obstacle{}, impulse)
}

func TestPrune_BehindCamera(t *testing.T) {
	t.Parallel()

	f := NewField(DefaultConfig(), testTube(t), nil)
	origin := vmath.Vec3{X: 100}
	f.SpawnAheadOf(origin, vmath.AxisZ, 20)
	f.SpawnAheadOf(origin, vmath.AxisZ, 40)
	require.Equal(t, 2, f.Count())

	// Camera past both obstacles, looking further along +Z: both behind.
	camPos := vmath.Add(origin, vmath.Vec3{Z: 100})
	f.Prune(camPos, vmath.AxisZ, 5, 0, 0)
	assert.Equal(t, 0, f.Count())
}

func TestPrune_KeepsObstaclesAhead(t *testing.T) {
	t.Parallel()

	f := NewField(DefaultConfig(), testTube(t), nil)
	origin := vmath.Vec3{X: 100}
	f.SpawnAheadOf(origin, vmath.AxisZ, 20)

	f.Prune(origin, vmath.AxisZ, 5, 0, 0)
	assert.Equal(t, 1, f.Count())
}

func TestPrune_MaxAge(t *testing.T) {
	t.Parallel()

	f := NewField(DefaultConfig(), testTube(t), nil)
	clock := newFakeClock()
	f.SetClock(clock.Now)

	origin := vmath.Vec3{X: 100}
	f.SpawnAheadOf(origin, vmath.AxisZ, 20)
	clock.Advance(10 * time.Second)
	f.SpawnAheadOf(origin, vmath.AxisZ, 25)

	// 15s after the first spawn: only the first exceeds a 12s max age.
	clock.Advance(5 * time.Second)
	f.Prune(origin, vmath.AxisZ, 0, 12*time.Second, 0)
	assert.Equal(t, 1, f.Count())
}

func TestPrune_MaxDistance(t *testing.T) {
	t.Parallel()

	f := NewField(DefaultConfig(), testTube(t), nil)
	origin := vmath.Vec3{X: 100}
	near := f.SpawnAheadOf(origin, vmath.AxisZ, 10)
	far := f.SpawnAheadOf(origin, vmath.AxisZ, 10)
	far.Position = vmath.Vec3{X: 100, Z: 3000}

	f.Prune(origin, vmath.AxisZ, 0, 0, 400)
	assert.Equal(t, 1, f.Count())
	f.ForEach(func(o *Obstacle) { assert.Same(t, near, o) })
}

func TestPrune_RetainsMalformedEntry(t *testing.T) {
	t.Parallel()

	f := NewField(DefaultConfig(), testTube(t), nil)
	origin := vmath.Vec3{X: 100}
	bad := f.SpawnAheadOf(origin, vmath.AxisZ, 10)
	zero := float32(0)
	bad.Position = vmath.Vec3{X: zero / zero} // NaN

	// A NaN position must not panic and must not be silently dropped.
	assert.NotPanics(t, func() {
		f.Prune(origin, vmath.AxisZ, 5, time.Second, 400)
	})
	assert.Equal(t, 1, f.Count())
}

func TestPrune_DetachesBodies(t *testing.T) {
	t.Parallel()

	world := physics.NewWorld()
	f := NewField(DefaultConfig(), testTube(t), world)
	origin := vmath.Vec3{X: 100}
	f.SpawnAheadOf(origin, vmath.AxisZ, 20)
	require.Len(t, world.Bodies, 1)

	camPos := vmath.Add(origin, vmath.Vec3{Z: 100})
	f.Prune(camPos, vmath.AxisZ, 5, 0, 0)
	assert.Empty(t, world.Bodies)
}

func TestClear_EmptiesPoolAndWorld(t *testing.T) {
	t.Parallel()

	world := physics.NewWorld()
	f := NewField(DefaultConfig(), testTube(t), world)
	for i := 0; i < 10; i++ {
		f.SpawnAheadOf(vmath.Vec3{X: 100}, vmath.AxisZ, float32(i))
	}
	f.Clear()
	assert.Equal(t, 0, f.Count())
	assert.Empty(t, world.Bodies)
}

func TestJitter_DeterministicForSeed(t *testing.T) {
	t.Parallel()

	build := func() []vmath.Vec3 {
		cfg := DefaultConfig()
		cfg.Seed = 42
		f := NewField(cfg, testTube(t), nil)
		var got []vmath.Vec3
		for i := 0; i < 8; i++ {
			got = append(got, f.SpawnAheadOf(vmath.Vec3{X: 100}, vmath.AxisZ, 20).Position)
		}
		return got
	}
	assert.Equal(t, build(), build())
}
