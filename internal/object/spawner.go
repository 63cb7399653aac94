package object

import (
	"math"
	"math/rand"
)

// spawnEpsilon absorbs rounding when frame deltas add up to exactly one interval.
const spawnEpsilon = 1e-9

// SpawnTimer fires once every interval seconds of accumulated time.
type SpawnTimer struct {
	interval float64
	elapsed  float64
}

// NewSpawnTimer creates a timer with the given interval in seconds.
func NewSpawnTimer(interval float64) *SpawnTimer {
	return &SpawnTimer{interval: interval}
}

// Tick adds dt and reports whether the timer fired. At most one spawn
// happens per tick; the time past the interval is kept, so the spawn rate
// does not depend on the frame rate.
func (t *SpawnTimer) Tick(dt float64) bool {
	t.elapsed += dt
	if t.elapsed < t.interval-spawnEpsilon {
		return false
	}

	t.elapsed = math.Max(t.elapsed-t.interval, 0)
	if t.elapsed >= t.interval {
		t.elapsed = math.Mod(t.elapsed, t.interval)
	}
	return true
}

// SetInterval changes the interval without touching the accumulated time.
func (t *SpawnTimer) SetInterval(interval float64) {
	t.interval = interval
}

// Interval returns the current interval in seconds.
func (t *SpawnTimer) Interval() float64 {
	return t.interval
}

// EnemySpec describes the random range enemies are drawn from.
type EnemySpec struct {
	W, H     float64
	MinSpeed float64 // Must be > 0
	MaxSpeed float64
}

// FriendSpec describes the random range friends are drawn from.
type FriendSpec struct {
	W, H        float64
	MinSpeed    float64
	MaxSpeed    float64
	AngularRate float64
	Amplitude   float64
}

// Spawner creates enemies and friends with randomized initial state.
type Spawner struct {
	rng     *rand.Rand
	surface Surface
	enemy   EnemySpec
	friend  FriendSpec
}

// NewSpawner creates a spawner drawing from rng.
func NewSpawner(rng *rand.Rand, surface Surface, enemy EnemySpec, friend FriendSpec) *Spawner {
	return &Spawner{
		rng:     rng,
		surface: surface,
		enemy:   enemy,
		friend:  friend,
	}
}

// SpawnEnemy creates an enemy at a random height aimed at targetY.
func (s *Spawner) SpawnEnemy(targetY float64) (*Enemy, error) {
	y := s.uniform(0, s.surface.Height-s.enemy.H)
	speed := s.uniform(s.enemy.MinSpeed, s.enemy.MaxSpeed)
	return NewEnemy(s.surface, s.enemy.W, s.enemy.H, y, speed, targetY)
}

// SpawnFriend creates a friend at a random height.
func (s *Spawner) SpawnFriend() *Friend {
	y := s.uniform(0, s.surface.Height-s.friend.H)
	speed := s.uniform(s.friend.MinSpeed, s.friend.MaxSpeed)
	return NewFriend(s.surface, s.friend.W, s.friend.H, y, speed, s.friend.AngularRate, s.friend.Amplitude)
}

// uniform returns a value in [lo, hi), or lo when the range is empty.
func (s *Spawner) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}
