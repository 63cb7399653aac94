// Package game implements a single playthrough: entity ownership, the
// per-frame update, level progression and score/lives bookkeeping.
package game

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tomz197/barco/internal/input"
	"github.com/tomz197/barco/internal/object"
	"github.com/tomz197/barco/internal/physics"
)

// levelEpsilon absorbs rounding when many small frame deltas add up to
// exactly one level duration.
const levelEpsilon = 1e-9

// State is the phase of a session.
type State int

const (
	Active   State = iota // Entities move, timers run
	GameOver              // Terminal; nothing changes anymore
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case GameOver:
		return "game_over"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Stats counts notable events of a session.
type Stats struct {
	EnemiesDodged    int
	EnemiesHit       int
	FriendsCollected int
}

// Session owns every entity and counter of one playthrough.
// It is not safe for concurrent use; a frame driver calls Update and
// Snapshot from a single goroutine.
type Session struct {
	id   string
	cfg  Config
	keys input.Held
	log  *zap.Logger
	rng  *rand.Rand

	spawner     *object.Spawner
	enemyTimer  *object.SpawnTimer
	friendTimer *object.SpawnTimer

	player  *object.Player
	enemies []*object.Enemy
	friends []*object.Friend

	score    int
	lives    int
	level    int
	elapsed  float64 // Time spent in the current level
	playTime float64 // Total simulated time
	state    State
	stats    Stats
}

// Option customizes a new Session.
type Option func(*Session)

// WithRand sets the random source used for spawns.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithLogger sets the logger for session events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// New creates a session in the Active state. keys is read once per
// Update to steer the player; it may be nil for a player that never moves.
func New(cfg Config, keys input.Held, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:   cfg,
		keys:  keys,
		lives: cfg.StartingLives,
		level: 1,
		state: Active,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	s.log = s.log.With(zap.String("session_id", s.id))
	if s.rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}

	surface := object.Surface{Width: cfg.Width, Height: cfg.Height}
	s.spawner = object.NewSpawner(s.rng, surface,
		object.EnemySpec{
			W: cfg.Enemy.W, H: cfg.Enemy.H,
			MinSpeed: cfg.Enemy.MinSpeed, MaxSpeed: cfg.Enemy.MaxSpeed,
		},
		object.FriendSpec{
			W: cfg.Friend.W, H: cfg.Friend.H,
			MinSpeed: cfg.Friend.MinSpeed, MaxSpeed: cfg.Friend.MaxSpeed,
			AngularRate: cfg.Friend.AngularRate, Amplitude: cfg.Friend.Amplitude,
		},
	)
	s.enemyTimer = object.NewSpawnTimer(cfg.EnemyInterval(1))
	s.friendTimer = object.NewSpawnTimer(cfg.Friend.Interval)
	s.player = object.NewPlayer(cfg.Player.X, cfg.Player.Y, cfg.Player.W, cfg.Player.H, cfg.Player.Speed, surface)

	s.log.Debug("session created", zap.Int("lives", s.lives))
	return s, nil
}

// Update advances the session by dt seconds. Nothing happens once the
// session is over, and a negative or non-finite dt skips the frame.
// A dt spanning several level durations levels up once per duration and
// carries the remainder into the new level.
// An error is returned only if an enemy could not be aimed, which a
// validated Config rules out.
func (s *Session) Update(dt float64) error {
	if s.state != Active {
		return nil
	}
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		s.log.Warn("skipping frame with invalid delta", zap.Float64("dt", dt))
		return nil
	}

	s.playTime += dt
	s.elapsed += dt
	for s.elapsed >= s.cfg.LevelDuration-levelEpsilon {
		s.elapsed = math.Max(s.elapsed-s.cfg.LevelDuration, 0)
		s.levelUp()
	}

	s.player.Advance(s.keys, dt)

	if err := s.updateEnemies(dt); err != nil {
		return err
	}
	if s.state != Active {
		return nil
	}

	s.updateFriends(dt)
	return nil
}

// levelUp moves to the next level and speeds up enemy spawns.
func (s *Session) levelUp() {
	s.level++
	s.enemyTimer.SetInterval(s.cfg.EnemyInterval(s.level))

	s.log.Info("level up",
		zap.Int("level", s.level),
		zap.Float64("enemy_interval", s.enemyTimer.Interval()),
	)
}

// updateEnemies spawns, moves and resolves enemies. All enemies are advanced
// before the collection is purged, so none is skipped.
func (s *Session) updateEnemies(dt float64) error {
	if s.enemyTimer.Tick(dt) {
		e, err := s.spawner.SpawnEnemy(s.player.Y)
		if err != nil {
			return fmt.Errorf("spawn enemy: %w", err)
		}
		s.enemies = append(s.enemies, e)
	}

	playerRect := s.player.Rect()
	for _, e := range s.enemies {
		e.Advance(dt)

		if physics.Overlaps(playerRect, e.Rect()) {
			e.MarkHit()
			s.stats.EnemiesHit++
			s.lives--
			s.log.Debug("life lost", zap.Int("lives", s.lives))
			if s.lives <= 0 {
				s.endGame()
				break
			}
			continue
		}

		if e.Exited() {
			s.score += s.cfg.PointsPerEnemy * s.level
			s.stats.EnemiesDodged++
		}
	}
	s.enemies = object.Purge(s.enemies)
	return nil
}

// updateFriends spawns, moves and resolves friends.
func (s *Session) updateFriends(dt float64) {
	if s.friendTimer.Tick(dt) {
		s.friends = append(s.friends, s.spawner.SpawnFriend())
	}

	playerRect := s.player.Rect()
	for _, f := range s.friends {
		f.Advance(dt)

		if physics.Overlaps(playerRect, f.Rect()) {
			f.MarkDestroyed()
			s.lives++
			s.stats.FriendsCollected++
			s.log.Debug("life gained", zap.Int("lives", s.lives))
		}
	}
	s.friends = object.Purge(s.friends)
}

func (s *Session) endGame() {
	s.state = GameOver
	s.log.Info("game over",
		zap.Int("score", s.score),
		zap.Int("level", s.level),
		zap.Float64("play_time", s.playTime),
	)
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Score returns the accumulated score.
func (s *Session) Score() int { return s.score }

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// Level returns the current level, starting at 1.
func (s *Session) Level() int { return s.level }

// Config returns the configuration the session was created with.
func (s *Session) Config() Config { return s.cfg }
