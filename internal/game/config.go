package game

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid game config")

// PlayerConfig places and sizes the player.
type PlayerConfig struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	W     float64 `yaml:"w"`
	H     float64 `yaml:"h"`
	Speed float64 `yaml:"speed"` // px/s
}

// EnemyConfig controls enemy size, speed range and spawn cadence.
type EnemyConfig struct {
	W            float64 `yaml:"w"`
	H            float64 `yaml:"h"`
	MinSpeed     float64 `yaml:"min_speed"`     // px/s, must be > 0
	MaxSpeed     float64 `yaml:"max_speed"`     // px/s, exclusive
	Interval     float64 `yaml:"interval"`      // Seconds between spawns at level 1
	IntervalStep float64 `yaml:"interval_step"` // Seconds removed per level
	MinInterval  float64 `yaml:"min_interval"`  // Floor for the spawn interval
}

// FriendConfig controls friend size, motion and spawn cadence.
type FriendConfig struct {
	W           float64 `yaml:"w"`
	H           float64 `yaml:"h"`
	MinSpeed    float64 `yaml:"min_speed"`
	MaxSpeed    float64 `yaml:"max_speed"`
	AngularRate float64 `yaml:"angular_rate"` // rad/s
	Amplitude   float64 `yaml:"amplitude"`    // px per advance
	Interval    float64 `yaml:"interval"`     // Seconds between spawns
}

// Config holds every tunable of a session.
type Config struct {
	Width          float64      `yaml:"width"`
	Height         float64      `yaml:"height"`
	Player         PlayerConfig `yaml:"player"`
	Enemy          EnemyConfig  `yaml:"enemy"`
	Friend         FriendConfig `yaml:"friend"`
	StartingLives  int          `yaml:"starting_lives"`
	PointsPerEnemy int          `yaml:"points_per_enemy"`
	LevelDuration  float64      `yaml:"level_duration"` // Seconds per level
	Seed           int64        `yaml:"seed"`           // 0 seeds from the clock
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Width:  800,
		Height: 480,
		Player: PlayerConfig{X: 80, Y: 200, W: 60, H: 60, Speed: 300},
		Enemy: EnemyConfig{
			W: 30, H: 30,
			MinSpeed: 100, MaxSpeed: 250,
			Interval: 2, IntervalStep: 0.2, MinInterval: 0.5,
		},
		Friend: FriendConfig{
			W: 30, H: 30,
			MinSpeed: 80, MaxSpeed: 160,
			AngularRate: 5, Amplitude: 2,
			Interval: 4,
		},
		StartingLives:  3,
		PointsPerEnemy: 10,
		LevelDuration:  25,
	}
}

// EnemyInterval returns the enemy spawn interval for a level.
// Level 1 uses the base interval; later levels shrink it by IntervalStep
// per level, never below MinInterval.
func (c Config) EnemyInterval(level int) float64 {
	if level <= 1 {
		return c.Enemy.Interval
	}
	return math.Max(c.Enemy.MinInterval, c.Enemy.Interval-float64(level)*c.Enemy.IntervalStep)
}

// Validate reports the first problem that would make a session misbehave.
func (c Config) Validate() error {
	floats := []struct {
		v    float64
		name string
	}{
		{c.Width, "width"},
		{c.Height, "height"},
		{c.Player.X, "player.x"},
		{c.Player.Y, "player.y"},
		{c.Player.W, "player.w"},
		{c.Player.H, "player.h"},
		{c.Player.Speed, "player.speed"},
		{c.Enemy.W, "enemy.w"},
		{c.Enemy.H, "enemy.h"},
		{c.Enemy.MinSpeed, "enemy.min_speed"},
		{c.Enemy.MaxSpeed, "enemy.max_speed"},
		{c.Enemy.Interval, "enemy.interval"},
		{c.Enemy.IntervalStep, "enemy.interval_step"},
		{c.Enemy.MinInterval, "enemy.min_interval"},
		{c.Friend.W, "friend.w"},
		{c.Friend.H, "friend.h"},
		{c.Friend.MinSpeed, "friend.min_speed"},
		{c.Friend.MaxSpeed, "friend.max_speed"},
		{c.Friend.AngularRate, "friend.angular_rate"},
		{c.Friend.Amplitude, "friend.amplitude"},
		{c.Friend.Interval, "friend.interval"},
		{c.LevelDuration, "level_duration"},
	}
	for _, f := range floats {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidConfig, f.name)
		}
	}

	checks := []struct {
		ok   bool
		what string
	}{
		{c.Width > 0 && c.Height > 0, "surface must have positive size"},
		{c.Player.W > 0 && c.Player.H > 0, "player must have positive size"},
		{c.Player.H <= c.Height, "player taller than surface"},
		{c.Player.Speed >= 0, "player speed must not be negative"},
		{c.Enemy.W > 0 && c.Enemy.H > 0, "enemy must have positive size"},
		{c.Enemy.H <= c.Height, "enemy taller than surface"},
		{c.Enemy.MinSpeed > 0, "enemy min_speed must be positive"},
		{c.Enemy.MaxSpeed >= c.Enemy.MinSpeed, "enemy max_speed below min_speed"},
		{c.Enemy.Interval > 0, "enemy interval must be positive"},
		{c.Enemy.MinInterval > 0, "enemy min_interval must be positive"},
		{c.Enemy.IntervalStep >= 0, "enemy interval_step must not be negative"},
		{c.Friend.W > 0 && c.Friend.H > 0, "friend must have positive size"},
		{c.Friend.H <= c.Height, "friend taller than surface"},
		{c.Friend.MinSpeed > 0, "friend min_speed must be positive"},
		{c.Friend.MaxSpeed >= c.Friend.MinSpeed, "friend max_speed below min_speed"},
		{c.Friend.Interval > 0, "friend interval must be positive"},
		{c.StartingLives > 0, "starting_lives must be positive"},
		{c.PointsPerEnemy >= 0, "points_per_enemy must not be negative"},
		{c.LevelDuration > 0, "level_duration must be positive"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", ErrInvalidConfig, chk.what)
		}
	}
	return nil
}
