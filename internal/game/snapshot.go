package game

import "github.com/tomz197/barco/internal/physics"

// Snapshot is a read-only copy of what a renderer needs. It shares no
// memory with the session, so it may be kept across updates.
type Snapshot struct {
	ID     string
	Width  float64
	Height float64

	Player  physics.Rect
	Enemies []physics.Rect
	Friends []physics.Rect

	Score int
	Lives int
	Level int
	State State
	Stats Stats

	LevelElapsed  float64
	LevelDuration float64
	PlayTime      float64
}

// GameOver reports whether the snapshot was taken after the game ended.
func (s Snapshot) GameOver() bool {
	return s.State == GameOver
}

// Snapshot copies the current session state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		ID:            s.id,
		Width:         s.cfg.Width,
		Height:        s.cfg.Height,
		Player:        s.player.Rect(),
		Enemies:       make([]physics.Rect, 0, len(s.enemies)),
		Friends:       make([]physics.Rect, 0, len(s.friends)),
		Score:         s.score,
		Lives:         s.lives,
		Level:         s.level,
		State:         s.state,
		Stats:         s.stats,
		LevelElapsed:  s.elapsed,
		LevelDuration: s.cfg.LevelDuration,
		PlayTime:      s.playTime,
	}
	for _, e := range s.enemies {
		if !e.IsDestroyed() {
			snap.Enemies = append(snap.Enemies, e.Rect())
		}
	}
	for _, f := range s.friends {
		if !f.IsDestroyed() {
			snap.Friends = append(snap.Friends, f.Rect())
		}
	}
	return snap
}
