package object

import (
	"github.com/tomz197/barco/internal/input"
	"github.com/tomz197/barco/internal/physics"
)

// Player is the vessel steered by the user. It only moves vertically.
type Player struct {
	Entity
	VY    float64 // Vertical velocity, px/s
	Speed float64 // Fixed vertical speed while a key is held

	surface Surface
}

// NewPlayer creates a player at (x, y) inside the given surface.
func NewPlayer(x, y, w, h, speed float64, surface Surface) *Player {
	p := &Player{
		Entity:  Entity{X: x, Y: y, W: w, H: h},
		Speed:   speed,
		surface: surface,
	}
	p.Y = physics.Clamp(p.Y, 0, surface.Height-p.H)
	return p
}

// Advance sets the velocity from the held keys and moves the player,
// keeping it inside [0, surfaceHeight-h]. Up takes precedence over Down.
func (p *Player) Advance(keys input.Held, dt float64) {
	switch {
	case keys != nil && keys.Held(input.KeyUp):
		p.VY = -p.Speed
	case keys != nil && keys.Held(input.KeyDown):
		p.VY = p.Speed
	default:
		p.VY = 0
	}

	p.Y += p.VY * dt

	// Clamp position only; the velocity keeps reflecting the input.
	p.Y = physics.Clamp(p.Y, 0, p.surface.Height-p.H)
}
