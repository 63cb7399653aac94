package object

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateAim is returned when an enemy's interception velocity
// cannot be computed (zero horizontal speed or a non-finite result).
var ErrDegenerateAim = errors.New("degenerate enemy aim")

// Enemy is a cannonball fired from the right edge towards the player.
type Enemy struct {
	Entity
	VX float64 // Horizontal speed, positive, moves left
	VY float64 // Vertical speed, fixed at creation

	hit    bool
	exited bool
}

// NewEnemy creates an enemy at the right edge of the surface at height y,
// aimed to cross the left edge at targetY. The aim is a one-shot
// prediction and is never recomputed.
func NewEnemy(surface Surface, w, h, y, hspeed, targetY float64) (*Enemy, error) {
	if !(hspeed > 0) {
		return nil, fmt.Errorf("%w: horizontal speed %v", ErrDegenerateAim, hspeed)
	}

	x := surface.Width
	timeToCross := x / hspeed
	vy := (targetY - y) / timeToCross
	if math.IsNaN(vy) || math.IsInf(vy, 0) {
		return nil, fmt.Errorf("%w: vertical speed %v (x=%v, hspeed=%v)", ErrDegenerateAim, vy, x, hspeed)
	}

	return &Enemy{
		Entity: Entity{X: x, Y: y, W: w, H: h},
		VX:     hspeed,
		VY:     vy,
	}, nil
}

// Advance moves the enemy and marks it for removal once it leaves the surface.
func (e *Enemy) Advance(dt float64) {
	e.X -= e.VX * dt
	e.Y += e.VY * dt

	if e.offScreen() {
		e.exited = true
		e.MarkDestroyed()
	}
}

// MarkHit records a collision with the player and marks the enemy for removal.
func (e *Enemy) MarkHit() {
	e.hit = true
	e.MarkDestroyed()
}

// Exited reports whether the enemy left the surface without hitting the player.
func (e *Enemy) Exited() bool {
	return e.exited && !e.hit
}
