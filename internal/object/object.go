// Package object defines the movable entities of a game session and the
// rules that move, spawn and retire them.
package object

import "github.com/tomz197/barco/internal/physics"

// Surface is the playable area. It is fixed for the lifetime of a session.
type Surface struct {
	Width  float64
	Height float64
}

// Destructible is implemented by objects that can be marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on the next purge.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for removal.
	IsDestroyed() bool
}

// Entity is a movable rectangle. Position is the top-left corner.
type Entity struct {
	X, Y      float64
	W, H      float64
	Destroyed bool
}

// Rect returns the entity's bounding box.
func (e *Entity) Rect() physics.Rect {
	return physics.Rect{X: e.X, Y: e.Y, W: e.W, H: e.H}
}

// MarkDestroyed marks the entity for removal (implements Destructible).
func (e *Entity) MarkDestroyed() {
	e.Destroyed = true
}

// IsDestroyed returns true if the entity is marked for removal (implements Destructible).
func (e *Entity) IsDestroyed() bool {
	return e.Destroyed
}

// offScreen reports whether the entity has fully left through the left edge.
func (e *Entity) offScreen() bool {
	return e.X+e.W < 0
}

// Purge removes destroyed entries in place, reusing the backing array.
func Purge[T Destructible](items []T) []T {
	kept := items[:0]
	for _, it := range items {
		if !it.IsDestroyed() {
			kept = append(kept, it)
		}
	}
	// Drop references held past the new length.
	var zero T
	for i := len(kept); i < len(items); i++ {
		items[i] = zero
	}
	return kept
}
