package object

import "math"

// Friend is a drifting plank. Touching it grants an extra life.
type Friend struct {
	Entity
	VX          float64 // Horizontal speed, positive, moves left
	Angle       float64 // Phase of the vertical bobbing
	AngularRate float64 // Phase increase, rad/s
	Amplitude   float64 // Vertical offset per advance at peak phase
}

// NewFriend creates a friend at the right edge of the surface at height y.
func NewFriend(surface Surface, w, h, y, hspeed, angularRate, amplitude float64) *Friend {
	return &Friend{
		Entity:      Entity{X: surface.Width, Y: y, W: w, H: h},
		VX:          hspeed,
		AngularRate: angularRate,
		Amplitude:   amplitude,
	}
}

// Advance moves the friend along its wavy path and marks it for removal
// once it leaves the surface.
func (f *Friend) Advance(dt float64) {
	f.X -= f.VX * dt
	f.Angle += f.AngularRate * dt
	f.Y += math.Sin(f.Angle) * f.Amplitude

	if f.offScreen() {
		f.MarkDestroyed()
	}
}
