package client

import (
	"math"

	"github.com/tomz197/barco/internal/draw"
	"github.com/tomz197/barco/internal/game"
	"github.com/tomz197/barco/internal/physics"
)

// drawSnapshot rasterizes every entity of snap onto the canvas.
func drawSnapshot(c *draw.Canvas, snap game.Snapshot) {
	for _, r := range snap.Friends {
		drawRing(c, r)
	}
	for _, r := range snap.Enemies {
		drawCannonball(c, r)
	}
	drawBoat(c, snap.Player)
}

// drawBoat draws a hull with a sail inside r.
func drawBoat(c *draw.Canvas, r physics.Rect) {
	deck := r.Y + r.H*0.55

	hull := c.BorrowPoints(4)
	hull[0] = draw.Point{X: r.X, Y: deck}
	hull[1] = draw.Point{X: r.Right(), Y: deck}
	hull[2] = draw.Point{X: r.X + r.W*0.8, Y: r.Bottom()}
	hull[3] = draw.Point{X: r.X + r.W*0.2, Y: r.Bottom()}
	c.DrawPolygon(hull, true, draw.ColorYellow)

	mastX := r.X + r.W*0.45
	c.DrawLine(draw.Point{X: mastX, Y: r.Y}, draw.Point{X: mastX, Y: deck}, draw.ColorWhite)

	sail := c.BorrowPoints(3)
	sail[0] = draw.Point{X: mastX + r.W*0.05, Y: r.Y}
	sail[1] = draw.Point{X: mastX + r.W*0.05, Y: deck - r.H*0.08}
	sail[2] = draw.Point{X: r.X + r.W*0.95, Y: deck - r.H*0.08}
	c.DrawPolygon(sail, true, draw.ColorWhite)
}

// drawCannonball draws a filled octagon inscribed in r.
func drawCannonball(c *draw.Canvas, r physics.Rect) {
	const sides = 8
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	pts := c.BorrowPoints(sides)
	for i := range pts {
		a := (float64(i) + 0.5) * 2 * math.Pi / sides
		pts[i] = draw.Point{X: cx + math.Cos(a)*r.W/2, Y: cy + math.Sin(a)*r.H/2}
	}
	c.DrawPolygon(pts, true, draw.ColorRed)
}

// drawRing draws a life ring as a diamond outline inside r.
func drawRing(c *draw.Canvas, r physics.Rect) {
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	pts := c.BorrowPoints(4)
	pts[0] = draw.Point{X: cx, Y: r.Y}
	pts[1] = draw.Point{X: r.Right(), Y: cy}
	pts[2] = draw.Point{X: cx, Y: r.Bottom()}
	pts[3] = draw.Point{X: r.X, Y: cy}
	c.DrawPolygon(pts, false, draw.ColorGreen)
	// Fill a core so tiny rings stay visible
	c.DrawRect(physics.Rect{X: cx - r.W/6, Y: cy - r.H/6, W: r.W / 3, H: r.H / 3}, draw.ColorGreen)
}
