package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/barco/internal/physics"
)

func TestDrawRectScalesLogicalCoordinates(t *testing.T) {
	// 80x24 terminal showing an 800x480 surface: 10 logical px per column,
	// 10 logical px per sub-pixel row.
	c := NewScaledCanvas(80, 24, 800, 480)

	c.DrawRect(physics.Rect{X: 100, Y: 50, W: 30, H: 20}, ColorRed)

	for y := 0; y < 48; y++ {
		for x := 0; x < 80; x++ {
			want := x >= 10 && x < 13 && y >= 5 && y < 7
			assert.Equal(t, want, c.pixel(x, y) == ColorRed, "pixel (%d,%d)", x, y)
		}
	}
}

func TestDrawRectCoversAtLeastOnePixel(t *testing.T) {
	c := NewScaledCanvas(10, 5, 1000, 1000)
	c.DrawRect(physics.Rect{X: 500, Y: 500, W: 1, H: 1}, ColorGreen)
	assert.Equal(t, ColorGreen, c.pixel(5, 5))
}

func TestDrawRectClipsToCanvas(t *testing.T) {
	c := NewCanvas(4, 2)
	assert.NotPanics(t, func() {
		c.DrawRect(physics.Rect{X: -10, Y: -10, W: 100, H: 100}, ColorWhite)
	})
	for _, p := range c.pixels {
		assert.Equal(t, ColorWhite, p)
	}
}

func TestDrawPolygonFilled(t *testing.T) {
	c := NewCanvas(20, 10)
	c.DrawPolygon([]Point{{X: 2, Y: 2}, {X: 12, Y: 2}, {X: 12, Y: 12}, {X: 2, Y: 12}}, true, ColorCyan)

	assert.Equal(t, ColorCyan, c.pixel(7, 7), "interior")
	assert.Equal(t, ColorCyan, c.pixel(2, 2), "corner")
	assert.Equal(t, ColorNone, c.pixel(15, 15))
}

func TestDrawPolygonNeedsThreePoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawPolygon([]Point{{X: 1, Y: 1}, {X: 5, Y: 5}}, true, ColorCyan)
	for _, p := range c.pixels {
		assert.Equal(t, ColorNone, p)
	}
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		name   string
		cell   cell
		ch     rune
		fg, bg Color
	}{
		{"empty", cell{}, BlockEmpty, ColorNone, ColorNone},
		{"full", cell{ColorRed, ColorRed}, BlockFull, ColorRed, ColorNone},
		{"top", cell{ColorRed, ColorNone}, BlockUpperHalf, ColorRed, ColorNone},
		{"bottom", cell{ColorNone, ColorGreen}, BlockLowerHalf, ColorGreen, ColorNone},
		{"mixed", cell{ColorRed, ColorGreen}, BlockUpperHalf, ColorRed, ColorGreen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch, fg, bg := glyph(tt.cell)
			assert.Equal(t, tt.ch, ch)
			assert.Equal(t, tt.fg, fg)
			assert.Equal(t, tt.bg, bg)
		})
	}
}

func TestRenderOnlyEmitsChanges(t *testing.T) {
	c := NewCanvas(4, 2)
	var out bytes.Buffer

	// The first frame paints everything.
	c.Render(&out)
	assert.Equal(t, 8, strings.Count(out.String(), " "))

	out.Reset()
	c.Render(&out)
	assert.Empty(t, out.String(), "nothing changed")

	c.DrawRect(physics.Rect{X: 0, Y: 0, W: 1, H: 2}, ColorYellow)
	out.Reset()
	c.Render(&out)
	assert.Contains(t, out.String(), "\033[1;1H"+string(BlockFull))
	assert.Equal(t, 1, strings.Count(out.String(), string(BlockFull)))

	c.Clear()
	out.Reset()
	c.Render(&out)
	assert.Contains(t, out.String(), "\033[1;1H ", "erased cell is repainted blank")
}

func TestRenderRepaintsDirtyText(t *testing.T) {
	c := NewCanvas(10, 3)
	var out bytes.Buffer
	c.Render(&out)

	c.MarkTextDirty(3, 2, 2)
	out.Reset()
	c.Render(&out)
	assert.Contains(t, out.String(), "\033[2;3H  ")
	assert.Equal(t, 2, strings.Count(out.String(), " "))

	// Out-of-range marks are ignored.
	assert.NotPanics(t, func() {
		c.MarkTextDirty(-5, 1, 3)
		c.MarkTextDirty(1, 99, 3)
	})
}

func TestForceRedrawAndOffset(t *testing.T) {
	c := NewCanvas(2, 1)
	var out bytes.Buffer
	c.Render(&out)

	c.SetOffset(5, 3)
	out.Reset()
	c.Render(&out)
	assert.Contains(t, out.String(), "\033[4;6H", "offset move forces a full redraw")

	c.ForceRedraw()
	out.Reset()
	c.Render(&out)
	assert.Equal(t, 2, strings.Count(out.String(), " "))
}

func TestResize(t *testing.T) {
	c := NewScaledCanvas(10, 5, 100, 100)
	c.Resize(20, 10)

	assert.Equal(t, 20, c.TerminalWidth())
	assert.Equal(t, 10, c.TerminalHeight())
	assert.Len(t, c.pixels, 20*20)
	assert.InDelta(t, 0.2, c.scaleX, 1e-9)
	assert.InDelta(t, 0.2, c.scaleY, 1e-9)
}

func TestZeroSizeCanvas(t *testing.T) {
	c := NewScaledCanvas(0, 0, 800, 480)
	require.True(t, c.Empty())

	var out bytes.Buffer
	assert.NotPanics(t, func() {
		c.DrawRect(physics.Rect{X: 10, Y: 10, W: 10, H: 10}, ColorRed)
		c.DrawPolygon([]Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}, true, ColorRed)
		c.Render(&out)
	})
	assert.Empty(t, out.String())
}

func TestRenderBorder(t *testing.T) {
	c := NewCanvas(3, 2)
	var out bytes.Buffer

	c.RenderBorder(&out)
	assert.Empty(t, out.String(), "no border without an offset")

	c.SetOffset(2, 2)
	c.RenderBorder(&out)
	assert.Contains(t, out.String(), "┌───┐")
	assert.Contains(t, out.String(), "└───┘")
	assert.Equal(t, 4, strings.Count(out.String(), "│"))
}

func TestChunkWriter(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)

	cw.WriteAt(1, 1, "hi")
	cw.WriteColored(3, 2, ColorRed, "x")
	assert.Positive(t, cw.Len())
	assert.Empty(t, out.String(), "nothing is written before Flush")

	require.NoError(t, cw.Flush())
	assert.Equal(t, "\033[2;3Hhi\033[3;5H\033[0;91;49mx"+ColorReset, out.String())
	assert.Zero(t, cw.Len())
}

func TestChunkWriterFlushesLargeFrames(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	big := strings.Repeat("a", maxChunkSize*3+7)
	cw.WriteString(big)

	require.NoError(t, cw.Flush())
	assert.Equal(t, big, out.String())
}
