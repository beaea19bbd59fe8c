package viz

import (
	"math"
	"strings"

	"github.com/san-kum/kinesim/internal/vmath"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// PixelWidth and PixelHeight give the canvas size in sub-pixels.
func (c *Canvas) PixelWidth() int  { return c.Width * 2 }
func (c *Canvas) PixelHeight() int { return c.Height * 4 }

// Set lights the sub-pixel (x, y). Out of range coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) DrawPolyline(view Viewport, points []vmath.Vec2) {
	for i := 1; i < len(points); i++ {
		x0, y0 := view.Pixel(c, points[i-1])
		x1, y1 := view.Pixel(c, points[i])
		c.DrawLine(x0, y0, x1, y1)
	}
	if len(points) == 1 {
		c.Set(view.Pixel(c, points[0]))
	}
}

// DrawRect outlines the world-space box centred on center.
func (c *Canvas) DrawRect(view Viewport, center, size vmath.Vec2) {
	half := size.Scale(0.5)
	x0, y0 := view.Pixel(c, center.Sub(half))
	x1, y1 := view.Pixel(c, center.Add(half))
	c.DrawLine(x0, y0, x1, y0)
	c.DrawLine(x1, y0, x1, y1)
	c.DrawLine(x1, y1, x0, y1)
	c.DrawLine(x0, y1, x0, y0)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Viewport is the world-space rectangle mapped onto a canvas.
type Viewport struct {
	Min, Max vmath.Vec2
}

// FitViewport bounds points with a relative margin. Degenerate extents
// get a unit span.
func FitViewport(points []vmath.Vec2, margin float64) Viewport {
	if len(points) == 0 {
		return Viewport{Min: vmath.V(-1, -1), Max: vmath.V(1, 1)}
	}
	v := Viewport{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		v = v.Extend(p)
	}
	span := v.Max.Sub(v.Min)
	if span.X == 0 {
		span.X = 1
	}
	if span.Y == 0 {
		span.Y = 1
	}
	pad := span.Scale(margin)
	return Viewport{Min: v.Min.Sub(pad), Max: v.Max.Add(pad)}
}

// Extend grows the viewport to contain p. Non-finite points are ignored.
func (v Viewport) Extend(p vmath.Vec2) Viewport {
	if !p.IsFinite() {
		return v
	}
	v.Min = vmath.V(math.Min(v.Min.X, p.X), math.Min(v.Min.Y, p.Y))
	v.Max = vmath.V(math.Max(v.Max.X, p.X), math.Max(v.Max.Y, p.Y))
	return v
}

func (v Viewport) Contains(p vmath.Vec2) bool {
	return p.X >= v.Min.X && p.X <= v.Max.X && p.Y >= v.Min.Y && p.Y <= v.Max.Y
}

// Pixel maps a world point to canvas sub-pixels with y pointing up.
func (v Viewport) Pixel(c *Canvas, p vmath.Vec2) (int, int) {
	span := v.Max.Sub(v.Min)
	if span.X == 0 {
		span.X = 1
	}
	if span.Y == 0 {
		span.Y = 1
	}
	fx := (p.X - v.Min.X) / span.X
	fy := (p.Y - v.Min.Y) / span.Y
	x := int(math.Round(fx * float64(c.PixelWidth()-1)))
	y := int(math.Round((1 - fy) * float64(c.PixelHeight()-1)))
	return x, y
}
