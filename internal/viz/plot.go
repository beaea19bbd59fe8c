package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/kinesim/internal/vmath"
)

// MonotonicX reports whether x never decreases along the polyline.
func MonotonicX(points []vmath.Vec2) bool {
	for i := 1; i < len(points); i++ {
		if points[i].X < points[i-1].X {
			return false
		}
	}
	return true
}

// Resample returns n values of the polyline at evenly spaced x, linearly
// interpolated between stored vertices. points must be monotonic in x.
func Resample(points []vmath.Vec2, n int) []float64 {
	if len(points) == 0 || n <= 0 {
		return nil
	}
	out := make([]float64, n)
	x0, x1 := points[0].X, points[len(points)-1].X
	if n == 1 || x1 == x0 {
		for i := range out {
			out[i] = points[len(points)-1].Y
		}
		return out
	}

	j := 0
	for i := range out {
		x := x0 + (x1-x0)*float64(i)/float64(n-1)
		for j < len(points)-2 && points[j+1].X <= x {
			j++
		}
		a, b := points[j], points[j+1]
		if b.X == a.X {
			out[i] = b.Y
			continue
		}
		t := (x - a.X) / (b.X - a.X)
		out[i] = a.Y + (b.Y-a.Y)*t
	}
	return out
}

// Plot renders a graph polyline. Functions of x go through asciigraph;
// curves that double back, such as trajectories, are drawn on a braille
// canvas instead.
func Plot(title string, points []vmath.Vec2, width, height int) string {
	if len(points) == 0 {
		return title + "\n(no data)"
	}
	if MonotonicX(points) {
		return asciigraph.Plot(Resample(points, width),
			asciigraph.Height(height),
			asciigraph.Caption(title),
			asciigraph.Precision(2),
		)
	}

	c := NewCanvas(width/2, height/2+1)
	c.DrawPolyline(FitViewport(points, 0.05), points)
	var b strings.Builder
	b.WriteString(c.String())
	b.WriteString(" " + title)
	return b.String()
}
