package graph

import (
	"fmt"
	"math"

	"github.com/san-kum/kinesim/internal/vmath"
)

// CollinearEpsilon bounds the determinant below which three points count as
// collinear.
const CollinearEpsilon = 1e-5

type Graph struct {
	sourceX, sourceY Source
	targetX, targetY string
	pointSize        float64

	points []vmath.Vec2
	err    error
}

// New builds a graph and takes the first sample. It fails when either target
// cannot be read.
func New(sourceX Source, targetX string, sourceY Source, targetY string, pointSize float64) (*Graph, error) {
	g := &Graph{
		sourceX:   sourceX,
		sourceY:   sourceY,
		targetX:   targetX,
		targetY:   targetY,
		pointSize: pointSize,
	}
	g.Simulate(0)
	if g.err != nil {
		return nil, g.err
	}
	return g, nil
}

// Simulate samples both sources. step is unused: the graph reads whatever
// the current instant is.
func (g *Graph) Simulate(step float64) {
	p, err := g.sample()
	if err != nil {
		g.err = err
		return
	}
	g.push(p)
}

func (g *Graph) Reset() {
	g.points = g.points[:0]
	g.err = nil
	g.Simulate(0)
}

func (g *Graph) sample() (vmath.Vec2, error) {
	x, err := g.sourceX.Value(g.targetX)
	if err != nil {
		return vmath.Zero, fmt.Errorf("x axis: %w", err)
	}
	y, err := g.sourceY.Value(g.targetY)
	if err != nil {
		return vmath.Zero, fmt.Errorf("y axis: %w", err)
	}
	return vmath.V(x, y), nil
}

// push appends p, first dropping trailing points that lie on the segment
// towards p. Repeating the check after a drop keeps every adjacent triple of
// the stored polyline non-collinear.
func (g *Graph) push(p vmath.Vec2) {
	for n := len(g.points); n > 1; n = len(g.points) {
		if math.Abs(vmath.Determinant(g.points[n-2], g.points[n-1], p)) >= CollinearEpsilon {
			break
		}
		g.points = g.points[:n-1]
	}
	g.points = append(g.points, p)
}

func (g *Graph) Points() []vmath.Vec2 {
	out := make([]vmath.Vec2, len(g.points))
	copy(out, g.points)
	return out
}

func (g *Graph) Last() (vmath.Vec2, bool) {
	if len(g.points) == 0 {
		return vmath.Zero, false
	}
	return g.points[len(g.points)-1], true
}

// Err returns the last sampling failure since the previous reset.
func (g *Graph) Err() error { return g.err }

func (g *Graph) PointSize() float64 { return g.pointSize }
func (g *Graph) SourceX() Source    { return g.sourceX }
func (g *Graph) SourceY() Source    { return g.sourceY }
func (g *Graph) TargetX() string    { return g.targetX }
func (g *Graph) TargetY() string    { return g.targetY }

func (g *Graph) Title() string {
	return fmt.Sprintf("%s x %s", g.sourceY.Name(), g.sourceX.Name())
}
