package viz

import "github.com/san-kum/kinesim/internal/vmath"

const DefaultTrail = 200

// Sprite is the terminal visual of one object. It keeps the recent path so
// the scene view can draw a trail.
type Sprite struct {
	Name     string
	Position vmath.Vec2
	Size     vmath.Vec2
	Trail    []vmath.Vec2
	maxTrail int
}

func NewSprite(name string, maxTrail int) *Sprite {
	return &Sprite{Name: name, maxTrail: maxTrail}
}

func (s *Sprite) SetDrawPosition(p vmath.Vec2) {
	s.Position = p
	if s.maxTrail <= 0 {
		return
	}
	s.Trail = append(s.Trail, p)
	if len(s.Trail) > s.maxTrail {
		s.Trail = s.Trail[len(s.Trail)-s.maxTrail:]
	}
}

func (s *Sprite) SetDrawSize(v vmath.Vec2) { s.Size = v }

func (s *Sprite) ClearTrail() { s.Trail = s.Trail[:0] }

func (s *Sprite) Draw(c *Canvas, view Viewport) {
	for _, p := range s.Trail {
		c.Set(view.Pixel(c, p))
	}
	c.DrawRect(view, s.Position, s.Size)
}
