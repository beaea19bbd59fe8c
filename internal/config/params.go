package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/kinesim/internal/vmath"
)

var ErrBadParam = errors.New("config: bad parameter path")

// SetParam assigns one initial component addressed as
// "<object>.<field>[.<component>]", e.g. "ball.velocity.x",
// "ball.mass" or "ball.centripetal.modulus".
func (c *Config) SetParam(path string, value float64) error {
	parts := strings.Split(path, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return fmt.Errorf("%w: %q", ErrBadParam, path)
	}
	o := c.object(parts[0])
	if o == nil {
		return fmt.Errorf("%w: no object %q", ErrBadParam, parts[0])
	}
	component := ""
	if len(parts) == 3 {
		component = parts[2]
	}

	switch parts[1] {
	case "position":
		return setAxis(&o.Position, component, value, path)
	case "size":
		return setAxis(&o.Size, component, value, path)
	case "velocity":
		return setAxis(&o.Velocity, component, value, path)
	case "acceleration":
		return setAxis(&o.Acceleration, component, value, path)
	case "mass":
		if component != "" {
			return fmt.Errorf("%w: %q", ErrBadParam, path)
		}
		o.Mass = value
		return nil
	case "centripetal":
		if o.Centripetal == nil {
			o.Centripetal = &CentripetalConfig{}
		}
		if component == "modulus" {
			o.Centripetal.Modulus = value
			return nil
		}
		return setAxis(&o.Centripetal.Center, component, value, path)
	}
	return fmt.Errorf("%w: %q", ErrBadParam, path)
}

func (c *Config) object(name string) *ObjectConfig {
	for i := range c.Objects {
		if c.Objects[i].Name == name {
			return &c.Objects[i]
		}
	}
	return nil
}

func setAxis(v *vmath.Vec2, component string, value float64, path string) error {
	switch component {
	case "x":
		v.X = value
	case "y":
		v.Y = value
	default:
		return fmt.Errorf("%w: %q", ErrBadParam, path)
	}
	return nil
}
