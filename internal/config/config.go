package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/kinesim/internal/vmath"
)

const (
	DefaultDt        = 0.01
	DefaultDuration  = 10.0
	DefaultFPS       = 30
	DefaultPointSize = 4.0
	DefaultLogLevel  = "info"
)

var (
	ErrNoObjects     = errors.New("config: no objects defined")
	ErrDuplicateName = errors.New("config: duplicate object name")
	ErrUnnamed       = errors.New("config: object without a name")
	ErrBadGraph      = errors.New("config: graph axis incomplete")
)

type Config struct {
	Dt            float64        `yaml:"dt"`
	Duration      float64        `yaml:"duration"`
	Realtime      bool           `yaml:"realtime"`
	FPS           int            `yaml:"fps"`
	ValidateState bool           `yaml:"validate_state"`
	LogLevel      string         `yaml:"log_level"`
	Objects       []ObjectConfig `yaml:"objects"`
	Graphs        []GraphConfig  `yaml:"graphs"`
}

type ObjectConfig struct {
	Name         string             `yaml:"name"`
	Position     vmath.Vec2         `yaml:"position"`
	Size         vmath.Vec2         `yaml:"size"`
	Velocity     vmath.Vec2         `yaml:"velocity"`
	Acceleration vmath.Vec2         `yaml:"acceleration"`
	Mass         float64            `yaml:"mass"`
	Centripetal  *CentripetalConfig `yaml:"centripetal,omitempty"`
}

type CentripetalConfig struct {
	Center  vmath.Vec2 `yaml:"center"`
	Modulus float64    `yaml:"modulus"`
}

// GraphConfig names value sources as listed by the source registry.
type GraphConfig struct {
	X         string  `yaml:"x"`
	XTarget   string  `yaml:"x_target"`
	Y         string  `yaml:"y"`
	YTarget   string  `yaml:"y_target"`
	PointSize float64 `yaml:"point_size"`
}

func DefaultObject(name string) ObjectConfig {
	return ObjectConfig{
		Name: name,
		Size: vmath.V(1, 1),
		Mass: 1,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Dt:            DefaultDt,
		Duration:      DefaultDuration,
		FPS:           DefaultFPS,
		ValidateState: true,
		LogLevel:      DefaultLogLevel,
		Objects:       []ObjectConfig{DefaultObject("object")},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	cfg.Objects = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) applyDefaults() {
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
	for i := range c.Graphs {
		if c.Graphs[i].PointSize == 0 {
			c.Graphs[i].PointSize = DefaultPointSize
		}
	}
}

func (c *Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("config: dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive, got %f", c.Duration)
	}
	if len(c.Objects) == 0 {
		return ErrNoObjects
	}
	names := make(map[string]bool, len(c.Objects))
	for _, o := range c.Objects {
		if o.Name == "" {
			return ErrUnnamed
		}
		if names[o.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateName, o.Name)
		}
		names[o.Name] = true
	}
	for i, g := range c.Graphs {
		if g.X == "" || g.Y == "" || g.XTarget == "" || g.YTarget == "" {
			return fmt.Errorf("%w: graph %d", ErrBadGraph, i)
		}
	}
	return nil
}

// Clone returns a deep copy so presets are never mutated by callers.
func (c *Config) Clone() *Config {
	out := *c
	out.Objects = make([]ObjectConfig, len(c.Objects))
	for i, o := range c.Objects {
		out.Objects[i] = o
		if o.Centripetal != nil {
			cc := *o.Centripetal
			out.Objects[i].Centripetal = &cc
		}
	}
	out.Graphs = append([]GraphConfig(nil), c.Graphs...)
	return &out
}
